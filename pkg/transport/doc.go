// Copyright (C) 2025 SAGE-X Project
//
// This file is part of sage-msgsig-go.
//
// sage-msgsig-go is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// sage-msgsig-go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with sage-msgsig-go.  If not, see <https://www.gnu.org/licenses/>.

// Package transport provides an http.RoundTripper that signs every outgoing
// request with RFC 9421 HTTP Message Signatures.
//
// # Key Features
//
//   - Works with any http.Client
//   - Per-host signing policy, resolved once and cached
//   - Optional attestation token injection before signing
//   - Install-key to account-key fallback through the signer package
//
// # Usage
//
// The simplest way to use this package is NewSigningClient:
//
//	client, err := transport.NewSigningClient(requestSigner, nil)
//	if err != nil {
//	    return err
//	}
//	resp, err := client.Post(url, "application/json", body)
//
// For more control, build the transport directly:
//
//	rt, err := transport.NewSigningTransport(requestSigner,
//	    transport.WithBase(http.DefaultTransport),
//	    transport.WithFactoryProvider(policies),
//	    transport.WithTokenSource(tokens),
//	    transport.WithLogger(logger),
//	)
//	client := &http.Client{Transport: rt}
//
// # Architecture
//
//	http.Client
//	    └─→ SigningTransport
//	        ├─→ FactoryProvider (cached per host)
//	        ├─→ TokenSource (token header)
//	        └─→ signer.RequestSigner
//	            └─→ base http.RoundTripper
//	                └─→ Network
//
// # Factory Cache
//
// The factory for a host is requested from the FactoryProvider on the first
// request to that host. Call Invalidate(host) or InvalidateAll when the
// policy changes, for example after a configuration update.
//
// # Request Handling
//
// RoundTrip never modifies the caller's request. It signs a clone, which
// receives the token, Content-Digest, Signature-Input and Signature
// headers. Requests that cannot be signed are not sent.
package transport
