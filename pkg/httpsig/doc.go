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

// Package httpsig builds RFC 9421 signature bases for outgoing requests.
//
// The package produces the exact bytes to be signed and the values of the
// Signature-Input and Signature headers. Computing the signature itself is
// left to the caller (see the signer package).
//
// # Signature Parameters
//
// SignatureParameters holds the ordered covered components and the
// signature metadata:
//
//	params := httpsig.NewSignatureParameters()
//	params.AddComponentIdentifier("@method")
//	params.AddComponentIdentifier("Content-Type") // stored as "content-type"
//	params.SetKeyID("my-key")
//	params.Serialize() // ("@method" "content-type");keyid="my-key"
//
// Adding a component whose name and parameters are already present does
// nothing.
//
// # Factory
//
// A Factory applies a signing policy to a request:
//
//	factory, err := httpsig.NewFactory(
//	    httpsig.WithBaseParameters(base),
//	    httpsig.WithInstallKey(false),
//	    httpsig.WithExpiresLifetime(15),
//	    httpsig.WithTokenHeader(true),
//	    httpsig.WithOptionalHeaders("authorization", "content-type"),
//	    httpsig.WithBodyDigest("sha-256", false),
//	)
//
// Unsupported digest algorithms are reported by NewFactory. A Factory is
// read-only once built and can be shared.
//
// # Signing Context
//
// A SigningContext snapshots one request and resolves components:
//
//   - @method, @authority, @scheme, @target-uri, @path, @query,
//     @request-target and @query-param;name="..."
//   - any other name is a header field; repeated field lines are trimmed,
//     unfolded and joined with ", "
//
// Header writes made while signing (Content-Digest) go to the context and,
// through a HeaderMutator, to the live request.
//
//	ctx, err := httpsig.NewSigningContextFromRequest(req, httpsig.DefaultTokenHeader)
//	params, err := factory.Build(ctx)
//	base, err := ctx.CreateSignatureBase(params)
//
// # Errors
//
// Errors are *Error values with KindConfiguration (factory options) or
// KindResolution (missing or unknown components, missing required body).
// Match them with IsKind or errors.Is against the exported sentinels.
package httpsig
