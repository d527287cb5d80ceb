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

package transport

import (
	"net/http"

	"github.com/sage-x-project/sage-msgsig-go/pkg/signer"
)

// NewSigningClient returns an http.Client whose requests are all signed.
//
// Parameters:
//   - s: the request signer holding the install and account keys
//   - httpClient: optional client to copy timeouts, jar and redirect policy
//     from (nil to start from an empty client)
//   - opts: SigningTransport options
//
// Example:
//
//	client, err := transport.NewSigningClient(s, nil,
//	    transport.WithTokenSource(tokens),
//	)
//	if err != nil {
//	    return err
//	}
//	resp, err := client.Get("https://api.example.com/v1/resource")
func NewSigningClient(s signer.RequestSigner, httpClient *http.Client, opts ...Option) (*http.Client, error) {
	var c http.Client
	if httpClient != nil {
		c = *httpClient
		if httpClient.Transport != nil {
			opts = append([]Option{WithBase(httpClient.Transport)}, opts...)
		}
	}

	rt, err := NewSigningTransport(s, opts...)
	if err != nil {
		return nil, err
	}
	c.Transport = rt
	return &c, nil
}
