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

package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"

	"go.uber.org/zap"

	"github.com/sage-x-project/sage-msgsig-go/pkg/signer"
	"github.com/sage-x-project/sage-msgsig-go/pkg/transport"
)

func main() {
	fmt.Println("SAGE MsgSig Go - Simple Client Example")
	fmt.Println("======================================")

	ctx := context.Background()
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// Start a local server that echoes the signature headers
	fmt.Println("\n1. Starting local echo server...")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, name := range []string{"Approov-Token", "Content-Digest", "Signature-Input", "Signature"} {
			fmt.Fprintf(w, "%s: %s\n", name, r.Header.Get(name))
		}
	}))
	defer server.Close()
	fmt.Printf("   Server URL: %s\n", server.URL)

	// Create the account key signer
	fmt.Println("\n2. Creating account key signer...")
	account, err := signer.NewHMACSigner([]byte("example-account-secret"))
	if err != nil {
		log.Fatalf("Failed to create signer: %v", err)
	}
	requestSigner, err := signer.NewDefaultRequestSigner(
		signer.WithAccountSigner(account),
		signer.WithLogger(logger),
	)
	if err != nil {
		log.Fatalf("Failed to create request signer: %v", err)
	}

	// Create a signing HTTP client with a token source
	fmt.Println("\n3. Creating signing HTTP client...")
	tokens := transport.TokenSourceFunc(func(_ context.Context, host string) (string, error) {
		return "example-token-for-" + host, nil
	})
	client, err := transport.NewSigningClient(requestSigner, nil,
		transport.WithTokenSource(tokens),
		transport.WithLogger(logger),
	)
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}

	// Send a signed request
	fmt.Println("\n4. Sending signed request...")
	req, err := http.NewRequestWithContext(ctx, "POST", server.URL+"/v1/resource", strings.NewReader(`{"hello": "world"}`))
	if err != nil {
		log.Fatalf("Failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		log.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatalf("Failed to read response: %v", err)
	}
	fmt.Println("   Server saw:")
	for _, line := range strings.Split(strings.TrimSpace(string(body)), "\n") {
		fmt.Printf("   %s\n", line)
	}

	fmt.Println("\n✅ Example completed!")
}
