// Package client provides an HTTP client with automatic request signing.
//
// The client wraps an http.Client and signs each request with RFC 9421 HTTP
// Message Signatures before sending it. Use it when requests are built
// explicitly; use the transport package to sign through any http.Client.
//
// # Features
//
//   - Automatic Signature and Signature-Input headers
//   - Content-Digest for requests with a body
//   - Install-key signing with account-key fallback
//   - Context-aware request execution
//   - Custom HTTP client injection
//
// # Basic Usage
//
//	account, _ := signer.NewHMACSigner(secret)
//	s, _ := signer.NewDefaultRequestSigner(signer.WithAccountSigner(account))
//	c, err := client.NewClient(s, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	resp, err := c.Post(ctx, "https://api.example.com/v1/task", []byte(`{"task": "process"}`))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer resp.Body.Close()
//
// # Custom Signing Policy
//
//	factory, _ := httpsig.NewFactory(
//	    httpsig.WithInstallKey(false),
//	    httpsig.WithBodyDigest("sha-512", true),
//	)
//	c, _ := client.NewClient(s, &http.Client{Timeout: 30 * time.Second}, client.WithFactory(factory))
//
// # Custom Requests
//
//	req, _ := http.NewRequest("PUT", "https://api.example.com/v1/data", body)
//	req.Header.Set("Content-Type", "application/json")
//	resp, err := c.Do(ctx, req)
package client
