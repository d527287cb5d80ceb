// Package signer signs outgoing HTTP requests with RFC 9421 HTTP Message
// Signatures.
//
// The signature base is built by the httpsig package; this package supplies
// the keys, attaches the Signature and Signature-Input headers and handles
// the install-key to account-key fallback.
//
// # Signing HTTP Requests
//
// Configure a DefaultRequestSigner with one or both key signers:
//
//	install, _ := signer.NewECDSASigner(deviceKey)
//	account, _ := signer.NewHMACSigner(accountSecret)
//
//	s, err := signer.NewDefaultRequestSigner(
//	    signer.WithInstallSigner(install),
//	    signer.WithAccountSigner(account),
//	)
//
//	req, _ := http.NewRequest("POST", "https://api.example.com/v1/resource", body)
//	req.Header.Set("Approov-Token", token)
//	err = s.SignRequest(ctx, req)
//
// This adds Signature, Signature-Input and (for requests with a body)
// Content-Digest headers:
//
//	Signature-Input: install=("@method" "@target-uri" "approov-token" "content-digest");alg="ecdsa-p256-sha256";created=1700000000;expires=1700000015
//	Signature: install=:MEUCIQ...:
//
// # Signing Policy
//
// The components and metadata come from an httpsig.Factory. Without
// WithFactory the signer uses httpsig.DefaultFactory. A different policy
// can be used per call:
//
//	result, err := s.SignRequestWithFactory(ctx, req, factory)
//	fmt.Println(result.Base)
//
// # Key Modes
//
//   - install: ECDSA P-256 with SHA-256, label "install", alg "ecdsa-p256-sha256".
//     Signatures are the 64-byte concatenation r||s.
//   - account: HMAC-SHA256 over a shared secret, label "account", alg "hmac-sha256".
//
// # Fallback
//
// When an install-mode KeySigner returns ErrInstallKeyUnavailable (or no
// install signer is configured) the parameters are rebuilt for the account
// key, which changes "alg" and therefore the signature base, and the
// request is signed again. Any other signing error is returned as is.
//
// # Error Handling
//
// Common signing errors:
//
//   - Nil request or factory
//   - ErrNoSigner: no key signer for the selected mode
//   - httpsig errors: missing components, required body digest without body
//   - Context canceled: operation interrupted
package signer
