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

package e2e

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sage-x-project/sage-msgsig-go/pkg/client"
	"github.com/sage-x-project/sage-msgsig-go/pkg/httpsig"
	"github.com/sage-x-project/sage-msgsig-go/pkg/signer"
	"github.com/sage-x-project/sage-msgsig-go/pkg/transport"
)

const accountSecret = "e2e-account-secret"

var fixedNow = func() time.Time { return time.Unix(1700000000, 0) }

// policy is shared by client and server so the server can rebuild the
// parameters without parsing Signature-Input.
func policy(t *testing.T, install bool) *httpsig.Factory {
	t.Helper()
	base := httpsig.NewSignatureParameters()
	require.NoError(t, base.AddComponentIdentifier(httpsig.ComponentMethod))
	require.NoError(t, base.AddComponentIdentifier(httpsig.ComponentTargetURI))
	f, err := httpsig.NewFactory(
		httpsig.WithBaseParameters(base),
		httpsig.WithInstallKey(install),
		httpsig.WithClock(fixedNow),
		httpsig.WithExpiresLifetime(15),
		httpsig.WithTokenHeader(true),
		httpsig.WithOptionalHeaders(httpsig.HeaderContentType),
		httpsig.WithBodyDigest("sha-256", false),
	)
	require.NoError(t, err)
	return f
}

type verifyFunc func(label, base string, sig []byte) bool

// verifyingServer rebuilds the signature base for each request and checks
// the signature with verify.
func verifyingServer(t *testing.T, factory *httpsig.Factory, verify verifyFunc) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "read body", http.StatusBadRequest)
			return
		}
		received := r.Header.Get("Content-Digest")

		u := *r.URL
		u.Scheme = "http"
		u.Host = r.Host
		var snapshot []byte
		if len(body) > 0 {
			snapshot = body
		}
		ctx := httpsig.NewSigningContext(r.Method, &u, r.Header.Clone(), snapshot, httpsig.DefaultTokenHeader, nil)

		params, err := factory.Build(ctx)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if received != "" && strings.Join(ctx.HeaderValues("content-digest"), ", ") != received {
			http.Error(w, "digest mismatch", http.StatusUnauthorized)
			return
		}
		base, err := ctx.CreateSignatureBase(params)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		label := factory.Label()
		wantInput, _ := httpsig.SignatureInputHeader(label, params)
		if r.Header.Get("Signature-Input") != wantInput {
			http.Error(w, "signature input mismatch", http.StatusUnauthorized)
			return
		}
		sigHeader := r.Header.Get("Signature")
		prefix := label + "=:"
		if !strings.HasPrefix(sigHeader, prefix) || !strings.HasSuffix(sigHeader, ":") {
			http.Error(w, "malformed signature", http.StatusUnauthorized)
			return
		}
		sig, err := base64.StdEncoding.DecodeString(strings.TrimSuffix(strings.TrimPrefix(sigHeader, prefix), ":"))
		if err != nil || !verify(label, base, sig) {
			http.Error(w, "bad signature", http.StatusUnauthorized)
			return
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("verified " + label))
	}))
}

func hmacVerifier(t *testing.T) verifyFunc {
	h, err := signer.NewHMACSigner([]byte(accountSecret))
	require.NoError(t, err)
	return func(label, base string, sig []byte) bool {
		return label == httpsig.LabelAccount && h.Verify([]byte(base), sig)
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

// TestE2E_AccountKeyTransport signs through http.Client and verifies the HMAC
func TestE2E_AccountKeyTransport(t *testing.T) {
	// Setup
	factory := policy(t, false)
	server := verifyingServer(t, factory, hmacVerifier(t))
	defer server.Close()

	account, err := signer.NewHMACSigner([]byte(accountSecret))
	require.NoError(t, err)
	s, err := signer.NewDefaultRequestSigner(signer.WithAccountSigner(account))
	require.NoError(t, err)

	tokens := transport.TokenSourceFunc(func(context.Context, string) (string, error) { return "device-token", nil })
	c, err := transport.NewSigningClient(s, server.Client(),
		transport.WithFactoryProvider(transport.StaticFactory(factory)),
		transport.WithTokenSource(tokens),
	)
	require.NoError(t, err)

	// Execute
	req, err := http.NewRequest("POST", server.URL+"/v1/resource?b=2&a=1&b=1", strings.NewReader(`{"hello": "world"}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.Do(req)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "verified account", readBody(t, resp))
}

// TestE2E_InstallKeyClient signs with ECDSA and verifies r||s
func TestE2E_InstallKeyClient(t *testing.T) {
	// Setup
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	install, err := signer.NewECDSASigner(key)
	require.NoError(t, err)

	factory := policy(t, true)
	server := verifyingServer(t, factory, func(label, base string, sig []byte) bool {
		if label != httpsig.LabelInstall || len(sig) != 64 {
			return false
		}
		digest := sha256.Sum256([]byte(base))
		r := new(big.Int).SetBytes(sig[:32])
		s := new(big.Int).SetBytes(sig[32:])
		return ecdsa.Verify(&key.PublicKey, digest[:], r, s)
	})
	defer server.Close()

	s, err := signer.NewDefaultRequestSigner(signer.WithInstallSigner(install))
	require.NoError(t, err)
	c, err := client.NewClient(s, server.Client(), client.WithFactory(factory))
	require.NoError(t, err)

	// Execute
	resp, err := c.Get(context.Background(), server.URL+"/status")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "verified install", readBody(t, resp))
}

// TestE2E_FallbackToAccount checks the server sees an account signature when
// the install key is unavailable
func TestE2E_FallbackToAccount(t *testing.T) {
	server := verifyingServer(t, policy(t, false), hmacVerifier(t))
	defer server.Close()

	unavailable := unavailableInstall{}
	account, err := signer.NewHMACSigner([]byte(accountSecret))
	require.NoError(t, err)
	s, err := signer.NewDefaultRequestSigner(signer.WithInstallSigner(unavailable), signer.WithAccountSigner(account))
	require.NoError(t, err)

	c, err := client.NewClient(s, server.Client(), client.WithFactory(policy(t, true)))
	require.NoError(t, err)

	resp, err := c.Post(context.Background(), server.URL+"/v1/task", []byte(`{"task":"e2e"}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "verified account", readBody(t, resp))
}

// TestE2E_TamperedRequestRejected modifies a signed header in flight
func TestE2E_TamperedRequestRejected(t *testing.T) {
	factory := policy(t, false)
	server := verifyingServer(t, factory, hmacVerifier(t))
	defer server.Close()

	account, err := signer.NewHMACSigner([]byte(accountSecret))
	require.NoError(t, err)
	s, err := signer.NewDefaultRequestSigner(signer.WithAccountSigner(account))
	require.NoError(t, err)

	tamper := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		req.Header.Set("Content-Type", "text/plain")
		return server.Client().Transport.RoundTrip(req)
	})
	rt, err := transport.NewSigningTransport(s,
		transport.WithBase(tamper),
		transport.WithFactoryProvider(transport.StaticFactory(factory)),
	)
	require.NoError(t, err)

	req, err := http.NewRequest("POST", server.URL+"/v1/resource", strings.NewReader(`{"hello": "world"}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := (&http.Client{Transport: rt}).Do(req)

	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// TestE2E_WrongSecretRejected signs with a different account secret
func TestE2E_WrongSecretRejected(t *testing.T) {
	factory := policy(t, false)
	server := verifyingServer(t, factory, hmacVerifier(t))
	defer server.Close()

	account, err := signer.NewHMACSigner([]byte("not-the-secret"))
	require.NoError(t, err)
	s, err := signer.NewDefaultRequestSigner(signer.WithAccountSigner(account))
	require.NoError(t, err)
	c, err := client.NewClient(s, server.Client(), client.WithFactory(factory))
	require.NoError(t, err)

	resp, err := c.Get(context.Background(), server.URL+"/status")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

type unavailableInstall struct{}

func (unavailableInstall) Sign([]byte) ([]byte, error) { return nil, signer.ErrInstallKeyUnavailable }
func (unavailableInstall) Mode() signer.Mode          { return signer.ModeInstall }

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }
