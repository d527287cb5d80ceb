package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sage-x-project/sage-msgsig-go/pkg/httpsig"
	"github.com/sage-x-project/sage-msgsig-go/pkg/signer"
)

// mockRequestSigner for testing
type mockRequestSigner struct {
	err      error
	fellBack bool
	calls    int
	factory  *httpsig.Factory
}

func (m *mockRequestSigner) SignRequest(ctx context.Context, req *http.Request) error {
	_, err := m.SignRequestWithFactory(ctx, req, nil)
	return err
}

func (m *mockRequestSigner) SignRequestWithFactory(_ context.Context, req *http.Request, f *httpsig.Factory) (*signer.Result, error) {
	m.calls++
	m.factory = f
	if m.err != nil {
		return nil, m.err
	}
	req.Header.Set(signer.HeaderSignatureInput, `account=("@method")`)
	req.Header.Set(signer.HeaderSignature, "account=:bW9jaw==:")
	return &signer.Result{Label: httpsig.LabelAccount, FellBack: m.fellBack}, nil
}

func hmacRequestSigner(t *testing.T) signer.RequestSigner {
	t.Helper()
	h, err := signer.NewHMACSigner([]byte("secret"))
	require.NoError(t, err)
	s, err := signer.NewDefaultRequestSigner(signer.WithAccountSigner(h))
	require.NoError(t, err)
	return s
}

// Test NewClient creates client with required dependencies
func TestNewClient(t *testing.T) {
	c, err := NewClient(&mockRequestSigner{}, nil)
	require.NoError(t, err)

	assert.NotNil(t, c.signer)
	assert.Equal(t, http.DefaultClient, c.httpClient)
	assert.True(t, c.Factory().UsesInstallKey())

	_, err = NewClient(nil, nil)
	assert.Error(t, err)
}

// Test NewClient with custom HTTP client and factory
func TestNewClientWithOptions(t *testing.T) {
	customClient := &http.Client{}
	f, err := httpsig.NewFactory(httpsig.WithInstallKey(false))
	require.NoError(t, err)

	c, err := NewClient(&mockRequestSigner{}, customClient, WithFactory(f), WithLogger(nil))
	require.NoError(t, err)

	assert.Equal(t, customClient, c.httpClient)
	assert.Same(t, f, c.Factory())
	assert.NotNil(t, c.logger)
}

// Test Post signs and sends a JSON body
func TestClient_Post(t *testing.T) {
	var received *http.Request
	var body string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received = r
		b, _ := io.ReadAll(r.Body)
		body = string(b)
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	c, err := NewClient(hmacRequestSigner(t), server.Client())
	require.NoError(t, err)

	resp, err := c.Post(context.Background(), server.URL+"/task", []byte(`{"task":"process"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, `{"task":"process"}`, body)
	assert.Equal(t, "application/json", received.Header.Get("Content-Type"))
	assert.Contains(t, received.Header.Get("Signature-Input"), `"content-type" "content-digest"`)
	assert.True(t, strings.HasPrefix(received.Header.Get("Signature"), "account=:"))
	assert.NotEmpty(t, received.Header.Get("Content-Digest"))
}

// Test Get signs a body-less request
func TestClient_Get(t *testing.T) {
	var received *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received = r
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c, err := NewClient(hmacRequestSigner(t), nil)
	require.NoError(t, err)

	resp, err := c.Get(context.Background(), server.URL+"/status")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "GET", received.Method)
	assert.NotEmpty(t, received.Header.Get("Signature"))
	assert.Empty(t, received.Header.Get("Content-Digest"))
	assert.NotContains(t, received.Header.Get("Signature-Input"), "content-length")
}

// Test Do passes the configured factory
func TestClient_DoUsesFactory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	mock := &mockRequestSigner{fellBack: true}
	f, err := httpsig.NewFactory()
	require.NoError(t, err)
	c, err := NewClient(mock, nil, WithFactory(f))
	require.NoError(t, err)

	req, _ := http.NewRequest("PUT", server.URL+"/data", strings.NewReader("x"))
	resp, err := c.Do(context.Background(), req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, 1, mock.calls)
	assert.Same(t, f, mock.factory)
}

// Test signing failure prevents the request
func TestClient_SignError(t *testing.T) {
	sent := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { sent = true }))
	defer server.Close()

	boom := errors.New("signing failed")
	c, err := NewClient(&mockRequestSigner{err: boom}, nil)
	require.NoError(t, err)

	_, err = c.Get(context.Background(), server.URL)
	assert.ErrorIs(t, err, boom)
	assert.False(t, sent)
}

// Test canceled context
func TestClient_ContextCanceled(t *testing.T) {
	mock := &mockRequestSigner{}
	c, err := NewClient(mock, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req, _ := http.NewRequest("GET", "http://example.invalid/", nil)
	_, err = c.Do(ctx, req)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, mock.calls)
}

// Test invalid URL and nil request
func TestClient_InvalidRequests(t *testing.T) {
	c, err := NewClient(&mockRequestSigner{}, nil)
	require.NoError(t, err)

	_, err = c.Get(context.Background(), "://bad")
	assert.Error(t, err)
	_, err = c.Post(context.Background(), "://bad", nil)
	assert.Error(t, err)
	_, err = c.Do(context.Background(), nil)
	assert.Error(t, err)
}

// Test transport failure is wrapped
func TestClient_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	c, err := NewClient(&mockRequestSigner{}, nil)
	require.NoError(t, err)

	_, err = c.Get(context.Background(), url)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP request failed")
}
