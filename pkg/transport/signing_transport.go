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
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/sage-x-project/sage-msgsig-go/pkg/httpsig"
	"github.com/sage-x-project/sage-msgsig-go/pkg/signer"
)

// FactoryProvider returns the signing policy for a host.
type FactoryProvider interface {
	Factory(ctx context.Context, host string) (*httpsig.Factory, error)
}

// FactoryProviderFunc adapts a function to FactoryProvider.
type FactoryProviderFunc func(ctx context.Context, host string) (*httpsig.Factory, error)

// Factory calls f.
func (f FactoryProviderFunc) Factory(ctx context.Context, host string) (*httpsig.Factory, error) {
	return f(ctx, host)
}

// StaticFactory returns a provider that uses factory for every host.
func StaticFactory(factory *httpsig.Factory) FactoryProvider {
	return FactoryProviderFunc(func(context.Context, string) (*httpsig.Factory, error) {
		return factory, nil
	})
}

// TokenSource supplies the attestation token for a host. An empty token
// leaves the request unchanged.
type TokenSource interface {
	Token(ctx context.Context, host string) (string, error)
}

// TokenSourceFunc adapts a function to TokenSource.
type TokenSourceFunc func(ctx context.Context, host string) (string, error)

// Token calls f.
func (f TokenSourceFunc) Token(ctx context.Context, host string) (string, error) {
	return f(ctx, host)
}

// SigningTransport is an http.RoundTripper that signs every request before
// handing it to the base transport.
//
// Factories are resolved once per host and cached until Invalidate or
// InvalidateAll is called. SigningTransport is safe for concurrent use.
type SigningTransport struct {
	base        http.RoundTripper
	signer      signer.RequestSigner
	provider    FactoryProvider
	tokens      TokenSource
	tokenHeader string
	logger      *zap.Logger

	mu        sync.RWMutex
	factories map[string]*httpsig.Factory
}

// Option configures a SigningTransport.
type Option func(*SigningTransport)

// WithBase sets the transport that sends signed requests
// (default http.DefaultTransport).
func WithBase(rt http.RoundTripper) Option {
	return func(t *SigningTransport) {
		if rt != nil {
			t.base = rt
		}
	}
}

// WithFactoryProvider sets the per-host policy source
// (default StaticFactory(httpsig.DefaultFactory())).
func WithFactoryProvider(p FactoryProvider) Option {
	return func(t *SigningTransport) {
		if p != nil {
			t.provider = p
		}
	}
}

// WithTokenSource injects the token header before signing when the
// request does not already carry it.
func WithTokenSource(ts TokenSource) Option {
	return func(t *SigningTransport) {
		t.tokens = ts
	}
}

// WithTokenHeader sets the header injected by the token source
// (default httpsig.DefaultTokenHeader).
func WithTokenHeader(name string) Option {
	return func(t *SigningTransport) {
		if name != "" {
			t.tokenHeader = name
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(t *SigningTransport) {
		if l != nil {
			t.logger = l
		}
	}
}

// NewSigningTransport creates a SigningTransport around s.
func NewSigningTransport(s signer.RequestSigner, opts ...Option) (*SigningTransport, error) {
	if s == nil {
		return nil, fmt.Errorf("request signer cannot be nil")
	}
	t := &SigningTransport{
		base:        http.DefaultTransport,
		signer:      s,
		provider:    StaticFactory(httpsig.DefaultFactory()),
		tokenHeader: httpsig.DefaultTokenHeader,
		logger:      zap.NewNop(),
		factories:   make(map[string]*httpsig.Factory),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// RoundTrip signs a clone of req and sends it through the base transport.
func (t *SigningTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil || req.URL == nil {
		return nil, fmt.Errorf("request and URL cannot be nil")
	}
	ctx := req.Context()
	out := req.Clone(ctx)

	host := hostKey(out)
	factory, err := t.factory(ctx, host)
	if err != nil {
		closeBody(req)
		return nil, err
	}

	if err := t.injectToken(ctx, out, host); err != nil {
		closeBody(req)
		return nil, err
	}

	if _, err := t.signer.SignRequestWithFactory(ctx, out, factory); err != nil {
		closeBody(req)
		t.logger.Error("failed to sign request",
			zap.String("method", out.Method),
			zap.String("host", host),
			zap.Error(err))
		return nil, fmt.Errorf("failed to sign request: %w", err)
	}

	return t.base.RoundTrip(out)
}

// Invalidate drops the cached factory for host.
func (t *SigningTransport) Invalidate(host string) {
	t.mu.Lock()
	delete(t.factories, strings.ToLower(host))
	t.mu.Unlock()
}

// InvalidateAll drops every cached factory.
func (t *SigningTransport) InvalidateAll() {
	t.mu.Lock()
	t.factories = make(map[string]*httpsig.Factory)
	t.mu.Unlock()
}

func (t *SigningTransport) factory(ctx context.Context, host string) (*httpsig.Factory, error) {
	t.mu.RLock()
	f, ok := t.factories[host]
	t.mu.RUnlock()
	if ok {
		return f, nil
	}

	f, err := t.provider.Factory(ctx, host)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve signing factory for %s: %w", host, err)
	}
	if f == nil {
		return nil, fmt.Errorf("no signing factory for %s", host)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	// keep the first factory stored by a concurrent caller
	if cached, ok := t.factories[host]; ok {
		return cached, nil
	}
	t.factories[host] = f
	t.logger.Debug("cached signing factory", zap.String("host", host), zap.String("label", f.Label()))
	return f, nil
}

func (t *SigningTransport) injectToken(ctx context.Context, req *http.Request, host string) error {
	if t.tokens == nil || req.Header.Get(t.tokenHeader) != "" {
		return nil
	}
	token, err := t.tokens.Token(ctx, host)
	if err != nil {
		return fmt.Errorf("failed to fetch token for %s: %w", host, err)
	}
	if token != "" {
		req.Header.Set(t.tokenHeader, token)
	}
	return nil
}

func hostKey(req *http.Request) string {
	host := req.URL.Host
	if host == "" {
		host = req.Host
	}
	return strings.ToLower(host)
}

func closeBody(req *http.Request) {
	if req.Body != nil {
		req.Body.Close()
	}
}
