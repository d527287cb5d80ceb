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

package client

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/sage-x-project/sage-msgsig-go/pkg/httpsig"
	"github.com/sage-x-project/sage-msgsig-go/pkg/signer"
)

// Client is an HTTP client that signs every request before sending it
type Client struct {
	signer     signer.RequestSigner
	factory    *httpsig.Factory
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures a Client
type Option func(*Client)

// WithFactory sets the signing policy (default httpsig.DefaultFactory)
func WithFactory(f *httpsig.Factory) Option {
	return func(c *Client) {
		if f != nil {
			c.factory = f
		}
	}
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a new signing client
// If httpClient is nil, http.DefaultClient is used
func NewClient(s signer.RequestSigner, httpClient *http.Client, opts ...Option) (*Client, error) {
	if s == nil {
		return nil, fmt.Errorf("request signer cannot be nil")
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	c := &Client{
		signer:     s,
		factory:    httpsig.DefaultFactory(),
		httpClient: httpClient,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Do signs req and executes it
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	// Check context first
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if req == nil {
		return nil, fmt.Errorf("request cannot be nil")
	}

	// Sign the request
	result, err := c.signer.SignRequestWithFactory(ctx, req, c.factory)
	if err != nil {
		return nil, fmt.Errorf("failed to sign request: %w", err)
	}
	if result.FellBack {
		c.logger.Info("request signed with account key", zap.String("url", req.URL.Redacted()))
	}

	// Execute the request
	resp, err := c.httpClient.Do(req.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}

	return resp, nil
}

// Post sends a signed POST request with a JSON body
func (c *Client) Post(ctx context.Context, url string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create POST request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	return c.Do(ctx, req)
}

// Get sends a signed GET request
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create GET request: %w", err)
	}

	return c.Do(ctx, req)
}

// Factory returns the signing policy
func (c *Client) Factory() *httpsig.Factory {
	return c.factory
}
