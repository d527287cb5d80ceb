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

package httpsig

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/http/httpguts"
)

// Signing modes. Install-key signatures use an ECDSA P-256 device key;
// account-key signatures use a shared HMAC secret.
const (
	LabelInstall = "install"
	LabelAccount = "account"

	AlgInstall = "ecdsa-p256-sha256"
	AlgAccount = "hmac-sha256"
)

// DefaultTokenHeader is the header that carries the attestation token.
const DefaultTokenHeader = "approov-token"

// Factory turns a signing policy into SignatureParameters for one request.
// A Factory is never modified after NewFactory returns and may be shared
// between goroutines.
type Factory struct {
	base            *SignatureParameters
	digestAlg       DigestAlgorithm
	digestRequired  bool
	useInstallKey   bool
	addCreated      bool
	expiresLifetime int64
	addTokenHeader  bool
	optionalHeaders []string
	addNonce        bool
	now             func() time.Time
	newNonce        func() string
}

// FactoryOption configures a Factory.
type FactoryOption func(*Factory) error

// NewFactory applies opts over a policy that signs nothing beyond the
// base parameters, uses the install key and emits "created".
func NewFactory(opts ...FactoryOption) (*Factory, error) {
	f := &Factory{
		base:          NewSignatureParameters(),
		useInstallKey: true,
		addCreated:    true,
		now:           time.Now,
		newNonce:      uuid.NewString,
	}
	for _, opt := range opts {
		if err := opt(f); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// DefaultFactory signs @method and @target-uri, the token header, the
// authorization, content-length and content-type headers when present, and
// an optional SHA-256 body digest, with a 15 second lifetime.
func DefaultFactory() *Factory {
	base := NewSignatureParameters()
	_ = base.AddComponentIdentifier(ComponentMethod)
	_ = base.AddComponentIdentifier(ComponentTargetURI)

	f, err := NewFactory(
		WithBaseParameters(base),
		WithInstallKey(true),
		WithCreated(true),
		WithExpiresLifetime(15),
		WithTokenHeader(true),
		WithOptionalHeaders(HeaderAuthorization, HeaderContentLength, HeaderContentType),
		WithBodyDigest(string(DigestSHA256), false),
	)
	if err != nil {
		panic(err)
	}
	return f
}

// WithBaseParameters seeds every build with a copy of base.
func WithBaseParameters(base *SignatureParameters) FactoryOption {
	return func(f *Factory) error {
		if base == nil {
			return configError(ErrInvalidOption, "base parameters cannot be nil")
		}
		f.base = base.Clone()
		return nil
	}
}

// WithBodyDigest installs and signs a Content-Digest header. An empty
// algorithm disables the digest. Unsupported algorithms fail here rather
// than at build time.
func WithBodyDigest(algorithm string, required bool) FactoryOption {
	return func(f *Factory) error {
		if algorithm == "" {
			f.digestAlg = ""
			f.digestRequired = false
			return nil
		}
		alg, err := ParseDigestAlgorithm(algorithm)
		if err != nil {
			return err
		}
		f.digestAlg = alg
		f.digestRequired = required
		return nil
	}
}

// WithInstallKey selects install-key (true) or account-key (false) signing.
func WithInstallKey(use bool) FactoryOption {
	return func(f *Factory) error {
		f.useInstallKey = use
		return nil
	}
}

// WithCreated controls the "created" parameter.
func WithCreated(add bool) FactoryOption {
	return func(f *Factory) error {
		f.addCreated = add
		return nil
	}
}

// WithExpiresLifetime sets "expires" to the build time plus seconds. Zero
// disables "expires".
func WithExpiresLifetime(seconds int64) FactoryOption {
	return func(f *Factory) error {
		if seconds < 0 {
			return configError(ErrInvalidOption, fmt.Sprintf("negative expires lifetime %d", seconds))
		}
		f.expiresLifetime = seconds
		return nil
	}
}

// WithTokenHeader signs the context's token header when it is present.
func WithTokenHeader(add bool) FactoryOption {
	return func(f *Factory) error {
		f.addTokenHeader = add
		return nil
	}
}

// WithOptionalHeaders appends headers that are signed when present, in
// the given order.
func WithOptionalHeaders(names ...string) FactoryOption {
	return func(f *Factory) error {
		for _, name := range names {
			if !httpguts.ValidHeaderFieldName(name) {
				return configError(ErrInvalidHeaderName, fmt.Sprintf("invalid optional header %q", name))
			}
			f.optionalHeaders = append(f.optionalHeaders, strings.ToLower(name))
		}
		return nil
	}
}

// WithNonce adds a random "nonce" to every build.
func WithNonce(add bool) FactoryOption {
	return func(f *Factory) error {
		f.addNonce = add
		return nil
	}
}

// WithClock replaces time.Now for "created" and "expires".
func WithClock(now func() time.Time) FactoryOption {
	return func(f *Factory) error {
		if now == nil {
			return configError(ErrInvalidOption, "clock cannot be nil")
		}
		f.now = now
		return nil
	}
}

// WithNonceSource replaces the random nonce generator.
func WithNonceSource(next func() string) FactoryOption {
	return func(f *Factory) error {
		if next == nil {
			return configError(ErrInvalidOption, "nonce source cannot be nil")
		}
		f.newNonce = next
		return nil
	}
}

// UsesInstallKey reports the signing mode.
func (f *Factory) UsesInstallKey() bool { return f.useInstallKey }

// Label is the signature label for the signing mode.
func (f *Factory) Label() string {
	if f.useInstallKey {
		return LabelInstall
	}
	return LabelAccount
}

// Alg is the "alg" value for the signing mode.
func (f *Factory) Alg() string {
	if f.useInstallKey {
		return AlgInstall
	}
	return AlgAccount
}

// WithAccountKey returns a copy of f that signs with the account key.
func (f *Factory) WithAccountKey() *Factory {
	cp := *f
	cp.optionalHeaders = append([]string(nil), f.optionalHeaders...)
	cp.useInstallKey = false
	return &cp
}

// Build produces the parameters for one request. It may install a
// Content-Digest header on ctx.
func (f *Factory) Build(ctx *SigningContext) (*SignatureParameters, error) {
	if ctx == nil {
		return nil, fmt.Errorf("signing context cannot be nil")
	}

	params := f.base.Clone()
	if err := params.SetAlg(f.Alg()); err != nil {
		return nil, err
	}

	created := f.now().Unix()
	if f.addCreated {
		if err := params.SetCreated(created); err != nil {
			return nil, err
		}
	}
	if f.expiresLifetime > 0 {
		if err := params.SetExpires(created + f.expiresLifetime); err != nil {
			return nil, err
		}
	}
	if f.addNonce {
		if err := params.SetNonce(f.newNonce()); err != nil {
			return nil, err
		}
	}

	if f.addTokenHeader {
		if name := ctx.TokenHeader(); name != "" && ctx.HasField(name) {
			if err := params.AddComponentIdentifier(name); err != nil {
				return nil, err
			}
		}
	}

	for _, name := range f.optionalHeaders {
		if !ctx.HasField(name) {
			continue
		}
		if name == HeaderContentLength && !signContentLength(ctx) {
			continue
		}
		if err := params.AddComponentIdentifier(name); err != nil {
			return nil, err
		}
	}

	if f.digestAlg != "" {
		_, ok, err := ctx.EnsureContentDigest(f.digestAlg, f.digestRequired)
		if err != nil {
			return nil, err
		}
		if ok {
			if err := params.AddComponentIdentifier(HeaderContentDigest); err != nil {
				return nil, err
			}
		}
	}

	return params, nil
}

// signContentLength reports whether a content-length header will actually
// be transmitted. Transports drop an automatic "0" on body-less requests,
// so that value is only signed when a body is really present.
func signContentLength(ctx *SigningContext) bool {
	if len(ctx.Body()) > 0 {
		return true
	}
	value, _, _ := ctx.fieldValue(HeaderContentLength)
	return value != "0"
}
