package signer

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/sage-x-project/sage-msgsig-go/pkg/httpsig"
)

// DefaultRequestSigner implements RequestSigner on top of httpsig
type DefaultRequestSigner struct {
	install     KeySigner
	account     KeySigner
	factory     *httpsig.Factory
	tokenHeader string
	logger      *zap.Logger
}

// Option configures a DefaultRequestSigner
type Option func(*DefaultRequestSigner) error

// WithInstallSigner sets the install-mode key signer
func WithInstallSigner(k KeySigner) Option {
	return func(s *DefaultRequestSigner) error {
		if k != nil && k.Mode() != ModeInstall {
			return fmt.Errorf("install signer has mode %s", k.Mode())
		}
		s.install = k
		return nil
	}
}

// WithAccountSigner sets the account-mode key signer
func WithAccountSigner(k KeySigner) Option {
	return func(s *DefaultRequestSigner) error {
		if k != nil && k.Mode() != ModeAccount {
			return fmt.Errorf("account signer has mode %s", k.Mode())
		}
		s.account = k
		return nil
	}
}

// WithFactory sets the factory used by SignRequest
func WithFactory(f *httpsig.Factory) Option {
	return func(s *DefaultRequestSigner) error {
		if f == nil {
			return fmt.Errorf("factory cannot be nil")
		}
		s.factory = f
		return nil
	}
}

// WithTokenHeader sets the name of the attestation token header
func WithTokenHeader(name string) Option {
	return func(s *DefaultRequestSigner) error {
		s.tokenHeader = name
		return nil
	}
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(s *DefaultRequestSigner) error {
		if l != nil {
			s.logger = l
		}
		return nil
	}
}

// NewDefaultRequestSigner creates a DefaultRequestSigner. Without
// WithFactory it signs with httpsig.DefaultFactory.
func NewDefaultRequestSigner(opts ...Option) (*DefaultRequestSigner, error) {
	s := &DefaultRequestSigner{
		factory:     httpsig.DefaultFactory(),
		tokenHeader: httpsig.DefaultTokenHeader,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	if s.install == nil && s.account == nil {
		return nil, ErrNoSigner
	}
	return s, nil
}

// Factory returns the default factory
func (s *DefaultRequestSigner) Factory() *httpsig.Factory {
	return s.factory
}

// SignRequest signs req with the default factory
func (s *DefaultRequestSigner) SignRequest(ctx context.Context, req *http.Request) error {
	_, err := s.SignRequestWithFactory(ctx, req, s.factory)
	return err
}

// SignRequestWithFactory signs req. An install-mode factory signs with the
// install key first; if that key is unavailable the parameters are rebuilt
// for the account key and the request is signed again.
func (s *DefaultRequestSigner) SignRequestWithFactory(ctx context.Context, req *http.Request, factory *httpsig.Factory) (*Result, error) {
	// Check context
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	// Validate inputs
	if req == nil {
		return nil, fmt.Errorf("request cannot be nil")
	}
	if factory == nil {
		return nil, fmt.Errorf("factory cannot be nil")
	}

	if factory.UsesInstallKey() {
		if s.install != nil {
			result, err := s.sign(req, factory, s.install)
			if err == nil {
				return result, nil
			}
			if !errors.Is(err, ErrInstallKeyUnavailable) {
				return nil, err
			}
			s.logger.Warn("install key unavailable, falling back to account key",
				zap.String("method", req.Method),
				zap.String("host", req.URL.Host),
				zap.Error(err))
		} else {
			s.logger.Debug("no install signer configured, using account key")
		}

		factory = factory.WithAccountKey()
		result, err := s.sign(req, factory, s.account)
		if err != nil {
			return nil, err
		}
		result.FellBack = true
		return result, nil
	}

	return s.sign(req, factory, s.account)
}

func (s *DefaultRequestSigner) sign(req *http.Request, factory *httpsig.Factory, key KeySigner) (*Result, error) {
	if key == nil {
		return nil, fmt.Errorf("%s signature: %w", factory.Label(), ErrNoSigner)
	}

	sc, err := httpsig.NewSigningContextFromRequest(req, s.tokenHeader)
	if err != nil {
		return nil, fmt.Errorf("failed to create signing context: %w", err)
	}

	params, err := factory.Build(sc)
	if err != nil {
		return nil, fmt.Errorf("failed to build signature parameters: %w", err)
	}

	base, err := sc.CreateSignatureBase(params)
	if err != nil {
		return nil, fmt.Errorf("failed to build signature base: %w", err)
	}

	signature, err := key.Sign([]byte(base))
	if err != nil {
		return nil, fmt.Errorf("failed to sign: %w", err)
	}

	label := factory.Label()
	signatureInput, err := httpsig.SignatureInputHeader(label, params)
	if err != nil {
		return nil, err
	}
	signatureHeader, err := httpsig.SignatureHeader(label, signature)
	if err != nil {
		return nil, err
	}

	req.Header.Set(HeaderSignatureInput, signatureInput)
	req.Header.Set(HeaderSignature, signatureHeader)

	s.logger.Debug("signed request",
		zap.String("label", label),
		zap.String("method", req.Method),
		zap.String("host", req.URL.Host),
		zap.Strings("components", params.ComponentNames()))

	return &Result{
		Label:     label,
		Params:    params,
		Base:      base,
		Signature: signature,
	}, nil
}
