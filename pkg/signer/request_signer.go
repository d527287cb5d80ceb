package signer

import (
	"context"
	"errors"
	"net/http"

	"github.com/sage-x-project/sage-msgsig-go/pkg/httpsig"
)

// Header names written by a RequestSigner.
const (
	HeaderSignature      = "Signature"
	HeaderSignatureInput = "Signature-Input"
)

var (
	// ErrInstallKeyUnavailable is returned by an install-mode KeySigner when
	// the device key cannot be used. RequestSigner then retries with the
	// account key.
	ErrInstallKeyUnavailable = errors.New("install key unavailable")

	// ErrNoSigner means no KeySigner is configured for the selected mode.
	ErrNoSigner = errors.New("no key signer configured")
)

// RequestSigner signs outgoing HTTP requests with RFC 9421 message signatures
type RequestSigner interface {
	// SignRequest signs req with the signer's default factory and sets the
	// Signature and Signature-Input headers
	SignRequest(ctx context.Context, req *http.Request) error

	// SignRequestWithFactory signs req using the policy in factory
	SignRequestWithFactory(ctx context.Context, req *http.Request, factory *httpsig.Factory) (*Result, error)
}

// Result describes one signature attached to a request.
type Result struct {
	// Label is the signature label ("install" or "account")
	Label string

	// Params are the signature parameters that were signed
	Params *httpsig.SignatureParameters

	// Base is the exact signature base that was signed
	Base string

	// Signature is the raw signature value
	Signature []byte

	// FellBack is true when the install key was unavailable and the
	// account key signed instead
	FellBack bool
}
