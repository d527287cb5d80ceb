package signer

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
)

// Mode is the key a KeySigner signs with.
type Mode int

const (
	// ModeInstall signs with the per-install device key
	ModeInstall Mode = iota
	// ModeAccount signs with the shared account secret
	ModeAccount
)

func (m Mode) String() string {
	switch m {
	case ModeInstall:
		return "install"
	case ModeAccount:
		return "account"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// KeySigner computes a signature over a signature base.
type KeySigner interface {
	// Sign returns the signature over base
	Sign(base []byte) ([]byte, error)

	// Mode reports which key the signer uses
	Mode() Mode
}

// HMACSigner signs with HMAC-SHA256 over a shared account secret.
type HMACSigner struct {
	secret []byte
}

// NewHMACSigner creates an account-mode signer.
func NewHMACSigner(secret []byte) (*HMACSigner, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("hmac secret cannot be empty")
	}
	return &HMACSigner{secret: append([]byte(nil), secret...)}, nil
}

// Sign returns HMAC-SHA256(secret, base).
func (s *HMACSigner) Sign(base []byte) ([]byte, error) {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write(base)
	return mac.Sum(nil), nil
}

// Verify reports whether sig is the HMAC of base.
func (s *HMACSigner) Verify(base, sig []byte) bool {
	expected, _ := s.Sign(base)
	return hmac.Equal(expected, sig)
}

// Mode returns ModeAccount.
func (s *HMACSigner) Mode() Mode { return ModeAccount }

// ECDSASigner signs with an ECDSA P-256 key and SHA-256.
type ECDSASigner struct {
	key *ecdsa.PrivateKey
}

// NewECDSASigner creates an install-mode signer. Only P-256 keys are accepted.
func NewECDSASigner(key *ecdsa.PrivateKey) (*ECDSASigner, error) {
	if key == nil {
		return nil, fmt.Errorf("private key cannot be nil")
	}
	if key.Curve != elliptic.P256() {
		return nil, fmt.Errorf("unsupported curve %s, want P-256", key.Curve.Params().Name)
	}
	return &ECDSASigner{key: key}, nil
}

// Sign returns the 64-byte r||s signature over SHA-256(base).
func (s *ECDSASigner) Sign(base []byte) ([]byte, error) {
	digest := sha256.Sum256(base)
	r, sv, err := ecdsa.Sign(rand.Reader, s.key, digest[:])
	if err != nil {
		return nil, fmt.Errorf("failed to sign: %w", err)
	}
	out := make([]byte, 64)
	r.FillBytes(out[:32])
	sv.FillBytes(out[32:])
	return out, nil
}

// PublicKey returns the verification key.
func (s *ECDSASigner) PublicKey() *ecdsa.PublicKey { return &s.key.PublicKey }

// Mode returns ModeInstall.
func (s *ECDSASigner) Mode() Mode { return ModeInstall }
