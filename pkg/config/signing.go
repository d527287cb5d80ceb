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

package config

import (
	"crypto/ecdsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"

	"github.com/sage-x-project/sage-msgsig-go/pkg/httpsig"
	"github.com/sage-x-project/sage-msgsig-go/pkg/signer"
)

// Factory builds the httpsig.Factory described by c. Invalid components,
// headers or digest algorithms are reported here.
func (c SigningConfig) Factory() (*httpsig.Factory, error) {
	base := httpsig.NewSignatureParameters()
	for _, name := range c.Components {
		if err := base.AddComponentIdentifier(name); err != nil {
			return nil, fmt.Errorf("invalid signing.components entry %q: %w", name, err)
		}
	}
	if c.KeyID != "" {
		if err := base.SetKeyID(c.KeyID); err != nil {
			return nil, fmt.Errorf("invalid signing.keyid: %w", err)
		}
	}
	if c.Tag != "" {
		if err := base.SetTag(c.Tag); err != nil {
			return nil, fmt.Errorf("invalid signing.tag: %w", err)
		}
	}

	return httpsig.NewFactory(
		httpsig.WithBaseParameters(base),
		httpsig.WithInstallKey(c.UseInstallKey),
		httpsig.WithCreated(c.AddCreated),
		httpsig.WithExpiresLifetime(c.ExpiresLifetimeSeconds),
		httpsig.WithTokenHeader(c.AddTokenHeader),
		httpsig.WithOptionalHeaders(c.OptionalHeaders...),
		httpsig.WithBodyDigest(c.Digest.Algorithm, c.Digest.Required),
		httpsig.WithNonce(c.AddNonce),
	)
}

// SignerOptions turns the configured keys into signer options. Missing
// keys are skipped; at least one must be configured for
// signer.NewDefaultRequestSigner to succeed.
func (k KeysConfig) SignerOptions() ([]signer.Option, error) {
	var opts []signer.Option

	if k.InstallKeyFile != "" {
		key, err := LoadECPrivateKey(k.InstallKeyFile)
		if err != nil {
			return nil, err
		}
		install, err := signer.NewECDSASigner(key)
		if err != nil {
			return nil, fmt.Errorf("install key: %w", err)
		}
		opts = append(opts, signer.WithInstallSigner(install))
	}

	if k.AccountSecret != "" {
		account, err := signer.NewHMACSigner([]byte(k.AccountSecret))
		if err != nil {
			return nil, fmt.Errorf("account secret: %w", err)
		}
		opts = append(opts, signer.WithAccountSigner(account))
	}

	return opts, nil
}

// LoadECPrivateKey reads a PEM "EC PRIVATE KEY" (SEC 1) or "PRIVATE KEY"
// (PKCS #8) file.
func LoadECPrivateKey(path string) (*ecdsa.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read install key: %w", err)
	}
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("install key %s: no PEM block", path)
	}

	switch block.Type {
	case "EC PRIVATE KEY":
		key, err := x509.ParseECPrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("parse install key: %w", err)
		}
		return key, nil
	case "PRIVATE KEY":
		parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("parse install key: %w", err)
		}
		key, ok := parsed.(*ecdsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("install key %s is not an ECDSA key", path)
		}
		return key, nil
	default:
		return nil, fmt.Errorf("install key %s: unsupported PEM type %q", path, block.Type)
	}
}
