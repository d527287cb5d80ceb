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
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"strings"

	"github.com/sage-x-project/sage-msgsig-go/pkg/sfv"
)

// DigestAlgorithm is a Content-Digest algorithm identifier.
type DigestAlgorithm string

const (
	DigestSHA256 DigestAlgorithm = "sha-256"
	DigestSHA512 DigestAlgorithm = "sha-512"
)

var digestHashes = map[DigestAlgorithm]func() hash.Hash{
	DigestSHA256: sha256.New,
	DigestSHA512: sha512.New,
}

// ParseDigestAlgorithm accepts "sha-256" and "sha-512", case-insensitively.
func ParseDigestAlgorithm(name string) (DigestAlgorithm, error) {
	alg := DigestAlgorithm(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := digestHashes[alg]; !ok {
		return "", configError(ErrUnsupportedDigest, fmt.Sprintf("unsupported digest algorithm %q", name))
	}
	return alg, nil
}

// FormatContentDigest returns the Content-Digest value "alg=:base64:" for body.
func FormatContentDigest(alg DigestAlgorithm, body []byte) (string, error) {
	newHash, ok := digestHashes[alg]
	if !ok {
		return "", configError(ErrUnsupportedDigest, fmt.Sprintf("unsupported digest algorithm %q", alg))
	}
	h := newHash()
	h.Write(body)

	d := sfv.NewDictionary()
	if err := d.Set(string(alg), sfv.MustItem(sfv.ByteSequence(h.Sum(nil)), nil)); err != nil {
		return "", err
	}
	return d.Serialize(), nil
}

// EnsureContentDigest hashes the body and installs the Content-Digest header
// on the context and the live request. ok is false when no body is
// available and required is false; with required set, a missing body is an
// error.
func (c *SigningContext) EnsureContentDigest(alg DigestAlgorithm, required bool) (value string, ok bool, err error) {
	if !c.HasBody() {
		if required {
			return "", false, resolutionError(ErrBodyRequired, "content digest required but request body is unavailable")
		}
		return "", false, nil
	}
	value, err = FormatContentDigest(alg, c.body)
	if err != nil {
		return "", false, err
	}
	if err := c.SetHeader("Content-Digest", value); err != nil {
		return "", false, err
	}
	return value, true, nil
}
