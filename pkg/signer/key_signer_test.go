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

package signer

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHMACSigner(t *testing.T) {
	// RFC 4231 test case 2
	s, err := NewHMACSigner([]byte("Jefe"))
	require.NoError(t, err)

	sig, err := s.Sign([]byte("what do ya want for nothing?"))
	require.NoError(t, err)
	assert.Equal(t, "5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843", hex.EncodeToString(sig))
	assert.True(t, s.Verify([]byte("what do ya want for nothing?"), sig))
	assert.False(t, s.Verify([]byte("what do ya want for something?"), sig))
	assert.Equal(t, ModeAccount, s.Mode())
}

func TestNewHMACSigner_EmptySecret(t *testing.T) {
	_, err := NewHMACSigner(nil)
	assert.Error(t, err)
}

func TestECDSASigner(t *testing.T) {
	// Setup
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	s, err := NewECDSASigner(key)
	require.NoError(t, err)

	base := []byte(`"@method": GET` + "\n" + `"@signature-params": ("@method")`)

	// Execute
	sig, err := s.Sign(base)

	// Assert
	require.NoError(t, err)
	require.Len(t, sig, 64)
	digest := sha256.Sum256(base)
	r := new(big.Int).SetBytes(sig[:32])
	sv := new(big.Int).SetBytes(sig[32:])
	assert.True(t, ecdsa.Verify(s.PublicKey(), digest[:], r, sv))
	assert.Equal(t, ModeInstall, s.Mode())
}

func TestNewECDSASigner_Errors(t *testing.T) {
	_, err := NewECDSASigner(nil)
	assert.Error(t, err)

	key, err := ecdsa.GenerateKey(elliptic.P384(), rand.Reader)
	require.NoError(t, err)
	_, err = NewECDSASigner(key)
	assert.Error(t, err)
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "install", ModeInstall.String())
	assert.Equal(t, "account", ModeAccount.String())
	assert.Equal(t, "Mode(7)", Mode(7).String())
}
