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
	"bytes"
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"fmt"
	"net/http"
	"testing"
)

func benchSigner(b *testing.B) *DefaultRequestSigner {
	b.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		b.Fatal(err)
	}
	install, err := NewECDSASigner(key)
	if err != nil {
		b.Fatal(err)
	}
	account, err := NewHMACSigner([]byte("bench-secret"))
	if err != nil {
		b.Fatal(err)
	}
	s, err := NewDefaultRequestSigner(WithInstallSigner(install), WithAccountSigner(account))
	if err != nil {
		b.Fatal(err)
	}
	return s
}

// BenchmarkSignRequest benchmarks signing with the install key
func BenchmarkSignRequest(b *testing.B) {
	s := benchSigner(b)
	ctx := context.Background()
	body := []byte(`{"task":"benchmark"}`)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		req, _ := http.NewRequest("POST", "https://api.example.com/task", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		if err := s.SignRequest(ctx, req); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkSignRequest_BodySizes benchmarks digest cost across body sizes
func BenchmarkSignRequest_BodySizes(b *testing.B) {
	s := benchSigner(b)
	ctx := context.Background()

	for _, size := range []int{0, 1024, 64 * 1024} {
		body := bytes.Repeat([]byte("x"), size)
		b.Run(fmt.Sprintf("%dB", size), func(b *testing.B) {
			b.SetBytes(int64(size))
			for i := 0; i < b.N; i++ {
				req, _ := http.NewRequest("POST", "https://api.example.com/task", bytes.NewReader(body))
				if err := s.SignRequest(ctx, req); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkHMACSigner benchmarks the account key alone
func BenchmarkHMACSigner(b *testing.B) {
	s, _ := NewHMACSigner([]byte("bench-secret"))
	base := bytes.Repeat([]byte("a"), 256)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = s.Sign(base)
	}
}
