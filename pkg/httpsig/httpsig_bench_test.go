package httpsig

import (
	"net/http"
	"net/url"
	"testing"
)

func benchContext(b *testing.B) *SigningContext {
	b.Helper()
	u, err := url.Parse("https://api.example.com/v1/resource?b=2&a=1&b=1")
	if err != nil {
		b.Fatal(err)
	}
	headers := http.Header{}
	headers.Set("Approov-Token", "Bearer token")
	headers.Set("Content-Type", "application/json")
	headers.Set("Authorization", "Bearer abc")
	return NewSigningContext("POST", u, headers, []byte(helloBody), DefaultTokenHeader, nil)
}

func BenchmarkFactoryBuild(b *testing.B) {
	factory := DefaultFactory()
	ctx := benchContext(b)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := factory.Build(ctx); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCreateSignatureBase(b *testing.B) {
	factory := DefaultFactory()
	ctx := benchContext(b)
	params, err := factory.Build(ctx)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := ctx.CreateSignatureBase(params); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFormatContentDigest(b *testing.B) {
	body := make([]byte, 4096)
	b.SetBytes(int64(len(body)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := FormatContentDigest(DigestSHA256, body); err != nil {
			b.Fatal(err)
		}
	}
}
