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

// Command sign-request prints the signature base and signature headers for
// a request described on the command line.
//
//	sign-request -url https://api.example.com/v1/resource -method POST \
//	    -H 'Content-Type: application/json' -H 'Approov-Token: abc' \
//	    -data '{"hello": "world"}'
package main

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"

	"go.uber.org/zap"

	sagemsgsig "github.com/sage-x-project/sage-msgsig-go"
	"github.com/sage-x-project/sage-msgsig-go/pkg/config"
	"github.com/sage-x-project/sage-msgsig-go/pkg/observability"
	"github.com/sage-x-project/sage-msgsig-go/pkg/signer"
)

type headerFlags []string

func (h *headerFlags) String() string { return strings.Join(*h, ", ") }

func (h *headerFlags) Set(v string) error {
	if !strings.Contains(v, ":") {
		return fmt.Errorf("header %q must be \"Name: value\"", v)
	}
	*h = append(*h, v)
	return nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("sign-request", flag.ContinueOnError)
	var (
		configPath = fs.String("config", "", "path to msgsig.yaml")
		method     = fs.String("method", "GET", "request method")
		target     = fs.String("url", "", "target URI (required)")
		data       = fs.String("data", "", "request body")
		account    = fs.Bool("account", false, "sign with the account key instead of the install key")
		showVer    = fs.Bool("version", false, "print version and exit")
		headers    headerFlags
	)
	fs.Var(&headers, "H", "request header \"Name: value\" (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *showVer {
		info := sagemsgsig.GetVersionInfo()
		fmt.Printf("sage-msgsig-go %s (RFC %s, RFC %s, RFC %s)\n",
			info.MsgSigVersion, info.StructuredFieldsRFC, info.MessageSignaturesRFC, info.DigestFieldsRFC)
		return nil
	}
	if *target == "" {
		fs.Usage()
		return fmt.Errorf("-url is required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	logger, err := observability.SetupLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if *account {
		cfg.Signing.UseInstallKey = false
	}
	factory, err := cfg.Signing.Factory()
	if err != nil {
		return fmt.Errorf("signing policy: %w", err)
	}

	opts, err := cfg.Keys.SignerOptions()
	if err != nil {
		return err
	}
	if len(opts) == 0 {
		// demo mode: sign with a throwaway install key
		key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		if err != nil {
			return fmt.Errorf("generate key: %w", err)
		}
		install, err := signer.NewECDSASigner(key)
		if err != nil {
			return err
		}
		logger.Warn("no keys configured, using an ephemeral install key")
		opts = append(opts, signer.WithInstallSigner(install))
	}
	opts = append(opts,
		signer.WithFactory(factory),
		signer.WithTokenHeader(cfg.Signing.TokenHeader),
		signer.WithLogger(logger),
	)
	s, err := signer.NewDefaultRequestSigner(opts...)
	if err != nil {
		return err
	}

	var body *bytes.Reader
	if *data != "" {
		body = bytes.NewReader([]byte(*data))
	}
	req, err := newRequest(*method, *target, body)
	if err != nil {
		return err
	}
	for _, h := range headers {
		name, value, _ := strings.Cut(h, ":")
		req.Header.Add(strings.TrimSpace(name), strings.TrimSpace(value))
	}

	result, err := s.SignRequestWithFactory(context.Background(), req, factory)
	if err != nil {
		return err
	}
	logger.Info("request signed",
		zap.String("label", result.Label),
		zap.Bool("fell_back", result.FellBack))

	fmt.Println("Signature base:")
	fmt.Println(result.Base)
	fmt.Println()
	for _, name := range []string{"Content-Digest", signer.HeaderSignatureInput, signer.HeaderSignature} {
		if v := req.Header.Get(name); v != "" {
			fmt.Printf("%s: %s\n", name, v)
		}
	}
	return nil
}

func newRequest(method, target string, body *bytes.Reader) (*http.Request, error) {
	if body == nil {
		return http.NewRequest(method, target, nil)
	}
	return http.NewRequest(method, target, body)
}
