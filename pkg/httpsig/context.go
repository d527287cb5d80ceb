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
	"bytes"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/http/httpguts"

	"github.com/sage-x-project/sage-msgsig-go/pkg/sfv"
)

// HeaderMutator pushes header writes made while signing back onto the
// outgoing request.
type HeaderMutator interface {
	SetHeader(name, value string)
	AddHeader(name, value string)
}

// HTTPHeaderMutator writes into an http.Header.
type HTTPHeaderMutator struct {
	Header http.Header
}

func (m HTTPHeaderMutator) SetHeader(name, value string) { m.Header.Set(name, value) }
func (m HTTPHeaderMutator) AddHeader(name, value string) { m.Header.Add(name, value) }

// SigningContext is a per-request snapshot of the data that can be signed.
// It is not safe for concurrent use; one context serves one signing call.
type SigningContext struct {
	method      string
	uri         *url.URL
	headers     map[string][]string
	body        []byte
	tokenHeader string
	mutator     HeaderMutator
}

// NewSigningContext copies method, uri and headers into a new context.
// Header names are lower-cased. A nil body means the body is unavailable;
// an empty non-nil body is an available body of length zero. tokenHeader
// names the header carrying the attestation token and may be empty.
// mutator may be nil when header writes need not reach a live request.
func NewSigningContext(method string, uri *url.URL, headers http.Header, body []byte, tokenHeader string, mutator HeaderMutator) *SigningContext {
	u := *uri
	c := &SigningContext{
		method:      method,
		uri:         &u,
		headers:     make(map[string][]string, len(headers)),
		tokenHeader: strings.ToLower(tokenHeader),
		mutator:     mutator,
	}
	if body != nil {
		c.body = append([]byte{}, body...)
	}
	for name, values := range headers {
		key := strings.ToLower(name)
		c.headers[key] = append(c.headers[key], values...)
	}
	return c
}

// NewSigningContextFromRequest snapshots req. The body is read and
// restored so the request can still be sent; requests without a body get
// an unavailable body. Header writes go to req.Header.
func NewSigningContextFromRequest(req *http.Request, tokenHeader string) (*SigningContext, error) {
	if req == nil {
		return nil, fmt.Errorf("request cannot be nil")
	}
	if req.URL == nil {
		return nil, fmt.Errorf("request URL cannot be nil")
	}

	body, err := snapshotBody(req)
	if err != nil {
		return nil, err
	}

	u := *req.URL
	if u.Host == "" {
		u.Host = req.Host
	}
	return NewSigningContext(req.Method, &u, req.Header, body, tokenHeader, HTTPHeaderMutator{Header: req.Header}), nil
}

func snapshotBody(req *http.Request) ([]byte, error) {
	if req.Body == nil || req.Body == http.NoBody {
		return nil, nil
	}
	if req.GetBody != nil {
		rc, err := req.GetBody()
		if err != nil {
			return nil, fmt.Errorf("failed to get request body: %w", err)
		}
		defer rc.Close()
		body, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("failed to read request body: %w", err)
		}
		return body, nil
	}

	body, err := io.ReadAll(req.Body)
	req.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	req.Body = io.NopCloser(bytes.NewReader(body))
	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(body)), nil
	}
	return body, nil
}

// Method returns the request method as given.
func (c *SigningContext) Method() string { return c.method }

// URI returns a copy of the target URI.
func (c *SigningContext) URI() *url.URL {
	u := *c.uri
	return &u
}

// Body returns the body bytes, or nil if the body is unavailable.
func (c *SigningContext) Body() []byte { return c.body }

// HasBody reports whether body bytes are available.
func (c *SigningContext) HasBody() bool { return c.body != nil }

// TokenHeader returns the lower-cased token header name, or "".
func (c *SigningContext) TokenHeader() string { return c.tokenHeader }

// HeaderValues returns the field line values for name.
func (c *SigningContext) HeaderValues(name string) []string {
	return append([]string(nil), c.headers[strings.ToLower(name)]...)
}

// HasField reports whether at least one value is present for name.
func (c *SigningContext) HasField(name string) bool {
	return len(c.headers[strings.ToLower(name)]) > 0
}

// SetHeader replaces the values of name here and on the live request.
func (c *SigningContext) SetHeader(name, value string) error {
	if err := validateHeader(name, value); err != nil {
		return err
	}
	c.headers[strings.ToLower(name)] = []string{value}
	if c.mutator != nil {
		c.mutator.SetHeader(name, value)
	}
	return nil
}

// AddHeader appends a value for name here and on the live request.
func (c *SigningContext) AddHeader(name, value string) error {
	if err := validateHeader(name, value); err != nil {
		return err
	}
	key := strings.ToLower(name)
	c.headers[key] = append(c.headers[key], value)
	if c.mutator != nil {
		c.mutator.AddHeader(name, value)
	}
	return nil
}

func validateHeader(name, value string) error {
	if !httpguts.ValidHeaderFieldName(name) {
		return resolutionError(ErrInvalidHeaderName, fmt.Sprintf("invalid header name %q", name))
	}
	if !httpguts.ValidHeaderFieldValue(value) {
		return resolutionError(ErrInvalidHeaderName, fmt.Sprintf("invalid value for header %q", name))
	}
	return nil
}

// ComponentValue resolves one component identifier against the request.
// ok is false when the component has no value (absent header, absent or
// repeated query parameter). Unknown derived components are an error.
func (c *SigningContext) ComponentValue(component sfv.Item) (value string, ok bool, err error) {
	bare := component.Bare()
	if bare.Kind() != sfv.KindString {
		return "", false, resolutionError(ErrInvalidComponentParam, fmt.Sprintf("component identifier %s is not a string", component.Serialize()))
	}
	name := bare.Str()
	if !isDerived(name) {
		return c.fieldValue(name)
	}

	switch name {
	case ComponentMethod:
		return strings.ToUpper(c.method), true, nil
	case ComponentAuthority:
		return authority(c.uri), true, nil
	case ComponentScheme:
		return strings.ToLower(c.uri.Scheme), true, nil
	case ComponentTargetURI:
		u := *c.uri
		u.Fragment = ""
		u.RawFragment = ""
		return u.String(), true, nil
	case ComponentPath:
		return c.path(), true, nil
	case ComponentQuery:
		if c.uri.RawQuery == "" && !c.uri.ForceQuery {
			return "", true, nil
		}
		return "?" + c.uri.RawQuery, true, nil
	case ComponentRequestTarget:
		if c.uri.RawQuery == "" {
			return c.path(), true, nil
		}
		return c.path() + "?" + c.uri.RawQuery, true, nil
	case ComponentQueryParam:
		return c.queryParam(component)
	default:
		return "", false, resolutionError(ErrUnknownDerivedComponent, fmt.Sprintf("unknown derived component %q", name))
	}
}

var obsFold = regexp.MustCompile(`[ \t]*\r?\n[ \t]*`)

func (c *SigningContext) fieldValue(name string) (string, bool, error) {
	values, found := c.headers[strings.ToLower(name)]
	if !found || len(values) == 0 {
		return "", false, nil
	}
	cleaned := make([]string, len(values))
	for i, v := range values {
		cleaned[i] = obsFold.ReplaceAllString(strings.Trim(v, " \t"), " ")
	}
	return strings.Join(cleaned, ", "), true, nil
}

func (c *SigningContext) path() string {
	p := c.uri.EscapedPath()
	if p == "" {
		return "/"
	}
	return p
}

func (c *SigningContext) queryParam(component sfv.Item) (string, bool, error) {
	nameItem, found := component.Params().Get("name")
	if !found || nameItem.Kind() != sfv.KindString {
		return "", false, resolutionError(ErrInvalidComponentParam, `"@query-param" requires a string "name" parameter`)
	}
	want := decodeQueryPart(nameItem.Str())

	var match string
	count := 0
	for _, pair := range strings.Split(c.uri.RawQuery, "&") {
		if pair == "" {
			continue
		}
		k, v, _ := strings.Cut(pair, "=")
		if decodeQueryPart(k) != want {
			continue
		}
		count++
		match = decodeQueryPart(v)
	}
	if count != 1 {
		return "", false, nil
	}
	return percentEncode(match), true, nil
}

func decodeQueryPart(s string) string {
	decoded, err := url.QueryUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}

// percentEncode escapes everything except RFC 3986 unreserved characters.
func percentEncode(s string) string {
	const hex = "0123456789ABCDEF"
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') || c == '-' || c == '.' || c == '_' || c == '~' {
			sb.WriteByte(c)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(hex[c>>4])
		sb.WriteByte(hex[c&0x0f])
	}
	return sb.String()
}

var defaultPorts = map[string]string{
	"http":  "80",
	"https": "443",
	"ws":    "80",
	"wss":   "443",
}

func authority(u *url.URL) string {
	host := strings.ToLower(u.Hostname())
	port := u.Port()
	if strings.TrimLeft(port, "0") == "" || defaultPorts[strings.ToLower(u.Scheme)] == port {
		if strings.Contains(host, ":") {
			return "[" + host + "]"
		}
		return host
	}
	return net.JoinHostPort(host, port)
}
