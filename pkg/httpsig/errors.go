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

import "errors"

// Kind groups errors for programmatic handling. Callers should branch on
// Kind or the sentinel errors rather than on message text.
type Kind string

const (
	// KindConfiguration errors come from building a Factory.
	KindConfiguration Kind = "Configuration"
	// KindResolution errors come from building a signature base or digest.
	KindResolution Kind = "Resolution"
)

var (
	ErrUnsupportedDigest       = errors.New("unsupported digest algorithm")
	ErrInvalidHeaderName       = errors.New("invalid header name")
	ErrInvalidOption           = errors.New("invalid factory option")
	ErrUnknownDerivedComponent = errors.New("unknown derived component")
	ErrMissingComponent        = errors.New("missing component value")
	ErrInvalidComponentParam   = errors.New("invalid component parameter")
	ErrBodyRequired            = errors.New("body required for content digest")
)

// Error is the structured error returned by this package.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func configError(cause error, msg string) error {
	return &Error{Kind: KindConfiguration, Message: msg, Err: cause}
}

func resolutionError(cause error, msg string) error {
	return &Error{Kind: KindResolution, Message: msg, Err: cause}
}

// IsKind reports whether err is (or wraps) an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}
