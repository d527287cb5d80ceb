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

package sfv

import (
	"errors"
	"fmt"
)

// ErrFormat is matched by every error returned while constructing a value.
// Use errors.As with *FormatError to get the details.
var ErrFormat = errors.New("sfv: format error")

// FormatError reports a value that violates the structured field grammar.
//
// Position is the byte offset of the offending character inside Value,
// or -1 when the problem is not tied to a single character (range errors,
// empty input, unsupported Go types).
type FormatError struct {
	Type     string
	Value    string
	Position int
	Reason   string
}

func (e *FormatError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Position >= 0 {
		return fmt.Sprintf("sfv: invalid %s %q at position %d: %s", e.Type, e.Value, e.Position, e.Reason)
	}
	return fmt.Sprintf("sfv: invalid %s %q: %s", e.Type, e.Value, e.Reason)
}

// Is lets errors.Is(err, ErrFormat) succeed for any *FormatError.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

func formatError(typ, value string, pos int, reason string) error {
	return &FormatError{Type: typ, Value: value, Position: pos, Reason: reason}
}
