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

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isLCAlpha(c byte) bool { return c >= 'a' && c <= 'z' }

func isAlpha(c byte) bool { return isLCAlpha(c) || (c >= 'A' && c <= 'Z') }

// isTChar reports whether c is an RFC 9110 token character.
func isTChar(c byte) bool {
	if isAlpha(c) || isDigit(c) {
		return true
	}
	switch c {
	case '!', '#', '$', '%', '&', '\'', '*', '+', '-', '.', '^', '_', '`', '|', '~':
		return true
	}
	return false
}

// ValidateKey checks a parameter or dictionary key.
func ValidateKey(key string) error {
	if key == "" {
		return formatError("key", key, -1, "empty key")
	}
	if c := key[0]; !isLCAlpha(c) && c != '*' {
		return formatError("key", key, 0, "key must start with lowercase ALPHA or '*'")
	}
	for i := 1; i < len(key); i++ {
		c := key[i]
		if isLCAlpha(c) || isDigit(c) {
			continue
		}
		switch c {
		case '_', '-', '.', '*':
			continue
		}
		return formatError("key", key, i, "character not allowed in key")
	}
	return nil
}
