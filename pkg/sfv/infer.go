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
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Infer coerces a Go value into a BareItem. The order of the checks is
// fixed:
//
//  1. BareItem values are used as they are.
//  2. bool becomes a Boolean.
//  3. Go integer types become an Integer.
//  4. float32/float64 become a Decimal (rounded, ties to even).
//     json.Number text containing '.' is parsed as a Decimal literal and
//     falls back to a String when that parse fails; other json.Number text
//     is an Integer.
//  5. []byte becomes a Byte Sequence.
//  6. time.Time becomes a Date.
//  7. string becomes a String.
//
// Step 4 is the only place where a failed construction is retried as
// another type.
func Infer(v any) (BareItem, error) {
	switch x := v.(type) {
	case BareItem:
		if !x.IsValid() {
			return BareItem{}, formatError("bare item", "", -1, "uninitialized value")
		}
		return x, nil
	case bool:
		return Boolean(x), nil
	case int:
		return Integer(int64(x))
	case int8:
		return Integer(int64(x))
	case int16:
		return Integer(int64(x))
	case int32:
		return Integer(int64(x))
	case int64:
		return Integer(x)
	case uint:
		return inferUnsigned(uint64(x))
	case uint8:
		return Integer(int64(x))
	case uint16:
		return Integer(int64(x))
	case uint32:
		return Integer(int64(x))
	case uint64:
		return inferUnsigned(x)
	case float32:
		return DecimalFromFloat(float64(x))
	case float64:
		return DecimalFromFloat(x)
	case json.Number:
		return inferNumberLiteral(string(x))
	case []byte:
		return ByteSequence(x), nil
	case time.Time:
		return DateFromTime(x)
	case string:
		return String(x)
	default:
		return BareItem{}, formatError("bare item", fmt.Sprintf("%v", v), -1, fmt.Sprintf("unsupported Go type %T", v))
	}
}

func inferUnsigned(u uint64) (BareItem, error) {
	if u > math.MaxInt64 {
		return BareItem{}, formatError("integer", strconv.FormatUint(u, 10), -1, "magnitude exceeds 999999999999999")
	}
	return Integer(int64(u))
}

func inferNumberLiteral(text string) (BareItem, error) {
	if strings.Contains(text, ".") {
		item, err := ParseDecimal(text)
		if err == nil {
			return item, nil
		}
		return String(text)
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return BareItem{}, formatError("integer", text, -1, "not an integer literal")
	}
	return Integer(n)
}
