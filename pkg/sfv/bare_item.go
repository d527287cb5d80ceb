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
	"encoding/base64"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Kind identifies which representation a BareItem carries.
type Kind int

const (
	KindInteger Kind = iota + 1
	KindDecimal
	KindString
	KindToken
	KindByteSequence
	KindBoolean
	KindDate
	KindDisplayString
)

var kindNames = map[Kind]string{
	KindInteger:       "integer",
	KindDecimal:       "decimal",
	KindString:        "string",
	KindToken:         "token",
	KindByteSequence:  "byte sequence",
	KindBoolean:       "boolean",
	KindDate:          "date",
	KindDisplayString: "display string",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown(" + strconv.Itoa(int(k)) + ")"
}

const (
	// MaxInteger is the largest magnitude an Integer (or a Decimal scaled
	// by 1000) may hold.
	MaxInteger = 999_999_999_999_999

	// MinDate and MaxDate bound Date values to the years 0001 through 9999.
	MinDate = -62_135_596_800
	MaxDate = 253_402_300_799

	decimalScale = 1000
)

// BareItem is one scalar structured field value. The zero value is not a
// valid item; use one of the constructors, which validate eagerly so that a
// BareItem that exists can always be serialized.
type BareItem struct {
	kind Kind
	num  int64  // integer, decimal (scaled by 1000), date, boolean (0/1)
	str  string // string, token, display string
	raw  []byte // byte sequence
}

// Integer returns an Integer bare item.
func Integer(v int64) (BareItem, error) {
	if v > MaxInteger || v < -MaxInteger {
		return BareItem{}, formatError("integer", strconv.FormatInt(v, 10), -1, "magnitude exceeds 999999999999999")
	}
	return BareItem{kind: KindInteger, num: v}, nil
}

// DecimalFromMilli returns a Decimal whose value is milli/1000.
func DecimalFromMilli(milli int64) (BareItem, error) {
	if milli > MaxInteger || milli < -MaxInteger {
		return BareItem{}, formatError("decimal", formatMilli(milli), -1, "magnitude exceeds 999999999999.999")
	}
	return BareItem{kind: KindDecimal, num: milli}, nil
}

// DecimalFromFloat rounds f to three fractional digits, ties to even.
func DecimalFromFloat(f float64) (BareItem, error) {
	text := strconv.FormatFloat(f, 'g', -1, 64)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return BareItem{}, formatError("decimal", text, -1, "not a finite number")
	}
	scaled := math.RoundToEven(f * decimalScale)
	if math.Abs(scaled) > MaxInteger {
		return BareItem{}, formatError("decimal", text, -1, "magnitude exceeds 999999999999.999")
	}
	return BareItem{kind: KindDecimal, num: int64(scaled)}, nil
}

// ParseDecimal parses text of the exact shape -?DIGITS.DIGITS with one to
// three fractional digits. Any other shape is rejected.
func ParseDecimal(text string) (BareItem, error) {
	s := text
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	dot := strings.IndexByte(s, '.')
	if dot < 0 {
		return BareItem{}, formatError("decimal", text, -1, "missing decimal point")
	}
	intPart, fracPart := s[:dot], s[dot+1:]
	offset := len(text) - len(s)
	if len(intPart) == 0 {
		return BareItem{}, formatError("decimal", text, offset, "missing integer digits")
	}
	if len(intPart) > 12 {
		return BareItem{}, formatError("decimal", text, offset+12, "more than 12 integer digits")
	}
	if len(fracPart) == 0 || len(fracPart) > 3 {
		return BareItem{}, formatError("decimal", text, offset+dot+1, "fraction must have 1 to 3 digits")
	}
	var milli int64
	for i := 0; i < len(intPart); i++ {
		c := intPart[i]
		if !isDigit(c) {
			return BareItem{}, formatError("decimal", text, offset+i, "unexpected character")
		}
		milli = milli*10 + int64(c-'0')
	}
	frac := int64(0)
	for i := 0; i < len(fracPart); i++ {
		c := fracPart[i]
		if !isDigit(c) {
			return BareItem{}, formatError("decimal", text, offset+dot+1+i, "unexpected character")
		}
		frac = frac*10 + int64(c-'0')
	}
	for i := len(fracPart); i < 3; i++ {
		frac *= 10
	}
	milli = milli*decimalScale + frac
	if neg {
		milli = -milli
	}
	return DecimalFromMilli(milli)
}

// String returns a String bare item. Only printable ASCII is allowed.
func String(s string) (BareItem, error) {
	for i := 0; i < len(s); i++ {
		if c := s[i]; c < 0x20 || c > 0x7e {
			return BareItem{}, formatError("string", s, i, "character outside printable ASCII")
		}
	}
	return BareItem{kind: KindString, str: s}, nil
}

// Token returns a Token bare item.
func Token(s string) (BareItem, error) {
	if s == "" {
		return BareItem{}, formatError("token", s, -1, "empty token")
	}
	if c := s[0]; !isAlpha(c) && c != '*' {
		return BareItem{}, formatError("token", s, 0, "token must start with ALPHA or '*'")
	}
	for i := 1; i < len(s); i++ {
		if c := s[i]; !isTChar(c) && c != ':' && c != '/' {
			return BareItem{}, formatError("token", s, i, "character not allowed in token")
		}
	}
	return BareItem{kind: KindToken, str: s}, nil
}

// ByteSequence returns a Byte Sequence bare item holding a copy of b.
func ByteSequence(b []byte) BareItem {
	return BareItem{kind: KindByteSequence, raw: append([]byte{}, b...)}
}

// Boolean returns a Boolean bare item.
func Boolean(v bool) BareItem {
	item := BareItem{kind: KindBoolean}
	if v {
		item.num = 1
	}
	return item
}

// Date returns a Date bare item for the given Unix seconds.
func Date(seconds int64) (BareItem, error) {
	if seconds < MinDate || seconds > MaxDate {
		return BareItem{}, formatError("date", strconv.FormatInt(seconds, 10), -1, "outside years 0001 to 9999")
	}
	return BareItem{kind: KindDate, num: seconds}, nil
}

// DateFromTime truncates t to whole seconds.
func DateFromTime(t time.Time) (BareItem, error) {
	return Date(t.Unix())
}

// ParseDate parses the serialized form "@seconds".
func ParseDate(text string) (BareItem, error) {
	if !strings.HasPrefix(text, "@") {
		return BareItem{}, formatError("date", text, 0, "missing '@' prefix")
	}
	digits := text[1:]
	start := 0
	if strings.HasPrefix(digits, "-") {
		start = 1
	}
	if len(digits) == start {
		return BareItem{}, formatError("date", text, len(text), "missing digits")
	}
	for i := start; i < len(digits); i++ {
		if !isDigit(digits[i]) {
			return BareItem{}, formatError("date", text, i+1, "unexpected character")
		}
	}
	if len(digits)-start > 15 {
		return BareItem{}, formatError("date", text, -1, "more than 15 digits")
	}
	seconds, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return BareItem{}, formatError("date", text, -1, err.Error())
	}
	return Date(seconds)
}

// DisplayString returns a Display String bare item. s must be valid UTF-8,
// which also rules out encoded surrogates.
func DisplayString(s string) (BareItem, error) {
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			return BareItem{}, formatError("display string", s, i, "invalid UTF-8 sequence")
		}
		i += size
	}
	return BareItem{kind: KindDisplayString, str: s}, nil
}

// DisplayStringFromRunes builds a Display String from Unicode code points,
// rejecting surrogates and values beyond U+10FFFF.
func DisplayStringFromRunes(runes []rune) (BareItem, error) {
	var sb strings.Builder
	for i, r := range runes {
		if (r >= 0xd800 && r <= 0xdfff) || r > utf8.MaxRune || r < 0 {
			return BareItem{}, formatError("display string", strconv.QuoteToASCII(string(runes)), i, "not a Unicode scalar value")
		}
		sb.WriteRune(r)
	}
	return BareItem{kind: KindDisplayString, str: sb.String()}, nil
}

// Kind reports the active representation.
func (b BareItem) Kind() Kind { return b.kind }

// IsValid reports whether b was produced by a constructor.
func (b BareItem) IsValid() bool { return b.kind != 0 }

// Int returns the value of an Integer or Date, or the scaled value of a Decimal.
func (b BareItem) Int() int64 { return b.num }

// Float returns the numeric value of an Integer, Decimal or Date.
func (b BareItem) Float() float64 {
	if b.kind == KindDecimal {
		return float64(b.num) / decimalScale
	}
	return float64(b.num)
}

// Bool returns the value of a Boolean.
func (b BareItem) Bool() bool { return b.kind == KindBoolean && b.num == 1 }

// Str returns the value of a String, Token or Display String.
func (b BareItem) Str() string { return b.str }

// Bytes returns a copy of a Byte Sequence.
func (b BareItem) Bytes() []byte { return append([]byte(nil), b.raw...) }

// Equal reports whether two bare items have the same kind and value.
func (b BareItem) Equal(o BareItem) bool {
	if b.kind != o.kind || b.num != o.num || b.str != o.str {
		return false
	}
	return string(b.raw) == string(o.raw)
}

// Serialize returns the canonical text form.
func (b BareItem) Serialize() string {
	var sb strings.Builder
	b.writeTo(&sb)
	return sb.String()
}

func (b BareItem) writeTo(sb *strings.Builder) {
	switch b.kind {
	case KindInteger:
		sb.WriteString(strconv.FormatInt(b.num, 10))
	case KindDecimal:
		sb.WriteString(formatMilli(b.num))
	case KindString:
		sb.WriteByte('"')
		for i := 0; i < len(b.str); i++ {
			c := b.str[i]
			if c == '"' || c == '\\' {
				sb.WriteByte('\\')
			}
			sb.WriteByte(c)
		}
		sb.WriteByte('"')
	case KindToken:
		sb.WriteString(b.str)
	case KindByteSequence:
		sb.WriteByte(':')
		sb.WriteString(base64.StdEncoding.EncodeToString(b.raw))
		sb.WriteByte(':')
	case KindBoolean:
		if b.num == 1 {
			sb.WriteString("?1")
		} else {
			sb.WriteString("?0")
		}
	case KindDate:
		sb.WriteByte('@')
		sb.WriteString(strconv.FormatInt(b.num, 10))
	case KindDisplayString:
		const hex = "0123456789abcdef"
		sb.WriteString(`%"`)
		for i := 0; i < len(b.str); i++ {
			c := b.str[i]
			if c == '%' || c == '"' || c < 0x20 || c > 0x7e {
				sb.WriteByte('%')
				sb.WriteByte(hex[c>>4])
				sb.WriteByte(hex[c&0x0f])
				continue
			}
			sb.WriteByte(c)
		}
		sb.WriteByte('"')
	default:
		panic("sfv: serializing uninitialized bare item")
	}
}

func formatMilli(milli int64) string {
	var sb strings.Builder
	abs := milli
	if milli < 0 {
		sb.WriteByte('-')
		abs = -milli
	}
	sb.WriteString(strconv.FormatInt(abs/decimalScale, 10))
	sb.WriteByte('.')
	frac := strconv.FormatInt(abs%decimalScale+decimalScale, 10)[1:]
	frac = strings.TrimRight(frac, "0")
	if frac == "" {
		frac = "0"
	}
	sb.WriteString(frac)
	return sb.String()
}
