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
	"bytes"
	"encoding/base32"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Header types used by conformance fixtures.
const (
	HeaderTypeItem       = "item"
	HeaderTypeList       = "list"
	HeaderTypeDictionary = "dictionary"
)

// Fixture is one conformance test record.
type Fixture struct {
	Name       string          `json:"name"`
	HeaderType string          `json:"header_type"`
	Expected   json.RawMessage `json:"expected,omitempty"`
	MustFail   bool            `json:"must_fail,omitempty"`
	CanFail    bool            `json:"can_fail,omitempty"`
	Raw        []string        `json:"raw,omitempty"`
	Canonical  []string        `json:"canonical,omitempty"`
}

// CanonicalValue returns the expected serialization: the canonical field
// lines joined the way HTTP combines list-based field lines.
func (f Fixture) CanonicalValue() string {
	return strings.Join(f.Canonical, ", ")
}

// LoadFixtures decodes a JSON array of fixtures.
func LoadFixtures(r io.Reader) ([]Fixture, error) {
	var fixtures []Fixture
	if err := json.NewDecoder(r).Decode(&fixtures); err != nil {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}
	return fixtures, nil
}

// FromJSON rebuilds the container described by a fixture's expected value.
//
// Plain JSON strings, integers and booleans map to String, Integer and
// Boolean. JSON numbers with a fraction or exponent map to Decimal. Objects
// of the form {"__type": T, "value": V} select token, binary (base32),
// date or displaystring.
func FromJSON(headerType string, expected json.RawMessage) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(expected))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode expected value: %w", err)
	}
	switch headerType {
	case HeaderTypeItem:
		return itemFromJSON(raw)
	case HeaderTypeList:
		return listFromJSON(raw)
	case HeaderTypeDictionary:
		return dictionaryFromJSON(raw)
	default:
		return nil, fmt.Errorf("unknown header type %q", headerType)
	}
}

func itemFromJSON(raw any) (Item, error) {
	pair, ok := raw.([]any)
	if !ok || len(pair) != 2 {
		return Item{}, fmt.Errorf("item must be [bare, params], got %v", raw)
	}
	bare, err := bareFromJSON(pair[0])
	if err != nil {
		return Item{}, err
	}
	params, err := paramsFromJSON(pair[1])
	if err != nil {
		return Item{}, err
	}
	return NewItem(bare, params)
}

func memberFromJSON(raw any) (Member, error) {
	pair, ok := raw.([]any)
	if !ok || len(pair) != 2 {
		return nil, fmt.Errorf("member must be [value, params], got %v", raw)
	}
	inner, isList := pair[0].([]any)
	if !isList {
		return itemFromJSON(raw)
	}
	items := make([]Item, 0, len(inner))
	for _, rawItem := range inner {
		it, err := itemFromJSON(rawItem)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	params, err := paramsFromJSON(pair[1])
	if err != nil {
		return nil, err
	}
	return NewInnerList(items, params), nil
}

func listFromJSON(raw any) (List, error) {
	members, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("list must be an array, got %v", raw)
	}
	out := make(List, 0, len(members))
	for _, rawMember := range members {
		m, err := memberFromJSON(rawMember)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func dictionaryFromJSON(raw any) (*Dictionary, error) {
	entries, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("dictionary must be an array, got %v", raw)
	}
	d := NewDictionary()
	for _, rawEntry := range entries {
		entry, ok := rawEntry.([]any)
		if !ok || len(entry) != 2 {
			return nil, fmt.Errorf("dictionary entry must be [key, member], got %v", rawEntry)
		}
		key, ok := entry[0].(string)
		if !ok {
			return nil, fmt.Errorf("dictionary key must be a string, got %v", entry[0])
		}
		m, err := memberFromJSON(entry[1])
		if err != nil {
			return nil, err
		}
		if err := d.Set(key, m); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func paramsFromJSON(raw any) (*Params, error) {
	entries, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("parameters must be an array, got %v", raw)
	}
	p := NewParams()
	for _, rawEntry := range entries {
		entry, ok := rawEntry.([]any)
		if !ok || len(entry) != 2 {
			return nil, fmt.Errorf("parameter must be [key, value], got %v", rawEntry)
		}
		key, ok := entry[0].(string)
		if !ok {
			return nil, fmt.Errorf("parameter key must be a string, got %v", entry[0])
		}
		bare, err := bareFromJSON(entry[1])
		if err != nil {
			return nil, err
		}
		if err := p.Set(key, bare); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func bareFromJSON(raw any) (BareItem, error) {
	switch v := raw.(type) {
	case bool:
		return Boolean(v), nil
	case string:
		return String(v)
	case json.Number:
		text := v.String()
		if strings.ContainsAny(text, ".eE") {
			f, err := v.Float64()
			if err != nil {
				return BareItem{}, formatError("decimal", text, -1, err.Error())
			}
			return DecimalFromFloat(f)
		}
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return BareItem{}, formatError("integer", text, -1, "does not fit in 64 bits")
		}
		return Integer(n)
	case map[string]any:
		return typedBareFromJSON(v)
	default:
		return BareItem{}, fmt.Errorf("unsupported bare item %v", raw)
	}
}

func typedBareFromJSON(obj map[string]any) (BareItem, error) {
	typ, _ := obj["__type"].(string)
	switch typ {
	case "token":
		s, ok := obj["value"].(string)
		if !ok {
			return BareItem{}, fmt.Errorf("token value must be a string")
		}
		return Token(s)
	case "binary":
		s, ok := obj["value"].(string)
		if !ok {
			return BareItem{}, fmt.Errorf("binary value must be a string")
		}
		b, err := base32.StdEncoding.DecodeString(s)
		if err != nil {
			return BareItem{}, fmt.Errorf("decode base32: %w", err)
		}
		return ByteSequence(b), nil
	case "date":
		n, ok := obj["value"].(json.Number)
		if !ok {
			return BareItem{}, fmt.Errorf("date value must be a number")
		}
		seconds, err := n.Int64()
		if err != nil {
			return BareItem{}, formatError("date", n.String(), -1, "not an integer")
		}
		return Date(seconds)
	case "displaystring":
		s, ok := obj["value"].(string)
		if !ok {
			return BareItem{}, fmt.Errorf("displaystring value must be a string")
		}
		return DisplayString(s)
	default:
		return BareItem{}, fmt.Errorf("unknown __type %q", typ)
	}
}
