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
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Param is one key/value pair used to build a Params in a fixed order.
// Value may be a BareItem or any Go value accepted by Infer.
type Param struct {
	Key   string
	Value any
}

// Params is an insertion-ordered parameter set. A nil *Params behaves as
// an empty set for reads and serialization.
type Params struct {
	m *orderedmap.OrderedMap[string, BareItem]
}

// NewParams returns an empty parameter set.
func NewParams() *Params {
	return &Params{m: orderedmap.New[string, BareItem]()}
}

// NewParamsFrom builds a parameter set from ordered pairs. Every key is
// validated and every value coerced with Infer before anything is stored;
// the first failure aborts construction of the whole set.
func NewParamsFrom(pairs ...Param) (*Params, error) {
	p := NewParams()
	for _, pair := range pairs {
		if err := ValidateKey(pair.Key); err != nil {
			return nil, err
		}
		item, err := Infer(pair.Value)
		if err != nil {
			return nil, err
		}
		p.m.Set(pair.Key, item)
	}
	return p, nil
}

// MustParams is NewParamsFrom for literals known to be valid.
func MustParams(pairs ...Param) *Params {
	p, err := NewParamsFrom(pairs...)
	if err != nil {
		panic(err)
	}
	return p
}

// Set stores value under key. Replacing an existing key keeps its position.
func (p *Params) Set(key string, value BareItem) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if !value.IsValid() {
		return formatError("parameter", key, -1, "uninitialized value")
	}
	p.m.Set(key, value)
	return nil
}

// Get returns the value stored under key.
func (p *Params) Get(key string) (BareItem, bool) {
	if p == nil {
		return BareItem{}, false
	}
	return p.m.Get(key)
}

// Delete removes key and reports whether it was present.
func (p *Params) Delete(key string) bool {
	if p == nil {
		return false
	}
	_, ok := p.m.Delete(key)
	return ok
}

// Len returns the number of parameters.
func (p *Params) Len() int {
	if p == nil {
		return 0
	}
	return p.m.Len()
}

// Keys returns the keys in insertion order.
func (p *Params) Keys() []string {
	if p == nil {
		return nil
	}
	keys := make([]string, 0, p.m.Len())
	for pair := p.m.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Clone returns an independent copy that preserves order.
func (p *Params) Clone() *Params {
	out := NewParams()
	if p == nil {
		return out
	}
	for pair := p.m.Oldest(); pair != nil; pair = pair.Next() {
		out.m.Set(pair.Key, pair.Value)
	}
	return out
}

// Serialize returns ";key=value" for each parameter, with boolean true
// written as a bare ";key".
func (p *Params) Serialize() string {
	var sb strings.Builder
	p.writeTo(&sb)
	return sb.String()
}

func (p *Params) writeTo(sb *strings.Builder) {
	if p == nil {
		return
	}
	for pair := p.m.Oldest(); pair != nil; pair = pair.Next() {
		sb.WriteByte(';')
		sb.WriteString(pair.Key)
		if pair.Value.Kind() == KindBoolean && pair.Value.Bool() {
			continue
		}
		sb.WriteByte('=')
		pair.Value.writeTo(sb)
	}
}
