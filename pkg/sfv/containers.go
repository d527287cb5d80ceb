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

// Member is a top-level element of a List or Dictionary: an Item or an
// InnerList. The set of implementations is closed.
type Member interface {
	Serialize() string
	writeTo(sb *strings.Builder)
	member()
}

// Item is a bare item with parameters.
type Item struct {
	bare   BareItem
	params *Params
}

// NewItem pairs bare with params. params may be nil.
func NewItem(bare BareItem, params *Params) (Item, error) {
	if !bare.IsValid() {
		return Item{}, formatError("item", "", -1, "uninitialized bare item")
	}
	return Item{bare: bare, params: params}, nil
}

// MustItem is NewItem for values known to be valid.
func MustItem(bare BareItem, params *Params) Item {
	it, err := NewItem(bare, params)
	if err != nil {
		panic(err)
	}
	return it
}

// BareTrue returns the Boolean true item used for valueless dictionary
// members such as "a;x=1".
func BareTrue(params *Params) Item {
	return Item{bare: Boolean(true), params: params}
}

// Bare returns the item's bare value.
func (it Item) Bare() BareItem { return it.bare }

// Params returns the item's parameters, which may be nil.
func (it Item) Params() *Params { return it.params }

// Serialize renders the item and its parameters.
func (it Item) Serialize() string {
	var sb strings.Builder
	it.writeTo(&sb)
	return sb.String()
}

func (it Item) writeTo(sb *strings.Builder) {
	it.bare.writeTo(sb)
	it.params.writeTo(sb)
}

func (Item) member() {}

// InnerList is an ordered list of items with its own parameters.
type InnerList struct {
	items  []Item
	params *Params
}

// NewInnerList copies items so later changes to the slice are not seen.
func NewInnerList(items []Item, params *Params) InnerList {
	return InnerList{items: append([]Item(nil), items...), params: params}
}

// Items returns a copy of the inner list's items.
func (l InnerList) Items() []Item { return append([]Item(nil), l.items...) }

// Params returns the inner list's parameters, which may be nil.
func (l InnerList) Params() *Params { return l.params }

// Serialize renders "(a b c);params". An empty inner list is "()".
func (l InnerList) Serialize() string {
	var sb strings.Builder
	l.writeTo(&sb)
	return sb.String()
}

func (l InnerList) writeTo(sb *strings.Builder) {
	sb.WriteByte('(')
	for i, it := range l.items {
		if i > 0 {
			sb.WriteByte(' ')
		}
		it.writeTo(sb)
	}
	sb.WriteByte(')')
	l.params.writeTo(sb)
}

func (InnerList) member() {}

// List is an ordered sequence of members. It carries no parameters.
type List []Member

// Serialize joins the members with ", ". An empty list is "".
func (l List) Serialize() string {
	var sb strings.Builder
	for i, m := range l {
		if i > 0 {
			sb.WriteString(", ")
		}
		m.writeTo(&sb)
	}
	return sb.String()
}

// Dictionary is an insertion-ordered mapping from key to member.
type Dictionary struct {
	m *orderedmap.OrderedMap[string, Member]
}

// NewDictionary returns an empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{m: orderedmap.New[string, Member]()}
}

// Set validates key and stores member. Replacing a key keeps its position.
func (d *Dictionary) Set(key string, member Member) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if member == nil {
		return formatError("dictionary member", key, -1, "nil member")
	}
	d.m.Set(key, member)
	return nil
}

// Get returns the member stored under key.
func (d *Dictionary) Get(key string) (Member, bool) {
	if d == nil {
		return nil, false
	}
	return d.m.Get(key)
}

// Len returns the number of members.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return d.m.Len()
}

// Keys returns the keys in insertion order.
func (d *Dictionary) Keys() []string {
	if d == nil {
		return nil
	}
	keys := make([]string, 0, d.m.Len())
	for pair := d.m.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Serialize renders "key=value;params" members joined with ", ". Members
// whose value is Boolean true are written as "key;params".
func (d *Dictionary) Serialize() string {
	var sb strings.Builder
	if d == nil {
		return ""
	}
	first := true
	for pair := d.m.Oldest(); pair != nil; pair = pair.Next() {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		sb.WriteString(pair.Key)
		if it, ok := pair.Value.(Item); ok && it.bare.Kind() == KindBoolean && it.bare.Bool() {
			it.params.writeTo(&sb)
			continue
		}
		sb.WriteByte('=')
		pair.Value.writeTo(&sb)
	}
	return sb.String()
}
