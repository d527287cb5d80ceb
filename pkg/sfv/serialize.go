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

// Value is anything with a canonical structured field serialization.
type Value interface {
	Serialize() string
}

var (
	_ Value = BareItem{}
	_ Value = Item{}
	_ Value = InnerList{}
	_ Value = List(nil)
	_ Value = (*Dictionary)(nil)
	_ Value = (*Params)(nil)
)

// SerializeBareItem renders a single bare item.
func SerializeBareItem(b BareItem) string { return b.Serialize() }

// SerializeItem renders an Item field value.
func SerializeItem(it Item) string { return it.Serialize() }

// SerializeInnerList renders an inner list with its parameters.
func SerializeInnerList(l InnerList) string { return l.Serialize() }

// SerializeList renders a List field value.
func SerializeList(l List) string { return l.Serialize() }

// SerializeDictionary renders a Dictionary field value.
func SerializeDictionary(d *Dictionary) string { return d.Serialize() }
