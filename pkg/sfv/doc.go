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

// Package sfv builds and serializes HTTP Structured Field Values (RFC 9651).
//
// Values are constructed in memory and rendered to their canonical text
// form. Parsing field values from the wire is not provided.
//
// # Bare Items
//
// Each bare item type has a constructor that validates the full value:
//
//	n, err := sfv.Integer(42)             // 42
//	d, err := sfv.ParseDecimal("1.25")    // 1.25
//	s, err := sfv.String(`say "hi"`)      // "say \"hi\""
//	t, err := sfv.Token("application/json")
//	b := sfv.ByteSequence([]byte{0, 1, 2, 3}) // :AAECAw==:
//	f := sfv.Boolean(true)                // ?1
//	at, err := sfv.Date(1659578233)       // @1659578233
//	ds, err := sfv.DisplayString("füü")   // %"f%c3%bc%c3%bc"
//
// A BareItem that exists is always serializable; every error is reported
// at construction time as a *FormatError (errors.Is(err, sfv.ErrFormat)).
//
// # Parameters and Containers
//
// Params, Dictionary and the member order of List and InnerList preserve
// insertion order. Nothing is ever sorted.
//
//	params := sfv.MustParams(
//	    sfv.Param{Key: "flag", Value: true},
//	    sfv.Param{Key: "mode", Value: "test"},
//	)
//	s, _ := sfv.String("example")
//	item := sfv.MustItem(s, params)
//	item.Serialize() // "example";flag;mode="test"
//
// Raw Go values passed through Param are coerced with Infer.
//
// # Conformance Fixtures
//
// LoadFixtures and FromJSON read the JSON test record format used by the
// structured field test suite so that serialization can be checked against
// published canonical strings.
package sfv
