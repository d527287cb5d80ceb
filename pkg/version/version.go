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

// Package version holds the library version and the RFC revisions it targets.
package version

const (
	// Version is the current version of sage-msgsig-go
	Version = "1.0.0-dev"

	// StructuredFieldsRFC is RFC 9651, Structured Field Values for HTTP
	StructuredFieldsRFC = "9651"

	// MessageSignaturesRFC is RFC 9421, HTTP Message Signatures
	MessageSignaturesRFC = "9421"

	// DigestFieldsRFC is RFC 9530, Digest Fields
	DigestFieldsRFC = "9530"
)

// Info contains detailed version information
type Info struct {
	MsgSigVersion        string
	StructuredFieldsRFC  string
	MessageSignaturesRFC string
	DigestFieldsRFC      string
}

// Get returns detailed version information
func Get() Info {
	return Info{
		MsgSigVersion:        Version,
		StructuredFieldsRFC:  StructuredFieldsRFC,
		MessageSignaturesRFC: MessageSignaturesRFC,
		DigestFieldsRFC:      DigestFieldsRFC,
	}
}
