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

// Package sagemsgsig provides version information for sage-msgsig-go and the
// standards it implements.
package sagemsgsig

import "github.com/sage-x-project/sage-msgsig-go/pkg/version"

const (
	// Version is the current version of sage-msgsig-go
	Version = version.Version

	// StructuredFieldsRFC is the Structured Field Values RFC the serializer follows
	// See: https://www.rfc-editor.org/rfc/rfc9651
	StructuredFieldsRFC = version.StructuredFieldsRFC

	// MessageSignaturesRFC is the HTTP Message Signatures RFC the base builder follows
	// See: https://www.rfc-editor.org/rfc/rfc9421
	MessageSignaturesRFC = version.MessageSignaturesRFC

	// DigestFieldsRFC is the Digest Fields RFC used for Content-Digest
	DigestFieldsRFC = version.DigestFieldsRFC
)

// VersionInfo contains detailed version information
type VersionInfo = version.Info

// GetVersionInfo returns detailed version information
func GetVersionInfo() VersionInfo {
	return version.Get()
}
