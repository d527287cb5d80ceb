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

package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionConstants(t *testing.T) {
	// Verify version constants are not empty
	assert.NotEmpty(t, Version, "Version should not be empty")
	assert.NotEmpty(t, StructuredFieldsRFC, "StructuredFieldsRFC should not be empty")
	assert.NotEmpty(t, MessageSignaturesRFC, "MessageSignaturesRFC should not be empty")
	assert.NotEmpty(t, DigestFieldsRFC, "DigestFieldsRFC should not be empty")

	// Verify expected values
	assert.Equal(t, "1.0.0-dev", Version)
	assert.Equal(t, "9651", StructuredFieldsRFC)
	assert.Equal(t, "9421", MessageSignaturesRFC)
	assert.Equal(t, "9530", DigestFieldsRFC)
}

func TestGet(t *testing.T) {
	info := Get()

	// Verify all fields are populated
	assert.Equal(t, Version, info.MsgSigVersion)
	assert.Equal(t, StructuredFieldsRFC, info.StructuredFieldsRFC)
	assert.Equal(t, MessageSignaturesRFC, info.MessageSignaturesRFC)
	assert.Equal(t, DigestFieldsRFC, info.DigestFieldsRFC)
}
