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

package httpsig

import (
	"strings"

	"github.com/sage-x-project/sage-msgsig-go/pkg/sfv"
)

// Derived component identifiers.
const (
	ComponentSignatureParams = "@signature-params"
	ComponentMethod          = "@method"
	ComponentTargetURI       = "@target-uri"
	ComponentAuthority       = "@authority"
	ComponentScheme          = "@scheme"
	ComponentRequestTarget   = "@request-target"
	ComponentPath            = "@path"
	ComponentQuery           = "@query"
	ComponentQueryParam      = "@query-param"
)

// Header field components used by the signing policy.
const (
	HeaderContentDigest = "content-digest"
	HeaderContentLength = "content-length"
	HeaderContentType   = "content-type"
	HeaderAuthorization = "authorization"
)

// NewComponentIdentifier returns the structured item naming a component.
// Field names are lower-cased; derived names starting with '@' are kept
// as given.
func NewComponentIdentifier(name string, params *sfv.Params) (sfv.Item, error) {
	if !strings.HasPrefix(name, "@") {
		name = strings.ToLower(name)
	}
	s, err := sfv.String(name)
	if err != nil {
		return sfv.Item{}, err
	}
	return sfv.NewItem(s, params)
}

func isDerived(name string) bool {
	return strings.HasPrefix(name, "@")
}
