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
	"fmt"
	"strings"

	"github.com/sage-x-project/sage-msgsig-go/pkg/sfv"
)

var signatureParamsIdentifier = sfv.MustItem(mustString(ComponentSignatureParams), nil)

func mustString(s string) sfv.BareItem {
	item, err := sfv.String(s)
	if err != nil {
		panic(err)
	}
	return item
}

// CreateSignatureBase renders the signature base for params:
//
//	"<component>": <value>\n   (one line per covered component)
//	"@signature-params": <serialized params>
//
// Every component must resolve; nothing is returned on failure.
func (c *SigningContext) CreateSignatureBase(params *SignatureParameters) (string, error) {
	if params == nil {
		return "", fmt.Errorf("signature parameters cannot be nil")
	}

	var sb strings.Builder
	for _, component := range params.components {
		value, ok, err := c.ComponentValue(component)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", resolutionError(ErrMissingComponent, fmt.Sprintf("no value for component %s", component.Serialize()))
		}
		sb.WriteString(component.Serialize())
		sb.WriteString(": ")
		sb.WriteString(value)
		sb.WriteByte('\n')
	}

	sb.WriteString(signatureParamsIdentifier.Serialize())
	sb.WriteString(": ")
	sb.WriteString(params.Serialize())
	return sb.String(), nil
}

// SignatureInputHeader renders the Signature-Input value label=(...);params.
func SignatureInputHeader(label string, params *SignatureParameters) (string, error) {
	d := sfv.NewDictionary()
	if err := d.Set(label, params.InnerList()); err != nil {
		return "", fmt.Errorf("invalid signature label: %w", err)
	}
	return d.Serialize(), nil
}

// SignatureHeader renders the Signature value label=:base64:.
func SignatureHeader(label string, signature []byte) (string, error) {
	d := sfv.NewDictionary()
	if err := d.Set(label, sfv.MustItem(sfv.ByteSequence(signature), nil)); err != nil {
		return "", fmt.Errorf("invalid signature label: %w", err)
	}
	return d.Serialize(), nil
}
