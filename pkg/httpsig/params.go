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
	"github.com/sage-x-project/sage-msgsig-go/pkg/sfv"
)

// Signature metadata parameter names.
const (
	ParamAlg     = "alg"
	ParamCreated = "created"
	ParamExpires = "expires"
	ParamKeyID   = "keyid"
	ParamNonce   = "nonce"
	ParamTag     = "tag"
)

// SignatureParameters is the ordered list of covered component identifiers
// plus the signature metadata. It serializes as an inner list with
// parameters, which is the value of the "@signature-params" line and of a
// Signature-Input dictionary member.
type SignatureParameters struct {
	components []sfv.Item
	params     *sfv.Params
}

// NewSignatureParameters returns parameters with no components and no
// metadata.
func NewSignatureParameters() *SignatureParameters {
	return &SignatureParameters{params: sfv.NewParams()}
}

// AddComponentIdentifier appends a component without parameters.
func (p *SignatureParameters) AddComponentIdentifier(name string) error {
	return p.AddComponentIdentifierWithParams(name, nil)
}

// AddComponentIdentifierWithParams appends a component. Adding an entry
// whose name and parameters serialize identically to an existing one is a
// no-op; entries differing only in parameters are kept separately.
func (p *SignatureParameters) AddComponentIdentifierWithParams(name string, params *sfv.Params) error {
	if params != nil {
		params = params.Clone()
	}
	item, err := NewComponentIdentifier(name, params)
	if err != nil {
		return err
	}
	serialized := item.Serialize()
	for _, existing := range p.components {
		if existing.Serialize() == serialized {
			return nil
		}
	}
	p.components = append(p.components, item)
	return nil
}

// ComponentIdentifiers returns a copy of the covered components in order.
func (p *SignatureParameters) ComponentIdentifiers() []sfv.Item {
	return append([]sfv.Item(nil), p.components...)
}

// ComponentNames returns the string value of every covered component.
func (p *SignatureParameters) ComponentNames() []string {
	names := make([]string, len(p.components))
	for i, c := range p.components {
		names[i] = c.Bare().Str()
	}
	return names
}

// Params returns a copy of the metadata parameters.
func (p *SignatureParameters) Params() *sfv.Params {
	return p.params.Clone()
}

// SetAlg sets the "alg" parameter.
func (p *SignatureParameters) SetAlg(alg string) error { return p.setString(ParamAlg, alg) }

// SetCreated sets the "created" parameter to Unix seconds.
func (p *SignatureParameters) SetCreated(unix int64) error { return p.setInteger(ParamCreated, unix) }

// SetExpires sets the "expires" parameter to Unix seconds.
func (p *SignatureParameters) SetExpires(unix int64) error { return p.setInteger(ParamExpires, unix) }

// SetKeyID sets the "keyid" parameter.
func (p *SignatureParameters) SetKeyID(keyID string) error { return p.setString(ParamKeyID, keyID) }

// SetNonce sets the "nonce" parameter.
func (p *SignatureParameters) SetNonce(nonce string) error { return p.setString(ParamNonce, nonce) }

// SetTag sets the "tag" parameter.
func (p *SignatureParameters) SetTag(tag string) error { return p.setString(ParamTag, tag) }

func (p *SignatureParameters) Alg() (string, bool) { return p.getString(ParamAlg) }
func (p *SignatureParameters) Created() (int64, bool) { return p.getInteger(ParamCreated) }
func (p *SignatureParameters) Expires() (int64, bool) { return p.getInteger(ParamExpires) }
func (p *SignatureParameters) KeyID() (string, bool) { return p.getString(ParamKeyID) }
func (p *SignatureParameters) Nonce() (string, bool) { return p.getString(ParamNonce) }
func (p *SignatureParameters) Tag() (string, bool) { return p.getString(ParamTag) }

func (p *SignatureParameters) setString(key, value string) error {
	item, err := sfv.String(value)
	if err != nil {
		return err
	}
	if p.params == nil {
		p.params = sfv.NewParams()
	}
	return p.params.Set(key, item)
}

func (p *SignatureParameters) setInteger(key string, value int64) error {
	item, err := sfv.Integer(value)
	if err != nil {
		return err
	}
	if p.params == nil {
		p.params = sfv.NewParams()
	}
	return p.params.Set(key, item)
}

func (p *SignatureParameters) getString(key string) (string, bool) {
	item, ok := p.params.Get(key)
	if !ok || item.Kind() != sfv.KindString {
		return "", false
	}
	return item.Str(), true
}

func (p *SignatureParameters) getInteger(key string) (int64, bool) {
	item, ok := p.params.Get(key)
	if !ok || item.Kind() != sfv.KindInteger {
		return 0, false
	}
	return item.Int(), true
}

// Clone returns an independent copy.
func (p *SignatureParameters) Clone() *SignatureParameters {
	return &SignatureParameters{
		components: append([]sfv.Item(nil), p.components...),
		params:     p.params.Clone(),
	}
}

// InnerList returns the structured form of the parameters.
func (p *SignatureParameters) InnerList() sfv.InnerList {
	return sfv.NewInnerList(p.components, p.params)
}

// Serialize renders ("c1" "c2";x=1);alg="...";created=...
func (p *SignatureParameters) Serialize() string {
	return p.InnerList().Serialize()
}
