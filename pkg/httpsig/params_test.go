package httpsig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sage-x-project/sage-msgsig-go/pkg/sfv"
)

func TestSignatureParameters_Empty(t *testing.T) {
	p := NewSignatureParameters()
	assert.Equal(t, "()", p.Serialize())
	assert.Empty(t, p.ComponentIdentifiers())
}

func TestSignatureParameters_NormalizesFieldNames(t *testing.T) {
	p := NewSignatureParameters()
	require.NoError(t, p.AddComponentIdentifier("@method"))
	require.NoError(t, p.AddComponentIdentifier("Content-Type"))
	require.NoError(t, p.AddComponentIdentifier("@Custom"))

	assert.Equal(t, []string{"@method", "content-type", "@Custom"}, p.ComponentNames())
}

func TestSignatureParameters_IdempotentAdd(t *testing.T) {
	p := NewSignatureParameters()
	require.NoError(t, p.AddComponentIdentifier("@method"))
	require.NoError(t, p.AddComponentIdentifier("@method"))
	require.NoError(t, p.AddComponentIdentifier("content-type"))
	require.NoError(t, p.AddComponentIdentifier("CONTENT-TYPE"))
	assert.Len(t, p.ComponentIdentifiers(), 2)

	petA := sfv.MustParams(sfv.Param{Key: "name", Value: "pet"})
	petB := sfv.MustParams(sfv.Param{Key: "name", Value: "pet"})
	owner := sfv.MustParams(sfv.Param{Key: "name", Value: "owner"})
	require.NoError(t, p.AddComponentIdentifierWithParams(ComponentQueryParam, petA))
	require.NoError(t, p.AddComponentIdentifierWithParams(ComponentQueryParam, petB))
	require.NoError(t, p.AddComponentIdentifierWithParams(ComponentQueryParam, owner))

	assert.Len(t, p.ComponentIdentifiers(), 4)
	assert.Equal(t, `("@method" "content-type" "@query-param";name="pet" "@query-param";name="owner")`, p.Serialize())
}

func TestSignatureParameters_ParamsCopiedOnAdd(t *testing.T) {
	p := NewSignatureParameters()
	params := sfv.MustParams(sfv.Param{Key: "name", Value: "a"})
	require.NoError(t, p.AddComponentIdentifierWithParams(ComponentQueryParam, params))

	require.NoError(t, params.Set("name", mustString("b")))
	assert.Equal(t, `("@query-param";name="a")`, p.Serialize())
}

func TestSignatureParameters_InvalidName(t *testing.T) {
	p := NewSignatureParameters()
	err := p.AddComponentIdentifier("x-café")
	assert.ErrorIs(t, err, sfv.ErrFormat)
	assert.Empty(t, p.ComponentIdentifiers())
}

func TestSignatureParameters_Metadata(t *testing.T) {
	p := NewSignatureParameters()
	require.NoError(t, p.AddComponentIdentifier("@method"))
	require.NoError(t, p.SetCreated(1618884473))
	require.NoError(t, p.SetKeyID("test-key"))
	require.NoError(t, p.SetAlg("hmac-sha256"))
	require.NoError(t, p.SetNonce("abc"))
	require.NoError(t, p.SetTag("app"))
	require.NoError(t, p.SetExpires(1618884488))

	assert.Equal(t, `("@method");created=1618884473;keyid="test-key";alg="hmac-sha256";nonce="abc";tag="app";expires=1618884488`, p.Serialize())

	alg, ok := p.Alg()
	assert.True(t, ok)
	assert.Equal(t, "hmac-sha256", alg)
	created, ok := p.Created()
	assert.True(t, ok)
	assert.Equal(t, int64(1618884473), created)
	expires, ok := p.Expires()
	assert.True(t, ok)
	assert.Equal(t, int64(1618884488), expires)
	keyID, _ := p.KeyID()
	assert.Equal(t, "test-key", keyID)
	nonce, _ := p.Nonce()
	assert.Equal(t, "abc", nonce)
	tag, _ := p.Tag()
	assert.Equal(t, "app", tag)

	require.NoError(t, p.SetAlg("ed25519"))
	assert.Equal(t, `("@method");created=1618884473;keyid="test-key";alg="ed25519";nonce="abc";tag="app";expires=1618884488`, p.Serialize())

	assert.Error(t, p.SetCreated(1_000_000_000_000_000))
	assert.Error(t, p.SetKeyID("bad\nid"))
}

func TestSignatureParameters_Clone(t *testing.T) {
	p := NewSignatureParameters()
	require.NoError(t, p.AddComponentIdentifier("@method"))
	require.NoError(t, p.SetKeyID("k"))

	c := p.Clone()
	require.NoError(t, c.AddComponentIdentifier("@path"))
	require.NoError(t, c.SetAlg("hmac-sha256"))

	assert.Equal(t, `("@method");keyid="k"`, p.Serialize())
	assert.Equal(t, `("@method" "@path");keyid="k";alg="hmac-sha256"`, c.Serialize())
}

func TestSignatureParameters_ZeroValue(t *testing.T) {
	var p SignatureParameters
	require.NoError(t, p.SetAlg("hmac-sha256"))
	assert.Equal(t, `();alg="hmac-sha256"`, p.Serialize())
}
