package sfv

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFixtureFile(t *testing.T, name string) []Fixture {
	t.Helper()
	f, err := os.Open(filepath.Join("testdata", name))
	require.NoError(t, err)
	defer f.Close()

	fixtures, err := LoadFixtures(f)
	require.NoError(t, err)
	require.NotEmpty(t, fixtures)
	return fixtures
}

func TestConformance(t *testing.T) {
	for _, file := range []string{"item.json", "list.json", "dictionary.json"} {
		for _, fx := range loadFixtureFile(t, file) {
			fx := fx
			t.Run(file+"/"+fx.Name, func(t *testing.T) {
				if len(fx.Expected) == 0 {
					t.Skip("no expected value")
				}

				value, err := FromJSON(fx.HeaderType, fx.Expected)
				if fx.MustFail {
					require.Error(t, err)
					assert.ErrorIs(t, err, ErrFormat)
					return
				}
				if fx.CanFail && err != nil {
					return
				}
				require.NoError(t, err)
				assert.Equal(t, fx.CanonicalValue(), value.Serialize())
			})
		}
	}
}

func TestFromJSON_UnknownHeaderType(t *testing.T) {
	_, err := FromJSON("field", json.RawMessage(`[]`))
	assert.Error(t, err)
}

func TestFromJSON_MalformedShapes(t *testing.T) {
	tests := []struct {
		headerType string
		expected   string
	}{
		{HeaderTypeItem, `[1]`},
		{HeaderTypeItem, `[1, {}]`},
		{HeaderTypeItem, `[{"__type": "unknown", "value": 1}, []]`},
		{HeaderTypeItem, `[{"__type": "binary", "value": "!!"}, []]`},
		{HeaderTypeList, `{}`},
		{HeaderTypeDictionary, `[["a"]]`},
		{HeaderTypeDictionary, `[[1, [1, []]]]`},
	}
	for _, tt := range tests {
		_, err := FromJSON(tt.headerType, json.RawMessage(tt.expected))
		assert.Error(t, err, tt.expected)
	}
}
