package proposal

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldsAreUnique(t *testing.T) {
	keys := map[string]bool{}
	names := map[string]bool{}
	for _, f := range Fields {
		require.False(t, keys[f.Key], "duplicate key %s", f.Key)
		keys[f.Key] = true
		require.NotEmpty(t, f.FormNames, "field %s has no form names", f.Key)
		for _, n := range f.FormNames {
			require.False(t, names[n], "form name %s used twice", n)
			names[n] = true
		}
	}
}

func TestIsTextField(t *testing.T) {
	assert.True(t, IsTextField(KeyClient))
	assert.True(t, IsTextField(KeyTotal))
	assert.False(t, IsTextField(KeyItems))
	assert.False(t, IsTextField(KeyImage))
	assert.False(t, IsTextField("nope"))
}

func TestFieldValuePrefersFirstNonEmptyName(t *testing.T) {
	f, ok := Lookup(KeyClient)
	require.True(t, ok)

	form := url.Values{"client": {"  "}, "cliente": {" Padaria Central "}}
	assert.Equal(t, "Padaria Central", f.value(form))

	form.Set("client", "Mercado Sul")
	assert.Equal(t, "Mercado Sul", f.value(form))

	f.Default = "n/d"
	assert.Equal(t, "n/d", f.value(url.Values{}))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "text", KindText.String())
	assert.Equal(t, "list", KindList.String())
	assert.Equal(t, "image", KindImage.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
