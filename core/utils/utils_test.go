package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGIDResource(t *testing.T) {
	tests := []struct {
		gid  string
		want string
	}{
		{"gid://shopify/Page/123", "Page"},
		{"gid://shopify/CustomerAccountPage/9", "CustomerAccountPage"},
		{"gid://shopify/Collection/1?x=y", "Collection"},
		{"123", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.gid, func(t *testing.T) {
			assert.Equal(t, tt.want, GIDResource(tt.gid))
		})
	}
}

func TestIDList(t *testing.T) {
	ids, err := ParseIDList(`["gid://shopify/Metaobject/1","gid://shopify/Metaobject/2"]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"gid://shopify/Metaobject/1", "gid://shopify/Metaobject/2"}, ids)

	ids, err = ParseIDList("")
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = ParseIDList("gid://shopify/Metaobject/1")
	assert.Error(t, err)

	assert.Equal(t, `["a","b"]`, EncodeIDList([]string{"a", "b"}))
	assert.Equal(t, `[]`, EncodeIDList(nil))
}

func TestPointers(t *testing.T) {
	assert.Equal(t, "", Deref[string](nil))
	assert.Equal(t, 3, Deref(Ptr(3)))
	assert.True(t, EqualPtr[string](nil, nil))
	assert.False(t, EqualPtr(Ptr("a"), nil))
	assert.True(t, EqualPtr(Ptr("a"), Ptr("a")))
}
