package handles_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"catalog-sync/core/storage/mocks"
	"catalog-sync/feature/catalog/handles"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	got := handles.Parse([]byte("tee\n\n# seasonal\n  hoodie \r\ntee\ncap"))
	assert.Equal(t, []string{"tee", "hoodie", "cap"}, got)
	assert.Empty(t, handles.Parse(nil))
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("LocalFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "handles.txt")
		require.NoError(t, os.WriteFile(path, []byte("tee\nhoodie\n"), 0o644))

		got, err := handles.Load(ctx, nil, handles.Source{File: path})
		require.NoError(t, err)
		assert.Equal(t, []string{"tee", "hoodie"}, got)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := handles.Load(ctx, nil, handles.Source{File: filepath.Join(t.TempDir(), "nope.txt")})
		assert.ErrorContains(t, err, "failed to read handles")
	})

	t.Run("Object", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "catalog", "sync/handles.txt", mock.Anything).
			Return(io.NopCloser(bytes.NewReader([]byte("cap\n"))), nil)

		got, err := handles.Load(ctx, client, handles.Source{File: "ignored.txt", Bucket: "catalog", Object: "sync/handles.txt"})
		require.NoError(t, err)
		assert.Equal(t, []string{"cap"}, got)
		client.AssertExpectations(t)
	})

	t.Run("ObjectError", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "catalog", "missing", mock.Anything).Return(nil, errors.New("no such key"))

		_, err := handles.Load(ctx, client, handles.Source{Bucket: "catalog", Object: "missing"})
		assert.ErrorContains(t, err, "no such key")
	})

	t.Run("ObjectWithoutClient", func(t *testing.T) {
		_, err := handles.Load(ctx, nil, handles.Source{Object: "x"})
		assert.Error(t, err)
	})
}
