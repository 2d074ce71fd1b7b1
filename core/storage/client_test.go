package storage_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"catalog-sync/core/storage"
	"catalog-sync/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name string
		cfg  storage.Config
	}{
		{"ValidConfig", storage.Config{Endpoint: "localhost:9000", AccessKey: "k", SecretKey: "s", Region: "us-east-1"}},
		{"EndpointWithHTTP", storage.Config{Endpoint: "http://localhost:9000", AccessKey: "k", SecretKey: "s"}},
		{"EndpointWithHTTPS", storage.Config{Endpoint: "https://s3.amazonaws.com", AccessKey: "k", SecretKey: "s", UseSSL: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := storage.NewClient(tt.cfg)
			assert.NoError(t, err)
			assert.NotNil(t, client)
		})
	}
}

func TestReadObject(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "bucket", "handles.txt", mock.Anything).
			Return(io.NopCloser(bytes.NewReader([]byte("a\nb\n"))), nil)

		data, err := storage.ReadObject(ctx, client, "bucket", "handles.txt")
		require.NoError(t, err)
		assert.Equal(t, "a\nb\n", string(data))
	})

	t.Run("GetError", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "bucket", "missing", mock.Anything).
			Return(nil, errors.New("no such key"))

		_, err := storage.ReadObject(ctx, client, "bucket", "missing")
		assert.ErrorContains(t, err, "no such key")
	})
}

func TestWriteJSON(t *testing.T) {
	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, "bucket", "reports/x.json", mock.Anything, mock.Anything,
		mock.MatchedBy(func(opts minio.PutObjectOptions) bool { return opts.ContentType == "application/json" })).
		Return(minio.UploadInfo{}, nil)

	err := storage.WriteJSON(context.Background(), client, "bucket", "reports/x.json", map[string]int{"created": 2})
	require.NoError(t, err)
	client.AssertExpectations(t)
}

func TestRequireBucket(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		exists  bool
		err     error
		wantErr string
	}{
		{"Exists", true, nil, ""},
		{"Missing", false, nil, "does not exist"},
		{"CheckFails", false, errors.New("access denied"), "access denied"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(mocks.Client)
			client.On("BucketExists", mock.Anything, "bucket").Return(tt.exists, tt.err)

			err := storage.RequireBucket(ctx, client, "bucket")
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
