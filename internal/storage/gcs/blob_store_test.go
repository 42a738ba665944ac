package gcs

import (
	"context"
	"testing"

	"cloud.google.com/go/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func TestNewValidatesConfig(t *testing.T) {
	t.Parallel()

	_, err := New(nil, Config{Bucket: "payloads"})
	require.Error(t, err)

	client, err := storage.NewClient(context.Background(), option.WithoutAuthentication())
	require.NoError(t, err)
	defer client.Close()

	_, err = New(client, Config{Bucket: " "})
	require.Error(t, err)

	_, err = Connect(context.Background(), Config{})
	require.Error(t, err)
}

func TestObjectNameJoinsPrefix(t *testing.T) {
	t.Parallel()

	client, err := storage.NewClient(context.Background(), option.WithoutAuthentication())
	require.NoError(t, err)
	defer client.Close()

	store, err := New(client, Config{Bucket: "occ", Prefix: "/archive/"})
	require.NoError(t, err)
	assert.Equal(t, "archive/payloads/15-1252/abc.json", store.ObjectName("/payloads/15-1252/abc.json"))

	bare, err := New(client, Config{Bucket: "occ"})
	require.NoError(t, err)
	assert.Equal(t, "payloads/15-1252/abc.json", bare.ObjectName("payloads/15-1252/abc.json"))
	require.NoError(t, bare.Close())

	_, err = store.PutObject(context.Background(), "", "application/json", nil)
	require.Error(t, err)
}
