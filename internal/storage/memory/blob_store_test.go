package memory

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlobStorePutObjectCopiesData(t *testing.T) {
	t.Parallel()

	store := NewBlobStore()
	payload := []byte(`{"series":[]}`)
	uri, err := store.PutObject(context.Background(), "payloads/15-1252/abc.json", "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	assert.Equal(t, "memory://payloads/15-1252/abc.json", uri)

	payload[0] = '['
	stored, ok := store.Object("payloads/15-1252/abc.json")
	require.True(t, ok)
	assert.Equal(t, `{"series":[]}`, string(stored))
	assert.Equal(t, []string{"payloads/15-1252/abc.json"}, store.Paths())
}

func TestBlobStoreRejectsEmptyPath(t *testing.T) {
	t.Parallel()

	_, err := NewBlobStore().PutObject(context.Background(), " ", "", bytes.NewReader(nil))
	require.Error(t, err)
}
