package sha256

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigestIsStable(t *testing.T) {
	t.Parallel()

	h := New()
	assert.Equal(t, "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9", h.Digest([]byte("hello world")))
	assert.Equal(t, h.Digest([]byte(`{"series":[]}`)), h.Digest([]byte(`{"series":[]}`)))
	assert.NotEqual(t, h.Digest([]byte(`{"code":"15-1252"}`)), h.Digest([]byte(`{"code":"15-1253"}`)))
}

func TestObjectName(t *testing.T) {
	t.Parallel()

	h := New()
	name, err := h.ObjectName("payloads", "15-1252", []byte("hello world"))
	require.NoError(t, err)
	assert.Equal(t, "payloads/15-1252/b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9.json", name)

	name, err = h.ObjectName("/raw/", "29-1141", []byte("x"))
	require.NoError(t, err)
	assert.Regexp(t, `^raw/29-1141/[0-9a-f]{64}\.json$`, name)

	name, err = h.ObjectName("", "29-1141", []byte("x"))
	require.NoError(t, err)
	assert.Regexp(t, `^29-1141/[0-9a-f]{64}\.json$`, name)
}

func TestObjectNameRejectsBadInput(t *testing.T) {
	t.Parallel()

	h := New()
	_, err := h.ObjectName("payloads", " ", []byte("x"))
	require.Error(t, err)
	_, err = h.ObjectName("payloads", "15-1252", nil)
	require.Error(t, err)
}
