package keyword

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchRanksByOverlap(t *testing.T) {
	t.Parallel()

	idx := New(0)
	got, err := idx.Search(context.Background(), "developers of software", 3)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, "15-1252", got[0].Code)
	assert.Equal(t, "Software Developers", got[0].Title)
	assert.InDelta(t, 1.0, got[0].Score, 1e-9)
	assert.LessOrEqual(t, len(got), 3)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
	}
}

func TestSearchIgnoresWordOrderAndPlurals(t *testing.T) {
	t.Parallel()

	got, err := New(0).Search(context.Background(), "Nurse, Registered", 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "29-1141", got[0].Code)
}

func TestSearchRejectsWeakMatches(t *testing.T) {
	t.Parallel()

	idx := New(0)
	got, err := idx.Search(context.Background(), "zzz-not-a-job-zzz", 5)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = idx.Search(context.Background(), "   ", 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearchHonorsContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(0).Search(ctx, "software developer", 1)
	require.ErrorIs(t, err, context.Canceled)
}

func TestJaccardAndStem(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "secretary", stem("secretaries"))
	assert.Equal(t, "nurse", stem("nurses"))
	assert.Equal(t, "business", stem("business"))
	assert.InDelta(t, 2.0/3.0, jaccard(tokenSet("data scientist"), tokenSet("data scientists and analysts")), 1e-9)
	assert.Zero(t, jaccard(nil, tokenSet("anything")))
}
