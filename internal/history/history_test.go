package history

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for _, rec := range []Record{
		{ID: "exp_1", Track: "oval"},
		{ID: "exp_2", Track: "loop"},
		{ID: "exp_3", Track: "oval"},
		{ID: "exp_4", Track: "oval"},
	} {
		require.NoError(t, s.Save(ctx, rec))
	}

	rec, err := s.Get(ctx, "exp_2")
	require.NoError(t, err)
	assert.Equal(t, "loop", rec.Track)

	_, err = s.Get(ctx, "exp_9")
	assert.ErrorIs(t, err, ErrNotFound)

	recs, err := s.ListByTrack(ctx, "oval", 0)
	require.NoError(t, err)
	ids := make([]string, len(recs))
	for i, r := range recs {
		ids[i] = r.ID
	}
	assert.Equal(t, []string{"exp_4", "exp_3", "exp_1"}, ids)

	recs, err = s.ListByTrack(ctx, "oval", 2)
	require.NoError(t, err)
	assert.Len(t, recs, 2)

	recs, err = s.ListByTrack(ctx, "unknown", 10)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, Record{ID: "exp_1", Track: "oval"}))

	rec, err := s.Get(ctx, "exp_1")
	require.NoError(t, err)
	rec.Track = "changed"

	again, err := s.Get(ctx, "exp_1")
	require.NoError(t, err)
	assert.Equal(t, "oval", again.Track)
}
