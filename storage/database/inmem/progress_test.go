package inmemdb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/videoteca/core/content"
	"github.com/trezcool/videoteca/core/progress"
)

func TestProgressRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewProgressRepository(Open())
	key := content.NewModuleKey("goa", "estacao-os", "modulo-1")
	ts := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	recs, err := repo.QueryRecords(ctx, key)
	require.NoError(t, err)
	assert.Empty(t, recs)
	assert.NotNil(t, recs)

	rec := func(module, video string, watched bool) progress.Record {
		return progress.Record{Subject: "goa", SubSubject: "estacao-os", Module: module, VideoFileName: video, Watched: watched, UpdatedAt: ts}
	}
	for _, r := range []progress.Record{
		rec("modulo-1", "b.mp4", true),
		rec("modulo-1", "a.mp4", true),
		rec("modulo-2", "a.mp4", true),
		rec("modulo-1", "b.mp4", false), // replaces
	} {
		_, err = repo.SaveRecord(ctx, r)
		require.NoError(t, err)
	}

	recs, err = repo.QueryRecords(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []progress.Record{rec("modulo-1", "a.mp4", true), rec("modulo-1", "b.mp4", false)}, recs)
}
