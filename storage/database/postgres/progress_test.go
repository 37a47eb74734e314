package pgrepos

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/videoteca/core/content"
	"github.com/trezcool/videoteca/core/progress"
	"github.com/trezcool/videoteca/tests"
)

func TestProgressRepository(t *testing.T) {
	db := testutil.PrepareDB(t)
	repo := NewProgressRepository(db)
	ctx := context.Background()
	key := content.NewModuleKey("goa", "estacao-os", "modulo-1")
	ts := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	rec := func(module, video string, watched bool) progress.Record {
		return progress.Record{Subject: "goa", SubSubject: "estacao-os", Module: module, VideoFileName: video, Watched: watched, UpdatedAt: ts}
	}
	for _, r := range []progress.Record{
		rec("modulo-1", "b.mp4", true),
		rec("modulo-1", "a.mp4", true),
		rec("modulo-2", "a.mp4", true),
		rec("modulo-1", "b.mp4", false),
	} {
		_, err := repo.SaveRecord(ctx, r)
		require.NoError(t, err)
	}

	recs, err := repo.QueryRecords(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []progress.Record{rec("modulo-1", "a.mp4", true), rec("modulo-1", "b.mp4", false)}, recs)
}
