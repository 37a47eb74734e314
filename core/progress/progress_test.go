package progress_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/videoteca/core"
	"github.com/trezcool/videoteca/core/catalog"
	"github.com/trezcool/videoteca/core/content"
	"github.com/trezcool/videoteca/core/progress"
	"github.com/trezcool/videoteca/storage/database/inmem"
	"github.com/trezcool/videoteca/tests"
)

func TestService_Mark(t *testing.T) {
	svc := progress.NewService(inmemdb.NewProgressRepository(inmemdb.Open()), testutil.NewValidator())
	ctx := context.Background()

	ts := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	orig := core.NowFunc
	core.NowFunc = func() time.Time { return ts }
	defer func() { core.NowFunc = orig }()

	no := false
	key := content.NewModuleKey("goa", "estacao-os", "modulo-1")
	tests := []struct {
		name        string
		mark        progress.Mark
		wantErr     error
		wantInvalid bool
		wantMsg     string
	}{
		{name: "unknown module", mark: progress.Mark{ModuleKey: content.NewModuleKey("goa", "estacao-os", "modulo-9"), VideoFileName: "a.mp4"}, wantErr: catalog.ErrModuleNotFound},
		{name: "missing video", mark: progress.Mark{ModuleKey: key}, wantInvalid: true},
		{name: "invalid video", mark: progress.Mark{ModuleKey: key, VideoFileName: "../a.mp4"}, wantInvalid: true},
		{name: "watched by default", mark: progress.Mark{ModuleKey: key, VideoFileName: "a.mp4"}, wantMsg: "video marked as watched"},
		{name: "unwatched", mark: progress.Mark{ModuleKey: key, VideoFileName: "b.mp4", Watched: &no}, wantMsg: "video unmarked"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := svc.Mark(ctx, tt.mark)
			switch {
			case tt.wantErr != nil:
				assert.Equal(t, tt.wantErr, err)
			case tt.wantInvalid:
				var vErrs validator.ValidationErrors
				var vErr *core.ValidationError
				assert.True(t, errors.As(err, &vErrs) || errors.As(err, &vErr), "validation error, got %v", err)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.wantMsg, tt.mark.Message())
				assert.Equal(t, tt.mark.VideoFileName, rec.VideoFileName)
				assert.Equal(t, ts, rec.UpdatedAt)
			}
		})
	}

	recs, err := svc.List(ctx, key)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.True(t, recs[0].Watched)
	assert.False(t, recs[1].Watched)

	_, err = svc.List(ctx, content.NewModuleKey("lol", "estacao-os", "modulo-1"))
	assert.Equal(t, catalog.ErrSubjectNotFound, err)
}
