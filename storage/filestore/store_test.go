package filestore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/videoteca/core/content"
)

func TestStore_metadata(t *testing.T) {
	ctx := context.Background()
	s := NewStore(t.TempDir())
	key := content.NewModuleKey("goa", "estacao-os", "modulo-1")

	_, err := s.LoadMetadata(ctx, key)
	assert.Equal(t, content.ErrNoMetadata, err)

	require.NoError(t, s.CreateModule(ctx, key))
	ts := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	meta := content.Metadata{
		Videos: []content.Video{
			{FileName: "1709287200000-abc123xyz.mp4", OriginalName: "aula.mp4", Size: 42, UploadDate: ts, Type: "video/mp4"},
		},
		LastUpdated: ts,
		Subject:     "goa",
		SubSubject:  "estacao-os",
		Module:      "modulo-1",
	}
	require.NoError(t, s.SaveMetadata(ctx, key, meta))

	got, err := s.LoadMetadata(ctx, key)
	require.NoError(t, err)
	if diff := cmp.Diff(meta, got); diff != "" {
		t.Errorf("LoadMetadata() mismatch (-want +got):\n%s", diff)
	}

	raw, err := os.ReadFile(filepath.Join(s.Root(), "goa", "estacao-os", "modulo-1", content.MetadataFileName))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "{\n  \"videos\": ["), "2-space indented JSON")
	assert.Contains(t, string(raw), `"lastUpdated": "2024-03-01T10:00:00Z"`)

	// corrupt sidecar is an error, not "no metadata"
	require.NoError(t, os.WriteFile(filepath.Join(s.moduleDir(key), content.MetadataFileName), []byte("{"), filePerm))
	_, err = s.LoadMetadata(ctx, key)
	require.Error(t, err)
	assert.NotEqual(t, content.ErrNoMetadata, err)
}

func TestStore_videos(t *testing.T) {
	ctx := context.Background()
	s := NewStore(t.TempDir())
	key := content.NewModuleKey("goa", "estacao-os", "modulo-1")

	names, err := s.ListVideos(ctx, key)
	require.NoError(t, err)
	assert.Empty(t, names)

	require.NoError(t, s.CreateModule(ctx, key))
	n, err := s.SaveVideo(ctx, key, "a.mp4", strings.NewReader("hello"))
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
	require.NoError(t, s.SaveMetadata(ctx, key, content.Metadata{}))
	require.NoError(t, os.WriteFile(filepath.Join(s.moduleDir(key), ".pending123"), nil, filePerm))

	names, err = s.ListVideos(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.mp4"}, names)

	require.NoError(t, s.RemoveVideo(ctx, key, "a.mp4"))
	err = s.RemoveVideo(ctx, key, "a.mp4")
	assert.True(t, os.IsNotExist(err))

	// cancelled copy leaves nothing behind
	cctx, cancel := context.WithCancel(ctx)
	cancel()
	_, err = s.SaveVideo(cctx, key, "b.mp4", strings.NewReader("hello"))
	assert.ErrorIs(t, err, context.Canceled)
	_, err = os.Stat(filepath.Join(s.moduleDir(key), "b.mp4"))
	assert.True(t, os.IsNotExist(err))
}

func TestStore_modules(t *testing.T) {
	ctx := context.Background()
	s := NewStore(filepath.Join(t.TempDir(), "videos"))

	keys, err := s.ListModules(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys, "missing root")

	m1 := content.NewModuleKey("goa", "estacao-os", "modulo-1")
	m2 := content.NewModuleKey("goa", "estacao-os", "modulo-2")
	m3 := content.NewModuleKey("producao-agricola", "tratos", "modulo-1")
	for _, key := range []content.ModuleKey{m3, m2, m1} {
		require.NoError(t, s.CreateModule(ctx, key))
	}
	// stray file at the sub-subject level is ignored
	require.NoError(t, os.WriteFile(filepath.Join(s.Root(), "goa", "estacao-os", "notes.txt"), nil, filePerm))

	keys, err = s.ListModules(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff([]content.ModuleKey{m1, m2, m3}, keys); diff != "" {
		t.Errorf("ListModules() mismatch (-want +got):\n%s", diff)
	}

	_, err = s.SaveVideo(ctx, m1, "a.mp4", strings.NewReader("x"))
	require.NoError(t, err)
	require.NoError(t, s.RemoveModuleIfEmpty(ctx, m1))
	assert.DirExists(t, s.moduleDir(m1), "not empty")
	require.NoError(t, s.RemoveModuleIfEmpty(ctx, m2))
	require.NoError(t, s.RemoveModuleIfEmpty(ctx, m2), "already gone")

	require.NoError(t, s.RemoveModule(ctx, m1))
	assert.True(t, os.IsNotExist(s.RemoveModule(ctx, m1)))

	keys, err = s.ListModules(ctx)
	require.NoError(t, err)
	assert.Equal(t, []content.ModuleKey{m3}, keys)
}
