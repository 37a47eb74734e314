package filestore

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
	"github.com/pkg/errors"

	"github.com/trezcool/videoteca/core/content"
)

const (
	dirPerm  os.FileMode = 0o755
	filePerm os.FileMode = 0o644
)

// Store keeps the videos of every module under `<root>/<subject>/<subSubject>/<module>/`,
// next to the module's metadata sidecar.
type Store struct {
	root string
}

var _ content.Repository = (*Store)(nil)

func NewStore(root string) *Store {
	return &Store{root: root}
}

func (s *Store) Root() string {
	return s.root
}

func (s *Store) moduleDir(key content.ModuleKey) string {
	return filepath.Join(s.root, key.Subject, key.SubSubject, key.Module)
}

func (s *Store) CreateModule(ctx context.Context, key content.ModuleKey) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.MkdirAll(s.moduleDir(key), dirPerm)
}

// SaveVideo writes the video through a hidden pending file, so a failed write never leaves a partial video behind.
func (s *Store) SaveVideo(ctx context.Context, key content.ModuleKey, fileName string, r io.Reader) (int64, error) {
	pf, err := renameio.NewPendingFile(filepath.Join(s.moduleDir(key), fileName), renameio.WithPermissions(filePerm))
	if err != nil {
		return 0, errors.Wrap(err, "creating pending file")
	}
	defer func() { _ = pf.Cleanup() }()

	n, err := io.Copy(pf, ctxReader{ctx: ctx, r: r})
	if err != nil {
		return n, errors.Wrap(err, "writing video")
	}
	if err = pf.CloseAtomicallyReplace(); err != nil {
		return n, errors.Wrap(err, "replacing video")
	}
	return n, nil
}

func (s *Store) RemoveVideo(ctx context.Context, key content.ModuleKey, fileName string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.Remove(filepath.Join(s.moduleDir(key), fileName))
}

func (s *Store) ListVideos(ctx context.Context, key content.ModuleKey) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.moduleDir(key))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() || !content.IsValidFileName(e.Name()) {
			continue // sidecar & pending files
		}
		names = append(names, e.Name())
	}
	return names, nil
}

func (s *Store) LoadMetadata(ctx context.Context, key content.ModuleKey) (content.Metadata, error) {
	if err := ctx.Err(); err != nil {
		return content.Metadata{}, err
	}
	data, err := os.ReadFile(filepath.Join(s.moduleDir(key), content.MetadataFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return content.Metadata{}, content.ErrNoMetadata
		}
		return content.Metadata{}, errors.Wrap(err, "reading metadata")
	}

	var meta content.Metadata
	if err = json.Unmarshal(data, &meta); err != nil {
		return content.Metadata{}, errors.Wrapf(err, "decoding metadata of %s", key)
	}
	return meta, nil
}

// SaveMetadata replaces the sidecar atomically: readers see either the old or the new file.
func (s *Store) SaveMetadata(ctx context.Context, key content.ModuleKey, meta content.Metadata) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding metadata")
	}

	pf, err := renameio.NewPendingFile(filepath.Join(s.moduleDir(key), content.MetadataFileName), renameio.WithPermissions(filePerm))
	if err != nil {
		return errors.Wrap(err, "creating pending metadata file")
	}
	defer func() { _ = pf.Cleanup() }()

	if _, err = pf.Write(data); err != nil {
		return errors.Wrap(err, "writing metadata")
	}
	if err = pf.CloseAtomicallyReplace(); err != nil {
		return errors.Wrap(err, "replacing metadata")
	}
	return nil
}

func (s *Store) RemoveModule(ctx context.Context, key content.ModuleKey) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := s.moduleDir(key)
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return &os.PathError{Op: "remove", Path: dir, Err: os.ErrNotExist}
	}
	return os.RemoveAll(dir)
}

func (s *Store) RemoveModuleIfEmpty(ctx context.Context, key content.ModuleKey) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := s.moduleDir(key)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrap(err, "reading module dir")
	}
	if len(entries) > 0 {
		return nil
	}
	return os.Remove(dir)
}

// ListModules walks the 3 levels of the tree. A missing root holds no module.
func (s *Store) ListModules(ctx context.Context) ([]content.ModuleKey, error) {
	subjects, err := subDirs(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return []content.ModuleKey{}, nil
		}
		return nil, errors.Wrap(err, "reading videos dir")
	}

	keys := make([]content.ModuleKey, 0)
	for _, subj := range subjects {
		subSubjects, err := subDirs(filepath.Join(s.root, subj))
		if err != nil {
			return nil, err
		}
		for _, ss := range subSubjects {
			if err = ctx.Err(); err != nil {
				return nil, err
			}
			modules, err := subDirs(filepath.Join(s.root, subj, ss))
			if err != nil {
				return nil, err
			}
			for _, m := range modules {
				keys = append(keys, content.ModuleKey{Subject: subj, SubSubject: ss, Module: m})
			}
		}
	}
	return keys, nil
}

func subDirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// ctxReader stops a copy once ctx is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (cr ctxReader) Read(p []byte) (int, error) {
	if err := cr.ctx.Err(); err != nil {
		return 0, err
	}
	return cr.r.Read(p)
}
