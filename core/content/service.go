package content

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"sort"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/trezcool/videoteca/core"
	"github.com/trezcool/videoteca/core/catalog"
)

const defaultConcurrentReads = 8

type (
	// Repository stores the videos and the metadata sidecar of every module.
	Repository interface {
		// CreateModule creates the module directory (and its parents) if it does not exist.
		CreateModule(ctx context.Context, key ModuleKey) error
		// SaveVideo writes r as fileName inside the module directory and returns the number of bytes written.
		SaveVideo(ctx context.Context, key ModuleKey, fileName string, r io.Reader) (int64, error)
		// RemoveVideo deletes a video; the returned error satisfies os.IsNotExist if it does not exist.
		RemoveVideo(ctx context.Context, key ModuleKey, fileName string) error
		// ListVideos returns the names of the files of the module, sidecar excluded.
		ListVideos(ctx context.Context, key ModuleKey) ([]string, error)
		// LoadMetadata returns ErrNoMetadata if the module has no sidecar.
		LoadMetadata(ctx context.Context, key ModuleKey) (Metadata, error)
		// SaveMetadata atomically replaces the sidecar of the module.
		SaveMetadata(ctx context.Context, key ModuleKey, meta Metadata) error
		// RemoveModule deletes the module directory recursively;
		// the returned error satisfies os.IsNotExist if it does not exist.
		RemoveModule(ctx context.Context, key ModuleKey) error
		// RemoveModuleIfEmpty deletes the module directory only if it holds no file.
		RemoveModuleIfEmpty(ctx context.Context, key ModuleKey) error
		// ListModules returns the keys of all `subject/subSubject/module` directories.
		ListModules(ctx context.Context) ([]ModuleKey, error)
	}

	Service struct {
		repo            Repository
		logger          core.Logger
		locks           *moduleLocks
		concurrentReads int
	}
)

func NewService(repo Repository, logger core.Logger) *Service {
	return &Service{
		repo:            repo,
		logger:          logger,
		locks:           newModuleLocks(),
		concurrentReads: defaultConcurrentReads,
	}
}

// Upload stores the files of nu under generated names and appends them to the module metadata.
// nu must have been validated. Writers of the same module are serialized; on failure every file
// written by this call is removed again.
func (svc *Service) Upload(ctx context.Context, nu NewUpload) ([]Video, error) {
	key := nu.ModuleKey
	unlock := svc.locks.Lock(key.String())
	defer unlock()

	meta, err := svc.repo.LoadMetadata(ctx, key)
	hadMetadata := err == nil
	if err != nil && !errors.Is(err, ErrNoMetadata) {
		return nil, core.NewServerError("error reading module metadata", err)
	}

	if err = svc.repo.CreateModule(ctx, key); err != nil {
		return nil, core.NewServerError("error creating folder structure", err)
	}

	now := core.NowFunc().Truncate(time.Millisecond)
	saved := make([]Video, 0, len(nu.Files))
	// the cleanup must still run once the request is cancelled
	rbCtx := context.WithoutCancel(ctx)
	rollback := func() {
		for _, v := range saved {
			if rmErr := svc.repo.RemoveVideo(rbCtx, key, v.FileName); rmErr != nil && !isNotExist(rmErr) {
				svc.logger.Error(fmt.Sprintf("rolling back %s/%s: %v", key, v.FileName, rmErr), rmErr)
			}
		}
		if !hadMetadata {
			if rmErr := svc.repo.RemoveModuleIfEmpty(rbCtx, key); rmErr != nil {
				svc.logger.Warn(fmt.Sprintf("rolling back %s: %v", key, rmErr), rmErr)
			}
		}
	}

	for _, f := range nu.Files {
		fileName := NewFileName(f.Name, now)
		size, err := svc.saveFile(ctx, key, fileName, f)
		if err != nil {
			// a partially written file must go too
			saved = append(saved, Video{FileName: fileName})
			rollback()
			return nil, core.NewServerError("error saving "+f.Name, err)
		}
		saved = append(saved, Video{
			FileName:     fileName,
			OriginalName: f.Name,
			Size:         size,
			UploadDate:   now,
			Type:         f.Type,
		})
	}

	if meta.Videos == nil {
		meta.Videos = []Video{}
	}
	meta.Videos = append(meta.Videos, saved...)
	meta.LastUpdated = now
	meta.Subject = key.Subject
	meta.SubSubject = key.SubSubject
	meta.Module = key.Module

	if err = svc.repo.SaveMetadata(ctx, key, meta); err != nil {
		rollback()
		return nil, core.NewServerError("error saving module metadata", err)
	}
	return saved, nil
}

func (svc *Service) saveFile(ctx context.Context, key ModuleKey, fileName string, f UploadFile) (int64, error) {
	r, err := f.Open()
	if err != nil {
		return 0, errors.Wrap(err, "opening upload")
	}
	defer func() { _ = r.Close() }()
	return svc.repo.SaveVideo(ctx, key, fileName, r)
}

// loadAll reads the metadata of keys concurrently. Modules without (readable) metadata are left nil.
func (svc *Service) loadAll(ctx context.Context, keys []ModuleKey) ([]*Metadata, error) {
	metas := make([]*Metadata, len(keys))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(svc.concurrentReads)
	for i, key := range keys {
		i, key := i, key
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			meta, err := svc.repo.LoadMetadata(gctx, key)
			if err != nil {
				if !errors.Is(err, ErrNoMetadata) {
					svc.logger.Warn(fmt.Sprintf("reading metadata of %s: %v", key, err), err)
				}
				return nil
			}
			metas[i] = &meta
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return metas, nil
}

// List returns every module holding at least 1 video, most recently updated first.
func (svc *Service) List(ctx context.Context) ([]ModuleContent, error) {
	keys, err := svc.repo.ListModules(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "listing modules")
	}
	metas, err := svc.loadAll(ctx, keys)
	if err != nil {
		return nil, errors.Wrap(err, "loading metadata")
	}

	contents := make([]ModuleContent, 0, len(keys))
	for i, key := range keys {
		meta := metas[i]
		if meta == nil || !meta.HasContent() {
			continue
		}
		contents = append(contents, ModuleContent{
			Subject:     key.Subject,
			SubSubject:  key.SubSubject,
			Module:      key.Module,
			Videos:      meta.Videos,
			LastUpdated: meta.LastUpdated,
			VideoCount:  len(meta.Videos),
			TotalSize:   meta.TotalSize(),
		})
	}
	sort.SliceStable(contents, func(i, j int) bool {
		return contents[i].LastUpdated.After(contents[j].LastUpdated)
	})
	return contents, nil
}

// Get describes a catalog module. A module without metadata or videos is returned empty, with Exists unset.
func (svc *Service) Get(ctx context.Context, key ModuleKey) (ModuleDetail, error) {
	subj, ss, m, err := catalog.FindModule(key.Subject, key.SubSubject, key.Module)
	if err != nil {
		return ModuleDetail{}, err
	}

	detail := ModuleDetail{
		Subject:    SubjectRef{Title: subj.Title, Slug: subj.Slug},
		SubSubject: NodeRef{Name: ss.Name, Slug: ss.Slug},
		Module:     NodeRef{Name: m.Name, Slug: m.Slug},
		Videos:     []Video{},
	}

	meta, err := svc.repo.LoadMetadata(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNoMetadata) {
			svc.logger.Warn(fmt.Sprintf("reading metadata of %s: %v", key, err), err)
		}
		return detail, nil
	}
	if meta.HasContent() {
		lastUpdated := meta.LastUpdated
		detail.Videos = meta.Videos
		detail.VideoCount = len(meta.Videos)
		detail.TotalSize = meta.TotalSize()
		detail.LastUpdated = &lastUpdated
		detail.Exists = true
	}
	return detail, nil
}

// Stats aggregates the uploaded content of every catalog module per sub-subject and subject.
func (svc *Service) Stats(ctx context.Context) (Stats, error) {
	subjects := catalog.Subjects()

	var keys []ModuleKey
	for _, subj := range subjects {
		for _, ss := range subj.SubSubjects {
			for _, m := range ss.Modules {
				keys = append(keys, ModuleKey{Subject: subj.Slug, SubSubject: ss.Slug, Module: m.Slug})
			}
		}
	}
	metas, err := svc.loadAll(ctx, keys)
	if err != nil {
		return Stats{}, errors.Wrap(err, "loading metadata")
	}

	var (
		stats = Stats{Subjects: make([]SubjectStats, 0, len(subjects))}
		i     int
	)
	for _, subj := range subjects {
		subjStats := SubjectStats{
			Title:        subj.Title,
			Slug:         subj.Slug,
			TotalModules: subj.TotalModules(),
			SubSubjects:  make([]SubSubjectStats, 0, len(subj.SubSubjects)),
		}

		for _, ss := range subj.SubSubjects {
			ssStats := SubSubjectStats{
				Name:         ss.Name,
				Slug:         ss.Slug,
				TotalModules: len(ss.Modules),
				Modules:      make([]ModuleStats, 0, len(ss.Modules)),
			}

			for _, m := range ss.Modules {
				meta := metas[i]
				i++

				mStats := ModuleStats{Name: m.Name, Slug: m.Slug}
				if meta != nil && meta.HasContent() {
					lastUpdated := meta.LastUpdated
					mStats.HasContent = true
					mStats.VideoCount = len(meta.Videos)
					mStats.LastUpdated = &lastUpdated

					ssStats.TotalVideos += mStats.VideoCount
					ssStats.ModulesWithContent++
					subjStats.TotalVideos += mStats.VideoCount
					subjStats.ModulesWithContent++
					subjStats.TotalSize += meta.TotalSize()
					if subjStats.LastUpdated == nil || lastUpdated.After(*subjStats.LastUpdated) {
						subjStats.LastUpdated = &lastUpdated
					}
				}
				ssStats.Modules = append(ssStats.Modules, mStats)
			}
			subjStats.SubSubjects = append(subjStats.SubSubjects, ssStats)
		}

		stats.Subjects = append(stats.Subjects, subjStats)
		stats.Summary.TotalSubjects++
		stats.Summary.TotalModules += subjStats.TotalModules
		stats.Summary.TotalModulesWithContent += subjStats.ModulesWithContent
		stats.Summary.TotalVideos += subjStats.TotalVideos
		stats.Summary.TotalSize += subjStats.TotalSize
	}
	return stats, nil
}

// DeleteVideo removes a video and its metadata record. The module directory goes away with its last video.
func (svc *Service) DeleteVideo(ctx context.Context, key ModuleKey, fileName string) error {
	if !IsValidFileName(fileName) {
		return core.NewValidationError(ErrInvalidFileName)
	}

	unlock := svc.locks.Lock(key.String())
	defer unlock()

	meta, err := svc.repo.LoadMetadata(ctx, key)
	hadMetadata := err == nil
	if err != nil && !errors.Is(err, ErrNoMetadata) {
		return core.NewServerError("error deleting file", err)
	}
	idx := meta.indexOf(fileName)

	if err = svc.repo.RemoveVideo(ctx, key, fileName); err != nil {
		if !isNotExist(err) {
			return core.NewServerError("error deleting file", err)
		}
		if idx < 0 {
			return ErrVideoNotFound
		}
		// stale record: the file is already gone
	}

	if !hadMetadata {
		// untracked files of the module stay
		if err = svc.repo.RemoveModuleIfEmpty(ctx, key); err != nil {
			return core.NewServerError("error deleting file", err)
		}
		return nil
	}

	if idx >= 0 {
		meta.Videos = append(meta.Videos[:idx], meta.Videos[idx+1:]...)
		if !meta.HasContent() {
			if err = svc.repo.RemoveModule(ctx, key); err != nil && !isNotExist(err) {
				return core.NewServerError("error deleting file", err)
			}
			return nil
		}
	}
	meta.LastUpdated = core.NowFunc().Truncate(time.Millisecond)
	if err = svc.repo.SaveMetadata(ctx, key, meta); err != nil {
		return core.NewServerError("error deleting file", err)
	}
	return nil
}

// DeleteModule removes a module directory with all its videos.
func (svc *Service) DeleteModule(ctx context.Context, key ModuleKey) error {
	unlock := svc.locks.Lock(key.String())
	defer unlock()

	if err := svc.repo.RemoveModule(ctx, key); err != nil {
		if isNotExist(err) {
			return ErrModuleNotFound
		}
		return core.NewServerError("error deleting module", err)
	}
	return nil
}

// Prune reconciles the stored videos with the metadata: files without record and records without file
// are dropped, and modules left without videos are removed. Modules with unreadable metadata are skipped.
func (svc *Service) Prune(ctx context.Context) (PruneReport, error) {
	var report PruneReport

	keys, err := svc.repo.ListModules(ctx)
	if err != nil {
		return report, errors.Wrap(err, "listing modules")
	}
	for _, key := range keys {
		if err = ctx.Err(); err != nil {
			return report, err
		}
		if err = svc.pruneModule(ctx, key, &report); err != nil {
			return report, errors.Wrapf(err, "pruning %s", key)
		}
	}
	return report, nil
}

func (svc *Service) pruneModule(ctx context.Context, key ModuleKey, report *PruneReport) error {
	unlock := svc.locks.Lock(key.String())
	defer unlock()

	meta, err := svc.repo.LoadMetadata(ctx, key)
	if err != nil && !errors.Is(err, ErrNoMetadata) {
		svc.logger.Warn(fmt.Sprintf("skipping %s: %v", key, err), err)
		report.Skipped = append(report.Skipped, key.String())
		return nil
	}

	files, err := svc.repo.ListVideos(ctx, key)
	if err != nil {
		return err
	}
	onDisk := make(map[string]bool, len(files))
	for _, f := range files {
		onDisk[f] = true
	}

	kept := make([]Video, 0, len(meta.Videos))
	recorded := make(map[string]bool, len(meta.Videos))
	for _, v := range meta.Videos {
		if !onDisk[v.FileName] {
			report.DroppedRecords = append(report.DroppedRecords, key.String()+"/"+v.FileName)
			continue
		}
		recorded[v.FileName] = true
		kept = append(kept, v)
	}
	changed := len(kept) != len(meta.Videos)

	for _, f := range files {
		if recorded[f] {
			continue
		}
		if err = svc.repo.RemoveVideo(ctx, key, f); err != nil && !isNotExist(err) {
			return err
		}
		report.RemovedFiles = append(report.RemovedFiles, key.String()+"/"+f)
	}

	if len(kept) == 0 {
		if err = svc.repo.RemoveModule(ctx, key); err != nil && !isNotExist(err) {
			return err
		}
		report.RemovedModules = append(report.RemovedModules, key.String())
		return nil
	}
	if changed {
		meta.Videos = kept
		meta.LastUpdated = core.NowFunc().Truncate(time.Millisecond)
		return svc.repo.SaveMetadata(ctx, key, meta)
	}
	return nil
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
