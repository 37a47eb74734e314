// Package progress records which videos of a module have been watched.
package progress

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/videoteca/core"
	"github.com/trezcool/videoteca/core/catalog"
	"github.com/trezcool/videoteca/core/content"
)

var (
	// errors
	ErrInvalidVideo = errors.New("invalid video file name")

	msgWatched   = "video marked as watched"
	msgUnwatched = "video unmarked"
)

type (
	Record struct {
		Subject       string    `json:"subject" db:"subject"`
		SubSubject    string    `json:"subSubject" db:"sub_subject"`
		Module        string    `json:"module" db:"module"`
		VideoFileName string    `json:"videoFileName" db:"video_file_name"`
		Watched       bool      `json:"watched" db:"watched"`
		UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
	}

	// Mark is a request to flag a video of a module as (un)watched. Watched defaults to true.
	Mark struct {
		content.ModuleKey `json:"-"`
		VideoFileName     string `json:"videoFileName" validate:"required"`
		Watched           *bool  `json:"watched"`
	}

	Repository interface {
		// SaveRecord inserts or replaces the record of (module, video).
		SaveRecord(ctx context.Context, rec Record) (Record, error)
		// QueryRecords returns the records of a module ordered by video file name.
		QueryRecords(ctx context.Context, key content.ModuleKey) ([]Record, error)
	}

	Service struct {
		repo     Repository
		validate *validator.Validate
	}
)

func (m Mark) isWatched() bool {
	return m.Watched == nil || *m.Watched
}

// Message describes the outcome of m for clients.
func (m Mark) Message() string {
	if m.isWatched() {
		return msgWatched
	}
	return msgUnwatched
}

func NewService(repo Repository, validate *validator.Validate) *Service {
	return &Service{repo: repo, validate: validate}
}

// Mark stores the watched state of a video of a catalog module.
func (svc *Service) Mark(ctx context.Context, m Mark) (Record, error) {
	if _, _, _, err := catalog.FindModule(m.Subject, m.SubSubject, m.Module); err != nil {
		return Record{}, err
	}
	m.VideoFileName = core.CleanString(m.VideoFileName)
	if err := svc.validate.Struct(m); err != nil {
		return Record{}, err
	}
	if !content.IsValidFileName(m.VideoFileName) {
		return Record{}, core.NewValidationError(nil, core.FieldError{Field: "videoFileName", Error: ErrInvalidVideo.Error()})
	}

	rec, err := svc.repo.SaveRecord(ctx, Record{
		Subject:       m.Subject,
		SubSubject:    m.SubSubject,
		Module:        m.Module,
		VideoFileName: m.VideoFileName,
		Watched:       m.isWatched(),
		UpdatedAt:     core.NowFunc().Truncate(time.Millisecond),
	})
	return rec, errors.Wrap(err, "saving progress")
}

// List returns the progress records of a catalog module.
func (svc *Service) List(ctx context.Context, key content.ModuleKey) ([]Record, error) {
	if _, _, _, err := catalog.FindModule(key.Subject, key.SubSubject, key.Module); err != nil {
		return nil, err
	}
	recs, err := svc.repo.QueryRecords(ctx, key)
	if err != nil {
		return nil, errors.Wrap(err, "querying progress")
	}
	return recs, nil
}
