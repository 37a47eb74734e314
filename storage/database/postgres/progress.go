package pgrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/videoteca/core/content"
	"github.com/trezcool/videoteca/core/progress"
)

type progressRepository struct {
	db *sqlx.DB
}

var _ progress.Repository = (*progressRepository)(nil)

func NewProgressRepository(db *sqlx.DB) progress.Repository {
	return &progressRepository{db: db}
}

func (repo *progressRepository) SaveRecord(ctx context.Context, rec progress.Record) (progress.Record, error) {
	q := `
	INSERT INTO progress (subject, sub_subject, module, video_file_name, watched, updated_at)
	VALUES (:subject, :sub_subject, :module, :video_file_name, :watched, :updated_at)
	ON CONFLICT (subject, sub_subject, module, video_file_name)
	DO UPDATE SET watched = EXCLUDED.watched, updated_at = EXCLUDED.updated_at`

	if _, err := repo.db.NamedExecContext(ctx, q, rec); err != nil {
		return progress.Record{}, errors.Wrap(err, "upserting progress")
	}
	return rec, nil
}

func (repo *progressRepository) QueryRecords(ctx context.Context, key content.ModuleKey) ([]progress.Record, error) {
	q := `
	SELECT subject, sub_subject, module, video_file_name, watched, updated_at
	FROM progress
	WHERE subject = $1 AND sub_subject = $2 AND module = $3
	ORDER BY video_file_name`

	recs := make([]progress.Record, 0)
	if err := repo.db.SelectContext(ctx, &recs, q, key.Subject, key.SubSubject, key.Module); err != nil {
		return nil, errors.Wrap(err, "selecting progress")
	}
	for i := range recs {
		recs[i].UpdatedAt = recs[i].UpdatedAt.UTC()
	}
	return recs, nil
}
