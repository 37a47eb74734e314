package inmemdb

import (
	"context"
	"sort"

	"github.com/trezcool/videoteca/core/content"
	"github.com/trezcool/videoteca/core/progress"
)

type progressRepository struct {
	db *progressTable
}

var _ progress.Repository = (*progressRepository)(nil)

func NewProgressRepository(db *DB) progress.Repository {
	return &progressRepository{db: db.progress}
}

func (repo *progressRepository) SaveRecord(_ context.Context, rec progress.Record) (progress.Record, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	mod := content.ModuleKey{Subject: rec.Subject, SubSubject: rec.SubSubject, Module: rec.Module}
	repo.db.table[recordKey{module: mod.String(), video: rec.VideoFileName}] = &rec
	return rec, nil
}

func (repo *progressRepository) QueryRecords(_ context.Context, key content.ModuleKey) ([]progress.Record, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	recs := make([]progress.Record, 0)
	for k, rec := range repo.db.table {
		if k.module == key.String() {
			recs = append(recs, *rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].VideoFileName < recs[j].VideoFileName })
	return recs, nil
}
