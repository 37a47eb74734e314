package inmemdb

import (
	"sync"

	"github.com/trezcool/videoteca/core/progress"
)

type (
	DB struct {
		progress *progressTable
	}

	progressTable struct {
		sync.RWMutex
		table map[recordKey]*progress.Record
	}

	recordKey struct {
		module string
		video  string
	}
)

func Open() *DB {
	return &DB{
		progress: &progressTable{table: make(map[recordKey]*progress.Record)},
	}
}
