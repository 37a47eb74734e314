// Package di builds the dependency graph of the API with a dig.Container.
package di

import (
	"context"
	"fmt"
	"log"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/trezcool/videoteca/apps/api/echo"
	"github.com/trezcool/videoteca/core"
	"github.com/trezcool/videoteca/core/content"
	"github.com/trezcool/videoteca/core/progress"
	logsvc "github.com/trezcool/videoteca/services/logger"
	"github.com/trezcool/videoteca/storage/database"
	"github.com/trezcool/videoteca/storage/database/inmem"
	"github.com/trezcool/videoteca/storage/database/postgres"
	"github.com/trezcool/videoteca/storage/filestore"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

type (
	DBLoggerParam struct {
		dig.In
		Logger core.Logger `name:"dbLogger"`
	}

	// Storage holds the progress repository and, with the postgres backend, the DB to close on exit.
	Storage struct {
		Progress progress.Repository
		DB       *sqlx.DB
	}

	serverParams struct {
		dig.In
		Conf        *core.Config
		Logger      core.Logger
		ContentSvc  *content.Service
		ProgressSvc *progress.Service
		Validate    *validator.Validate
		Translator  ut.Translator
	}
)

func (s Storage) Close() error {
	if s.DB == nil {
		return nil
	}
	return s.DB.Close()
}

func newLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug)
	return logger
}

func newDBLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug)
	return logger
}

func newStorage(conf *core.Config, loggerParam DBLoggerParam) (Storage, error) {
	switch conf.ProgressBackend {
	case BackendMemory, "":
		return Storage{Progress: inmemdb.NewProgressRepository(inmemdb.Open())}, nil
	case BackendPostgres:
		db, err := database.SetUp(context.Background(), conf)
		if err != nil {
			loggerParam.Logger.Error(fmt.Sprintf("setting up database: %v", err), err)
			return Storage{}, err
		}
		return Storage{Progress: pgrepos.NewProgressRepository(db), DB: db}, nil
	}
	return Storage{}, errors.Errorf("unknown progress backend %q", conf.ProgressBackend)
}

func newContentRepository(conf *core.Config) content.Repository {
	return filestore.NewStore(conf.Storage.VideosDir)
}

func newValidator(translator ut.Translator) *validator.Validate {
	validate := validator.New()
	core.InitValidators(validate, translator)
	return validate
}

func newServer(p serverParams) echoapi.Server {
	return echoapi.NewServer(echoapi.ServerDeps{
		Conf:        p.Conf,
		Logger:      p.Logger,
		ContentSvc:  p.ContentSvc,
		ProgressSvc: p.ProgressSvc,
		Validate:    p.Validate,
		Translator:  p.Translator,
	})
}

// New returns the dependency injection dig.Container of the API. `newConfig` provides the *core.Config.
func New(newConfig func() *core.Config) *dig.Container {
	c := dig.New()

	must(c.Provide(newConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newDBLogger, dig.Name("dbLogger")))
	must(c.Provide(newStorage))
	must(c.Provide(func(s Storage) progress.Repository { return s.Progress }))
	must(c.Provide(newContentRepository))
	must(c.Provide(core.NewTranslator))
	must(c.Provide(newValidator))
	must(c.Provide(content.NewService))
	must(c.Provide(progress.NewService))
	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
