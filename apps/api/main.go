package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"

	"github.com/trezcool/videoteca/apps/api/di"
	echoapi "github.com/trezcool/videoteca/apps/api/echo"
	"github.com/trezcool/videoteca/core"
)

func main() {
	c := di.New(core.NewConfig)
	must(c.Invoke(run))
}

func run(conf *core.Config, logger core.Logger, storage di.Storage, server echoapi.Server) {
	logger.Info(fmt.Sprintf("starting %s %s (progress backend: %s)", conf.AppName, conf.Build, conf.ProgressBackend))
	defer logger.Info("stopped")

	defer func() {
		if err := storage.Close(); err != nil {
			logger.Error(fmt.Sprintf("closing database: %v", err), err)
		}
	}()

	// pprof and expvar register /debug/pprof and /debug/vars on the default mux
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	go server.Start()

	select {
	case err := <-server.Errors():
		logger.Error(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: shutting down", sig))

		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Error(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
