package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/videoteca/core/progress"
	"github.com/trezcool/videoteca/services/metrics"
)

type progressApi struct {
	svc *progress.Service
}

func registerProgressAPI(g *echo.Group, deps ServerDeps) {
	api := progressApi{svc: deps.ProgressSvc}

	g.POST("/module/:subject/:subSubject/:module", api.mark)
	g.GET("/module/:subject/:subSubject/:module/progress", api.list)
}

func (api *progressApi) mark(ctx echo.Context) error {
	var data progress.Mark
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to progress.Mark")
	}
	data.ModuleKey = moduleKeyParams(ctx)

	rec, err := api.svc.Mark(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "marking video")
	}
	metrics.IncProgressMark(rec.Watched)

	return ctx.JSON(http.StatusOK, MarkResponse{
		Success: true,
		Message: data.Message(),
		Record:  rec,
	})
}

func (api *progressApi) list(ctx echo.Context) error {
	recs, err := api.svc.List(ctx.Request().Context(), moduleKeyParams(ctx))
	if err != nil {
		return errors.Wrap(err, "listing progress")
	}
	return ctx.JSON(http.StatusOK, ProgressResponse{Progress: recs})
}

type (
	MarkResponse struct {
		Success bool            `json:"success"`
		Message string          `json:"message"`
		Record  progress.Record `json:"record"`
	}

	ProgressResponse struct {
		Progress []progress.Record `json:"progress"`
	}
)
