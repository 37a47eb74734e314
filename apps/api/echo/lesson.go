package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/videoteca/core/lesson"
)

func registerLessonAPI(g *echo.Group) {
	g.GET("/lessons/:setor/:estacao/:modulo", getModulePage)
	g.GET("/lessons/:setor/:estacao/:modulo/:conteudo", getContentPage)
}

func getModulePage(ctx echo.Context) error {
	page, err := lesson.FindModulePage(ctx.Param("setor"), ctx.Param("estacao"), ctx.Param("modulo"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, page)
}

func getContentPage(ctx echo.Context) error {
	page, err := lesson.FindContentPage(ctx.Param("setor"), ctx.Param("estacao"), ctx.Param("modulo"), ctx.Param("conteudo"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, page)
}
