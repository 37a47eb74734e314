package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/videoteca/core/catalog"
)

func registerCatalogAPI(g *echo.Group) {
	g.GET("/catalog", listSubjects)
	g.GET("/catalog/:subject", listSubSubjects)
	g.GET("/catalog/:subject/:subSubject", listModules)
}

func listSubjects(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, SubjectsResponse{Subjects: catalog.Subjects()})
}

func listSubSubjects(ctx echo.Context) error {
	subject, err := catalog.FindSubject(ctx.Param("subject"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, SubSubjectsResponse{
		Subject:     subject.Title,
		SubSubjects: subject.SubSubjects,
	})
}

func listModules(ctx echo.Context) error {
	subject, subSubject, err := catalog.FindSubSubject(ctx.Param("subject"), ctx.Param("subSubject"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, ModulesResponse{
		Subject:    subject.Title,
		SubSubject: subSubject.Name,
		Modules:    subSubject.Modules,
	})
}

type (
	SubjectsResponse struct {
		Subjects []catalog.Subject `json:"subjects"`
	}

	SubSubjectsResponse struct {
		Subject     string               `json:"subject"`
		SubSubjects []catalog.SubSubject `json:"subSubjects"`
	}

	ModulesResponse struct {
		Subject    string           `json:"subject"`
		SubSubject string           `json:"subSubject"`
		Modules    []catalog.Module `json:"modules"`
	}
)
