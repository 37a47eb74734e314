package echoapi

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/videoteca/core"
	"github.com/trezcool/videoteca/core/content"
	"github.com/trezcool/videoteca/services/metrics"
)

const (
	uploadFilesField = "videos"

	msgFileDeleted   = "file deleted successfully"
	msgModuleDeleted = "module deleted successfully"
)

type contentApi struct {
	svc      *content.Service
	conf     *core.Config
	validate *validator.Validate
}

func registerContentAPI(g *echo.Group, admin []echo.MiddlewareFunc, rateLimit echo.MiddlewareFunc, deps ServerDeps) {
	api := contentApi{
		svc:      deps.ContentSvc,
		conf:     deps.Conf,
		validate: deps.Validate,
	}

	g.POST("/upload", api.upload, append([]echo.MiddlewareFunc{rateLimit}, admin...)...)
	g.GET("/upload", methodNotAllowed)
	g.GET("/content", api.list)
	g.DELETE("/content", api.destroy, admin...)
	g.GET("/subjects", api.stats)
	g.GET("/module/:subject/:subSubject/:module", api.retrieve)
}

func methodNotAllowed(echo.Context) error {
	return errMethodNotAllowed
}

// Handlers

func (api *contentApi) upload(ctx echo.Context) error {
	data, cleanup, err := bindUpload(ctx)
	if err != nil {
		metrics.IncUpload(metrics.OutcomeInvalid)
		return err
	}
	defer cleanup()

	if err = data.Validate(api.validate, api.conf.Storage); err != nil {
		metrics.IncUpload(metrics.OutcomeInvalid)
		return err
	}

	videos, err := api.svc.Upload(ctx.Request().Context(), data)
	if err != nil {
		metrics.IncUpload(metrics.OutcomeError)
		return errors.Wrap(err, "uploading videos")
	}
	metrics.IncUpload(metrics.OutcomeSuccess)

	files := make([]string, 0, len(videos))
	for _, v := range videos {
		files = append(files, v.FileName)
		metrics.RecordStoredVideo(v.Size)
	}
	return ctx.JSON(http.StatusOK, UploadResponse{
		Success: true,
		Message: fmt.Sprintf("%d videos uploaded successfully", len(videos)),
		Files:   files,
		Path:    api.conf.Storage.PublicPath + "/" + data.ModuleKey.String() + "/",
	})
}

// bindUpload reads the multipart form: `subject`, `subSubject`, `module` and the `videos` files.
// cleanup removes the temporary files of the form.
func bindUpload(ctx echo.Context) (content.NewUpload, func(), error) {
	form, err := ctx.MultipartForm()
	if err != nil {
		return content.NewUpload{}, nil, core.NewValidationError(errors.New("invalid multipart form"))
	}

	value := func(key string) string {
		if vals := form.Value[key]; len(vals) > 0 {
			return vals[0]
		}
		return ""
	}
	data := content.NewUpload{
		ModuleKey: content.NewModuleKey(value("subject"), value("subSubject"), value("module")),
	}
	for _, fh := range form.File[uploadFilesField] {
		data.Files = append(data.Files, uploadFile(fh))
	}
	return data, func() { _ = form.RemoveAll() }, nil
}

func uploadFile(fh *multipart.FileHeader) content.UploadFile {
	return content.UploadFile{
		Name: fh.Filename,
		Type: fh.Header.Get(echo.HeaderContentType),
		Size: fh.Size,
		Open: func() (io.ReadCloser, error) { return fh.Open() },
	}
}

func (api *contentApi) list(ctx echo.Context) error {
	contents, err := api.svc.List(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing content")
	}
	return ctx.JSON(http.StatusOK, ContentResponse{Content: contents})
}

func (api *contentApi) destroy(ctx echo.Context) error {
	key := content.NewModuleKey(ctx.QueryParam("subject"), ctx.QueryParam("subSubject"), ctx.QueryParam("module"))
	if err := key.Validate(api.validate, content.ErrMissingParams); err != nil {
		return err
	}

	if fileName := ctx.QueryParam("fileName"); fileName != "" {
		if err := api.svc.DeleteVideo(ctx.Request().Context(), key, fileName); err != nil {
			return errors.Wrap(err, "deleting video")
		}
		metrics.IncDeletion("video")
		return ctx.JSON(http.StatusOK, SuccessResponse{Success: true, Message: msgFileDeleted})
	}

	if err := api.svc.DeleteModule(ctx.Request().Context(), key); err != nil {
		return errors.Wrap(err, "deleting module")
	}
	metrics.IncDeletion("module")
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: true, Message: msgModuleDeleted})
}

func (api *contentApi) stats(ctx echo.Context) error {
	stats, err := api.svc.Stats(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "computing stats")
	}
	return ctx.JSON(http.StatusOK, stats)
}

func (api *contentApi) retrieve(ctx echo.Context) error {
	detail, err := api.svc.Get(ctx.Request().Context(), moduleKeyParams(ctx))
	if err != nil {
		return errors.Wrap(err, "getting module")
	}
	return ctx.JSON(http.StatusOK, detail)
}

func moduleKeyParams(ctx echo.Context) content.ModuleKey {
	return content.NewModuleKey(ctx.Param("subject"), ctx.Param("subSubject"), ctx.Param("module"))
}

type (
	SuccessResponse struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}

	UploadResponse struct {
		Success bool     `json:"success"`
		Message string   `json:"message"`
		Files   []string `json:"files"`
		Path    string   `json:"path"`
	}

	ContentResponse struct {
		Content []content.ModuleContent `json:"content"`
	}
)
