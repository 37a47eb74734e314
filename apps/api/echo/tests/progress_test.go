package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/trezcool/videoteca/apps/api/echo"
	"github.com/trezcool/videoteca/core/progress"
)

func Test_progressApi(t *testing.T) {
	app := setup(t)
	const (
		modulePath = "/v1/module/goa/estacao-os/modulo-1"
		video      = "1700000000000-abc123def.mp4"
	)
	mark := func(fileName string, watched *bool) []byte {
		return marchallObj(t, map[string]interface{}{"videoFileName": fileName, "watched": watched})
	}
	bPtr := func(b bool) *bool { return &b }

	runHTTPTests(t, app, []httpTest{
		{
			name: "Required video", method: http.MethodPost, path: modulePath, body: mark("", nil),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"videoFileName": "this field is required"}),
		},
		{
			name: "Unsafe video", method: http.MethodPost, path: modulePath, body: mark("../metadata.json", nil),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"videoFileName": "invalid video file name"}),
		},
		{
			name: "Unknown module", method: http.MethodPost, path: "/v1/module/goa/estacao-os/modulo-0", body: mark(video, nil),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "module not found"}),
		},
		{
			name: "Empty progress", path: modulePath + "/progress",
			wantCode: http.StatusOK, wantData: []byte(`{"progress":[]}`),
		},
	})

	markVideo := func(t *testing.T, watched *bool) MarkResponse {
		req, rec := newRequest(http.MethodPost, modulePath, mark(video, watched))
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp MarkResponse
		unmarchallObj(t, rec.Body.Bytes(), &resp)
		return resp
	}

	t.Run("Watched by default", func(t *testing.T) {
		resp := markVideo(t, nil)
		assert.True(t, resp.Success)
		assert.Equal(t, "video marked as watched", resp.Message)
		assert.Equal(t, "goa", resp.Record.Subject)
		assert.Equal(t, "estacao-os", resp.Record.SubSubject)
		assert.Equal(t, "modulo-1", resp.Record.Module)
		assert.Equal(t, video, resp.Record.VideoFileName)
		assert.True(t, resp.Record.Watched)
	})

	t.Run("Unwatched", func(t *testing.T) {
		resp := markVideo(t, bPtr(false))
		assert.Equal(t, "video unmarked", resp.Message)
		assert.False(t, resp.Record.Watched)
	})

	t.Run("List", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, modulePath+"/progress")
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp ProgressResponse
		unmarchallObj(t, rec.Body.Bytes(), &resp)
		require.Len(t, resp.Progress, 1)
		assert.Equal(t, progress.Record{
			Subject:       "goa",
			SubSubject:    "estacao-os",
			Module:        "modulo-1",
			VideoFileName: video,
			Watched:       false,
			UpdatedAt:     resp.Progress[0].UpdatedAt,
		}, resp.Progress[0])
		assert.False(t, resp.Progress[0].UpdatedAt.IsZero())
	})
}
