package tests

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/videoteca/core"
)

func TestServer(t *testing.T) {
	app := setup(t)

	t.Run("Home", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/")
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Welcome to Videoteca API!", rec.Body.String())
	})

	runHTTPTests(t, app, []httpTest{
		{name: "Health", path: "/health", wantCode: http.StatusOK, wantData: []byte(`{"status":"ok"}`)},
		{name: "Trailing slash", path: "/health/", wantCode: http.StatusOK, wantData: []byte(`{"status":"ok"}`)},
		{name: "Unknown route", path: "/v1/lol", wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "Not Found"})},
		{name: "Unknown video", path: "/videos/goa/estacao-os/modulo-1/1-abc.mp4", wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "Not Found"})},
	})

	t.Run("Request ID", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/health")
		app.ServeHTTP(rec, req)
		assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
	})

	t.Run("Metrics", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/metrics")
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.True(t, strings.Contains(body, `videoteca_http_request_duration_seconds_count{code="200",method="GET",route="/health"}`), body)
	})
}

func TestServer_debugErrors(t *testing.T) {
	app := setup(t, func(conf *core.Config) { conf.Debug = true })

	dir := filepath.Join(app.conf.Storage.VideosDir, "goa", "estacao-os", "modulo-1")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "metadata.json"), []byte("{lol"), 0o644))

	req, rec := newUploadRequest(t, getToken(t, app.conf), "goa", "estacao-os", "modulo-1", mp4("a.mp4", 3))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	unmarchallObj(t, rec.Body.Bytes(), &body)
	assert.Equal(t, "error reading module metadata", body["error"], "client message is kept")
	assert.True(t, strings.HasPrefix(body["debug"], "uploading videos: error reading module metadata: "), body["debug"])
}
