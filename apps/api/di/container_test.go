package di

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	echoapi "github.com/trezcool/videoteca/apps/api/echo"
	"github.com/trezcool/videoteca/core"
)

func testConfig(t *testing.T, backend string) func() *core.Config {
	return func() *core.Config {
		conf := core.NewTestConfig(t.TempDir())
		conf.Debug = true // rollbar disabled
		conf.ProgressBackend = backend
		return conf
	}
}

func TestNew(t *testing.T) {
	c := New(testConfig(t, BackendMemory))

	err := c.Invoke(func(storage Storage, server echoapi.Server) {
		assert.Nil(t, storage.DB)
		assert.NotNil(t, storage.Progress)
		assert.NoError(t, storage.Close())

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
	require.NoError(t, err)
}

func TestNew_unknownBackend(t *testing.T) {
	c := New(testConfig(t, "mongo"))

	err := c.Invoke(func(server echoapi.Server) {
		t.Error("server should not be built")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown progress backend "mongo"`)
}
