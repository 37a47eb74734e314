package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorders(t *testing.T) {
	videos := promtest.ToFloat64(uploadedVideosTotal)
	bytes := promtest.ToFloat64(uploadedBytesTotal)

	RecordStoredVideo(42)
	RecordStoredVideo(8)
	assert.Equal(t, videos+2, promtest.ToFloat64(uploadedVideosTotal))
	assert.Equal(t, bytes+50, promtest.ToFloat64(uploadedBytesTotal))

	invalid := promtest.ToFloat64(uploadsTotal.WithLabelValues(OutcomeInvalid))
	IncUpload(OutcomeInvalid)
	assert.Equal(t, invalid+1, promtest.ToFloat64(uploadsTotal.WithLabelValues(OutcomeInvalid)))

	modules := promtest.ToFloat64(deletionsTotal.WithLabelValues("module"))
	IncDeletion("module")
	assert.Equal(t, modules+1, promtest.ToFloat64(deletionsTotal.WithLabelValues("module")))

	watched := promtest.ToFloat64(progressMarksTotal.WithLabelValues("true"))
	IncProgressMark(true)
	assert.Equal(t, watched+1, promtest.ToFloat64(progressMarksTotal.WithLabelValues("true")))
}

func TestExposure(t *testing.T) {
	IncRateLimited()
	ObserveRequest(http.MethodGet, "/v1/content", http.StatusOK, 10*time.Millisecond)

	rec := httptest.NewRecorder()
	promhttp.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rec.Body.String()
	for _, want := range []string{
		"videoteca_rate_limited_total",
		`videoteca_http_request_duration_seconds_count{code="200",method="GET",route="/v1/content"}`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in metrics output", want)
		}
	}
}
