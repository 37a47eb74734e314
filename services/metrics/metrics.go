// Package metrics exposes the Prometheus metrics of the videoteca API.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "videoteca"

// upload outcomes
const (
	OutcomeSuccess = "success"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

var (
	uploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Total number of upload requests, by outcome.",
	}, []string{"outcome"})

	uploadedVideosTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploaded_videos_total",
		Help:      "Total number of videos stored.",
	})

	uploadedBytesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploaded_bytes_total",
		Help:      "Total number of video bytes stored.",
	})

	deletionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "deletions_total",
		Help:      "Total number of deletions, by target (video|module).",
	}, []string{"target"})

	rateLimitedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of upload requests rejected by the rate limiter.",
	})

	progressMarksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "progress_marks_total",
		Help:      "Total number of progress updates, by watched state.",
	}, []string{"watched"})

	// route is the registered echo path, never the raw URL
	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests, by method, route and status code.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "code"})
)

func IncUpload(outcome string) { uploadsTotal.WithLabelValues(outcome).Inc() }

func RecordStoredVideo(size int64) {
	uploadedVideosTotal.Inc()
	uploadedBytesTotal.Add(float64(size))
}

func IncDeletion(target string) { deletionsTotal.WithLabelValues(target).Inc() }

func IncRateLimited() { rateLimitedTotal.Inc() }

func IncProgressMark(watched bool) {
	progressMarksTotal.WithLabelValues(strconv.FormatBool(watched)).Inc()
}

func ObserveRequest(method, route string, code int, elapsed time.Duration) {
	requestDuration.WithLabelValues(method, route, strconv.Itoa(code)).Observe(elapsed.Seconds())
}
