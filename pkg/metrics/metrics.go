package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/promptstash/promptstash/internal/common/config"
)

type Metrics struct {
	registry   *prometheus.Registry
	namespace  string
	httpReqCnt *prometheus.CounterVec
	httpDur    *prometheus.HistogramVec
	httpInfl   *prometheus.GaugeVec
	uploadCnt  *prometheus.CounterVec
	uploadSize prometheus.Histogram
	enrichCnt  *prometheus.CounterVec
}

func New(cfg config.MetricsConfig) *Metrics {
	ns := cfg.Namespace
	r := prometheus.NewRegistry()
	// Register standard process and Go collectors
	r.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	r.MustRegister(collectors.NewGoCollector())

	httpReqCnt := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: ns, Name: "http_requests_total"}, []string{"method", "route", "status"})
	httpDur := prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: ns, Name: "http_request_duration_seconds", Buckets: cfg.Buckets}, []string{"method", "route", "status"})
	httpInfl := prometheus.NewGaugeVec(prometheus.GaugeOpts{Namespace: ns, Name: "http_requests_inflight"}, []string{"route"})
	r.MustRegister(httpReqCnt, httpDur, httpInfl)

	uploadCnt := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: ns, Name: "attachment_uploads_total"}, []string{"status"})
	uploadSize := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: ns,
		Name:      "attachment_upload_bytes",
		Buckets:   prometheus.ExponentialBuckets(1024, 4, 8),
	})
	r.MustRegister(uploadCnt, uploadSize)

	enrichCnt := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: ns, Name: "enrichment_requests_total"}, []string{"source", "result"})
	r.MustRegister(enrichCnt)

	return &Metrics{
		registry:   r,
		namespace:  ns,
		httpReqCnt: httpReqCnt,
		httpDur:    httpDur,
		httpInfl:   httpInfl,
		uploadCnt:  uploadCnt,
		uploadSize: uploadSize,
		enrichCnt:  enrichCnt,
	}
}

// UploadDone records a finished attachment upload attempt
func (m *Metrics) UploadDone(status string, size int64) {
	m.uploadCnt.WithLabelValues(status).Inc()
	if size > 0 {
		m.uploadSize.Observe(float64(size))
	}
}

// EnrichmentDone records a third-party fetch. source is "proxy" or
// "youtube"; result is "hit", "miss" or "error".
func (m *Metrics) EnrichmentDone(source, result string) {
	m.enrichCnt.WithLabelValues(source, result).Inc()
}

func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		m.httpInfl.WithLabelValues(route).Inc()
		start := time.Now()
		c.Next()
		status := httpStatus(c.Writer.Status())
		m.httpReqCnt.WithLabelValues(c.Request.Method, route, status).Inc()
		m.httpDur.WithLabelValues(c.Request.Method, route, status).Observe(time.Since(start).Seconds())
		m.httpInfl.WithLabelValues(route).Dec()
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func httpStatus(code int) string { return strconv.Itoa(code) }
