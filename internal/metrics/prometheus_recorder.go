package metrics

import (
	"strconv"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "sitegen"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	buildDuration    prom.Histogram
	buildOutcome     *prom.CounterVec
	pages            *prom.CounterVec
	searchQueries    *prom.CounterVec
	inquiries        *prom.CounterVec
	deliveryFailures *prom.CounterVec
	retries          *prom.CounterVec
	httpDuration     *prom.HistogramVec
}

// NewPrometheusRecorder constructs the collectors and registers them on reg.
// A nil registry gets a fresh one.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Total prerender duration",
			Buckets:   prom.DefBuckets,
		}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "build_outcomes_total",
			Help:      "Prerender runs by final status",
		}, []string{"outcome"}),
		pages: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "pages_total",
			Help:      "Generated documents by result",
		}, []string{"result"}),
		searchQueries: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "search_queries_total",
			Help:      "Search queries by mode and whether anything matched",
		}, []string{"mode", "matched"}),
		inquiries: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "inquiries_total",
			Help:      "Form submissions by kind and result",
		}, []string{"kind", "result"}),
		deliveryFailures: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "inquiry_delivery_failures_total",
			Help:      "Failed inquiry notifications and events by channel",
		}, []string{"channel"}),
		retries: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "retries_total",
			Help:      "Retried operations after transient failures",
		}, []string{"operation"}),
		httpDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and status",
			Buckets:   prom.DefBuckets,
		}, []string{"method", "status"}),
	}
	reg.MustRegister(pr.buildDuration, pr.buildOutcome, pr.pages, pr.searchQueries,
		pr.inquiries, pr.deliveryFailures, pr.retries, pr.httpDuration)
	return pr
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome BuildOutcomeLabel) {
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) IncPage(result PageResult) {
	p.pages.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) IncSearchQuery(mode string, hits int) {
	p.searchQueries.WithLabelValues(mode, strconv.FormatBool(hits > 0)).Inc()
}

func (p *PrometheusRecorder) IncInquiry(kind string, result InquiryResult) {
	p.inquiries.WithLabelValues(kind, string(result)).Inc()
}

func (p *PrometheusRecorder) IncDeliveryFailure(channel string) {
	p.deliveryFailures.WithLabelValues(channel).Inc()
}

func (p *PrometheusRecorder) IncRetry(operation string) {
	p.retries.WithLabelValues(operation).Inc()
}

func (p *PrometheusRecorder) ObserveHTTPRequest(method string, status int, d time.Duration) {
	p.httpDuration.WithLabelValues(method, strconv.Itoa(status)).Observe(d.Seconds())
}
