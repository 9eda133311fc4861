// Package metrics provides Prometheus metrics for the CRM API and its model
// calls.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nexusai/nexus-crm/internal/llm"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	LLMCallsTotal       *prometheus.CounterVec
	LLMCallDuration     *prometheus.HistogramVec
	ChatRepliesTotal    *prometheus.CounterVec
	ContractRiskScore   prometheus.Histogram

	registry *prometheus.Registry
}

// New creates and registers all metrics on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nexus_http_requests_total",
				Help: "Total HTTP requests by route, method and status code.",
			},
			[]string{"route", "method", "code"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "nexus_http_request_duration_seconds",
				Help:    "HTTP request duration by route.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		LLMCallsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nexus_llm_calls_total",
				Help: "Total model calls by task, provider and status.",
			},
			[]string{"task", "provider", "status"},
		),
		LLMCallDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "nexus_llm_call_duration_seconds",
				Help:    "Model call latency by task, retries included.",
				Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 40},
			},
			[]string{"task"},
		),
		ChatRepliesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nexus_chat_replies_total",
				Help: "Total chat replies by role and matched intent.",
			},
			[]string{"role", "intent"},
		),
		ContractRiskScore: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "nexus_contract_risk_score",
				Help:    "Distribution of contract risk scores.",
				Buckets: []float64{20, 40, 60, 80, 100},
			},
		),
		registry: reg,
	}

	reg.MustRegister(m.HTTPRequestsTotal)
	reg.MustRegister(m.HTTPRequestDuration)
	reg.MustRegister(m.LLMCallsTotal)
	reg.MustRegister(m.LLMCallDuration)
	reg.MustRegister(m.ChatRepliesTotal)
	reg.MustRegister(m.ContractRiskScore)

	return m
}

// Handler returns an http.Handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordHTTP counts one request and observes its duration.
func (m *Metrics) RecordHTTP(route, method string, code int, d time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	m.HTTPRequestDuration.WithLabelValues(route).Observe(d.Seconds())
}

// RecordChat counts one chat reply.
func (m *Metrics) RecordChat(role, intent string) {
	m.ChatRepliesTotal.WithLabelValues(role, intent).Inc()
}

// ObserveContractScore records one contract analysis score.
func (m *Metrics) ObserveContractScore(score int) {
	m.ContractRiskScore.Observe(float64(score))
}

// OnCallComplete implements llm.Observer.
func (m *Metrics) OnCallComplete(event llm.LLMCallEvent) {
	status := "ok"
	if !event.Success {
		status = event.ErrorCode
		if status == "" {
			status = "error"
		}
	}
	m.LLMCallsTotal.WithLabelValues(string(event.Task), string(event.Provider), status).Inc()
	m.LLMCallDuration.WithLabelValues(string(event.Task)).Observe(float64(event.LatencyMs) / 1000)
}

var _ llm.Observer = (*Metrics)(nil)
