//go:build !noprom

package metrics

import (
	"fmt"
	"net/http"

	prom "github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
)

type promRecorder struct {
	reqTotal   *prom.CounterVec
	reqSeconds *prom.HistogramVec
	opTotal    *prom.CounterVec
	opSeconds  *prom.HistogramVec
}

func (p *promRecorder) IncRequestTotal(method string, success bool) {
	p.reqTotal.WithLabelValues(method, fmt.Sprintf("%t", success)).Inc()
}

func (p *promRecorder) ObserveRequestSeconds(method string, success bool, seconds float64) {
	p.reqSeconds.WithLabelValues(method, fmt.Sprintf("%t", success)).Observe(seconds)
}

func (p *promRecorder) IncOpTotal(op string, success bool) {
	p.opTotal.WithLabelValues(op, fmt.Sprintf("%t", success)).Inc()
}

func (p *promRecorder) ObserveOpSeconds(op string, success bool, seconds float64) {
	p.opSeconds.WithLabelValues(op, fmt.Sprintf("%t", success)).Observe(seconds)
}

func enablePrometheus(addr string) error {
	registry := prom.NewRegistry()
	p := &promRecorder{
		reqTotal: prom.NewCounterVec(prom.CounterOpts{
			Name: "cyrest_requests_total",
			Help: "Total number of HTTP requests sent to Cytoscape",
		}, []string{"method", "success"}),
		reqSeconds: prom.NewHistogramVec(prom.HistogramOpts{
			Name:    "cyrest_request_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prom.DefBuckets,
		}, []string{"method", "success"}),
		opTotal: prom.NewCounterVec(prom.CounterOpts{
			Name: "automation_ops_total",
			Help: "Total number of automation operations",
		}, []string{"op", "success"}),
		opSeconds: prom.NewHistogramVec(prom.HistogramOpts{
			Name:    "automation_op_seconds",
			Help:    "Automation operation duration in seconds",
			Buckets: prom.DefBuckets,
		}, []string{"op", "success"}),
	}

	registry.MustRegister(p.reqTotal, p.reqSeconds, p.opTotal, p.opSeconds)
	SetRecorder(p)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	go func() { _ = http.ListenAndServe(addr, mux) }()
	return nil
}
