// Package metric keeps client-side Prometheus metrics for kvcli.
package metric

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// Request outcomes used as the "outcome" label.
const (
	OutcomeSuccess     = "success"
	OutcomeRejected    = "rejected"
	OutcomeTimeout     = "timeout"
	OutcomeUnreachable = "unreachable"
	OutcomeProtocol    = "protocol"
)

const namespace = "kvcli"

// Registry holds all client metrics on a private prometheus registry.
type Registry struct {
	registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	LoginAttempts   *prometheus.CounterVec
}

// NewRegistry creates a new metrics registry.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Outbound requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Outbound request latency by endpoint.",
			Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"endpoint"}),
		LoginAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_attempts_total",
			Help:      "Admin login attempts by result.",
		}, []string{"result"}),
	}

	r.registry.MustRegister(r.RequestsTotal, r.RequestDuration, r.LoginAttempts)
	return r
}

// ObserveRequest records one finished request.
func (r *Registry) ObserveRequest(endpoint, outcome string, elapsed time.Duration) {
	r.RequestsTotal.WithLabelValues(endpoint, outcome).Inc()
	r.RequestDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// ObserveLogin records one login attempt.
func (r *Registry) ObserveLogin(result string) {
	r.LoginAttempts.WithLabelValues(result).Inc()
}

// Gatherer exposes the underlying registry, mainly for tests.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// EndpointStat is the per-endpoint summary printed on exit.
type EndpointStat struct {
	Endpoint string
	Outcomes map[string]int
	Total    int
	Seconds  float64
}

// Summary aggregates the request counters and latency sums per endpoint.
func (r *Registry) Summary() ([]EndpointStat, error) {
	families, err := r.registry.Gather()
	if err != nil {
		return nil, fmt.Errorf("gather metrics: %w", err)
	}

	stats := make(map[string]*EndpointStat)
	get := func(endpoint string) *EndpointStat {
		s, ok := stats[endpoint]
		if !ok {
			s = &EndpointStat{Endpoint: endpoint, Outcomes: make(map[string]int)}
			stats[endpoint] = s
		}
		return s
	}

	for _, mf := range families {
		switch mf.GetName() {
		case namespace + "_requests_total":
			for _, m := range mf.GetMetric() {
				s := get(label(m, "endpoint"))
				n := int(m.GetCounter().GetValue())
				s.Outcomes[label(m, "outcome")] += n
				s.Total += n
			}
		case namespace + "_request_duration_seconds":
			for _, m := range mf.GetMetric() {
				get(label(m, "endpoint")).Seconds += m.GetHistogram().GetSampleSum()
			}
		}
	}

	out := make([]EndpointStat, 0, len(stats))
	for _, s := range stats {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Endpoint < out[j].Endpoint })
	return out, nil
}

// WriteSummary renders Summary as an aligned table.
func (r *Registry) WriteSummary(w io.Writer) error {
	stats, err := r.Summary()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ENDPOINT\tREQUESTS\tOK\tFAILED\tAVG")
	for _, s := range stats {
		ok := s.Outcomes[OutcomeSuccess]
		avg := time.Duration(0)
		if s.Total > 0 {
			avg = time.Duration(s.Seconds / float64(s.Total) * float64(time.Second))
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\n", s.Endpoint, s.Total, ok, s.Total-ok, avg.Round(time.Millisecond))
	}
	return tw.Flush()
}

func label(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}
