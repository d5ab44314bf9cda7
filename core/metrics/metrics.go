// Package metrics exposes Prometheus collectors for the bot runtime and the HTTP endpoint serving them.
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hustlex/hustlexbot/core/logger"
)

const namespace = "hustlex"

// Recorder groups the collectors used across the bot. A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	Updates      *prometheus.CounterVec
	Handled      *prometheus.CounterVec
	Transitions  *prometheus.CounterVec
	Rejections   *prometheus.CounterVec
	SendFailures *prometheus.CounterVec
	Sessions     prometheus.GaugeFunc
}

// New builds a Recorder on a private registry. sessions reports the live session count.
func New(sessions func() int) *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := &Recorder{
		registry: reg,
		Updates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "updates_total",
			Help:      "Inbound Telegram updates by kind.",
		}, []string{"kind"}),
		Handled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "handler_total",
			Help:      "Handler invocations by handler name and outcome.",
		}, []string{"handler", "outcome"}),
		Transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "wizard",
			Name:      "transitions_total",
			Help:      "Accepted profile wizard transitions.",
		}, []string{"from", "to", "trigger"}),
		Rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "wizard",
			Name:      "rejections_total",
			Help:      "Wizard inputs rejected without a state change.",
		}, []string{"step", "reason"}),
		SendFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sender",
			Name:      "failures_total",
			Help:      "Outbound Telegram calls that failed after retries.",
		}, []string{"action", "kind"}),
	}
	if sessions == nil {
		sessions = func() int { return 0 }
	}
	r.Sessions = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sessions",
		Help:      "Profile sessions held in memory.",
	}, func() float64 { return float64(sessions()) })

	reg.MustRegister(r.Updates, r.Handled, r.Transitions, r.Rejections, r.SendFailures, r.Sessions)
	return r
}

// Registry returns the registry backing r.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// Update counts one inbound update of the given kind.
func (r *Recorder) Update(kind string) {
	if r == nil {
		return
	}
	r.Updates.WithLabelValues(kind).Inc()
}

// Handler counts one handler invocation.
func (r *Recorder) Handler(name, outcome string) {
	if r == nil {
		return
	}
	r.Handled.WithLabelValues(name, outcome).Inc()
}

// Transition counts one accepted wizard transition.
func (r *Recorder) Transition(from, to, trigger string) {
	if r == nil {
		return
	}
	r.Transitions.WithLabelValues(from, to, trigger).Inc()
}

// Rejection counts one rejected wizard input.
func (r *Recorder) Rejection(step, reason string) {
	if r == nil {
		return
	}
	r.Rejections.WithLabelValues(step, reason).Inc()
}

// SendFailure counts one outbound call that gave up.
func (r *Recorder) SendFailure(action, kind string) {
	if r == nil {
		return
	}
	r.SendFailures.WithLabelValues(action, kind).Inc()
}

// NewServer returns an HTTP server exposing /metrics and /healthz for r.
func NewServer(addr string, r *Recorder) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(r.Registry(), promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}
}

// Serve runs srv until ctx is done, then shuts it down gracefully.
func Serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Metrics.Info("metrics listening",
			slog.String("event", "listen"),
			slog.String("listen", srv.Addr),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
