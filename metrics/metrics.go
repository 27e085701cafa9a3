// Package metrics exposes Prometheus counters for the parse pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"showdown-tracker/parser"
)

const namespace = "showdown"

// Recorder implements parser.Observer.
type Recorder struct {
	// LinesTotal counts every raw line handed to the parser.
	LinesTotal prometheus.Counter

	// EventsApplied counts applied events by tag.
	EventsApplied *prometheus.CounterVec

	// LinesSkipped counts lines that produced no state change, by reason.
	LinesSkipped *prometheus.CounterVec
}

var _ parser.Observer = (*Recorder)(nil)

func NewRecorder(registerer prometheus.Registerer) *Recorder {
	factory := promauto.With(registerer)

	return &Recorder{
		LinesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lines_total",
			Help:      "Total number of battle log lines processed",
		}),
		EventsApplied: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "events_applied_total",
				Help:      "Total number of events applied to battle state by tag",
			},
			[]string{"tag"},
		),
		LinesSkipped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "lines_skipped_total",
				Help:      "Total number of lines skipped by reason",
			},
			[]string{"reason"},
		),
	}
}

func (r *Recorder) LineProcessed() {
	r.LinesTotal.Inc()
}

func (r *Recorder) EventApplied(tag parser.Tag) {
	r.EventsApplied.WithLabelValues(string(tag)).Inc()
}

// LineSkipped labels by reason only; raw tags are unbounded.
func (r *Recorder) LineSkipped(_ string, reason string) {
	r.LinesSkipped.WithLabelValues(reason).Inc()
}
