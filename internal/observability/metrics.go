package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	trainingsRecorded = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fittracker",
		Subsystem: "trainings",
		Name:      "recorded_total",
		Help:      "Trainings computed and stored, by kind and source.",
	}, []string{"kind", "source"})
	packagesRejected = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fittracker",
		Subsystem: "packages",
		Name:      "rejected_total",
		Help:      "Sensor packages that could not be read, by reason.",
	}, []string{"reason"})
	lastRecordedGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "fittracker",
		Subsystem: "trainings",
		Name:      "last_recorded_timestamp_seconds",
		Help:      "Unix timestamp of the most recent training stored.",
	})
)

func init() {
	prometheus.MustRegister(trainingsRecorded, packagesRejected, lastRecordedGauge)
}

// RecordTraining counts a stored training and moves the watermark gauge.
func RecordTraining(kind, source string, ts time.Time) {
	trainingsRecorded.WithLabelValues(kind, source).Inc()
	if !ts.IsZero() {
		lastRecordedGauge.Set(float64(ts.Unix()))
	}
}

// RecordRejected counts a package rejected for reason.
func RecordRejected(reason string) {
	packagesRejected.WithLabelValues(reason).Inc()
}
