package calendar

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/calendar"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	classifiedDays = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "attendance",
		Subsystem: "calendar",
		Name:      "classified_days_total",
		Help:      "Days classified for calendar and summary requests, by resulting status.",
	}, []string{"status"})

	snapshotLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "attendance",
		Subsystem: "calendar",
		Name:      "snapshot_load_seconds",
		Help:      "Time spent loading holidays, leave and attendance for a request.",
		Buckets: []float64{
			0.005, 0.01, 0.02, 0.05,
			0.1, 0.2, 0.5,
			1, 2, 5,
		},
	}, []string{"result"})
)

func observeDays(days []calendar.DayStatus) {
	for _, d := range days {
		classifiedDays.WithLabelValues(string(d.Kind)).Inc()
	}
}

func observeSnapshot(start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	snapshotLatency.WithLabelValues(result).Observe(time.Since(start).Seconds())
}
