package importer

import (
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/importer"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	importRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "attendance",
		Subsystem: "import",
		Name:      "rows_total",
		Help:      "Import rows by outcome: valid or invalid at preview, committed or failed at commit.",
	}, []string{"result"})

	importSessions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "attendance",
		Subsystem: "import",
		Name:      "sessions_total",
		Help:      "Import sessions entering each step.",
	}, []string{"step"})

	importIssues = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "attendance",
		Subsystem: "import",
		Name:      "issues_total",
		Help:      "Row validation issues found at preview, by kind.",
	}, []string{"kind"})

	commitDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "attendance",
		Subsystem: "import",
		Name:      "commit_duration_seconds",
		Help:      "Time taken to write the rows of one import.",
		Buckets:   prometheus.DefBuckets,
	})

	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "attendance",
		Subsystem: "import",
		Name:      "active_sessions",
		Help:      "Import sessions currently held in memory.",
	})
)

func observeStep(step importer.Step) {
	importSessions.WithLabelValues(string(step)).Inc()
}

func observePreview(records []importer.ParsedRecord) {
	for _, rec := range records {
		if rec.IsValid() {
			importRows.WithLabelValues("valid").Inc()
			continue
		}
		importRows.WithLabelValues("invalid").Inc()
		for _, issue := range rec.Issues {
			importIssues.WithLabelValues(string(issue.Kind)).Inc()
		}
	}
}

func observeCommit(result importer.CommitResult) {
	importRows.WithLabelValues("committed").Add(float64(result.SuccessCount))
	importRows.WithLabelValues("failed").Add(float64(result.FailedCount))
}
