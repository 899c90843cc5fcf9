package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	RowsParsed   *prometheus.CounterVec
	RowsSkipped  *prometheus.CounterVec
	SheetsRead   prometheus.Counter
	StageSeconds *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		RowsParsed: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "sheetmap_rows_parsed_total",
			Help: "Total number of worksheet rows converted into records.",
		}, []string{"dataset"}),
		RowsSkipped: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "sheetmap_rows_skipped_total",
			Help: "Total number of worksheet rows dropped because a value could not be coerced.",
		}, []string{"dataset"}),
		SheetsRead: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "sheetmap_sheets_read_total",
			Help: "Total number of worksheets read from workbooks.",
		}),
		StageSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sheetmap_stage_duration_seconds",
			Help:    "Duration of pipeline stages.",
			Buckets: prometheus.DefBuckets,
		}, []string{"stage"}),
	}
}

// WriteTextfile dumps everything gathered by reg in the text exposition format,
// suitable for the node exporter textfile collector.
func WriteTextfile(path string, reg prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, reg)
}
