package registry

import (
	"fmt"
	"io"

	"github.com/VictoriaMetrics/metrics"
)

const (
	opOpen   = "open"
	opRead   = "read"
	opWrite  = "write"
	opDelete = "delete"
)

var metricSet = metrics.NewSet()

func record(op string, ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	metricSet.GetOrCreateCounter(fmt.Sprintf(`regapi_ops_total{op=%q,result=%q}`, op, result)).Inc()
}

func observeSize(n int) {
	metricSet.GetOrCreateHistogram(`regapi_value_bytes`).Update(float64(n))
}

// WriteMetrics writes operation counters and value-size histograms of
// every Registry in the process in Prometheus text format.
func WriteMetrics(w io.Writer) {
	metricSet.WritePrometheus(w)
}
