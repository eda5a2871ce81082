package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "statusboard"

// Registry doubles as an unchecked prometheus.Collector so the same counters
// back both the JSON snapshot and the /metrics exposition.
var _ prometheus.Collector = (*Registry)(nil)

// Describe sends no descriptors; the key set grows lazily.
func (r *Registry) Describe(chan<- *prometheus.Desc) {}

// Collect emits one constant metric per key.
func (r *Registry) Collect(ch chan<- prometheus.Metric) {
	for key, val := range r.Snapshot() {
		valueType := prometheus.CounterValue
		if gauges[MetricKey(key)] {
			valueType = prometheus.GaugeValue
		}
		desc := prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", key),
			"statusboard "+key,
			nil, nil,
		)
		ch <- prometheus.MustNewConstMetric(desc, valueType, float64(val))
	}
}
