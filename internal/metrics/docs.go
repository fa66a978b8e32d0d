package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/custodia-labs/duxt-mcp/internal/core/domain"
)

var (
	docsLoadedDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "docs", "loaded"),
		"Number of documents in the current collection",
		nil, nil,
	)

	docsSectionsDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "docs", "sections"),
		"Number of sections in the current collection",
		nil, nil,
	)

	docsLoadedAtDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "docs", "loaded_timestamp_seconds"),
		"Unix time the current collection was swapped in",
		nil, nil,
	)
)

// DocsCollector reports the state of the document collection at scrape time.
type DocsCollector struct {
	snapshot func() domain.Snapshot
}

// NewDocsCollector creates a collector that calls snapshot on every scrape.
func NewDocsCollector(snapshot func() domain.Snapshot) *DocsCollector {
	return &DocsCollector{snapshot: snapshot}
}

// Describe implements prometheus.Collector.
func (c *DocsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- docsLoadedDesc
	ch <- docsSectionsDesc
	ch <- docsLoadedAtDesc
}

// Collect implements prometheus.Collector.
func (c *DocsCollector) Collect(ch chan<- prometheus.Metric) {
	snap := c.snapshot()

	ch <- prometheus.MustNewConstMetric(docsLoadedDesc, prometheus.GaugeValue, float64(snap.Count))
	ch <- prometheus.MustNewConstMetric(docsSectionsDesc, prometheus.GaugeValue, float64(len(snap.Sections)))

	var loadedAt float64
	if !snap.LoadedAt.IsZero() {
		loadedAt = float64(snap.LoadedAt.UnixNano()) / 1e9
	}
	ch <- prometheus.MustNewConstMetric(docsLoadedAtDesc, prometheus.GaugeValue, loadedAt)
}
