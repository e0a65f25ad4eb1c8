// Package metrics records timings of the tour's slower steps: parsing page
// definitions, building the page sequence, decoding images and rendering
// page bodies.
//
// Collection is on by default and can be disabled with PTOUR_METRICS=0.
// With PTOUR_DEBUG set the collected stats are written to the log when the
// tour exits.
//
// Usage:
//
//	func decode() {
//	    defer metrics.Timer(metrics.ImageDecode)()
//	    // ...
//	}
package metrics

import (
	"os"
	"sync/atomic"
	"time"
)

var enabled atomic.Bool

func init() {
	enabled.Store(os.Getenv("PTOUR_METRICS") != "0")
}

// Enabled returns whether metrics collection is enabled.
func Enabled() bool {
	return enabled.Load()
}

// SetEnabled turns collection on or off.
func SetEnabled(e bool) {
	enabled.Store(e)
}

// TimingMetric accumulates durations of one operation. Safe for concurrent
// use; images are decoded in parallel.
type TimingMetric struct {
	name  string
	count atomic.Int64
	total atomic.Int64
	max   atomic.Int64
	min   atomic.Int64 // 0 until the first record
}

func newTimingMetric(name string) *TimingMetric {
	return &TimingMetric{name: name}
}

// Record adds one measurement.
func (m *TimingMetric) Record(d time.Duration) {
	if !Enabled() {
		return
	}
	ns := d.Nanoseconds()
	m.count.Add(1)
	m.total.Add(ns)

	for {
		old := m.max.Load()
		if ns <= old || m.max.CompareAndSwap(old, ns) {
			break
		}
	}
	for {
		old := m.min.Load()
		if (old != 0 && ns >= old) || m.min.CompareAndSwap(old, ns) {
			break
		}
	}
}

// Name returns the metric name.
func (m *TimingMetric) Name() string {
	return m.name
}

// Count returns the number of measurements.
func (m *TimingMetric) Count() int64 {
	return m.count.Load()
}

// Stats returns a snapshot of the metric.
func (m *TimingMetric) Stats() TimingStats {
	count := m.count.Load()
	total := m.total.Load()
	var avg int64
	if count > 0 {
		avg = total / count
	}
	return TimingStats{
		Name:  m.name,
		Count: count,
		Total: time.Duration(total),
		Avg:   time.Duration(avg),
		Max:   time.Duration(m.max.Load()),
		Min:   time.Duration(m.min.Load()),
	}
}

// Reset clears all measurements.
func (m *TimingMetric) Reset() {
	m.count.Store(0)
	m.total.Store(0)
	m.max.Store(0)
	m.min.Store(0)
}

// TimingStats is a snapshot of a TimingMetric.
type TimingStats struct {
	Name  string        `json:"name"`
	Count int64         `json:"count"`
	Total time.Duration `json:"total"`
	Avg   time.Duration `json:"avg"`
	Max   time.Duration `json:"max"`
	Min   time.Duration `json:"min,omitempty"`
}

// Timer returns a function that records the time elapsed since Timer was
// called.
func Timer(m *TimingMetric) func() {
	if !Enabled() || m == nil {
		return func() {}
	}
	start := time.Now()
	return func() {
		m.Record(time.Since(start))
	}
}

// Timings of the tour.
var (
	DefinitionsParse = newTimingMetric("definitions_parse")
	PageBuild        = newTimingMetric("page_build")
	ImageDecode      = newTimingMetric("image_decode")
	PageRender       = newTimingMetric("page_render")
)

// AllTimingMetrics returns every registered metric.
func AllTimingMetrics() []*TimingMetric {
	return []*TimingMetric{DefinitionsParse, PageBuild, ImageDecode, PageRender}
}

// ResetAll resets every metric.
func ResetAll() {
	for _, m := range AllTimingMetrics() {
		m.Reset()
	}
}

// AllTimingStats returns the stats of metrics that have measurements.
func AllTimingStats() []TimingStats {
	var stats []TimingStats
	for _, m := range AllTimingMetrics() {
		if m.Count() > 0 {
			stats = append(stats, m.Stats())
		}
	}
	return stats
}
