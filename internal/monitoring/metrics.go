package monitoring

import (
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/perio-stage-predictor/internal/domain"
)

// CounterMetric represents a monotonically increasing counter
type CounterMetric struct {
	Name        string            `json:"name"`
	Value       int64             `json:"value"`
	Labels      map[string]string `json:"labels,omitempty"`
	LastUpdated time.Time         `json:"last_updated"`
}

func (c *CounterMetric) inc(now time.Time) {
	c.Value++
	c.LastUpdated = now
}

// Bucket counts observations at or below LE seconds.
type Bucket struct {
	LE    float64 `json:"le"`
	Count int64   `json:"count"`
}

// HistogramMetric represents a histogram of values. Buckets are cumulative
// and ordered by upper bound.
type HistogramMetric struct {
	Name        string    `json:"name"`
	Count       int64     `json:"count"`
	Sum         float64   `json:"sum"`
	Buckets     []Bucket  `json:"buckets"`
	LastUpdated time.Time `json:"last_updated"`
}

func (h *HistogramMetric) observe(value float64, now time.Time) {
	h.Count++
	h.Sum += value
	for i := range h.Buckets {
		if value <= h.Buckets[i].LE {
			h.Buckets[i].Count++
		}
	}
	h.LastUpdated = now
}

func (h *HistogramMetric) clone() *HistogramMetric {
	out := *h
	out.Buckets = append([]Bucket(nil), h.Buckets...)
	return &out
}

func createLatencyBuckets() []Bucket {
	bounds := []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1}
	buckets := make([]Bucket, len(bounds))
	for i, le := range bounds {
		buckets[i] = Bucket{LE: le}
	}
	return buckets
}

// Snapshot is a point-in-time copy of all counters.
type Snapshot struct {
	Predictions        CounterMetric    `json:"predictions"`
	PredictionsByStage []CounterMetric  `json:"predictions_by_stage"`
	Rejections         CounterMetric    `json:"rejections"`
	RejectionsByField  []CounterMetric  `json:"rejections_by_field,omitempty"`
	ContactReveals     CounterMetric    `json:"contact_reveals"`
	ReportDownloads    CounterMetric    `json:"report_downloads"`
	PredictionTime     *HistogramMetric `json:"prediction_time"`
	Uptime             string           `json:"uptime"`
}

// Collector aggregates usage counters for the predictor. It is safe for
// concurrent use; all sessions share one collector.
type Collector struct {
	logger    *logrus.Logger
	startTime time.Time
	now       func() time.Time

	mutex          sync.Mutex
	predictions    *CounterMetric
	byStage        map[domain.Stage]*CounterMetric
	rejections     *CounterMetric
	byField        map[string]*CounterMetric
	reveals        *CounterMetric
	downloads      *CounterMetric
	predictionTime *HistogramMetric
}

// NewCollector creates a new metrics collector
func NewCollector(logger *logrus.Logger) *Collector {
	byStage := make(map[domain.Stage]*CounterMetric, len(domain.Stages))
	for _, stage := range domain.Stages {
		byStage[stage] = &CounterMetric{
			Name:   "predictions_by_stage",
			Labels: map[string]string{"stage": string(stage)},
		}
	}

	return &Collector{
		logger:         logger,
		startTime:      time.Now(),
		now:            time.Now,
		predictions:    &CounterMetric{Name: "predictions"},
		byStage:        byStage,
		rejections:     &CounterMetric{Name: "rejections"},
		byField:        make(map[string]*CounterMetric),
		reveals:        &CounterMetric{Name: "contact_reveals"},
		downloads:      &CounterMetric{Name: "report_downloads"},
		predictionTime: &HistogramMetric{Name: "prediction_time", Buckets: createLatencyBuckets()},
	}
}

// RecordPrediction records a successful classification
func (mc *Collector) RecordPrediction(stage domain.Stage, duration time.Duration) {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()

	now := mc.now()
	mc.predictions.inc(now)
	if counter, ok := mc.byStage[stage]; ok {
		counter.inc(now)
	}
	mc.predictionTime.observe(duration.Seconds(), now)
}

// RecordRejection records a form submission rejected on field.
func (mc *Collector) RecordRejection(field string) {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()

	now := mc.now()
	mc.rejections.inc(now)
	counter, ok := mc.byField[field]
	if !ok {
		counter = &CounterMetric{Name: "rejections_by_field", Labels: map[string]string{"field": field}}
		mc.byField[field] = counter
	}
	counter.inc(now)
}

// RecordReveal records the contact panel being opened.
func (mc *Collector) RecordReveal() {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()
	mc.reveals.inc(mc.now())
}

// RecordDownload records a report download.
func (mc *Collector) RecordDownload() {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()
	mc.downloads.inc(mc.now())
}

// Snapshot returns a copy of the current metrics
func (mc *Collector) Snapshot() Snapshot {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()

	snap := Snapshot{
		Predictions:     *mc.predictions,
		Rejections:      *mc.rejections,
		ContactReveals:  *mc.reveals,
		ReportDownloads: *mc.downloads,
		PredictionTime:  mc.predictionTime.clone(),
		Uptime:          mc.now().Sub(mc.startTime).Round(time.Second).String(),
	}

	for _, stage := range domain.Stages {
		snap.PredictionsByStage = append(snap.PredictionsByStage, *mc.byStage[stage])
	}

	fields := make([]string, 0, len(mc.byField))
	for field := range mc.byField {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		snap.RejectionsByField = append(snap.RejectionsByField, *mc.byField[field])
	}

	return snap
}

// LogSummary writes the current totals at info level.
func (mc *Collector) LogSummary() {
	snap := mc.Snapshot()
	mc.logger.WithFields(logrus.Fields{
		"predictions":      snap.Predictions.Value,
		"rejections":       snap.Rejections.Value,
		"contact_reveals":  snap.ContactReveals.Value,
		"report_downloads": snap.ReportDownloads.Value,
		"uptime":           snap.Uptime,
	}).Info("Usage summary")
}
