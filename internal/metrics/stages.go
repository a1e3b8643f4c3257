package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"TraderSentiment/internal/model"
)

// Stages holds the per-run pipeline gauges on a private registry.
type Stages struct {
	reg *prometheus.Registry

	Rows     *prometheus.GaugeVec
	Duration *prometheus.GaugeVec
	LastRun  prometheus.Gauge
	Success  prometheus.Gauge
}

func NewStages() *Stages {
	s := &Stages{
		reg: prometheus.NewRegistry(),
		Rows: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "analyzer_stage_rows",
				Help: "Rows seen, dropped or produced by each pipeline stage",
			},
			[]string{"stage"},
		),
		Duration: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "analyzer_stage_duration_seconds",
				Help: "Wall time spent in each pipeline stage",
			},
			[]string{"stage"},
		),
		LastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "analyzer_last_run_timestamp",
			Help: "Unix timestamp of the last pipeline run",
		}),
		Success: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "analyzer_last_run_success",
			Help: "1 if the last run finished without error",
		}),
	}
	s.reg.MustRegister(s.Rows, s.Duration, s.LastRun, s.Success)
	return s
}

// Registry exposes the underlying registry.
func (s *Stages) Registry() *prometheus.Registry { return s.reg }

// Observe copies every stage counter into the rows gauge.
func (s *Stages) Observe(c model.StageCounts) {
	for _, sc := range c.List() {
		s.Rows.WithLabelValues(sc.Stage).Set(float64(sc.Count))
	}
}

// Time records the duration of stage since start.
func (s *Stages) Time(stage string, start time.Time) {
	s.Duration.WithLabelValues(stage).Set(time.Since(start).Seconds())
}

// Finish stamps the run outcome.
func (s *Stages) Finish(at time.Time, err error) {
	s.LastRun.Set(float64(at.Unix()))
	if err != nil {
		s.Success.Set(0)
		return
	}
	s.Success.Set(1)
}

// WriteFile dumps the registry in text exposition format, suitable for the
// node_exporter textfile collector.
func (s *Stages) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create metrics dir: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, s.reg); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
