package collector

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"BiasDesk/internal/model"
	"BiasDesk/internal/series"
)

// Collector loads and normalizes every configured timeframe.
type Collector struct {
	Sources map[model.Timeframe]RowSource
	Log     zerolog.Logger
}

// NewCollector creates a new Collector.
func NewCollector(sources map[model.Timeframe]RowSource, log zerolog.Logger) *Collector {
	return &Collector{Sources: sources, Log: log}
}

// NewFileCollector creates a Collector reading one CSV export per timeframe.
func NewFileCollector(paths map[model.Timeframe]string, log zerolog.Logger) *Collector {
	sources := make(map[model.Timeframe]RowSource, len(paths))
	for tf, p := range paths {
		sources[tf] = NewCSVSource(p)
	}
	return NewCollector(sources, log)
}

// Result is the outcome of one collection pass.
type Result struct {
	Set     series.Set
	Reports []model.NormalizeReport
	Errors  map[model.Timeframe]error
}

// Collect normalizes each source. A timeframe that fails is logged, recorded
// in Errors and left out of Set; the pass fails only if none succeed.
func (c *Collector) Collect() (*Result, error) {
	res := &Result{Set: series.Set{}, Errors: map[model.Timeframe]error{}}
	for _, tf := range model.Timeframes {
		src, ok := c.Sources[tf]
		if !ok {
			continue
		}
		s, report, err := Normalize(tf, src)
		if report.Total > 0 || err == nil {
			res.Reports = append(res.Reports, report)
		}
		if err != nil {
			c.Log.Warn().Err(err).Str("timeframe", string(tf)).Str("source", src.Name()).Msg("timeframe excluded")
			res.Errors[tf] = err
			continue
		}
		level := zerolog.InfoLevel
		if report.Dropped > 0 {
			level = zerolog.WarnLevel
		}
		c.Log.WithLevel(level).
			Str("timeframe", string(tf)).
			Str("source", src.Name()).
			Int("kept", report.Kept).
			Int("dropped", report.Dropped).
			Interface("reasons", report.Reasons).
			Msg("timeframe loaded")
		res.Set[tf] = s
	}
	if len(res.Set) == 0 {
		errs := make([]error, 0, len(res.Errors))
		for _, tf := range model.Timeframes {
			if err, ok := res.Errors[tf]; ok {
				errs = append(errs, err)
			}
		}
		if len(errs) == 0 {
			return res, errors.New("no sources configured")
		}
		return res, fmt.Errorf("no usable timeframe: %w", errors.Join(errs...))
	}
	return res, nil
}
