package scheduler

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"BiasDesk/internal/analysis"
	"BiasDesk/internal/collector"
	"BiasDesk/internal/config"
	"BiasDesk/internal/model"
	"BiasDesk/internal/recorder"
	"BiasDesk/internal/render"
)

// Scheduler runs the analysis pipeline once or on a cron schedule. Every run
// reloads the sources and recomputes everything.
type Scheduler struct {
	Cron       *cron.Cron
	Collector  *collector.Collector
	Recorder   recorder.Recorder
	Thresholds config.Thresholds
	Options    config.Options
	Out        io.Writer
	Log        zerolog.Logger

	mu  sync.Mutex
	now func() time.Time
}

// NewScheduler creates a new Scheduler.
func NewScheduler(col *collector.Collector, rec recorder.Recorder, th config.Thresholds, opts config.Options, out io.Writer, log zerolog.Logger) *Scheduler {
	cl := cronLogger{log: log}
	return &Scheduler{
		Cron:       cron.New(cron.WithSeconds(), cron.WithLogger(cl), cron.WithChain(cron.SkipIfStillRunning(cl))),
		Collector:  col,
		Recorder:   rec,
		Thresholds: th,
		Options:    opts,
		Out:        out,
		Log:        log,
		now:        time.Now,
	}
}

// Register schedules the analysis task. Cron expressions take a leading
// seconds field.
func (s *Scheduler) Register(expr string) error {
	if _, err := s.Cron.AddFunc(expr, s.analyzeTask); err != nil {
		return fmt.Errorf("register analysis task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Log.Info().Int("tasks", len(s.Cron.Entries())).Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for a running task to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.Log.Info().Msg("scheduler stopped")
}

// RunNow executes the analysis task immediately and returns its report.
func (s *Scheduler) RunNow() (*model.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.Collector.Collect()
	if err != nil {
		return nil, fmt.Errorf("collect: %w", err)
	}
	in := analysis.Input{
		Set:        res.Set,
		Normalize:  res.Reports,
		Thresholds: s.Thresholds,
		Now:        s.now(),
	}
	for tf, cerr := range res.Errors {
		s.Log.Debug().Err(cerr).Str("timeframe", string(tf)).Msg("timeframe unavailable for run")
	}

	rep := analysis.Run(in, s.Options)
	for _, tf := range model.Timeframes {
		if cerr, ok := res.Errors[tf]; ok {
			rep.Warnings = append(rep.Warnings, cerr.Error())
		}
	}
	for _, w := range rep.Warnings {
		s.Log.Warn().Str("reason", w).Msg("analysis warning")
	}

	if s.Out != nil {
		if _, err := io.WriteString(s.Out, render.FormatReport(rep)); err != nil {
			return rep, fmt.Errorf("write report: %w", err)
		}
	}
	if err := recorder.Export(s.Recorder, rep); err != nil {
		return rep, fmt.Errorf("export: %w", err)
	}
	s.Log.Info().
		Str("session", string(rep.Session.Bias)).
		Str("call", string(rep.Session.Direction)).
		Int("warnings", len(rep.Warnings)).
		Msg("analysis complete")
	return rep, nil
}

func (s *Scheduler) analyzeTask() {
	s.Log.Info().Msg("running scheduled analysis")
	if _, err := s.RunNow(); err != nil {
		s.Log.Error().Err(err).Msg("scheduled analysis failed")
	}
}

// cronLogger adapts zerolog to cron.Logger.
type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}
