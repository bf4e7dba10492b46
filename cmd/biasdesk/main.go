package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"BiasDesk/internal/collector"
	"BiasDesk/internal/config"
	"BiasDesk/internal/logger"
	"BiasDesk/internal/recorder"
	"BiasDesk/internal/scheduler"
)

func main() {
	cfgPath := flag.String("config", "configs/config.yaml", "config file path")
	daily := flag.String("daily", "", "daily bars export (CSV/TXT)")
	h4 := flag.String("h4", "", "4-hour bars export")
	m60 := flag.String("m60", "", "60-minute bars export")
	m30 := flag.String("m30", "", "30-minute bars export")
	date := flag.String("date", "", "bar date to interpret (YYYY-MM-DD, default latest)")
	lookback := flag.Int("lookback", 0, "lookback bars for the interpreter (3-10)")
	tf := flag.String("tf", "", "timeframe to interpret: daily, 4h, 60m or 30m")
	exportDir := flag.String("export", "", "directory for CSV exports")
	watch := flag.Bool("watch", false, "re-run on the configured cron schedule until interrupted")
	flag.Parse()

	// .env is optional
	_ = godotenv.Load()

	path := *cfgPath
	if v := os.Getenv("CONFIG_PATH"); v != "" && !flagSet("config") {
		path = v
	}
	cfg, err := config.Load(path)
	if err != nil {
		fatal("load config", err)
	}
	applyFlags(cfg, *daily, *h4, *m60, *m30, *date, *tf, *exportDir, *lookback)
	if err := cfg.Analysis.Validate(); err != nil {
		fatal("analysis options", err)
	}
	if err := cfg.Validate(); err != nil {
		fatal("config validation", err)
	}

	log, err := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output})
	if err != nil {
		fatal("init logger", err)
	}
	log.Info().Str("config", path).Msg("biasdesk starting")

	col := collector.NewFileCollector(cfg.InputPaths(), log)

	var rec recorder.Recorder
	if cfg.Export.Dir != "" {
		cr, err := recorder.NewCSVRecorder(cfg.Export.Dir, log)
		if err != nil {
			log.Warn().Err(err).Msg("init csv recorder failed, using noop")
			rec = recorder.NewNoopRecorder()
		} else {
			rec = cr
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}
	defer rec.Close()

	sched := scheduler.NewScheduler(col, rec, cfg.Thresholds, cfg.Analysis, os.Stdout, log)

	if !*watch {
		if _, err := sched.RunNow(); err != nil {
			log.Error().Err(err).Msg("analysis failed")
			rec.Close()
			os.Exit(1)
		}
		return
	}

	runWatch(sched, cfg.Schedule.Cron, log)
}

func runWatch(sched *scheduler.Scheduler, expr string, log zerolog.Logger) {
	if expr == "" {
		expr = "0 */5 * * * *"
	}
	if err := sched.Register(expr); err != nil {
		log.Fatal().Err(err).Msg("register cron task")
	}
	if _, err := sched.RunNow(); err != nil {
		log.Error().Err(err).Msg("initial analysis failed")
	}
	sched.Start()
	defer sched.Stop()

	log.Info().Str("cron", expr).Msg("watching inputs, press Ctrl+C to stop")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutdown signal received, stopping")
}

func applyFlags(cfg *config.Config, daily, h4, m60, m30, date, tf, exportDir string, lookback int) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.Inputs.Daily, daily)
	set(&cfg.Inputs.H4, h4)
	set(&cfg.Inputs.M60, m60)
	set(&cfg.Inputs.M30, m30)
	set(&cfg.Analysis.SelectedDate, date)
	set(&cfg.Analysis.InterpretTimeframe, tf)
	set(&cfg.Export.Dir, exportDir)
	if lookback != 0 {
		cfg.Analysis.Lookback = lookback
	}
}

func flagSet(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

func fatal(what string, err error) {
	fmt.Fprintf(os.Stderr, "biasdesk: %s: %v\n", what, err)
	os.Exit(1)
}
