package scheduler

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"BiasDesk/internal/collector"
	"BiasDesk/internal/config"
	"BiasDesk/internal/model"
	"BiasDesk/internal/recorder"
)

func newTestScheduler(out *bytes.Buffer) *Scheduler {
	daily := &collector.StaticSource{
		Label:  "daily",
		Header: []string{"Date", "Open", "Last", "POC", "VAL", "VAH", "VWAP"},
		Records: [][]string{
			{"2024-03-04", "100", "105", "100", "95", "104", "101"},
			{"2024-03-05", "101", "106", "101", "95", "104", "102"},
			{"2024-03-06", "102", "107", "102", "95", "104", "103"},
		},
	}
	broken := &collector.StaticSource{Label: "h4", Header: []string{"Date"}}
	col := collector.NewCollector(map[model.Timeframe]collector.RowSource{
		model.TFDaily: daily,
		model.TF4H:    broken,
	}, zerolog.Nop())
	opts := config.DefaultOptions()
	opts.Lookback = 3
	s := NewScheduler(col, recorder.NewNoopRecorder(), config.DefaultThresholds(), opts, out, zerolog.Nop())
	s.now = func() time.Time { return time.Date(2024, 3, 6, 18, 0, 0, 0, time.UTC) }
	return s
}

func TestRunNow(t *testing.T) {
	var out bytes.Buffer
	s := newTestScheduler(&out)

	rep, err := s.RunNow()
	if err != nil {
		t.Fatalf("RunNow: %v", err)
	}
	if rep.Daily.Verdict != model.DailyStrongBullish {
		t.Errorf("daily = %s", rep.Daily.Verdict)
	}
	if !rep.GeneratedAt.Equal(time.Date(2024, 3, 6, 18, 0, 0, 0, time.UTC)) {
		t.Errorf("generated at %v", rep.GeneratedAt)
	}
	found := false
	for _, w := range rep.Warnings {
		if strings.Contains(w, "4h: required column") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected collection error in warnings: %v", rep.Warnings)
	}
	text := out.String()
	if !strings.Contains(text, "2024-03-06 18:00") || !strings.Contains(text, "STRONG BULLISH") {
		t.Errorf("report output:\n%s", text)
	}
}

func TestRegister(t *testing.T) {
	s := newTestScheduler(&bytes.Buffer{})
	if err := s.Register("not a cron expression"); err == nil {
		t.Error("expected error for bad cron expression")
	}
	if err := s.Register("0 */5 * * * *"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if got := len(s.Cron.Entries()); got != 1 {
		t.Errorf("entries = %d, want 1", got)
	}
	s.Start()
	s.Stop()
}
