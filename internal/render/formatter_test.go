package render

import (
	"strings"
	"testing"
	"time"

	"BiasDesk/internal/model"
)

func TestKeyLevels(t *testing.T) {
	bar := model.Bar{Close: 101.5, POC: 100, VAL: 98, VAH: 103, VWAP: model.Some(100.25), Volume: model.Some(1200)}
	want := "VAL: 98.00 | POC: 100.00 | VAH: 103.00 | VWAP: 100.25 | Close: 101.50 | Volume: 1200 | Trades: -"
	if got := KeyLevels(bar); got != want {
		t.Errorf("KeyLevels =\n%s\nwant\n%s", got, want)
	}
}

func TestBacktestSummary(t *testing.T) {
	none := &model.BacktestResult{Sessions: make([]model.SessionOutcome, 4)}
	if got := BacktestSummary(none); !strings.HasPrefix(got, "no directional calls") {
		t.Errorf("got %q", got)
	}
	zero := &model.BacktestResult{Sessions: make([]model.SessionOutcome, 4), Directional: 2}
	if got := BacktestSummary(zero); !strings.HasPrefix(got, "0.0% accuracy") {
		t.Errorf("got %q", got)
	}
}

func TestFormatReport(t *testing.T) {
	at := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	rep := &model.Report{
		Daily:       model.DailyAggregate{Verdict: model.DailyStrongBullish, Bars: 3, Source: model.TFDaily},
		H4:          model.H4Aggregate{Verdict: model.H4Neutral, Insufficient: true},
		Trend:       model.TrendAggregate{Verdict: model.TrendFlat, Insufficient: true},
		Session:     model.Session{Bias: model.SessionMixed, Confidence: model.ConfidenceLow, Direction: model.DirectionNeutral},
		InterpretTF: model.TFDaily,
		Patterns:    []model.StructurePattern{{Start: at, End: at, Kind: model.PatternBullish, EntryPrice: 10}},
		Warnings:    []string{"4h: insufficient data"},
	}
	rep.Selected = &model.Interpretation{
		Bar:      model.Bar{Time: at, Close: 1, POC: 1, VAL: 1, VAH: 1},
		Lookback: 5,
		Bias:     []string{"POC near center → balanced"},
		Strength: model.StrengthWeak,
	}
	out := FormatReport(rep)
	for _, want := range []string{
		"MIXED/ROTATION",
		"STRONG BULLISH",
		"POC near center → balanced",
		"- no setup",
		"Key price levels",
		"BULLISH       2024-03-04 00:00",
		"4h: insufficient data",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Backtest") {
		t.Error("backtest section should be omitted without a result")
	}
}
