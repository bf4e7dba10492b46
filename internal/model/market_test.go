package model

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestParseTimeframe(t *testing.T) {
	tests := []struct {
		in   string
		want Timeframe
	}{
		{"daily", TFDaily},
		{" D ", TFDaily},
		{"4H", TF4H},
		{"240", TF4H},
		{"1h", TF60m},
		{"30min", TF30m},
	}
	for _, tt := range tests {
		got, err := ParseTimeframe(tt.in)
		if err != nil {
			t.Errorf("ParseTimeframe(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTimeframe(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
	if _, err := ParseTimeframe("weekly"); err == nil {
		t.Error("expected error for unknown timeframe")
	}
}

func TestTimeframe_Suffix(t *testing.T) {
	want := map[Timeframe]string{TFDaily: "_D", TF4H: "_H", TF60m: "_60", TF30m: "_M"}
	for tf, s := range want {
		if got := tf.Suffix(); got != s {
			t.Errorf("%s.Suffix() = %q, want %q", tf, got, s)
		}
	}
}

func TestBar_Geometry(t *testing.T) {
	b := Bar{Close: 103, VAL: 100, VAH: 110, Open: Some(106)}
	if b.Range() != 10 {
		t.Errorf("Range = %v, want 10", b.Range())
	}
	if b.Center() != 105 {
		t.Errorf("Center = %v, want 105", b.Center())
	}
	body, ok := b.Body()
	if !ok || body != 3 {
		t.Errorf("Body = %v, %v, want 3, true", body, ok)
	}
	if !b.InsideValueArea() {
		t.Error("close 103 should be inside 100..110")
	}

	b.Open = None
	if _, ok := b.Body(); ok {
		t.Error("Body should be absent without open")
	}
}

func TestBar_Date(t *testing.T) {
	b := Bar{Time: time.Date(2024, 3, 4, 14, 30, 0, 0, time.UTC)}
	want := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	if !b.Date().Equal(want) {
		t.Errorf("Date = %v, want %v", b.Date(), want)
	}
}

func TestStrengthForScore(t *testing.T) {
	tests := []struct {
		score int
		want  Strength
	}{
		{0, StrengthWeak},
		{2, StrengthWeak},
		{3, StrengthModerate},
		{4, StrengthStrong},
		{9, StrengthStrong},
	}
	for _, tt := range tests {
		if got := StrengthForScore(tt.score); got != tt.want {
			t.Errorf("StrengthForScore(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestSignalFlags_Sorted(t *testing.T) {
	s := SignalFlags{FlagVolumeSpike: true, FlagBalanced: true, FlagNearVAL: false}
	got := s.Sorted()
	if len(got) != 2 || got[0] != FlagBalanced || got[1] != FlagVolumeSpike {
		t.Errorf("Sorted = %v", got)
	}
	if FlagBullishClose.Scored() || !FlagAbsorption.Scored() {
		t.Error("candle color must not be scored, rule flags must")
	}
}

func TestBacktestResult_Accuracy(t *testing.T) {
	if _, ok := (BacktestResult{}).Accuracy(); ok {
		t.Error("no directional calls should report ok=false")
	}
	acc, ok := BacktestResult{Hits: 3, Directional: 4}.Accuracy()
	if !ok || acc != 0.75 {
		t.Errorf("Accuracy = %v, %v, want 0.75, true", acc, ok)
	}
}

func TestErrors_Unwrap(t *testing.T) {
	errs := []struct {
		err  error
		want error
	}{
		{&MissingColumnError{Timeframe: TFDaily, Field: "poc"}, ErrMissingColumn},
		{&InsufficientHistoryError{Rule: "daily", Need: 3, Have: 1}, ErrInsufficientHistory},
		{&PointNotFoundError{Timeframe: TF4H}, ErrSelectedPointNotFound},
	}
	for _, tt := range errs {
		wrapped := fmt.Errorf("load: %w", tt.err)
		if !errors.Is(wrapped, tt.want) {
			t.Errorf("%v does not unwrap to %v", tt.err, tt.want)
		}
	}
}
