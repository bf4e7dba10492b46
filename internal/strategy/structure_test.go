package strategy

import (
	"errors"
	"testing"

	"BiasDesk/internal/model"
)

func structureBars(pocs, lows []float64) []model.Bar {
	var out []model.Bar
	for i := range pocs {
		b := vaBar(i, pocs[i], pocs[i]-5, pocs[i]+5, pocs[i]+1)
		out = append(out, withHighLow(b, lows[i]+10, lows[i]))
	}
	return out
}

func TestScanStructure_Bullish(t *testing.T) {
	tests := []struct {
		name      string
		pocs      []float64
		tolerance int
		want      int
	}{
		{"rising", []float64{10, 11, 12, 13}, 0, 1},
		{"one decrease at zero tolerance", []float64{10, 12, 11, 13}, 0, 0},
		{"one decrease at tolerance one", []float64{10, 12, 11, 13}, 1, 1},
	}
	lows := []float64{5, 6, 7, 8}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := build(model.TFDaily, structureBars(tt.pocs, lows)...)
			got, err := Structure(s, 3, tt.tolerance, 0.7)
			if err != nil {
				t.Fatalf("Structure: %v", err)
			}
			if len(got) != tt.want {
				t.Fatalf("got %d patterns, want %d: %+v", len(got), tt.want, got)
			}
			if tt.want == 0 {
				return
			}
			p := got[0]
			if p.Kind != model.PatternBullish {
				t.Errorf("kind = %s, want BULLISH", p.Kind)
			}
			if !p.Start.Equal(day0) || !p.End.Equal(day0.AddDate(0, 0, 3)) {
				t.Errorf("window = %v..%v", p.Start, p.End)
			}
			if p.EntryPrice != 14 {
				t.Errorf("entry = %v, want 14", p.EntryPrice)
			}
		})
	}
}

func TestScanStructure_Bearish(t *testing.T) {
	pocs := []float64{13, 12, 11, 10}
	lows := []float64{8, 7, 6, 5}
	got, err := Structure(build(model.TFDaily, structureBars(pocs, lows)...), 3, 0, 0.7)
	if err != nil {
		t.Fatalf("Structure: %v", err)
	}
	if len(got) != 1 || got[0].Kind != model.PatternBearish {
		t.Fatalf("got %+v, want one BEARISH pattern", got)
	}
}

func TestScanStructure_Consolidation(t *testing.T) {
	widths := []float64{64, 32, 16, 8}
	pocs := []float64{10, 12, 10, 12}
	var bars []model.Bar
	for i, w := range widths {
		b := vaBar(i, pocs[i], 100-w/2, 100+w/2, 100)
		bars = append(bars, withHighLow(b, 100+w, 100-w))
	}
	got, err := Structure(build(model.TFDaily, bars...), 2, 0, 0.7)
	if err != nil {
		t.Fatalf("Structure: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d patterns, want 1: %+v", len(got), got)
	}
	if got[0].Kind != model.PatternConsolidation || !got[0].Start.Equal(day0.AddDate(0, 0, 1)) {
		t.Errorf("got %+v, want CONSOLIDATION starting on day 1", got[0])
	}
}

func TestScanStructure_InvertedValueArea(t *testing.T) {
	widths := []float64{64, 32, 16, 8, 4}
	pocs := []float64{10, 12, 10, 12, 10}
	var bars []model.Bar
	for i, w := range widths {
		b := vaBar(i, pocs[i], 100+w/2, 100-w/2, 100)
		bars = append(bars, withHighLow(b, 110, 90))
	}
	got, err := Structure(build(model.TFDaily, bars...), 3, 0, 0.7)
	if err != nil {
		t.Fatalf("Structure: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %+v, want no patterns for inverted value areas", got)
	}
}

func TestScanStructure_Restartable(t *testing.T) {
	pocs := []float64{10, 11, 12, 13, 14, 15}
	lows := []float64{5, 6, 7, 8, 9, 10}
	seq, err := ScanStructure(build(model.TFDaily, structureBars(pocs, lows)...), 3, 0, 0.7)
	if err != nil {
		t.Fatalf("ScanStructure: %v", err)
	}
	count := func() int {
		n := 0
		for range seq {
			n++
		}
		return n
	}
	if first, second := count(), count(); first != 3 || second != 3 {
		t.Errorf("passes yielded %d and %d patterns, want 3 and 3", first, second)
	}

	n := 0
	for range seq {
		n++
		break
	}
	if n != 1 {
		t.Errorf("early break yielded %d", n)
	}
}

func TestScanStructure_Errors(t *testing.T) {
	ok := build(model.TFDaily, structureBars([]float64{10, 11}, []float64{5, 6})...)
	if _, err := ScanStructure(ok, 0, 0, 0.7); err == nil {
		t.Error("expected error for lookback 0")
	}
	if _, err := ScanStructure(ok, 1, -1, 0.7); err == nil {
		t.Error("expected error for negative tolerance")
	}

	missing := build(model.TFDaily, vaBar(0, 10, 5, 15, 10), vaBar(1, 11, 6, 16, 11))
	if _, err := ScanStructure(missing, 1, 0, 0.7); !errors.Is(err, model.ErrMissingHighLow) {
		t.Errorf("err = %v, want ErrMissingHighLow", err)
	}
}
