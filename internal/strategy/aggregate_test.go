package strategy

import (
	"testing"
	"time"

	"BiasDesk/internal/model"
)

func dailyBars(pocs, closes []float64, vah float64) []model.Bar {
	var out []model.Bar
	for i := range pocs {
		out = append(out, withVWAP(vaBar(i, pocs[i], 95, vah, closes[i]), pocs[i]+1))
	}
	return out
}

func TestAggregateDaily_Scenarios(t *testing.T) {
	tests := []struct {
		name   string
		pocs   []float64
		closes []float64
		want   model.DailyBias
	}{
		{"closes above VAH with rising POC", []float64{100, 101, 102}, []float64{105, 106, 107}, model.DailyStrongBullish},
		{"closes inside VA", []float64{100, 101, 102}, []float64{103, 103, 103}, model.DailyNeutral},
		{"closes below VAL with falling POC", []float64{102, 101, 100}, []float64{90, 91, 92}, model.DailyStrongBearish},
		{"closes below VAL with rising POC", []float64{100, 101, 102}, []float64{90, 91, 92}, model.DailyNeutral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := build(model.TFDaily, dailyBars(tt.pocs, tt.closes, 104)...)
			agg := AggregateDaily(s, thresholds())
			if agg.Verdict != tt.want {
				t.Errorf("verdict = %s, want %s (%+v)", agg.Verdict, tt.want, agg)
			}
			if agg.Insufficient {
				t.Errorf("unexpected insufficient: %s", agg.Reason)
			}
		})
	}
}

func TestAggregateDaily_Counts(t *testing.T) {
	s := build(model.TFDaily, dailyBars([]float64{100, 101, 102}, []float64{105, 106, 107}, 104)...)
	agg := AggregateDaily(s, thresholds())
	if !agg.POCRising || agg.VWAPOverPOC != 3 || agg.ClosesAboveVAH != 3 || agg.ClosesBelowVAL != 0 {
		t.Errorf("unexpected counts: %+v", agg)
	}
	if agg.Bars != 3 || agg.Source != model.TFDaily {
		t.Errorf("bars = %d source = %s", agg.Bars, agg.Source)
	}
}

func TestAggregateDaily_ThresholdMonotonic(t *testing.T) {
	s := build(model.TFDaily, dailyBars([]float64{100, 101, 102}, []float64{103, 106, 107}, 104)...)
	seenNeutral := false
	for min := 1; min <= 4; min++ {
		th := thresholds()
		th.DailyClosesAboveVAHMin = min
		got := AggregateDaily(s, th).Verdict
		if got == model.DailyNeutral {
			seenNeutral = true
		}
		if seenNeutral && got == model.DailyStrongBullish {
			t.Fatalf("closes_above_vah_min=%d moved verdict back to STRONG BULLISH", min)
		}
	}
	if !seenNeutral {
		t.Error("expected a high enough minimum to reach NEUTRAL")
	}
}

func TestAggregateDaily_Insufficient(t *testing.T) {
	s := build(model.TFDaily, dailyBars([]float64{100, 101}, []float64{105, 106}, 104)...)
	agg := AggregateDaily(s, thresholds())
	if agg.Verdict != model.DailyNeutral || !agg.Insufficient {
		t.Fatalf("got %+v, want insufficient NEUTRAL", agg)
	}
	if agg.Reason == "" {
		t.Error("expected a reason")
	}

	if agg := AggregateDaily(nil, thresholds()); !agg.Insufficient {
		t.Errorf("nil series: got %+v, want insufficient", agg)
	}
}

func TestAggregateDaily_OneBarPerDay(t *testing.T) {
	bars := dailyBars([]float64{100, 101, 102}, []float64{90, 106, 107}, 104)
	late := bars[2]
	late.Time = late.Time.Add(9 * time.Hour)
	late.Close = 100
	bars = append(bars, late)

	agg := AggregateDaily(build(model.TFDaily, bars...), thresholds())
	if agg.Bars != 3 {
		t.Fatalf("bars = %d, want 3", agg.Bars)
	}
	if agg.ClosesAboveVAH != 1 || agg.ClosesBelowVAL != 1 {
		t.Errorf("above = %d below = %d, want 1 and 1 from the last bar of each day", agg.ClosesAboveVAH, agg.ClosesBelowVAL)
	}
}

func TestAggregateDaily_FromIntraday(t *testing.T) {
	var bars []model.Bar
	for d := 0; d < 3; d++ {
		for h := 10; h < 16; h++ {
			b := withVWAP(vaBar(d, 100+float64(d), 95, 104, 100), 102+float64(d))
			b.Time = b.Time.Add(time.Duration(h) * time.Hour)
			if h == 15 {
				b.Close = 105 + float64(d)
			}
			bars = append(bars, b)
		}
	}
	agg := AggregateDaily(build(model.TF30m, bars...), thresholds())
	if agg.Source != model.TF30m || agg.Bars != 3 {
		t.Fatalf("source = %s bars = %d", agg.Source, agg.Bars)
	}
	if agg.Verdict != model.DailyStrongBullish {
		t.Errorf("verdict = %s, want STRONG BULLISH from last bar of each day", agg.Verdict)
	}
}

func TestAggregateH4(t *testing.T) {
	mk := func(i int, vwap, close float64) model.Bar {
		b := withVWAP(vaBar(0, 100, 95, 105, close), vwap)
		b.Time = b.Time.Add(time.Duration(4*i) * time.Hour)
		return b
	}
	tests := []struct {
		name string
		bars []model.Bar
		want model.H4Bias
	}{
		{"bullish", []model.Bar{mk(0, 101, 100), mk(1, 101, 100), mk(2, 101, 106), mk(3, 101, 106), mk(4, 99, 100), mk(5, 99, 100)}, model.H4Bullish},
		{"vwap under poc", []model.Bar{mk(0, 99, 106), mk(1, 99, 106), mk(2, 99, 106), mk(3, 101, 106), mk(4, 101, 106), mk(5, 101, 106)}, model.H4Neutral},
		{"bearish", []model.Bar{mk(0, 99, 100), mk(1, 99, 100), mk(2, 99, 100), mk(3, 99, 100), mk(4, 99, 90), mk(5, 99, 90)}, model.H4Bearish},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := AggregateH4(build(model.TF4H, tt.bars...), thresholds())
			if agg.Verdict != tt.want {
				t.Errorf("verdict = %s, want %s (%+v)", agg.Verdict, tt.want, agg)
			}
		})
	}

	short := AggregateH4(build(model.TF4H, mk(0, 101, 106)), thresholds())
	if short.Verdict != model.H4Neutral || !short.Insufficient {
		t.Errorf("got %+v, want insufficient 4H NEUTRAL", short)
	}
}

func TestAggregateH4_FromIntraday(t *testing.T) {
	var bars []model.Bar
	for i := 0; i < 24; i++ {
		b := withVWAP(vaBar(0, 100, 95, 105, 106), 101)
		b.Time = b.Time.Add(time.Duration(i) * time.Hour)
		bars = append(bars, b)
	}
	agg := AggregateH4(build(model.TF60m, bars...), thresholds())
	if agg.Bars != 6 || agg.Source != model.TF60m {
		t.Fatalf("bars = %d source = %s", agg.Bars, agg.Source)
	}
	if agg.Verdict != model.H4Bullish {
		t.Errorf("verdict = %s, want 4H BULLISH", agg.Verdict)
	}
}

func TestAggregateTrend(t *testing.T) {
	mk := func(closes, vwaps []float64) []model.Bar {
		var out []model.Bar
		for i := range closes {
			b := vaBar(0, 100, 95, 105, closes[i])
			b.Time = b.Time.Add(time.Duration(30*i) * time.Minute)
			if vwaps[i] >= 0 {
				b.VWAP = model.Some(vwaps[i])
			}
			out = append(out, b)
		}
		return out
	}
	tests := []struct {
		name   string
		closes []float64
		vwaps  []float64
		want   model.Trend
	}{
		{"upswing", []float64{100, 102, 104, 108, 110}, []float64{100, 101, 103, 105, 106}, model.TrendUpswing},
		{"downswing", []float64{110, 108, 104, 102, 100}, []float64{106, 105, 103, 101, 100}, model.TrendDownswing},
		{"price only", []float64{100, 102, 104, 108, 110}, []float64{100, 100, 100, 101, 102}, model.TrendFlat},
		{"delta at threshold", []float64{100, 101, 102, 103, 105}, []float64{100, 101, 102, 103, 104}, model.TrendFlat},
		{"vwap missing", []float64{100, 102, 104, 108, 110}, []float64{-1, 101, 103, 105, 106}, model.TrendFlat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := AggregateTrend(build(model.TF30m, mk(tt.closes, tt.vwaps)...), thresholds())
			if agg.Verdict != tt.want {
				t.Errorf("verdict = %s, want %s (%+v)", agg.Verdict, tt.want, agg)
			}
		})
	}

	agg := AggregateTrend(build(model.TF30m, mk([]float64{100, 110}, []float64{100, 110})...), thresholds())
	if !agg.Insufficient || agg.Verdict != model.TrendFlat {
		t.Errorf("got %+v, want insufficient FLAT", agg)
	}
}
