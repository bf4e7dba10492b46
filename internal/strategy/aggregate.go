package strategy

import (
	"fmt"
	"time"

	"BiasDesk/internal/calculator"
	"BiasDesk/internal/config"
	"BiasDesk/internal/model"
	"BiasDesk/internal/series"
)

// FourHours is the bucket width used to derive 4H bars from intraday data.
const FourHours = 4 * time.Hour

// AggregateDaily reduces the last th.DailyBars calendar days to a verdict,
// taking the most recent bar of each day from any timeframe.
func AggregateDaily(s *series.Series, th config.Thresholds) model.DailyAggregate {
	agg := model.DailyAggregate{Verdict: model.DailyNeutral, Source: s.Timeframe()}
	if s.Len() == 0 {
		agg.Insufficient, agg.Reason = true, "daily: no series loaded"
		return agg
	}
	w, err := s.TailPerDay(th.DailyBars)
	if err != nil {
		agg.Insufficient = true
		agg.Reason = fmt.Sprintf("daily: %v", err)
		return agg
	}
	return DailyVerdict(w, th, agg.Source)
}

// DailyVerdict applies the daily rules to an already-reduced window.
func DailyVerdict(w series.Window, th config.Thresholds, source model.Timeframe) model.DailyAggregate {
	agg := model.DailyAggregate{Verdict: model.DailyNeutral, Bars: w.Len(), Source: source}
	agg.POCUpDays = calculator.CountTrue(calculator.NonDecreasing(w.POCs()))
	agg.POCRising = w.Len() > 1 && agg.POCUpDays >= th.DailyPOCUpDays
	agg.VWAPOverPOC, agg.ClosesAboveVAH, agg.ClosesBelowVAL = valueCounts(w)

	switch {
	case agg.POCRising &&
		agg.VWAPOverPOC >= th.DailyVWAPOverPOCMin &&
		agg.ClosesAboveVAH >= th.DailyClosesAboveVAHMin:
		agg.Verdict = model.DailyStrongBullish
	case agg.ClosesBelowVAL >= th.DailyClosesBelowVALMin && !agg.POCRising:
		agg.Verdict = model.DailyStrongBearish
	}
	return agg
}

// AggregateH4 reduces the last th.H4Bars 4-hour bars to a verdict. An
// intraday series is first reduced to its last bar per 4-hour bucket.
func AggregateH4(s *series.Series, th config.Thresholds) model.H4Aggregate {
	agg := model.H4Aggregate{Verdict: model.H4Neutral, Source: s.Timeframe()}
	if s.Len() == 0 {
		agg.Insufficient, agg.Reason = true, "4h: no series loaded"
		return agg
	}
	var (
		w   series.Window
		err error
	)
	if s.Timeframe() == model.TF4H {
		w, err = s.Tail(th.H4Bars)
	} else {
		w, err = s.TailPerBucket(FourHours, th.H4Bars)
	}
	if err != nil {
		agg.Insufficient = true
		agg.Reason = fmt.Sprintf("4h: %v", err)
		return agg
	}
	agg.Bars = w.Len()
	agg.VWAPOverPOC, agg.ClosesAboveVAH, agg.ClosesBelowVAL = valueCounts(w)

	switch {
	case agg.VWAPOverPOC >= th.H4VWAPOverPOCMin && agg.ClosesAboveVAH >= th.H4ClosesAboveVAHMin:
		agg.Verdict = model.H4Bullish
	case agg.ClosesBelowVAL >= th.H4ClosesBelowVALMin:
		agg.Verdict = model.H4Bearish
	}
	return agg
}

// AggregateTrend reads short-term momentum from the last th.Min30Bars bars.
func AggregateTrend(s *series.Series, th config.Thresholds) model.TrendAggregate {
	agg := model.TrendAggregate{Verdict: model.TrendFlat}
	if s.Len() == 0 {
		agg.Insufficient, agg.Reason = true, "trend: no intraday series loaded"
		return agg
	}
	w, err := s.Tail(th.Min30Bars)
	if err != nil {
		agg.Insufficient = true
		agg.Reason = fmt.Sprintf("trend: %v", err)
		return agg
	}
	agg.Bars = w.Len()
	first, last := w[0], w[w.Len()-1]
	agg.PriceDelta = last.Close - first.Close

	v0, ok0 := first.VWAP.Get()
	v1, ok1 := last.VWAP.Get()
	if !ok0 || !ok1 {
		agg.Reason = fmt.Sprintf("trend: %s vwap missing on first or last bar", s.Timeframe())
		return agg
	}
	agg.VWAPDelta = v1 - v0

	switch {
	case agg.PriceDelta > th.Min30PriceDelta && agg.VWAPDelta > th.Min30VWAPDelta:
		agg.Verdict = model.TrendUpswing
	case agg.PriceDelta < -th.Min30PriceDelta && agg.VWAPDelta < -th.Min30VWAPDelta:
		agg.Verdict = model.TrendDownswing
	}
	return agg
}

func valueCounts(w series.Window) (vwapOverPOC, aboveVAH, belowVAL int) {
	for _, b := range w {
		if v, ok := b.VWAP.Get(); ok && v > b.POC {
			vwapOverPOC++
		}
		if b.Close > b.VAH {
			aboveVAH++
		}
		if b.Close < b.VAL {
			belowVAL++
		}
	}
	return vwapOverPOC, aboveVAH, belowVAL
}
