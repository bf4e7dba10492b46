// Package backtest replays recent sessions without look-ahead and scores the
// session combiner against the realized session direction.
package backtest

import (
	"fmt"

	"BiasDesk/internal/config"
	"BiasDesk/internal/model"
	"BiasDesk/internal/series"
	"BiasDesk/internal/strategy"
)

// Run replays the most recent daily bars, up to sessions of them. Each replay
// sees only bars stamped before the following calendar day.
func Run(daily, h4, intraday *series.Series, th config.Thresholds, sessions int) (*model.BacktestResult, error) {
	if daily.Len() == 0 || h4.Len() == 0 || intraday.Len() == 0 {
		return nil, fmt.Errorf("backtest needs daily, 4h and intraday series: %w", model.ErrMissingTimeframe)
	}
	if sessions < 1 {
		return nil, fmt.Errorf("backtest sessions must be >= 1, got %d", sessions)
	}

	start := daily.Len() - sessions
	if start < 0 {
		start = 0
	}
	res := &model.BacktestResult{}
	for i := start; i < daily.Len(); i++ {
		bar := daily.At(i)
		out := model.SessionOutcome{Date: bar.Date()}

		open, ok := bar.Open.Get()
		if !ok {
			out.Skipped = true
			out.Reason = "no open price"
			res.Skipped++
			res.Sessions = append(res.Sessions, out)
			continue
		}
		out.Realized = model.OutcomeDown
		if bar.Close > open {
			out.Realized = model.OutcomeUp
		}

		cutoff := bar.Date().AddDate(0, 0, 1)
		d := strategy.AggregateDaily(daily.Before(cutoff), th)
		h := strategy.AggregateH4(h4.Before(cutoff), th)
		t := strategy.AggregateTrend(intraday.Before(cutoff), th)
		session := strategy.CombineSession(d, h, t, th.RequireTrendAgreement)

		out.Daily, out.H4, out.Trend, out.Call = d.Verdict, h.Verdict, t.Verdict, session.Direction
		switch out.Call {
		case model.DirectionLong:
			res.Directional++
			out.Correct = out.Realized == model.OutcomeUp
		case model.DirectionShort:
			res.Directional++
			out.Correct = out.Realized == model.OutcomeDown
		}
		if out.Correct {
			res.Hits++
		}
		res.Sessions = append(res.Sessions, out)
	}
	return res, nil
}
