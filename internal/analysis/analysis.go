// Package analysis runs the full bias pipeline over one snapshot of series.
package analysis

import (
	"errors"
	"fmt"
	"time"

	"BiasDesk/internal/backtest"
	"BiasDesk/internal/config"
	"BiasDesk/internal/crossframe"
	"BiasDesk/internal/model"
	"BiasDesk/internal/series"
	"BiasDesk/internal/strategy"
)

// Input is everything one run needs. Run never modifies it.
type Input struct {
	Set        series.Set
	Normalize  []model.NormalizeReport
	Thresholds config.Thresholds
	Now        time.Time
}

// Run recomputes every result from scratch. Component failures are reported
// as warnings so partial input still produces a best-effort report.
func Run(in Input, opts config.Options) *model.Report {
	th := in.Thresholds
	rep := &model.Report{
		GeneratedAt: in.Now,
		Normalize:   append([]model.NormalizeReport(nil), in.Normalize...),
		InterpretTF: opts.Timeframe(),
	}
	warn := func(format string, args ...any) {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf(format, args...))
	}

	intraday := in.Set.Intraday()
	rep.IntradayTF = intraday.Timeframe()

	dailySrc := in.Set.Get(model.TFDaily)
	if !in.Set.Has(model.TFDaily) && intraday != nil {
		dailySrc = intraday
		warn("daily: no daily series, derived from last %s bar of each day", intraday.Timeframe())
	}
	rep.Daily = strategy.AggregateDaily(dailySrc, th)
	if rep.Daily.Insufficient {
		warn("%s", rep.Daily.Reason)
	}

	h4Src := in.Set.Get(model.TF4H)
	if !in.Set.Has(model.TF4H) && intraday != nil {
		h4Src = intraday
		warn("4h: no 4h series, derived from last %s bar of each 4-hour bucket", intraday.Timeframe())
	}
	rep.H4 = strategy.AggregateH4(h4Src, th)
	if rep.H4.Insufficient {
		warn("%s", rep.H4.Reason)
	}

	if intraday != nil && intraday.Timeframe() != model.TF30m {
		warn("trend: no 30m series, using %s bars", intraday.Timeframe())
	}
	rep.Trend = strategy.AggregateTrend(intraday, th)
	if rep.Trend.Reason != "" {
		warn("%s", rep.Trend.Reason)
	}

	rep.Session = strategy.CombineSession(rep.Daily, rep.H4, rep.Trend, th.RequireTrendAgreement)

	interpret(rep, in.Set.Get(rep.InterpretTF), opts, th, warn)

	if in.Set.Has(model.TFDaily) && in.Set.Has(model.TF4H) && intraday != nil {
		daily, h4 := in.Set.Get(model.TFDaily), in.Set.Get(model.TF4H)
		rows, err := crossframe.Merge(daily, h4, intraday, th)
		if err != nil {
			warn("merge: %v", err)
		}
		rep.Merged = rows

		bt, err := backtest.Run(daily, h4, intraday, th, th.BacktestSessions)
		if err != nil {
			warn("backtest: %v", err)
		}
		rep.Backtest = bt
	} else {
		warn("merge and backtest skipped: need daily, 4h and an intraday series: %v", model.ErrMissingTimeframe)
	}
	return rep
}

func interpret(rep *model.Report, s *series.Series, opts config.Options, th config.Thresholds, warn func(string, ...any)) {
	tf := rep.InterpretTF
	if s.Len() == 0 {
		warn("interpret: no %s series loaded", tf)
		return
	}

	idx := s.Len() - 1
	if opts.SelectedDate != "" {
		date, err := time.Parse(time.DateOnly, opts.SelectedDate)
		if err != nil {
			warn("interpret: bad selected date %q: %v", opts.SelectedDate, err)
			return
		}
		i, _, err := s.BarAtDate(date)
		if err != nil {
			warn("interpret: %v", err)
			return
		}
		idx = i
	}
	window, err := s.WindowEndingBefore(idx, opts.Lookback)
	if err == nil {
		rep.Selected, err = strategy.Interpret(s.At(idx), window, th)
	}
	if err != nil {
		warn("interpret: %s bar %s: %v", tf, s.At(idx).Time.Format("2006-01-02 15:04"), err)
	}

	// A failure here implies the selected bar failed too and was reported.
	if all, err := strategy.InterpretSeries(s, opts.Lookback, th); err == nil {
		rep.Interpretations = all
	}

	patterns, err := strategy.Structure(s, th.StructureLookback, th.StructureTolerance, th.StructureNarrowRatio)
	switch {
	case errors.Is(err, model.ErrMissingHighLow):
		warn("structure: skipped, %v", err)
	case err != nil:
		warn("structure: %v", err)
	}
	rep.Patterns = patterns
}
