package strategy

import "BiasDesk/internal/model"

// CombineSession folds the three timeframe verdicts into a session call.
// Insufficient aggregates already carry NEUTRAL/FLAT verdicts, so any subset
// of timeframes still yields a best-effort result. With requireTrend the
// short-term trend must agree before a directional call is made.
func CombineSession(d model.DailyAggregate, h model.H4Aggregate, t model.TrendAggregate, requireTrend bool) model.Session {
	if d.Insufficient && h.Insufficient && t.Insufficient {
		return model.Session{Bias: model.SessionNoBias, Confidence: model.ConfidenceNone, Direction: model.DirectionNeutral}
	}

	mixed := model.Session{Bias: model.SessionMixed, Confidence: model.ConfidenceLow, Direction: model.DirectionNeutral}

	switch {
	case d.Verdict == model.DailyStrongBullish && h.Verdict == model.H4Bullish:
		return directional(model.SessionLong, model.DirectionLong, t.Verdict == model.TrendUpswing, requireTrend, mixed)
	case d.Verdict == model.DailyStrongBearish && h.Verdict == model.H4Bearish:
		return directional(model.SessionShort, model.DirectionShort, t.Verdict == model.TrendDownswing, requireTrend, mixed)
	}
	return mixed
}

func directional(bias model.SessionBias, dir model.Direction, trendAgrees, requireTrend bool, fallback model.Session) model.Session {
	switch {
	case trendAgrees:
		return model.Session{Bias: bias, Confidence: model.ConfidenceHigh, Direction: dir}
	case requireTrend:
		return fallback
	}
	return model.Session{Bias: bias, Confidence: model.ConfidenceModerate, Direction: dir}
}
