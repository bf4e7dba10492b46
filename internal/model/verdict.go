package model

// DailyBias is the Daily aggregate verdict.
type DailyBias string

const (
	DailyStrongBullish DailyBias = "STRONG BULLISH"
	DailyBullish       DailyBias = "BULLISH"
	DailyNeutral       DailyBias = "NEUTRAL"
	DailyBearish       DailyBias = "BEARISH"
	DailyStrongBearish DailyBias = "STRONG BEARISH"

	// DailyUnavailable marks a display column with no joined Daily bar.
	DailyUnavailable DailyBias = "N/A"
)

// H4Bias is the 4H aggregate verdict.
type H4Bias string

const (
	H4Bullish H4Bias = "4H BULLISH"
	H4Neutral H4Bias = "4H NEUTRAL"
	H4Bearish H4Bias = "4H BEARISH"
)

// Trend is the short-term momentum verdict.
type Trend string

const (
	TrendUpswing   Trend = "UPSWING"
	TrendDownswing Trend = "DOWNSWING"
	TrendFlat      Trend = "FLAT"
)

// SessionBias is the combined session verdict.
type SessionBias string

const (
	SessionLong   SessionBias = "HIGH CONFIDENCE LONG"
	SessionShort  SessionBias = "HIGH CONFIDENCE SHORT"
	SessionMixed  SessionBias = "MIXED/ROTATION"
	SessionNoBias SessionBias = "NO BIAS"
)

// Confidence qualifies a session verdict.
type Confidence string

const (
	ConfidenceHigh     Confidence = "HIGH"
	ConfidenceModerate Confidence = "MODERATE"
	ConfidenceLow      Confidence = "LOW"
	ConfidenceNone     Confidence = "NONE"
)

// Direction is the tradeable call derived from a session verdict.
type Direction string

const (
	DirectionLong    Direction = "LONG"
	DirectionShort   Direction = "SHORT"
	DirectionNeutral Direction = "NEUTRAL"
)

// DailyAggregate is the reduced view of the last few daily bars.
type DailyAggregate struct {
	Verdict        DailyBias
	Bars           int
	POCUpDays      int
	POCRising      bool
	VWAPOverPOC    int
	ClosesAboveVAH int
	ClosesBelowVAL int
	Source         Timeframe
	Insufficient   bool
	Reason         string
}

// H4Aggregate is the reduced view of the last few 4-hour buckets.
type H4Aggregate struct {
	Verdict        H4Bias
	Bars           int
	VWAPOverPOC    int
	ClosesAboveVAH int
	ClosesBelowVAL int
	Source         Timeframe
	Insufficient   bool
	Reason         string
}

// TrendAggregate is the 30-minute momentum reading.
type TrendAggregate struct {
	Verdict      Trend
	Bars         int
	PriceDelta   float64
	VWAPDelta    float64
	Insufficient bool
	Reason       string
}

// Session is the combiner output.
type Session struct {
	Bias       SessionBias
	Confidence Confidence
	Direction  Direction
}
