package model

import "time"

// MergedRow is one intraday bar with the as-of Daily and 4H bars joined on.
// A nil Daily or H4 means no bar existed at or before the intraday timestamp.
type MergedRow struct {
	Time            time.Time
	Intraday        Bar
	Daily           *Bar
	H4              *Bar
	Outside         bool
	VolumeConfirmed bool
	DailyBreak      bool
	Mode            BiasMode
	SessionBias     DailyBias
}

// BiasMode classifies a merged row.
type BiasMode string

const (
	ModeInitiative   BiasMode = "Initiative Bias"
	ModeResponsive   BiasMode = "Responsive Bias"
	ModeNeutralWatch BiasMode = "Neutral-Watch"
	ModeFakeoutWait  BiasMode = "Fakeout-Wait"
	ModeUnclear      BiasMode = "Unclear"
)

// Outcome is the realized direction of a session.
type Outcome string

const (
	OutcomeUp   Outcome = "UP"
	OutcomeDown Outcome = "DOWN"
)

// SessionOutcome is one replayed backtest session.
type SessionOutcome struct {
	Date     time.Time
	Daily    DailyBias
	H4       H4Bias
	Trend    Trend
	Call     Direction
	Realized Outcome
	Correct  bool
	Skipped  bool
	Reason   string
}

// BacktestResult summarizes a backtest replay.
type BacktestResult struct {
	Sessions    []SessionOutcome
	Hits        int
	Directional int
	Skipped     int
}

// Accuracy returns hits/directional in [0,1]. The second value is false when
// no directional call was made, which is distinct from 0% accuracy.
func (r BacktestResult) Accuracy() (float64, bool) {
	if r.Directional == 0 {
		return 0, false
	}
	return float64(r.Hits) / float64(r.Directional), true
}

// NormalizeReport describes one normalization pass.
type NormalizeReport struct {
	Timeframe Timeframe
	Source    string
	Total     int
	Kept      int
	Dropped   int
	Reasons   map[string]int
	Samples   []RowDrop
}

// RowDrop is one dropped source row.
type RowDrop struct {
	Line   int
	Reason string
}

// Report is the full analysis output for one run.
type Report struct {
	GeneratedAt     time.Time
	Normalize       []NormalizeReport
	Daily           DailyAggregate
	H4              H4Aggregate
	Trend           TrendAggregate
	Session         Session
	InterpretTF     Timeframe
	IntradayTF      Timeframe
	Selected        *Interpretation
	Interpretations []Interpretation
	Patterns        []StructurePattern
	Merged          []MergedRow
	Backtest        *BacktestResult
	Warnings        []string
}
