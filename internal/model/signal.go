package model

import (
	"sort"
	"time"
)

// Flag is a structural or volume signal raised for one bar.
type Flag string

const (
	FlagBalanced        Flag = "poc_balanced"
	FlagPOCRising       Flag = "poc_rising"
	FlagPOCFalling      Flag = "poc_falling"
	FlagConsensus       Flag = "vwap_poc_consensus"
	FlagFailedBreakdown Flag = "failed_breakdown"
	FlagFailedBreakout  Flag = "failed_breakout"
	FlagNearVAL         Flag = "near_val"
	FlagNearVAH         Flag = "near_vah"
	FlagVolumeSpike     Flag = "volume_spike"
	FlagAbsorption      Flag = "absorption"
	FlagInefficient     Flag = "inefficient_move"
	FlagVACompression   Flag = "va_compression"
	FlagBullishClose    Flag = "bullish_close"
	FlagBearishClose    Flag = "bearish_close"
)

// Scored reports whether the flag counts toward the bias-force score.
// Candle color alone is not a rule.
func (f Flag) Scored() bool {
	return f != FlagBullishClose && f != FlagBearishClose
}

// SignalFlags is the unordered set of flags raised for a bar.
type SignalFlags map[Flag]bool

func (s SignalFlags) Has(f Flag) bool { return s[f] }

// Sorted returns the raised flags in lexical order.
func (s SignalFlags) Sorted() []Flag {
	out := make([]Flag, 0, len(s))
	for f, on := range s {
		if on {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Strength bands the interpreter score.
type Strength string

const (
	StrengthStrong   Strength = "STRONG"
	StrengthModerate Strength = "MODERATE"
	StrengthWeak     Strength = "WEAK"
)

// StrengthForScore maps a score: >=4 strong, 3 moderate, otherwise weak.
func StrengthForScore(score int) Strength {
	switch {
	case score >= 4:
		return StrengthStrong
	case score == 3:
		return StrengthModerate
	default:
		return StrengthWeak
	}
}

// Interpretation is the single-bar interpreter output.
type Interpretation struct {
	Bar             Bar
	Lookback        int
	Flags           SignalFlags
	Bias            []string
	Recommendations []string
	Score           int
	Strength        Strength
}

// PatternKind classifies a multi-candle structure window.
type PatternKind string

const (
	PatternBullish       PatternKind = "BULLISH"
	PatternBearish       PatternKind = "BEARISH"
	PatternConsolidation PatternKind = "CONSOLIDATION"
)

// StructurePattern is one qualifying structure-scanner window.
type StructurePattern struct {
	Start      time.Time
	End        time.Time
	Kind       PatternKind
	EntryPrice float64
}
