package strategy

import (
	"fmt"
	"math"

	"BiasDesk/internal/calculator"
	"BiasDesk/internal/config"
	"BiasDesk/internal/model"
	"BiasDesk/internal/series"
)

// rule evaluates one interpreter condition against the current bar. It
// appends to the interpretation and reports nothing when its inputs are absent.
type rule func(in *interpretInput, out *model.Interpretation)

type interpretInput struct {
	curr   model.Bar
	window series.Window
	th     config.Thresholds
	r      float64
}

// rules run in this order; notes are emitted in the same order.
var rules = []rule{
	ruleBalanced,
	ruleMigration,
	ruleConsensus,
	ruleFailedBreakdown,
	ruleFailedBreakout,
	ruleProximity,
	ruleVolume,
	ruleInefficient,
	ruleCompression,
	ruleCloseColor,
}

// Interpret reads one bar against its reference window.
func Interpret(curr model.Bar, window series.Window, th config.Thresholds) (*model.Interpretation, error) {
	if window.Len() == 0 {
		return nil, &model.InsufficientHistoryError{Rule: "interpret window", Need: 1, Have: 0}
	}
	in := &interpretInput{curr: curr, window: window, th: th, r: curr.Range()}
	out := &model.Interpretation{
		Bar:      curr,
		Lookback: window.Len(),
		Flags:    model.SignalFlags{},
	}
	for _, apply := range rules {
		apply(in, out)
	}
	for f, on := range out.Flags {
		if on && f.Scored() {
			out.Score++
		}
	}
	out.Strength = model.StrengthForScore(out.Score)
	return out, nil
}

// InterpretSeries interprets every bar that has a full lookback window
// behind it, oldest first.
func InterpretSeries(s *series.Series, lookback int, th config.Thresholds) ([]model.Interpretation, error) {
	if s.Len() <= lookback {
		return nil, &model.InsufficientHistoryError{
			Rule: fmt.Sprintf("%s interpret lookback", s.Timeframe()),
			Need: lookback + 1,
			Have: s.Len(),
		}
	}
	out := make([]model.Interpretation, 0, s.Len()-lookback)
	for i := lookback; i < s.Len(); i++ {
		window, err := s.WindowEndingBefore(i, lookback)
		if err != nil {
			return nil, err
		}
		it, err := Interpret(s.At(i), window, th)
		if err != nil {
			return nil, err
		}
		out = append(out, *it)
	}
	return out, nil
}

func raise(out *model.Interpretation, f model.Flag, note string) {
	out.Flags[f] = true
	if note != "" {
		out.Bias = append(out.Bias, note)
	}
}

func recommend(out *model.Interpretation, note string) {
	out.Recommendations = append(out.Recommendations, note)
}

func ruleBalanced(in *interpretInput, out *model.Interpretation) {
	if math.Abs(in.curr.POC-in.curr.Center()) < in.th.BalancedFraction*in.r {
		raise(out, model.FlagBalanced, "POC near center → balanced")
	}
}

func ruleMigration(in *interpretInput, out *model.Interpretation) {
	mean, err := calculator.Mean(in.window.POCs())
	if err != nil {
		return
	}
	switch {
	case in.curr.POC < mean:
		raise(out, model.FlagPOCFalling, "POC falling → bearish migration")
	case in.curr.POC > mean:
		raise(out, model.FlagPOCRising, "POC rising → bullish migration")
	}
}

func ruleConsensus(in *interpretInput, out *model.Interpretation) {
	vwap, ok := in.curr.VWAP.Get()
	if !ok {
		return
	}
	if math.Abs(vwap-in.curr.POC) < in.th.ConsensusFraction*in.r {
		raise(out, model.FlagConsensus, "VWAP ≈ POC → fair value consensus")
		recommend(out, "POC ≈ VWAP → fade extremes")
	}
}

func ruleFailedBreakdown(in *interpretInput, out *model.Interpretation) {
	open, ok := in.curr.Open.Get()
	if !ok {
		return
	}
	if in.curr.Close < in.curr.VAL && in.curr.Close > open {
		raise(out, model.FlagFailedBreakdown, "Failed breakdown (below VAL rejected)")
	}
}

func ruleFailedBreakout(in *interpretInput, out *model.Interpretation) {
	high, ok := in.curr.High.Get()
	if !ok {
		return
	}
	if high > in.curr.VAH && in.curr.Close < in.curr.VAH {
		raise(out, model.FlagFailedBreakout, "Failed breakout (above VAH rejected)")
	}
}

func ruleProximity(in *interpretInput, out *model.Interpretation) {
	band := in.th.ProximityFraction * in.r
	if math.Abs(in.curr.Close-in.curr.VAL) < band {
		raise(out, model.FlagNearVAL, "")
		recommend(out, "Reversal long: VAL tested and rejected")
	}
	if math.Abs(in.curr.Close-in.curr.VAH) < band {
		raise(out, model.FlagNearVAH, "")
		recommend(out, "Reversal short: fade into VAH")
	}
}

func ruleVolume(in *interpretInput, out *model.Interpretation) {
	vol, ok := in.curr.Volume.Get()
	if !ok {
		return
	}
	avg, err := calculator.Mean(in.window.Volumes())
	if err != nil {
		return
	}
	if vol <= in.th.VolumeSpikeRatio*avg {
		return
	}
	raise(out, model.FlagVolumeSpike, "High volume → expansion or strong interest")
	body, ok := in.curr.Body()
	if ok && body < in.th.AbsorptionBodyFraction*in.r {
		raise(out, model.FlagAbsorption, "Volume spike but small body → absorption")
		recommend(out, "Fade reaction unless confirmed")
	}
}

func ruleInefficient(in *interpretInput, out *model.Interpretation) {
	if in.r <= 0 {
		return
	}
	trades, ok := in.curr.Trades.Get()
	if !ok {
		return
	}
	body, ok := in.curr.Body()
	if !ok {
		return
	}
	avg, err := calculator.Mean(in.window.Trades())
	if err != nil {
		return
	}
	if trades < in.th.InefficientTradesRatio*avg && body > in.th.InefficientBodyFraction*in.r {
		raise(out, model.FlagInefficient, "Large range but low trade count → inefficient move")
		recommend(out, "Caution: may reverse if no follow-through")
	}
}

// ruleCompression needs a positive width on both sides; an inverted or empty
// value area is not coiling.
func ruleCompression(in *interpretInput, out *model.Interpretation) {
	if in.r <= 0 {
		return
	}
	avg, err := calculator.Mean(in.window.Ranges())
	if err != nil || avg <= 0 {
		return
	}
	if in.r < in.th.VACompressionRatio*avg {
		raise(out, model.FlagVACompression, "Narrow VA → coiling")
		recommend(out, "Watch for breakout or trap behavior")
	}
}

func ruleCloseColor(in *interpretInput, out *model.Interpretation) {
	open, ok := in.curr.Open.Get()
	if !ok {
		return
	}
	switch {
	case in.curr.Close > open:
		raise(out, model.FlagBullishClose, "")
	case in.curr.Close < open:
		raise(out, model.FlagBearishClose, "")
	}
}
