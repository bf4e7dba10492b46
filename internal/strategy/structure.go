package strategy

import (
	"fmt"
	"iter"

	"BiasDesk/internal/calculator"
	"BiasDesk/internal/model"
	"BiasDesk/internal/series"
)

// ScanStructure walks every (lookback+1)-bar window of s and yields a pattern
// for each window that classifies. The sequence is lazy and may be ranged
// over more than once.
func ScanStructure(s *series.Series, lookback, tolerance int, narrowRatio float64) (iter.Seq[model.StructurePattern], error) {
	if lookback < 1 {
		return nil, fmt.Errorf("structure lookback must be >= 1, got %d", lookback)
	}
	if tolerance < 0 {
		return nil, fmt.Errorf("structure tolerance must be >= 0, got %d", tolerance)
	}
	bars := s.Bars()
	lows := make([]float64, len(bars))
	highs := make([]float64, len(bars))
	for i, b := range bars {
		lo, okLo := b.Low.Get()
		hi, okHi := b.High.Get()
		if !okLo || !okHi {
			return nil, fmt.Errorf("%s bar %s: %w", s.Timeframe(), b.Time.Format("2006-01-02 15:04"), model.ErrMissingHighLow)
		}
		lows[i], highs[i] = lo, hi
	}
	pocs := series.Window(bars).POCs()
	widths := series.Window(bars).Ranges()
	medians := calculator.RollingMedian(widths, lookback)

	return func(yield func(model.StructurePattern) bool) {
		for end := lookback; end < len(bars); end++ {
			start := end - lookback
			kind, ok := classifyWindow(
				pocs[start:end+1], lows[start:end+1], highs[start:end+1],
				widths[start:end+1], medians[start:end+1],
				tolerance, narrowRatio,
			)
			if !ok {
				continue
			}
			p := model.StructurePattern{
				Start:      bars[start].Time,
				End:        bars[end].Time,
				Kind:       kind,
				EntryPrice: bars[end].Close,
			}
			if !yield(p) {
				return
			}
		}
	}, nil
}

// Structure collects the scan into a slice.
func Structure(s *series.Series, lookback, tolerance int, narrowRatio float64) ([]model.StructurePattern, error) {
	seq, err := ScanStructure(s, lookback, tolerance, narrowRatio)
	if err != nil {
		return nil, err
	}
	var out []model.StructurePattern
	for p := range seq {
		out = append(out, p)
	}
	return out, nil
}

func classifyWindow(pocs, lows, highs, widths, medians []float64, tol int, ratio float64) (model.PatternKind, bool) {
	pass := func(flags []bool) bool { return calculator.PassesWithTolerance(flags, tol) }

	if pass(calculator.NonDecreasing(pocs)) && pass(calculator.NonDecreasing(lows)) {
		return model.PatternBullish, true
	}
	if pass(calculator.NonIncreasing(pocs)) && pass(calculator.NonIncreasing(highs)) {
		return model.PatternBearish, true
	}
	narrow := make([]bool, len(widths))
	for i := range widths {
		narrow[i] = widths[i] > 0 && medians[i] > 0 && widths[i] < ratio*medians[i]
	}
	if pass(narrow) {
		return model.PatternConsolidation, true
	}
	return "", false
}
