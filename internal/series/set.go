package series

import "BiasDesk/internal/model"

// Set holds at most one series per timeframe.
type Set map[model.Timeframe]*Series

// Get returns the series for tf, or nil.
func (s Set) Get(tf model.Timeframe) *Series { return s[tf] }

// Has reports whether tf has at least one bar.
func (s Set) Has(tf model.Timeframe) bool { return s[tf].Len() > 0 }

// Intraday returns the finest intraday series available, 30m before 60m.
func (s Set) Intraday() *Series {
	if s.Has(model.TF30m) {
		return s[model.TF30m]
	}
	if s.Has(model.TF60m) {
		return s[model.TF60m]
	}
	return nil
}
