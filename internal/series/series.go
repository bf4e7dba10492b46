package series

import (
	"fmt"
	"sort"
	"time"

	"BiasDesk/internal/model"
)

// Series is an immutable, strictly time-ordered sequence of bars for one timeframe.
type Series struct {
	tf   model.Timeframe
	bars []model.Bar
}

// Build sorts bars ascending by time and keeps the last inserted bar for any
// repeated timestamp. The input slice is not modified.
func Build(tf model.Timeframe, bars []model.Bar) *Series {
	sorted := make([]model.Bar, len(bars))
	copy(sorted, bars)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Time.Before(sorted[j].Time) })

	out := make([]model.Bar, 0, len(sorted))
	for _, b := range sorted {
		if n := len(out); n > 0 && out[n-1].Time.Equal(b.Time) {
			out[n-1] = b
			continue
		}
		out = append(out, b)
	}
	return &Series{tf: tf, bars: out}
}

func (s *Series) Timeframe() model.Timeframe {
	if s == nil {
		return ""
	}
	return s.tf
}

// Len returns the number of bars; a nil series has none.
func (s *Series) Len() int {
	if s == nil {
		return 0
	}
	return len(s.bars)
}

func (s *Series) At(i int) model.Bar { return s.bars[i] }

// Bars returns a copy of the bars.
func (s *Series) Bars() []model.Bar {
	if s == nil {
		return nil
	}
	out := make([]model.Bar, len(s.bars))
	copy(out, s.bars)
	return out
}

// Last returns the most recent bar.
func (s *Series) Last() (model.Bar, bool) {
	if s.Len() == 0 {
		return model.Bar{}, false
	}
	return s.bars[len(s.bars)-1], true
}

// Tail returns the last n bars, failing when fewer exist.
func (s *Series) Tail(n int) (Window, error) {
	if s.Len() < n {
		return nil, &model.InsufficientHistoryError{Rule: fmt.Sprintf("%s tail", s.Timeframe()), Need: n, Have: s.Len()}
	}
	return Window(s.bars[len(s.bars)-n:]), nil
}

// WindowEndingBefore returns the length bars immediately preceding index.
func (s *Series) WindowEndingBefore(index, length int) (Window, error) {
	if index < 0 || index >= s.Len() {
		return nil, fmt.Errorf("%s: index %d out of range [0,%d): %w", s.Timeframe(), index, s.Len(), model.ErrSelectedPointNotFound)
	}
	if length < 1 || index < length {
		return nil, &model.InsufficientHistoryError{Rule: fmt.Sprintf("%s lookback", s.Timeframe()), Need: length, Have: index}
	}
	return Window(s.bars[index-length : index]), nil
}

// BarAtDate returns the first bar falling on the calendar date of date.
func (s *Series) BarAtDate(date time.Time) (int, model.Bar, error) {
	if s.Len() == 0 {
		return -1, model.Bar{}, &model.PointNotFoundError{Timeframe: s.Timeframe(), Date: date}
	}
	y, m, d := date.Date()
	for i, b := range s.bars {
		by, bm, bd := b.Time.Date()
		if by == y && bm == m && bd == d {
			return i, b, nil
		}
	}
	return -1, model.Bar{}, &model.PointNotFoundError{Timeframe: s.tf, Date: date}
}

// IndexAtOrBefore returns the index of the most recent bar with Time <= t, or -1.
func (s *Series) IndexAtOrBefore(t time.Time) int {
	n := s.Len()
	i := sort.Search(n, func(i int) bool { return s.bars[i].Time.After(t) })
	return i - 1
}

// Before returns the prefix of bars with Time strictly before t. Replays use
// it to hide every bar at or after a cutoff.
func (s *Series) Before(t time.Time) *Series {
	if s == nil {
		return nil
	}
	i := sort.Search(s.Len(), func(i int) bool { return !s.bars[i].Time.Before(t) })
	return &Series{tf: s.tf, bars: s.bars[:i]}
}

// TailPerDay reduces the series to its last bar of each calendar day and
// returns the most recent n of those.
func (s *Series) TailPerDay(n int) (Window, error) {
	return s.tailPerKey(n, "per-day", func(b model.Bar) time.Time { return b.Date() })
}

// TailPerBucket reduces the series to the last bar within each d-aligned
// bucket of its calendar day and returns the most recent n of those.
func (s *Series) TailPerBucket(d time.Duration, n int) (Window, error) {
	return s.tailPerKey(n, fmt.Sprintf("per-%s", d), func(b model.Bar) time.Time {
		day := b.Date()
		return day.Add(b.Time.Sub(day) / d * d)
	})
}

func (s *Series) tailPerKey(n int, rule string, key func(model.Bar) time.Time) (Window, error) {
	if s.Len() == 0 {
		return nil, &model.InsufficientHistoryError{Rule: fmt.Sprintf("%s %s", s.Timeframe(), rule), Need: n, Have: 0}
	}
	var reps []model.Bar
	var last time.Time
	for _, b := range s.bars {
		k := key(b)
		if len(reps) > 0 && k.Equal(last) {
			reps[len(reps)-1] = b
			continue
		}
		reps = append(reps, b)
		last = k
	}
	if len(reps) < n {
		return nil, &model.InsufficientHistoryError{Rule: fmt.Sprintf("%s %s", s.Timeframe(), rule), Need: n, Have: len(reps)}
	}
	return Window(reps[len(reps)-n:]), nil
}
