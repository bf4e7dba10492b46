// Package crossframe joins higher-timeframe context onto the intraday timeline.
package crossframe

import (
	"fmt"

	"BiasDesk/internal/config"
	"BiasDesk/internal/model"
	"BiasDesk/internal/series"
)

// Merge aligns every intraday bar with the most recent Daily and 4H bar at or
// before its timestamp and classifies the row. Rows with no earlier Daily or
// 4H bar keep a nil join.
func Merge(daily, h4, intraday *series.Series, th config.Thresholds) ([]model.MergedRow, error) {
	for _, req := range []struct {
		name   string
		series *series.Series
	}{{"daily", daily}, {"4h", h4}, {"intraday", intraday}} {
		if req.series.Len() == 0 {
			return nil, fmt.Errorf("merge: %s series: %w", req.name, model.ErrMissingTimeframe)
		}
	}

	rows := make([]model.MergedRow, 0, intraday.Len())
	for i := 0; i < intraday.Len(); i++ {
		bar := intraday.At(i)
		row := model.MergedRow{
			Time:     bar.Time,
			Intraday: bar,
			Daily:    asOf(daily, bar),
			H4:       asOf(h4, bar),
		}
		classify(&row, th)
		rows = append(rows, row)
	}
	return rows, nil
}

func asOf(s *series.Series, at model.Bar) *model.Bar {
	i := s.IndexAtOrBefore(at.Time)
	if i < 0 {
		return nil
	}
	b := s.At(i)
	return &b
}

func classify(row *model.MergedRow, th config.Thresholds) {
	m := row.Intraday
	row.SessionBias = sessionBias(row.Daily)

	if m.VAL > m.VAH {
		row.Mode = model.ModeUnclear
		return
	}
	above := m.Close > m.VAH
	below := m.Close < m.VAL
	row.Outside = !m.InsideValueArea()
	row.VolumeConfirmed = volumeConfirmed(row, th)
	if d := row.Daily; d != nil {
		row.DailyBreak = (above && d.Close > d.VAH) || (below && d.Close < d.VAL)
	}

	switch {
	case row.Outside && row.VolumeConfirmed && row.DailyBreak:
		row.Mode = model.ModeInitiative
	case !row.Outside && !row.VolumeConfirmed:
		row.Mode = model.ModeResponsive
	case !row.Outside && row.VolumeConfirmed:
		row.Mode = model.ModeNeutralWatch
	case row.Outside && !row.VolumeConfirmed:
		row.Mode = model.ModeFakeoutWait
	default:
		row.Mode = model.ModeUnclear
	}
}

// volumeConfirmed requires a present volume on all three joined bars, each
// strictly above its threshold. An absent volume is never confirmation.
func volumeConfirmed(row *model.MergedRow, th config.Thresholds) bool {
	if row.Daily == nil || row.H4 == nil {
		return false
	}
	checks := []struct {
		v   model.Float
		min float64
	}{
		{row.Daily.Volume, th.MergeVolumeMinDaily},
		{row.H4.Volume, th.MergeVolumeMinH4},
		{row.Intraday.Volume, th.MergeVolumeMinIntraday},
	}
	for _, c := range checks {
		v, ok := c.v.Get()
		if !ok || v <= c.min {
			return false
		}
	}
	return true
}

func sessionBias(d *model.Bar) model.DailyBias {
	switch {
	case d == nil:
		return model.DailyUnavailable
	case d.Close > d.VAH:
		return model.DailyBullish
	case d.Close < d.VAL:
		return model.DailyBearish
	}
	return model.DailyNeutral
}

// Columns returns the export header for merged rows. Each timeframe's fields
// carry that timeframe's suffix.
func Columns(intraday model.Timeframe) []string {
	cols := []string{"timestamp"}
	for _, tf := range []model.Timeframe{intraday, model.TF4H, model.TFDaily} {
		for _, f := range []string{"close", "poc", "val", "vah", "vwap", "volume"} {
			cols = append(cols, f+tf.Suffix())
		}
	}
	return append(cols, "outside_va", "volume_confirmed", "daily_break", "bias_mode", "session_bias")
}
