package collector

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"BiasDesk/internal/model"
	"BiasDesk/internal/series"
)

const maxDropSamples = 10

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 3:04 PM",
	"2006-01-02 3:04:05 PM",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"2006/01/02",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006 3:04 PM",
	"1/2/2006 3:04:05 PM",
	"1/2/2006",
}

// Normalize maps the rows of src onto canonical bars for one timeframe.
// Rows with an unparsable timestamp or required field are dropped and
// counted; it fails only when a required column is missing from the header
// or every row is dropped.
func Normalize(tf model.Timeframe, src RowSource) (*series.Series, model.NormalizeReport, error) {
	report := model.NormalizeReport{Timeframe: tf, Source: src.Name(), Reasons: map[string]int{}}

	header, records, err := src.Rows()
	if err != nil {
		return nil, report, fmt.Errorf("%s: %w", tf, err)
	}

	cols := resolveColumns(header)
	if _, ok := cols[FieldTimestamp]; !ok {
		if i, ok := cols[FieldTime]; ok {
			// a lone time column carries the full timestamp
			cols[FieldTimestamp] = i
			delete(cols, FieldTime)
		}
	}
	var missing []error
	for _, syn := range Synonyms {
		if _, ok := cols[syn.Field]; syn.Required && !ok {
			missing = append(missing, &model.MissingColumnError{Timeframe: tf, Field: string(syn.Field), Synonyms: syn.Names})
		}
	}
	if len(missing) > 0 {
		return nil, report, errors.Join(missing...)
	}

	bars := make([]model.Bar, 0, len(records))
	for i, rec := range records {
		if blank(rec) {
			continue
		}
		report.Total++
		bar, reason := parseRow(rec, cols)
		if reason != "" {
			report.Dropped++
			report.Reasons[reason]++
			if len(report.Samples) < maxDropSamples {
				report.Samples = append(report.Samples, model.RowDrop{Line: i + 2, Reason: reason})
			}
			continue
		}
		bars = append(bars, bar)
	}
	report.Kept = len(bars)

	if report.Kept == 0 {
		return nil, report, fmt.Errorf("%s: %w: all %d rows dropped: %w", tf, model.ErrNoUsableRows, report.Total, model.ErrUnparsableRow)
	}
	return series.Build(tf, bars), report, nil
}

func parseRow(rec []string, cols map[Field]int) (model.Bar, string) {
	var bar model.Bar

	stamp := cell(rec, cols, FieldTimestamp)
	if tc := cell(rec, cols, FieldTime); tc != "" {
		stamp = stamp + " " + tc
	}
	ts, ok := parseTimestamp(stamp)
	if !ok {
		return bar, "unparsable timestamp"
	}
	bar.Time = ts

	required := []struct {
		field Field
		dst   *float64
	}{
		{FieldClose, &bar.Close},
		{FieldPOC, &bar.POC},
		{FieldVAL, &bar.VAL},
		{FieldVAH, &bar.VAH},
	}
	for _, r := range required {
		raw := cell(rec, cols, r.field)
		if raw == "" {
			return bar, "missing " + string(r.field)
		}
		v, err := parseNumber(raw)
		if err != nil {
			return bar, "unparsable " + string(r.field)
		}
		*r.dst = v
	}

	bar.Open = optional(rec, cols, FieldOpen)
	bar.High = optional(rec, cols, FieldHigh)
	bar.Low = optional(rec, cols, FieldLow)
	bar.VWAP = optional(rec, cols, FieldVWAP)
	bar.Volume = optional(rec, cols, FieldVolume)
	bar.Trades = optional(rec, cols, FieldTrades)
	return bar, ""
}

func cell(rec []string, cols map[Field]int, f Field) string {
	i, ok := cols[f]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(rec[i]), `"'`))
}

func optional(rec []string, cols map[Field]int, f Field) model.Float {
	raw := cell(rec, cols, f)
	if raw == "" {
		return model.None
	}
	v, err := parseNumber(raw)
	if err != nil {
		return model.None
	}
	return model.Some(v)
}

func blank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseNumber(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite number %q", s)
	}
	return v, nil
}

// parseTimestamp tries the known layouts, then unix seconds.
func parseTimestamp(s string) (time.Time, bool) {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
		return time.Unix(ts, 0).UTC(), true
	}
	return time.Time{}, false
}

// Canonical renders s as canonical header and records. Normalizing the
// output again yields an identical series.
func Canonical(s *series.Series) ([]string, [][]string) {
	header := []string{
		string(FieldTimestamp), string(FieldOpen), string(FieldHigh), string(FieldLow),
		string(FieldClose), string(FieldPOC), string(FieldVAL), string(FieldVAH),
		string(FieldVWAP), string(FieldVolume), string(FieldTrades),
	}
	records := make([][]string, 0, s.Len())
	for _, b := range s.Bars() {
		records = append(records, []string{
			b.Time.UTC().Format(time.RFC3339),
			formatOptional(b.Open), formatOptional(b.High), formatOptional(b.Low),
			formatFloat(b.Close), formatFloat(b.POC), formatFloat(b.VAL), formatFloat(b.VAH),
			formatOptional(b.VWAP), formatOptional(b.Volume), formatOptional(b.Trades),
		})
	}
	return header, records
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func formatOptional(f model.Float) string {
	if v, ok := f.Get(); ok {
		return formatFloat(v)
	}
	return ""
}
