package recorder

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"BiasDesk/internal/crossframe"
	"BiasDesk/internal/model"
)

// File names written by CSVRecorder.
const (
	SignalsFile  = "signals.csv"
	PatternsFile = "patterns.csv"
	MergedFile   = "merged.csv"
	BacktestFile = "backtest.csv"
)

// CSVRecorder writes one CSV table per result kind into a directory. Each
// call replaces the previous table.
type CSVRecorder struct {
	dir string
	log zerolog.Logger
	mu  sync.Mutex
}

// NewCSVRecorder creates the export directory if needed.
func NewCSVRecorder(dir string, log zerolog.Logger) (*CSVRecorder, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}
	log.Info().Str("dir", dir).Msg("csv recorder opened")
	return &CSVRecorder{dir: dir, log: log}, nil
}

func (r *CSVRecorder) RecordSignals(tf model.Timeframe, its []model.Interpretation) error {
	header := []string{
		"timestamp", "timeframe", "close", "poc", "val", "vah", "vwap", "volume", "trades",
		"score", "strength", "flags", "bias", "recommendations",
	}
	rows := make([][]string, 0, len(its))
	for _, it := range its {
		b := it.Bar
		flags := make([]string, 0, len(it.Flags))
		for _, f := range it.Flags.Sorted() {
			flags = append(flags, string(f))
		}
		rows = append(rows, []string{
			stamp(b.Time), string(tf),
			price(b.Close), price(b.POC), price(b.VAL), price(b.VAH), optionalPrice(b.VWAP),
			count(b.Volume), count(b.Trades),
			strconv.Itoa(it.Score), string(it.Strength),
			strings.Join(flags, ";"),
			strings.Join(it.Bias, " | "),
			strings.Join(it.Recommendations, " | "),
		})
	}
	return r.write(SignalsFile, header, rows)
}

func (r *CSVRecorder) RecordPatterns(tf model.Timeframe, patterns []model.StructurePattern) error {
	header := []string{"timeframe", "start", "end", "pattern", "entry_price"}
	rows := make([][]string, 0, len(patterns))
	for _, p := range patterns {
		rows = append(rows, []string{string(tf), stamp(p.Start), stamp(p.End), string(p.Kind), price(p.EntryPrice)})
	}
	return r.write(PatternsFile, header, rows)
}

func (r *CSVRecorder) RecordMerged(intraday model.Timeframe, rows []model.MergedRow) error {
	out := make([][]string, 0, len(rows))
	for _, m := range rows {
		rec := []string{stamp(m.Time)}
		for _, b := range []*model.Bar{&m.Intraday, m.H4, m.Daily} {
			rec = append(rec, barColumns(b)...)
		}
		rec = append(rec,
			strconv.FormatBool(m.Outside),
			strconv.FormatBool(m.VolumeConfirmed),
			strconv.FormatBool(m.DailyBreak),
			string(m.Mode),
			string(m.SessionBias),
		)
		out = append(out, rec)
	}
	return r.write(MergedFile, crossframe.Columns(intraday), out)
}

func (r *CSVRecorder) RecordBacktest(bt *model.BacktestResult) error {
	header := []string{"date", "daily", "h4", "trend", "call", "realized", "correct", "skipped", "reason"}
	rows := make([][]string, 0, len(bt.Sessions))
	for _, s := range bt.Sessions {
		rows = append(rows, []string{
			s.Date.Format(time.DateOnly),
			string(s.Daily), string(s.H4), string(s.Trend), string(s.Call), string(s.Realized),
			strconv.FormatBool(s.Correct), strconv.FormatBool(s.Skipped), s.Reason,
		})
	}
	return r.write(BacktestFile, header, rows)
}

func (r *CSVRecorder) Close() error { return nil }

func (r *CSVRecorder) write(name string, header []string, rows [][]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	path := filepath.Join(r.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", name, err)
	}
	r.log.Debug().Str("path", path).Int("rows", len(rows)).Msg("table exported")
	return nil
}

// barColumns matches the per-timeframe block of crossframe.Columns. A nil bar
// yields empty cells.
func barColumns(b *model.Bar) []string {
	if b == nil {
		return make([]string, 6)
	}
	return []string{price(b.Close), price(b.POC), price(b.VAL), price(b.VAH), optionalPrice(b.VWAP), count(b.Volume)}
}

func stamp(t time.Time) string { return t.Format(time.RFC3339) }

func price(v float64) string { return decimal.NewFromFloat(v).StringFixed(2) }

func optionalPrice(f model.Float) string {
	if v, ok := f.Get(); ok {
		return price(v)
	}
	return ""
}

func count(f model.Float) string {
	if v, ok := f.Get(); ok {
		return decimal.NewFromFloat(v).String()
	}
	return ""
}
