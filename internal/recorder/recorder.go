package recorder

import (
	"errors"

	"BiasDesk/internal/model"
)

// Recorder exports analysis results as flat delimited tables.
type Recorder interface {
	RecordSignals(tf model.Timeframe, its []model.Interpretation) error
	RecordPatterns(tf model.Timeframe, patterns []model.StructurePattern) error
	RecordMerged(intraday model.Timeframe, rows []model.MergedRow) error
	RecordBacktest(bt *model.BacktestResult) error
	Close() error
}

// Export writes every table of rep that has content. All tables are
// attempted; the returned error joins any failures.
func Export(r Recorder, rep *model.Report) error {
	var errs []error
	if len(rep.Interpretations) > 0 {
		errs = append(errs, r.RecordSignals(rep.InterpretTF, rep.Interpretations))
	}
	if len(rep.Patterns) > 0 {
		errs = append(errs, r.RecordPatterns(rep.InterpretTF, rep.Patterns))
	}
	if len(rep.Merged) > 0 {
		errs = append(errs, r.RecordMerged(rep.IntradayTF, rep.Merged))
	}
	if rep.Backtest != nil {
		errs = append(errs, r.RecordBacktest(rep.Backtest))
	}
	return errors.Join(errs...)
}
