package recorder

import "BiasDesk/internal/model"

// NoopRecorder is a no-op implementation used when no export directory is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordSignals(_ model.Timeframe, _ []model.Interpretation) error    { return nil }
func (n *NoopRecorder) RecordPatterns(_ model.Timeframe, _ []model.StructurePattern) error { return nil }
func (n *NoopRecorder) RecordMerged(_ model.Timeframe, _ []model.MergedRow) error          { return nil }
func (n *NoopRecorder) RecordBacktest(_ *model.BacktestResult) error                       { return nil }
func (n *NoopRecorder) Close() error                                                       { return nil }
