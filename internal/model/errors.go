package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrMissingColumn         = errors.New("missing column")
	ErrUnparsableRow         = errors.New("unparsable row")
	ErrNoUsableRows          = errors.New("no usable rows")
	ErrInsufficientHistory   = errors.New("insufficient history")
	ErrSelectedPointNotFound = errors.New("selected point not found")
	ErrMissingTimeframe      = errors.New("missing timeframe")
	ErrMissingHighLow        = errors.New("bars lack high/low")
)

// MissingColumnError reports a required field with no matching header synonym.
type MissingColumnError struct {
	Timeframe Timeframe
	Field     string
	Synonyms  []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s: required column %q not found (looked for %s)",
		e.Timeframe, e.Field, strings.Join(e.Synonyms, ", "))
}

func (e *MissingColumnError) Unwrap() error { return ErrMissingColumn }

// InsufficientHistoryError reports that a rule needed more bars than were available.
type InsufficientHistoryError struct {
	Rule string
	Need int
	Have int
}

func (e *InsufficientHistoryError) Error() string {
	return fmt.Sprintf("%s: insufficient data, need %d bars, have %d", e.Rule, e.Need, e.Have)
}

func (e *InsufficientHistoryError) Unwrap() error { return ErrInsufficientHistory }

// PointNotFoundError reports a requested date with no matching bar.
type PointNotFoundError struct {
	Timeframe Timeframe
	Date      time.Time
}

func (e *PointNotFoundError) Error() string {
	return fmt.Sprintf("%s: no bar on %s", e.Timeframe, e.Date.Format("2006-01-02"))
}

func (e *PointNotFoundError) Unwrap() error { return ErrSelectedPointNotFound }
