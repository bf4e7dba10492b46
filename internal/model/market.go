package model

import (
	"fmt"
	"strings"
	"time"
)

// Float is a numeric field that may be absent from the source export.
// An absent value never compares as zero.
type Float struct {
	Value float64
	Valid bool
}

// None is the absent Float.
var None = Float{}

// Some wraps a present value.
func Some(v float64) Float { return Float{Value: v, Valid: true} }

// Get returns the value and whether it is present.
func (f Float) Get() (float64, bool) { return f.Value, f.Valid }

// Timeframe identifies the bar interval of a series.
type Timeframe string

const (
	TFDaily Timeframe = "daily"
	TF4H    Timeframe = "4h"
	TF60m   Timeframe = "60m"
	TF30m   Timeframe = "30m"
)

// Timeframes lists all supported timeframes, highest first.
var Timeframes = []Timeframe{TFDaily, TF4H, TF60m, TF30m}

// ParseTimeframe accepts the canonical names plus a few common spellings.
func ParseTimeframe(s string) (Timeframe, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "daily", "d", "1d", "day":
		return TFDaily, nil
	case "4h", "h4", "240", "240m":
		return TF4H, nil
	case "60m", "60min", "1h", "h1", "60":
		return TF60m, nil
	case "30m", "30min", "m30", "30":
		return TF30m, nil
	}
	return "", fmt.Errorf("unknown timeframe %q", s)
}

// Suffix is the column suffix used for this timeframe in merged output.
func (tf Timeframe) Suffix() string {
	switch tf {
	case TFDaily:
		return "_D"
	case TF4H:
		return "_H"
	case TF60m:
		return "_60"
	case TF30m:
		return "_M"
	}
	return "_" + string(tf)
}

// Intraday reports whether bars of this timeframe carry a time of day.
func (tf Timeframe) Intraday() bool { return tf == TF60m || tf == TF30m }

// Bar is one market-profile bar: OHLC plus Point of Control, Value Area and VWAP.
type Bar struct {
	Time   time.Time
	Open   Float
	High   Float
	Low    Float
	Close  float64
	POC    float64
	VAL    float64
	VAH    float64
	VWAP   Float
	Volume Float
	Trades Float
}

// Range returns the Value Area width VAH-VAL. It may be negative for
// malformed input; callers must not assume otherwise.
func (b Bar) Range() float64 { return b.VAH - b.VAL }

// Center returns the Value Area midpoint.
func (b Bar) Center() float64 { return b.VAL + b.Range()/2 }

// Body returns |close-open| when open is present.
func (b Bar) Body() (float64, bool) {
	o, ok := b.Open.Get()
	if !ok {
		return 0, false
	}
	d := b.Close - o
	if d < 0 {
		d = -d
	}
	return d, true
}

// InsideValueArea reports val <= close <= vah.
func (b Bar) InsideValueArea() bool {
	return b.Close >= b.VAL && b.Close <= b.VAH
}

// Date returns the calendar date of the bar at midnight in the bar's location.
func (b Bar) Date() time.Time {
	y, m, d := b.Time.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, b.Time.Location())
}
