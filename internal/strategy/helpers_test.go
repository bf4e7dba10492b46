package strategy

import (
	"time"

	"BiasDesk/internal/config"
	"BiasDesk/internal/model"
	"BiasDesk/internal/series"
)

var day0 = time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

// vaBar builds a daily bar i days after day0 with a Value Area of val..vah.
func vaBar(i int, poc, val, vah, close float64) model.Bar {
	return model.Bar{
		Time:  day0.AddDate(0, 0, i),
		Close: close,
		POC:   poc,
		VAL:   val,
		VAH:   vah,
	}
}

func withVWAP(b model.Bar, v float64) model.Bar {
	b.VWAP = model.Some(v)
	return b
}

func withOpen(b model.Bar, v float64) model.Bar {
	b.Open = model.Some(v)
	return b
}

func withVolume(b model.Bar, v float64) model.Bar {
	b.Volume = model.Some(v)
	return b
}

func withHighLow(b model.Bar, high, low float64) model.Bar {
	b.High = model.Some(high)
	b.Low = model.Some(low)
	return b
}

func build(tf model.Timeframe, bars ...model.Bar) *series.Series {
	return series.Build(tf, bars)
}

func thresholds() config.Thresholds { return config.DefaultThresholds() }
