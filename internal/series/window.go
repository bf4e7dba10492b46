package series

import "BiasDesk/internal/model"

// Window is a read-only run of consecutive bars used as reference context.
type Window []model.Bar

func (w Window) Len() int { return len(w) }

// POCs returns the POC of every bar.
func (w Window) POCs() []float64 {
	out := make([]float64, len(w))
	for i, b := range w {
		out[i] = b.POC
	}
	return out
}

// Ranges returns the Value Area width of every bar.
func (w Window) Ranges() []float64 {
	out := make([]float64, len(w))
	for i, b := range w {
		out[i] = b.Range()
	}
	return out
}

// Volumes returns the volumes present in the window; absent values are skipped.
func (w Window) Volumes() []float64 {
	return w.present(func(b model.Bar) model.Float { return b.Volume })
}

// Trades returns the trade counts present in the window; absent values are skipped.
func (w Window) Trades() []float64 {
	return w.present(func(b model.Bar) model.Float { return b.Trades })
}

func (w Window) present(field func(model.Bar) model.Float) []float64 {
	var out []float64
	for _, b := range w {
		if v, ok := field(b).Get(); ok {
			out = append(out, v)
		}
	}
	return out
}
