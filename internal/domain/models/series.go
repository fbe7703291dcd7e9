package models

// PricePoint is one observation of a Series. Time is an opaque identifier
// (string, number or timestamp) echoed back unchanged in results.
type PricePoint struct {
	Time   any
	Close  float64
	Volume float64
}

// Series is a sequence of PricePoints ordered by time ascending.
type Series []PricePoint

// Closes returns the close prices in series order.
func (s Series) Closes() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Close
	}
	return out
}

// Volumes returns the volumes in series order.
func (s Series) Volumes() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Volume
	}
	return out
}
