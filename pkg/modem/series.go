package modem

import "gonum.org/v1/gonum/floats"

// Sample is one point of a sampled waveform.
type Sample struct {
	Time      float64
	Amplitude float64
}

// WaveSeries is a time-ordered sampled waveform.
type WaveSeries []Sample

// SignalBundle holds the I and Q rails and the complex envelope built from
// them. All three share time stamps.
type SignalBundle struct {
	I        WaveSeries
	Q        WaveSeries
	Envelope WaveSeries
}

func (s WaveSeries) Amplitudes() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Amplitude
	}
	return out
}

// Energy is the sum of squared amplitudes.
func (s WaveSeries) Energy() float64 {
	a := s.Amplitudes()
	return floats.Dot(a, a)
}
