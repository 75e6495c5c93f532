package modem

import "math"

// CarrierConfig describes the two-rail carrier a chip stream is modulated onto.
type CarrierConfig struct {
	ChipRate   float64 // bps
	SampleRate float64 // fd
	Freq       float64 // f0
	Phase      float64 // phi0, applied to the Q rail
	Amplitude  float64 // a0, informational
}

// ChipDuration is tb.
func (p CarrierConfig) ChipDuration() float64 {
	return 1 / p.ChipRate
}

// SamplePeriod is dt.
func (p CarrierConfig) SamplePeriod() float64 {
	return 1 / p.SampleRate
}

// SamplesPerChip is tb/dt, not rounded.
func (p CarrierConfig) SamplesPerChip() float64 {
	return p.ChipDuration() / p.SamplePeriod()
}

// ChipSamples is the whole number of samples one chip lasts.
func (p CarrierConfig) ChipSamples() int {
	return sampleCount(p.SamplesPerChip())
}

// Modulate combines the I and Q rail values at sample index idx.
func (p CarrierConfig) Modulate(i, q float64, idx int) float64 {
	t := float64(idx) * p.SamplePeriod()
	w := 2 * math.Pi * p.Freq * t
	return i*math.Cos(w) - q*math.Sin(w+p.Phase)
}

// sampleCount floors x, tolerating the rounding error of tb/dt.
func sampleCount(x float64) int {
	return int(math.Floor(x + 1e-9))
}

// center maps a chip {0,1} to {-0.5,+0.5}.
func center(chip uint8) float64 {
	return float64(chip) - 0.5
}
