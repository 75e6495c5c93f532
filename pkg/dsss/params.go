package dsss

import "math"

// Params is the carrier and data configuration of one run.
type Params struct {
	BPS  int     // chips per second
	Fd   float64 // sample rate
	A0   float64 // carrier amplitude, informational
	F0   float64 // carrier frequency
	Phi0 float64 // carrier phase offset in radians
	Bits Bits
}

func (p Params) Validate() error {
	if p.BPS <= 0 {
		return ConfigError("params", "bps must be positive", "bps=%d", p.BPS)
	}
	for _, v := range []struct {
		name  string
		value float64
	}{{"fd", p.Fd}, {"a0", p.A0}, {"f0", p.F0}, {"phi0", p.Phi0}} {
		if math.IsNaN(v.value) || math.IsInf(v.value, 0) {
			return ConfigError("params", "parameters must be finite", "%s=%v", v.name, v.value)
		}
	}
	if p.Fd <= float64(p.BPS) {
		return ConfigError("params", "sample rate must exceed chip rate", "fd=%v bps=%d", p.Fd, p.BPS)
	}
	if len(p.Bits) == 0 {
		return ConfigError("params", "bit sequence must not be empty", "")
	}
	for i, b := range p.Bits {
		if b > 1 {
			return ConfigError("params", "bit must be 0 or 1", "bits[%d]=%d", i, b)
		}
	}
	return nil
}

// ChipDuration is tb, the duration of one chip.
func (p Params) ChipDuration() float64 {
	return 1 / float64(p.BPS)
}

// SamplePeriod is dt.
func (p Params) SamplePeriod() float64 {
	return 1 / p.Fd
}
