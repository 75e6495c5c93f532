package channel

import (
	"math"

	"GoldLink/pkg/dsss"
	"GoldLink/pkg/modem"

	"gonum.org/v1/gonum/floats"
)

// Uniform is a source of uniform values on [0, 1). Generators are not safe
// for concurrent use; every goroutine needs its own.
type Uniform interface {
	Float64() float64
}

// irwinHallTerms is the number of uniform draws averaged per noise sample.
const irwinHallTerms = 12

// Gaussian approximates a normal draw by the mean of 12 uniforms on [-1, 1].
func Gaussian(rng Uniform) float64 {
	sum := 0.0
	for i := 0; i < irwinHallTerms; i++ {
		sum += 2*rng.Float64() - 1
	}
	return sum / irwinHallTerms
}

// AddNoise returns env plus pseudo-Gaussian noise whose total energy is
// 10^(-snrDb/10) times the energy of env. env is not modified.
func AddNoise(env modem.WaveSeries, snrDb float64, rng Uniform) (modem.WaveSeries, error) {
	if math.IsNaN(snrDb) || math.IsInf(snrDb, 0) {
		return nil, dsss.ConfigError("noise", "snr must be finite", "snr=%v", snrDb)
	}
	if rng == nil {
		return nil, dsss.ConfigError("noise", "noise needs a generator", "")
	}

	noise := make([]float64, len(env))
	for i := range noise {
		noise[i] = Gaussian(rng)
	}

	noiseEnergy := floats.Dot(noise, noise)
	if noiseEnergy == 0 {
		return nil, dsss.ArithmeticError("noise", "noise energy must be non-zero", "%d samples", len(noise))
	}

	snr := math.Pow(10, -snrDb/10)
	norm := math.Sqrt(snr * env.Energy() / noiseEnergy)

	amps := env.Amplitudes()
	floats.AddScaled(amps, norm, noise)

	return modem.WithAmplitudes(env, amps), nil
}
