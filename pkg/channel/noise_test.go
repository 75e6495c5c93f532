package channel

import (
	"errors"
	"math"
	"slices"
	"testing"

	"GoldLink/pkg/dsss"
	"GoldLink/pkg/modem"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"pgregory.net/rapid"
)

type constant float64

func (c constant) Float64() float64 { return float64(c) }

func sine(n int) modem.WaveSeries {
	s := make(modem.WaveSeries, n)
	for i := range s {
		s[i] = modem.Sample{Time: float64(i) / 100, Amplitude: math.Sin(float64(i) / 7)}
	}
	return s
}

func noiseEnergy(clean, noisy modem.WaveSeries) float64 {
	sum := 0.0
	for i := range clean {
		d := noisy[i].Amplitude - clean[i].Amplitude
		sum += d * d
	}
	return sum
}

func TestAddNoiseEnergy(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		snr := rapid.Float64Range(-30, 30).Draw(t, "snr")
		seed := rapid.Uint64().Draw(t, "seed")

		env := sine(500)
		noisy, err := AddNoise(env, snr, rand.New(rand.NewSource(seed)))
		require.NoError(t, err)
		require.Len(t, noisy, len(env))

		want := math.Pow(10, -snr/10) * env.Energy()
		assert.InEpsilon(t, want, noiseEnergy(env, noisy), 1e-9)
	})
}

func TestAddNoiseKeepsInput(t *testing.T) {
	env := sine(100)
	before := slices.Clone(env)

	noisy, err := AddNoise(env, 0, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	assert.Equal(t, before, env)
	assert.NotEqual(t, env, noisy)
	for i := range env {
		assert.Equal(t, env[i].Time, noisy[i].Time)
	}
}

func TestAddNoiseHigherSnrLessNoise(t *testing.T) {
	env := sine(1000)
	low, err := AddNoise(env, -10, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	high, err := AddNoise(env, 10, rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	assert.Greater(t, noiseEnergy(env, low), noiseEnergy(env, high))
}

func TestAddNoiseZeroDraw(t *testing.T) {
	// 2*0.5-1 == 0, so every draw is zero
	_, err := AddNoise(sine(10), 5, constant(0.5))
	assert.True(t, errors.Is(err, dsss.ErrArithmetic))
}

func TestAddNoiseRejects(t *testing.T) {
	_, err := AddNoise(sine(10), math.NaN(), rand.New(rand.NewSource(1)))
	assert.True(t, errors.Is(err, dsss.ErrConfiguration))

	_, err = AddNoise(sine(10), 5, nil)
	assert.True(t, errors.Is(err, dsss.ErrConfiguration))
}

func TestGaussianMoments(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	const n = 20000
	sum, sq := 0.0, 0.0
	for i := 0; i < n; i++ {
		g := Gaussian(rng)
		assert.LessOrEqual(t, math.Abs(g), 1.0)
		sum += g
		sq += g * g
	}
	mean := sum / n
	// variance of the mean of 12 uniforms on [-1, 1] is (1/3)/12
	assert.InDelta(t, 0, mean, 0.01)
	assert.InDelta(t, 1.0/36, sq/n-mean*mean, 0.003)
}
