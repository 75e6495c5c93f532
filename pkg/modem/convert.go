package modem

// WithAmplitudes returns a new series with the time stamps of s and the
// given amplitudes. amps must be as long as s.
func WithAmplitudes(s WaveSeries, amps []float64) WaveSeries {
	output := make(WaveSeries, len(s))
	for i, p := range s {
		output[i] = Sample{Time: p.Time, Amplitude: amps[i]}
	}
	return output
}

// FromChips holds each chip, centered, for the given number of samples.
// Useful for plotting the chip stream against the rails.
func FromChips(chips []uint8, samplesPerChip int, dt float64) WaveSeries {
	output := make(WaveSeries, 0, len(chips)*samplesPerChip)
	for i, c := range chips {
		for j := 0; j < samplesPerChip; j++ {
			idx := i*samplesPerChip + j
			output = append(output, Sample{float64(idx) * dt, center(c)})
		}
	}
	return output
}
