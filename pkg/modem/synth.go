package modem

import "GoldLink/pkg/gold"

// Synthesize samples the chip stream onto the carrier. Chips are taken in
// pairs, the first on the I rail and the second on the Q rail, and every pair
// lasts 2*tb/dt samples. A trailing unpaired chip is dropped.
func Synthesize(chips gold.Chips, p CarrierConfig) SignalBundle {
	perPair := sampleCount(2 * p.SamplesPerChip())
	pairs := len(chips) / 2
	dt := p.SamplePeriod()

	bundle := SignalBundle{
		I:        make(WaveSeries, 0, pairs*perPair),
		Q:        make(WaveSeries, 0, pairs*perPair),
		Envelope: make(WaveSeries, 0, pairs*perPair),
	}

	idx := 0
	for k := 0; k < pairs; k++ {
		i := center(chips[2*k])
		q := center(chips[2*k+1])
		for j := 0; j < perPair; j++ {
			t := float64(idx) * dt
			bundle.I = append(bundle.I, Sample{t, i})
			bundle.Q = append(bundle.Q, Sample{t, q})
			bundle.Envelope = append(bundle.Envelope, Sample{t, p.Modulate(i, q, idx)})
			idx++
		}
	}
	return bundle
}

// Reference builds the matched filter template of one code. Unlike
// Synthesize, the code is read as overlapping pairs (code[i], code[i+1]),
// each lasting tb/dt samples, so a 63-chip code gives 62 pairs.
func Reference(code gold.Chips, p CarrierConfig) WaveSeries {
	perPair := p.ChipSamples()
	if len(code) < 2 {
		return WaveSeries{}
	}
	dt := p.SamplePeriod()

	ref := make(WaveSeries, 0, (len(code)-1)*perPair)
	idx := 0
	for k := 0; k < len(code)-1; k++ {
		i := center(code[k])
		q := center(code[k+1])
		for j := 0; j < perPair; j++ {
			ref = append(ref, Sample{float64(idx) * dt, p.Modulate(i, q, idx)})
			idx++
		}
	}
	return ref
}
