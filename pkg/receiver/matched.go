package receiver

import (
	"GoldLink/pkg/dsss"
	"GoldLink/pkg/gold"
	"GoldLink/pkg/modem"

	"gonum.org/v1/gonum/floats"
)

// Bank holds one correlation trace per Gold code, all of equal length and
// aligned with the start of the received envelope.
type Bank map[gold.Symbol]modem.WaveSeries

// Len is the common trace length.
func (b Bank) Len() int {
	return len(b[gold.Symbols[0]])
}

// Correlate slides the reference waveform of every code along env. Sample i
// of a trace is the dot product of env[i:i+m] with the m-sample reference,
// divided by m, stamped with the time of env[i].
func Correlate(book gold.CodeBook, env modem.WaveSeries, p modem.CarrierConfig) (Bank, error) {
	received := env.Amplitudes()

	bank := make(Bank, len(book))
	for _, sym := range gold.Symbols {
		code, ok := book[sym]
		if !ok {
			return nil, dsss.ConfigError("matched filter", "code book must hold every symbol", "missing %s", sym)
		}

		ref := modem.Reference(code, p).Amplitudes()
		m := len(ref)
		if m == 0 {
			return nil, dsss.DegenerateError("matched filter", "reference must not be empty", "code length %d", len(code))
		}
		if len(received) < m {
			return nil, dsss.DegenerateError("matched filter", "envelope must be at least as long as the reference",
				"envelope=%d reference=%d", len(received), m)
		}

		trace := make(modem.WaveSeries, len(received)-m+1)
		for i := range trace {
			trace[i] = modem.Sample{
				Time:      env[i].Time,
				Amplitude: floats.Dot(received[i:i+m], ref) / float64(m),
			}
		}
		bank[sym] = trace
	}
	return bank, nil
}
