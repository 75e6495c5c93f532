package receiver

import (
	"math"

	"GoldLink/pkg/dsss"
	"GoldLink/pkg/gold"

	"gonum.org/v1/gonum/floats"
)

// Window is a trace index range, one per transmitted symbol, that the
// decoder searches for a correlation peak.
type Window struct {
	Start, End int // [Start, End)
}

// Windows splits a trace of length traceLen produced from a spread sequence of
// chips chips. The first and last windows are startEnd wide, the ones between
// are interval wide, where
//
//	countBitsFilter = chips/63 - 1
//	interval        = floor(tb/dt * 62)
//	startEnd        = (traceLen - interval*(countBitsFilter-1) - 1) / 2
func Windows(traceLen, chips, codeLength int, samplesPerChip float64) ([]Window, error) {
	if codeLength < 2 {
		return nil, dsss.ConfigError("decoder", "code length must be at least 2", "code length %d", codeLength)
	}
	countBitsFilter := chips/codeLength - 1
	if countBitsFilter < 1 {
		return nil, dsss.DegenerateError("decoder", "need at least two symbols to form decision windows",
			"chips=%d code length=%d", chips, codeLength)
	}

	interval := int(math.Floor(samplesPerChip*float64(codeLength-1) + 1e-9))
	startEnd := (traceLen - interval*(countBitsFilter-1) - 1) / 2
	if startEnd <= 0 {
		return nil, dsss.DegenerateError("decoder", "edge window must be positive",
			"trace=%d interval=%d symbols=%d", traceLen, interval, countBitsFilter+1)
	}

	widths := make([]int, 0, countBitsFilter+1)
	widths = append(widths, startEnd)
	for k := 0; k < countBitsFilter-1; k++ {
		widths = append(widths, interval)
	}
	widths = append(widths, startEnd)

	windows := make([]Window, 0, len(widths))
	idx := 0
	for _, w := range widths {
		if idx+w > traceLen {
			return nil, dsss.DegenerateError("decoder", "windows must fit in the trace",
				"window [%d,%d) trace=%d", idx, idx+w, traceLen)
		}
		windows = append(windows, Window{idx, idx + w})
		idx += w
	}
	return windows, nil
}

// Decode picks, in every window, the code whose trace reaches the highest
// value and appends that code's two bits. chips is the length of the spread
// sequence that was transmitted and codeLength the chip count of one code.
func Decode(bank Bank, chips, codeLength, bps int, fd float64) (dsss.Bits, error) {
	if bps <= 0 || fd <= 0 {
		return nil, dsss.ConfigError("decoder", "rates must be positive", "bps=%d fd=%v", bps, fd)
	}
	traceLen := bank.Len()
	for _, sym := range gold.Symbols {
		trace, ok := bank[sym]
		if !ok {
			return nil, dsss.ConfigError("decoder", "bank must hold every symbol", "missing %s", sym)
		}
		if len(trace) != traceLen {
			return nil, dsss.DegenerateError("decoder", "traces must have equal length",
				"%s has %d, expected %d", sym, len(trace), traceLen)
		}
	}

	samplesPerChip := (1 / float64(bps)) / (1 / fd)
	windows, err := Windows(traceLen, chips, codeLength, samplesPerChip)
	if err != nil {
		return nil, err
	}

	amps := make(map[gold.Symbol][]float64, len(bank))
	for sym, trace := range bank {
		amps[sym] = trace.Amplitudes()
	}

	decoded := make(dsss.Bits, 0, 2*len(windows))
	for _, w := range windows {
		best := gold.Symbols[0]
		bestValue := math.Inf(-1)
		for _, sym := range gold.Symbols {
			if v := floats.Max(amps[sym][w.Start:w.End]); v > bestValue {
				best, bestValue = sym, v
			}
		}
		a, b := best.Bits()
		decoded = append(decoded, a, b)
	}
	return decoded, nil
}

// BER is the fraction of original bits the decoder got wrong. Positions past
// the shorter of the two sequences are not compared.
func BER(original, decoded dsss.Bits) float64 {
	if len(original) == 0 {
		return 0
	}
	errors := 0
	for i := range min(len(original), len(decoded)) {
		if original[i] != decoded[i] {
			errors++
		}
	}
	return float64(errors) / float64(len(original))
}
