package gold

import (
	"GoldLink/pkg/dsss"
)

// Chips is a sequence of 0/1 spreading chips.
type Chips []uint8

var (
	TapsA = []uint8{1, 0, 0, 0, 0, 1}
	TapsB = []uint8{1, 1, 0, 0, 1, 1}
)

// MSequence runs an N-stage linear feedback shift register described by taps
// for 2^N-1 steps and returns the emitted sequence.
//
// The register starts as [0 1 0 ... 0]; an all-zero register never leaves zero.
func MSequence(taps []uint8) (Chips, error) {
	n := len(taps)
	if n < 2 {
		return nil, dsss.ConfigError("lfsr", "register needs at least two stages", "len(taps)=%d", n)
	}
	if n > 30 {
		return nil, dsss.ConfigError("lfsr", "register length out of range", "len(taps)=%d", n)
	}
	for i, t := range taps {
		if t > 1 {
			return nil, dsss.ConfigError("lfsr", "tap must be 0 or 1", "taps[%d]=%d", i, t)
		}
	}

	register := make([]uint8, n)
	register[1] = 1

	length := 1<<n - 1
	seq := make(Chips, 0, length)

	for i := 0; i < length; i++ {
		// the last stage is the output
		seq = append(seq, register[n-1])

		var feedback uint8
		for j := n - 1; j >= 0; j-- {
			feedback ^= register[j] & taps[j]
		}

		for j := n - 1; j >= 1; j-- {
			register[j] = register[j-1]
		}
		register[0] = feedback
	}

	return seq, nil
}

// Rotate returns a copy of seq rotated right by shift: the last shift
// elements move to the front.
func Rotate(seq Chips, shift int) Chips {
	n := len(seq)
	out := make(Chips, n)
	if n == 0 {
		return out
	}
	shift = ((shift % n) + n) % n
	copy(out, seq[n-shift:])
	copy(out[shift:], seq[:n-shift])
	return out
}

func xor(a, b Chips) Chips {
	out := make(Chips, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out
}

func (c Chips) String() string {
	buf := make([]byte, len(c))
	for i, v := range c {
		buf[i] = '0' + v
	}
	return string(buf)
}
