package dsss

import (
	"strings"
)

// Bits is a sequence of 0/1 values.
type Bits []uint8

type IntSource interface {
	Intn(n int) int
}

func ParseBits(s string) (Bits, error) {
	bits := make(Bits, 0, len(s))
	for i, r := range s {
		switch r {
		case '0':
			bits = append(bits, 0)
		case '1':
			bits = append(bits, 1)
		case ' ', '\t', '\n', '\r':
			// separators are allowed anywhere
		default:
			return nil, ConfigError("bits", "bit must be 0 or 1", "rune %q at offset %d", r, i)
		}
	}
	return bits, nil
}

// RandomBits draws n independent uniform bits from rng.
func RandomBits(n int, rng IntSource) Bits {
	bits := make(Bits, n)
	for i := range bits {
		bits[i] = uint8(rng.Intn(2))
	}
	return bits
}

func (b Bits) String() string {
	var sb strings.Builder
	for _, bit := range b {
		if bit != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
