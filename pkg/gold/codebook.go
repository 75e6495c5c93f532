package gold

import (
	"slices"

	"GoldLink/pkg/dsss"
)

// Symbol is a pair of bits written first bit first, e.g. "10".
type Symbol string

// Symbols lists the four symbols in the order their codes are built and
// searched by the receiver.
var Symbols = [4]Symbol{"00", "10", "01", "11"}

// DefaultShifts are the cyclic shifts of sequence B bound to Symbols.
var DefaultShifts = [4]int{0, 10, 20, 30}

// CodeBook maps each symbol to its Gold code. It is built once and only read
// afterwards, so it can be shared between goroutines.
type CodeBook map[Symbol]Chips

func NewCodeBook(tapsA, tapsB []uint8, shifts [4]int) (CodeBook, error) {
	if len(tapsA) != len(tapsB) {
		return nil, dsss.ConfigError("codebook", "tap patterns must have equal length", "len(a)=%d len(b)=%d", len(tapsA), len(tapsB))
	}

	a, err := MSequence(tapsA)
	if err != nil {
		return nil, err
	}
	b, err := MSequence(tapsB)
	if err != nil {
		return nil, err
	}

	for i, s := range shifts {
		if s < 0 || s >= len(b) {
			return nil, dsss.ConfigError("codebook", "shift out of range", "shift[%d]=%d period=%d", i, s, len(b))
		}
		if slices.Contains(shifts[:i], s) {
			return nil, dsss.ConfigError("codebook", "shifts must be distinct", "shift %d repeated", s)
		}
	}

	book := make(CodeBook, len(Symbols))
	for i, sym := range Symbols {
		code := xor(a, Rotate(b, shifts[i]))
		for other, c := range book {
			if slices.Equal(c, code) {
				return nil, dsss.ConfigError("codebook", "codes must be pairwise distinct", "%s equals %s", sym, other)
			}
		}
		book[sym] = code
	}
	return book, nil
}

// DefaultCodeBook builds the book from TapsA, TapsB and DefaultShifts.
func DefaultCodeBook() CodeBook {
	book, err := NewCodeBook(TapsA, TapsB, DefaultShifts)
	if err != nil {
		panic(err)
	}
	return book
}

// Len is the chip count of every code in the book.
func (b CodeBook) Len() int {
	return len(b[Symbols[0]])
}

func SymbolOf(first, second uint8) Symbol {
	return Symbol([]byte{'0' + first, '0' + second})
}

// Bits splits the symbol back into its two bits.
func (s Symbol) Bits() (uint8, uint8) {
	return s[0] - '0', s[1] - '0'
}
