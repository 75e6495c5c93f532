package gold

import "GoldLink/pkg/dsss"

// Spread replaces every pair of bits with the Gold code of its symbol.
// A trailing unpaired bit is dropped.
func Spread(bits dsss.Bits, book CodeBook) Chips {
	pairs := len(bits) / 2
	chips := make(Chips, 0, pairs*book.Len())
	for k := 0; k < pairs; k++ {
		chips = append(chips, book[SymbolOf(bits[2*k], bits[2*k+1])]...)
	}
	return chips
}
