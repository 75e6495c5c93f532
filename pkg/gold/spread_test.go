package gold

import (
	"testing"

	"GoldLink/pkg/dsss"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestSpread(t *testing.T) {
	book := DefaultCodeBook()

	chips := Spread(dsss.Bits{1, 0, 1, 1}, book)
	assert.Len(t, chips, 126)
	assert.Equal(t, book["10"], chips[:63])
	assert.Equal(t, book["11"], chips[63:])
}

func TestSpreadDropsOddBit(t *testing.T) {
	book := DefaultCodeBook()
	assert.Equal(t, Spread(dsss.Bits{0, 1}, book), Spread(dsss.Bits{0, 1, 1}, book))
	assert.Empty(t, Spread(dsss.Bits{1}, book))
}

func TestSpreadLength(t *testing.T) {
	book := DefaultCodeBook()
	rapid.Check(t, func(t *rapid.T) {
		bits := dsss.Bits(rapid.SliceOf(rapid.Uint8Range(0, 1)).Draw(t, "bits"))
		assert.Len(t, Spread(bits, book), 63*(len(bits)/2))
	})
}
