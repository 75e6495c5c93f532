package receiver

import (
	"errors"
	"testing"

	"GoldLink/pkg/dsss"
	"GoldLink/pkg/gold"
	"GoldLink/pkg/modem"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func transmit(t *testing.T, bits string, p modem.CarrierConfig) (dsss.Bits, gold.Chips, Bank) {
	t.Helper()
	return transmitBook(t, gold.DefaultCodeBook(), bits, p)
}

func transmitBook(t *testing.T, book gold.CodeBook, bits string, p modem.CarrierConfig) (dsss.Bits, gold.Chips, Bank) {
	t.Helper()

	in, err := dsss.ParseBits(bits)
	require.NoError(t, err)

	chips := gold.Spread(in, book)
	bundle := modem.Synthesize(chips, p)
	bank, err := Correlate(book, bundle.Envelope, p)
	require.NoError(t, err)
	return in, chips, bank
}

func TestCorrelateShape(t *testing.T) {
	p := modem.CarrierConfig{ChipRate: 10, SampleRate: 100, Freq: 1000}
	_, _, bank := transmit(t, "10110010", p)

	require.Len(t, bank, 4)
	// 4 symbols * 63 chips * 10 samples, minus a 620 sample reference
	assert.Equal(t, 2520-620+1, bank.Len())
	for _, sym := range gold.Symbols {
		assert.Len(t, bank[sym], bank.Len())
		assert.InDelta(t, 0.05, bank[sym][5].Time, 1e-12)
	}
}

func TestCorrelateShortEnvelope(t *testing.T) {
	p := modem.CarrierConfig{ChipRate: 10, SampleRate: 100, Freq: 1000}
	book := gold.DefaultCodeBook()
	env := modem.Synthesize(gold.Chips{1, 0, 1, 1}, p).Envelope

	_, err := Correlate(book, env, p)
	assert.True(t, errors.Is(err, dsss.ErrDegenerate))
}

func TestCorrelatePeak(t *testing.T) {
	p := modem.CarrierConfig{ChipRate: 10, SampleRate: 100, Freq: 1000}
	_, _, bank := transmit(t, "0000", p)

	// the first symbol is aligned with offset zero, where "00" dominates
	for _, sym := range gold.Symbols[1:] {
		assert.Greater(t, bank["00"][0].Amplitude, bank[sym][0].Amplitude)
	}
}

func TestWindows(t *testing.T) {
	windows, err := Windows(19001, 252, 63, 100)
	require.NoError(t, err)
	assert.Equal(t, []Window{{0, 3300}, {3300, 9500}, {9500, 15700}, {15700, 19000}}, windows)

	windows, err = Windows(641, 126, 63, 10)
	require.NoError(t, err)
	assert.Equal(t, []Window{{0, 320}, {320, 640}}, windows)
}

func TestWindowsDegenerate(t *testing.T) {
	_, err := Windows(1000, 63, 63, 10)
	var e *dsss.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, dsss.ErrDegenerate, e.Kind)
	assert.Equal(t, "decoder", e.Stage)

	_, err = Windows(10, 63*8, 63, 10)
	assert.True(t, errors.Is(err, dsss.ErrDegenerate))
}

func TestDecodeRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		bits string
		p    modem.CarrierConfig
	}{
		{"reference", "10110010", modem.CarrierConfig{ChipRate: 10, SampleRate: 100, Freq: 1000}},
		{"two symbols", "1100", modem.CarrierConfig{ChipRate: 10, SampleRate: 100, Freq: 1000}},
		{"six symbols", "011011000110", modem.CarrierConfig{ChipRate: 10, SampleRate: 100, Freq: 1000}},
		{"low carrier", "011011000110", modem.CarrierConfig{ChipRate: 10, SampleRate: 100, Freq: 30}},
		{"phase offset", "0110110001101110", modem.CarrierConfig{ChipRate: 10, SampleRate: 100, Freq: 30, Phase: 0.7}},
		{"slow carrier", "0110110001101110", modem.CarrierConfig{ChipRate: 10, SampleRate: 100, Freq: 7}},
		{"slow chips", "00011011", modem.CarrierConfig{ChipRate: 5, SampleRate: 100, Freq: 1000}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			in, chips, bank := transmit(t, c.bits, c.p)
			out, err := Decode(bank, len(chips), 63, int(c.p.ChipRate), c.p.SampleRate)
			require.NoError(t, err)
			assert.Equal(t, in, out)
			assert.Zero(t, BER(in, out))
		})
	}
}

func TestDecodeReferenceRate(t *testing.T) {
	if testing.Short() {
		t.Skip("full rate correlation is slow")
	}
	p := modem.CarrierConfig{ChipRate: 10, SampleRate: 1000, Freq: 1000}
	in, chips, bank := transmit(t, "10110010", p)

	out, err := Decode(bank, len(chips), 63, 10, 1000)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestDecodeLongCodes(t *testing.T) {
	book, err := gold.NewCodeBook([]uint8{1, 0, 0, 0, 0, 0, 1}, []uint8{0, 0, 1, 0, 0, 0, 1}, gold.DefaultShifts)
	require.NoError(t, err)
	require.Equal(t, 127, book.Len())

	p := modem.CarrierConfig{ChipRate: 10, SampleRate: 100, Freq: 1000}
	in, chips, bank := transmitBook(t, book, "10110010", p)
	require.Equal(t, 3821, bank.Len())

	windows, err := Windows(bank.Len(), len(chips), book.Len(), 10)
	require.NoError(t, err)
	assert.Equal(t, []Window{{0, 650}, {650, 1910}, {1910, 3170}, {3170, 3820}}, windows)

	out, err := Decode(bank, len(chips), book.Len(), 10, 100)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestDecodeSingleSymbol(t *testing.T) {
	p := modem.CarrierConfig{ChipRate: 10, SampleRate: 100, Freq: 1000}
	_, chips, bank := transmit(t, "10", p)

	_, err := Decode(bank, len(chips), 63, 10, 100)
	assert.True(t, errors.Is(err, dsss.ErrDegenerate))
}

func TestDecodeUnequalTraces(t *testing.T) {
	p := modem.CarrierConfig{ChipRate: 10, SampleRate: 100, Freq: 1000}
	_, chips, bank := transmit(t, "1011", p)
	bank["11"] = bank["11"][1:]

	_, err := Decode(bank, len(chips), 63, 10, 100)
	assert.True(t, errors.Is(err, dsss.ErrDegenerate))
}

func TestBER(t *testing.T) {
	assert.Equal(t, 0.0, BER(dsss.Bits{1, 0, 1, 1}, dsss.Bits{1, 0, 1, 1}))
	assert.Equal(t, 0.5, BER(dsss.Bits{1, 0, 1, 1}, dsss.Bits{0, 0, 1, 0}))
	// the odd trailing bit is never decoded and never compared
	assert.Equal(t, 0.0, BER(dsss.Bits{1, 0, 1}, dsss.Bits{1, 0}))
	assert.Equal(t, 0.0, BER(nil, dsss.Bits{1}))

	rapid.Check(t, func(t *rapid.T) {
		a := dsss.Bits(rapid.SliceOf(rapid.Uint8Range(0, 1)).Draw(t, "a"))
		b := dsss.Bits(rapid.SliceOf(rapid.Uint8Range(0, 1)).Draw(t, "b"))
		ber := BER(a, b)
		assert.GreaterOrEqual(t, ber, 0.0)
		assert.LessOrEqual(t, ber, 1.0)
		assert.Zero(t, BER(a, a))
	})
}
