package link

import (
	"GoldLink/pkg/channel"
	"GoldLink/pkg/dsss"
	"GoldLink/pkg/gold"
	"GoldLink/pkg/modem"
	"GoldLink/pkg/receiver"
)

// Config is everything one run needs.
type Config struct {
	dsss.Params
	ApplyNoise bool
	SnrDb      float64
}

// Result holds every intermediate product of a run. Nothing in it is shared
// with other runs.
type Result struct {
	Chips    gold.Chips
	Signal   modem.SignalBundle
	Received modem.WaveSeries
	Bank     receiver.Bank
	Decoded  dsss.Bits
	BER      float64
}

func (c Config) Carrier() modem.CarrierConfig {
	return modem.CarrierConfig{
		ChipRate:   float64(c.BPS),
		SampleRate: c.Fd,
		Freq:       c.F0,
		Phase:      c.Phi0,
		Amplitude:  c.A0,
	}
}

func (c Config) Validate() error {
	return c.Params.Validate()
}

// Transmit spreads and modulates the configured bits.
func Transmit(c Config, book gold.CodeBook) (gold.Chips, modem.SignalBundle, error) {
	if err := c.Validate(); err != nil {
		return nil, modem.SignalBundle{}, err
	}
	chips := gold.Spread(c.Bits, book)
	return chips, modem.Synthesize(chips, c.Carrier()), nil
}

// Receive correlates env against the code book and decodes it. chips is the
// length of the transmitted chip sequence.
func Receive(c Config, book gold.CodeBook, env modem.WaveSeries, chips int) (receiver.Bank, dsss.Bits, error) {
	bank, err := receiver.Correlate(book, env, c.Carrier())
	if err != nil {
		return nil, nil, err
	}
	decoded, err := receiver.Decode(bank, chips, book.Len(), c.BPS, c.Fd)
	if err != nil {
		return nil, nil, err
	}
	return bank, decoded, nil
}

// Simulate runs the whole link once. rng feeds the noise channel and may be
// nil when ApplyNoise is false.
func Simulate(c Config, book gold.CodeBook, rng channel.Uniform) (*Result, error) {
	chips, signal, err := Transmit(c, book)
	if err != nil {
		return nil, err
	}

	received := signal.Envelope
	if c.ApplyNoise {
		received, err = channel.AddNoise(signal.Envelope, c.SnrDb, rng)
		if err != nil {
			return nil, err
		}
	}

	bank, decoded, err := Receive(c, book, received, len(chips))
	if err != nil {
		return nil, err
	}

	return &Result{
		Chips:    chips,
		Signal:   signal,
		Received: received,
		Bank:     bank,
		Decoded:  decoded,
		BER:      receiver.BER(c.Bits, decoded),
	}, nil
}

// Replay decodes a previously received envelope, such as one read back
// from a dump, against the configured bits.
func Replay(c Config, book gold.CodeBook, received modem.WaveSeries) (*Result, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	chips := gold.Spread(c.Bits, book)

	bank, decoded, err := Receive(c, book, received, len(chips))
	if err != nil {
		return nil, err
	}

	return &Result{
		Chips:    chips,
		Received: received,
		Bank:     bank,
		Decoded:  decoded,
		BER:      receiver.BER(c.Bits, decoded),
	}, nil
}
