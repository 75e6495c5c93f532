package config

import (
	"fmt"
	"os"
	"time"

	"GoldLink/pkg/dsss"
	"GoldLink/pkg/link"
	"GoldLink/pkg/research"

	"golang.org/x/exp/rand"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Carrier struct {
		BPS        int     `yaml:"bps"`
		SampleRate float64 `yaml:"sample_rate"`
		Amplitude  float64 `yaml:"amplitude"`
		Freq       float64 `yaml:"freq"`
		Phase      float64 `yaml:"phase"`
	} `yaml:"carrier"`

	Signal struct {
		Bits       string `yaml:"bits"`        // fixed payload, spaces allowed
		RandomBits int    `yaml:"random_bits"` // payload length when Bits is empty
		Seed       uint64 `yaml:"seed"`        // 0 picks a seed from the clock
	} `yaml:"signal"`

	Noise struct {
		Enabled bool    `yaml:"enabled"`
		SnrDb   float64 `yaml:"snr_db"`
	} `yaml:"noise"`

	Research struct {
		MeanOrder int     `yaml:"mean_order"`
		SnrFrom   float64 `yaml:"snr_from"`
		SnrTo     float64 `yaml:"snr_to"`
		SnrStep   float64 `yaml:"snr_step"`
		Workers   int     `yaml:"workers"`
	} `yaml:"research"`

	Output struct {
		Dump    string `yaml:"dump"`    // strftime pattern of the CSV dump, empty disables
		Metrics string `yaml:"metrics"` // prometheus textfile, empty disables
	} `yaml:"output"`
}

// Default returns the values the simulator starts from before any file or
// flag is applied.
func Default() *Config {
	var c Config
	c.Carrier.BPS = 10
	c.Carrier.SampleRate = 1000
	c.Carrier.Amplitude = 1
	c.Carrier.Freq = 1000
	c.Carrier.Phase = 0
	c.Signal.RandomBits = 16
	c.Noise.SnrDb = 5
	c.Research.MeanOrder = 50
	c.Research.SnrFrom = -20
	c.Research.SnrTo = 10
	c.Research.SnrStep = 0.5
	return &c
}

// LoadConfig reads filename over the defaults.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	config := Default()
	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	return config, nil
}

// Seed resolves the configured seed.
func (c *Config) Seed() uint64 {
	if c.Signal.Seed != 0 {
		return c.Signal.Seed
	}
	return uint64(time.Now().UnixNano())
}

// Payload parses the configured bits, or draws RandomBits of them from rng.
func (c *Config) Payload(rng *rand.Rand) (dsss.Bits, error) {
	if c.Signal.Bits != "" {
		return dsss.ParseBits(c.Signal.Bits)
	}
	if c.Signal.RandomBits <= 0 {
		return nil, dsss.ConfigError("config", "random payload length must be positive", "random_bits=%d", c.Signal.RandomBits)
	}
	return dsss.RandomBits(c.Signal.RandomBits, rng), nil
}

func (c *Config) Params(bits dsss.Bits) dsss.Params {
	return dsss.Params{
		BPS:  c.Carrier.BPS,
		Fd:   c.Carrier.SampleRate,
		A0:   c.Carrier.Amplitude,
		F0:   c.Carrier.Freq,
		Phi0: c.Carrier.Phase,
		Bits: bits,
	}
}

func (c *Config) Link(bits dsss.Bits) link.Config {
	return link.Config{
		Params:     c.Params(bits),
		ApplyNoise: c.Noise.Enabled,
		SnrDb:      c.Noise.SnrDb,
	}
}

func (c *Config) Sweep(bits dsss.Bits, seed uint64) *research.Sweep {
	return &research.Sweep{
		Params:    c.Params(bits),
		MeanOrder: c.Research.MeanOrder,
		SnrFrom:   c.Research.SnrFrom,
		SnrTo:     c.Research.SnrTo,
		SnrStep:   c.Research.SnrStep,
		Workers:   c.Research.Workers,
		Seed:      seed,
	}
}
