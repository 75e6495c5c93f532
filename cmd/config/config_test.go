package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"GoldLink/pkg/dsss"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestLoadDefaultFile(t *testing.T) {
	c, err := LoadConfig("default.yaml")
	require.NoError(t, err)

	assert.Equal(t, 10, c.Carrier.BPS)
	assert.Equal(t, 1000.0, c.Carrier.SampleRate)
	assert.Equal(t, "1011 0010", c.Signal.Bits)
	assert.Equal(t, 50, c.Research.MeanOrder)
	assert.Equal(t, 0.5, c.Research.SnrStep)

	bits, err := c.Payload(nil)
	require.NoError(t, err)
	assert.Equal(t, dsss.Bits{1, 0, 1, 1, 0, 0, 1, 0}, bits)

	l := c.Link(bits)
	require.NoError(t, l.Validate())
	assert.False(t, l.ApplyNoise)
}

func TestLoadPartialFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(filename, []byte("noise:\n  enabled: true\n  snr_db: -3\n"), 0o644))

	c, err := LoadConfig(filename)
	require.NoError(t, err)
	assert.True(t, c.Noise.Enabled)
	assert.Equal(t, -3.0, c.Noise.SnrDb)
	// untouched sections keep their defaults
	assert.Equal(t, 10, c.Carrier.BPS)
	assert.Equal(t, 16, c.Signal.RandomBits)
}

func TestLoadBadFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	filename := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(filename, []byte("carrier: [1, 2"), 0o644))
	_, err = LoadConfig(filename)
	assert.Error(t, err)
}

func TestPayload(t *testing.T) {
	c := Default()
	bits, err := c.Payload(rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	assert.Len(t, bits, 16)

	c.Signal.RandomBits = 0
	_, err = c.Payload(rand.New(rand.NewSource(3)))
	assert.True(t, errors.Is(err, dsss.ErrConfiguration))

	c.Signal.Bits = "10x1"
	_, err = c.Payload(nil)
	assert.True(t, errors.Is(err, dsss.ErrConfiguration))
}

func TestSweep(t *testing.T) {
	c := Default()
	s := c.Sweep(dsss.Bits{1, 0, 1, 1}, 9)
	assert.Equal(t, uint64(9), s.Seed)
	assert.Len(t, s.Grid(), 61)
	require.NoError(t, s.Validate())
}
