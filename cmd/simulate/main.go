package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"GoldLink/cmd/config"
	"GoldLink/internel/utils"
	"GoldLink/pkg/dsss"
	"GoldLink/pkg/gold"
	"GoldLink/pkg/link"
	"GoldLink/pkg/modem"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/lestrrat-go/strftime"
	"github.com/spf13/pflag"
	"golang.org/x/exp/rand"
)

func parse_args() (*config.Config, string, bool) {
	configPath := pflag.StringP("config", "c", "", "YAML configuration file.")
	bits := pflag.StringP("bits", "b", "", "Bits to send, e.g. \"1011 0010\". Random bits are sent when empty.")
	randomBits := pflag.IntP("random", "n", 0, "Number of random bits to send when --bits is empty.")
	seed := pflag.Uint64P("seed", "s", 0, "Seed of the noise and bit generators. 0 picks one from the clock.")
	noise := pflag.BoolP("noise", "N", false, "Add noise to the received envelope.")
	snr := pflag.Float64("snr", 0, "Noise level in dB; larger values add less noise.")
	bps := pflag.Int("bps", 0, "Chip rate, chips per second.")
	fd := pflag.Float64("fd", 0, "Sample rate.")
	a0 := pflag.Float64("a0", 0, "Carrier amplitude.")
	f0 := pflag.Float64("f0", 0, "Carrier frequency.")
	phi0 := pflag.Float64("phi0", 0, "Carrier phase in radians.")
	dump := pflag.StringP("dump", "o", "", "Write waveforms and correlations to this CSV file (strftime pattern, .zst compresses).")
	replay := pflag.StringP("replay", "r", "", "Decode the received column of an earlier dump instead of simulating.")
	verbose := pflag.BoolP("verbose", "v", false, "Log debug output.")
	help := pflag.BoolP("help", "h", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Send bits over a simulated Gold code DSSS link and report the bit error rate.\n\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(0)
	}

	c := config.Default()
	if *configPath != "" {
		var err error
		c, err = config.LoadConfig(*configPath)
		if err != nil {
			log.Fatal("failed to load config", "file", *configPath, "err", err)
		}
	}

	// flags given on the command line win over the file
	changed := pflag.CommandLine.Changed
	if changed("bits") {
		c.Signal.Bits = *bits
	}
	if changed("random") {
		c.Signal.RandomBits = *randomBits
		if !changed("bits") {
			c.Signal.Bits = ""
		}
	}
	if changed("seed") {
		c.Signal.Seed = *seed
	}
	if changed("noise") {
		c.Noise.Enabled = *noise
	}
	if changed("snr") {
		c.Noise.SnrDb = *snr
	}
	if changed("bps") {
		c.Carrier.BPS = *bps
	}
	if changed("fd") {
		c.Carrier.SampleRate = *fd
	}
	if changed("a0") {
		c.Carrier.Amplitude = *a0
	}
	if changed("f0") {
		c.Carrier.Freq = *f0
	}
	if changed("phi0") {
		c.Carrier.Phase = *phi0
	}
	if changed("dump") {
		c.Output.Dump = *dump
	}

	return c, *replay, *verbose
}

// diff renders decoded with every bit that differs from sent in red.
func diff(sent, decoded dsss.Bits) string {
	bad := color.New(color.FgRed, color.Bold)
	var sb strings.Builder
	for i, b := range decoded {
		s := fmt.Sprint(b)
		if i < len(sent) && sent[i] != b {
			s = bad.Sprint(s)
		}
		sb.WriteString(s)
	}
	return sb.String()
}

func dumpResult(pattern string, c link.Config, res *link.Result) (string, error) {
	filename, err := strftime.Format(pattern, time.Now())
	if err != nil {
		return "", fmt.Errorf("bad dump pattern %q: %w", pattern, err)
	}

	carrier := c.Carrier()
	columns := []utils.Column{
		{Name: "chips", Series: modem.FromChips(res.Chips, carrier.ChipSamples(), carrier.SamplePeriod())},
		{Name: "i", Series: res.Signal.I},
		{Name: "q", Series: res.Signal.Q},
		{Name: "envelope", Series: res.Signal.Envelope},
		{Name: "received", Series: res.Received},
	}
	for _, sym := range gold.Symbols {
		columns = append(columns, utils.Column{Name: "corr_" + string(sym), Series: res.Bank[sym]})
	}

	return filename, utils.WriteSeries(filename, columns...)
}

// replayDump decodes the received envelope stored in a file written by
// dumpResult.
func replayDump(filename string, c link.Config, book gold.CodeBook) (*link.Result, error) {
	columns, err := utils.ReadSeries(filename)
	if err != nil {
		return nil, err
	}
	for _, col := range columns {
		if col.Name == "received" {
			return link.Replay(c, book, col.Series)
		}
	}
	return nil, fmt.Errorf("%s has no received column", filename)
}

func main() {
	c, replay, verbose := parse_args()

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "simulate", ReportTimestamp: true})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}

	seed := c.Seed()
	rng := rand.New(rand.NewSource(seed))

	bits, err := c.Payload(rng)
	if err != nil {
		logger.Fatal("bad payload", "err", err)
	}

	cfg := c.Link(bits)
	logger.Debug("parameters",
		"bps", cfg.BPS, "fd", cfg.Fd, "a0", cfg.A0, "f0", cfg.F0, "phi0", cfg.Phi0,
		"noise", cfg.ApplyNoise, "snr", cfg.SnrDb, "seed", seed)

	book := gold.DefaultCodeBook()
	for _, sym := range gold.Symbols {
		logger.Debug("gold code", "symbol", sym, "code", book[sym])
	}

	start := time.Now()
	var res *link.Result
	if replay != "" {
		res, err = replayDump(replay, cfg, book)
		if err != nil {
			logger.Fatal("replay failed", "file", replay, "err", err)
		}
		logger.Info("replay done", "file", replay, "samples", len(res.Received), "trace", res.Bank.Len(), "elapsed", time.Since(start))
	} else {
		res, err = link.Simulate(cfg, book, rng)
		if err != nil {
			logger.Fatal("simulation failed", "err", err)
		}
		logger.Info("simulation done", "samples", len(res.Signal.Envelope), "trace", res.Bank.Len(), "elapsed", time.Since(start))
	}

	fmt.Printf("Sent:    %s\n", bits)
	fmt.Printf("Decoded: %s\n", diff(bits, res.Decoded))
	fmt.Printf("BER:     %.4f\n", res.BER)

	if c.Output.Dump != "" && replay == "" {
		filename, err := dumpResult(c.Output.Dump, cfg, res)
		if err != nil {
			logger.Fatal("dump failed", "err", err)
		}
		logger.Info("waveforms written", "file", filename)
	}
}
