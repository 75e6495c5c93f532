package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"GoldLink/cmd/config"
	"GoldLink/pkg/metrics"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/pflag"
	"golang.org/x/exp/rand"
)

func parse_args() (*config.Config, bool) {
	configPath := pflag.StringP("config", "c", "", "YAML configuration file.")
	bits := pflag.StringP("bits", "b", "", "Bits to send, e.g. \"1011 0010\". Random bits are sent when empty.")
	randomBits := pflag.IntP("random", "n", 0, "Number of random bits to send when --bits is empty.")
	seed := pflag.Uint64P("seed", "s", 0, "Seed of the sweep. 0 picks one from the clock.")
	bps := pflag.Int("bps", 0, "Chip rate, chips per second.")
	fd := pflag.Float64("fd", 0, "Sample rate.")
	a0 := pflag.Float64("a0", 0, "Carrier amplitude.")
	f0 := pflag.Float64("f0", 0, "Carrier frequency.")
	phi0 := pflag.Float64("phi0", 0, "Carrier phase in radians.")
	meanOrder := pflag.IntP("mean-order", "m", 0, "Trials averaged per SNR point.")
	snrFrom := pflag.Float64("snr-from", 0, "First SNR point in dB.")
	snrTo := pflag.Float64("snr-to", 0, "Last SNR point in dB.")
	snrStep := pflag.Float64("snr-step", 0, "Distance between SNR points in dB.")
	workers := pflag.IntP("workers", "w", 0, "Trials running at once across all SNR points. 0 uses every CPU.")
	metricsPath := pflag.String("metrics", "", "Write prometheus metrics of the sweep to this textfile.")
	verbose := pflag.BoolP("verbose", "v", false, "Log every SNR point.")
	help := pflag.BoolP("help", "h", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Measure the mean bit error rate of the link over a range of SNR values.\n\n")
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
	if changed("mean-order") {
		c.Research.MeanOrder = *meanOrder
	}
	if changed("snr-from") {
		c.Research.SnrFrom = *snrFrom
	}
	if changed("snr-to") {
		c.Research.SnrTo = *snrTo
	}
	if changed("snr-step") {
		c.Research.SnrStep = *snrStep
	}
	if changed("workers") {
		c.Research.Workers = *workers
	}
	if changed("metrics") {
		c.Output.Metrics = *metricsPath
	}

	return c, *verbose
}

// bar draws ber in [0, 1] as a row of width cells.
func bar(ber float64, width int) string {
	n := int(ber*float64(width) + 0.5)
	n = max(0, min(n, width))
	return strings.Repeat("#", n) + strings.Repeat(".", width-n)
}

func main() {
	c, verbose := parse_args()

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "research", ReportTimestamp: true})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}

	seed := c.Seed()
	bits, err := c.Payload(rand.New(rand.NewSource(seed)))
	if err != nil {
		logger.Fatal("bad payload", "err", err)
	}

	sweep := c.Sweep(bits, seed)
	sweep.RunID = uuid.NewString()
	sweep.Logger = logger

	var rec *metrics.Recorder
	if c.Output.Metrics != "" {
		rec = metrics.New(sweep.RunID)
		sweep.Observer = rec
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, err := sweep.Run(ctx)
	if err != nil {
		logger.Fatal("sweep failed", "err", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SNR (dB)\tMean BER\tTrials\t")
	for _, p := range report.Points {
		fmt.Fprintf(w, "%.2f\t%.4f\t%d\t%s\n", p.SnrDb, p.MeanBER, p.Trials, bar(p.MeanBER, 40))
	}
	w.Flush()

	if rec != nil {
		rec.ObserveDuration(report.Duration)
		if err := rec.WriteTextfile(c.Output.Metrics); err != nil {
			logger.Fatal("failed to write metrics", "file", c.Output.Metrics, "err", err)
		}
		logger.Info("metrics written", "file", c.Output.Metrics, "run", report.RunID)
	}
}
