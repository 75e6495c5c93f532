package research

import (
	"context"
	"math"
	"runtime"
	"sort"
	"time"

	"GoldLink/pkg/async"
	"GoldLink/pkg/channel"
	"GoldLink/pkg/dsss"
	"GoldLink/pkg/gold"
	"GoldLink/pkg/link"
	"GoldLink/pkg/receiver"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
	"gonum.org/v1/gonum/stat"
)

// Observer is told about every finished trial and every finished SNR point.
// Calls come from several goroutines.
type Observer interface {
	ObserveTrial(snrDb, ber float64)
	ObservePoint(snrDb, meanBER float64)
}

// Sweep measures the mean BER of the link over a range of SNR values.
type Sweep struct {
	dsss.Params

	MeanOrder int // trials per SNR point
	SnrFrom   float64
	SnrTo     float64
	SnrStep   float64

	Seed    uint64
	Workers int    // trials running at once over the whole sweep, 0 means GOMAXPROCS
	RunID   string // empty generates a random one

	Book     gold.CodeBook // nil means gold.DefaultCodeBook
	Logger   *log.Logger
	Observer Observer
}

type Point struct {
	SnrDb   float64
	MeanBER float64
	Trials  int
}

type Report struct {
	RunID    string
	Points   []Point // ascending by SnrDb
	Duration time.Duration
}

func (s *Sweep) Validate() error {
	if err := s.Params.Validate(); err != nil {
		return err
	}
	if s.MeanOrder < 1 {
		return dsss.ConfigError("research", "mean order must be at least 1", "meanOrder=%d", s.MeanOrder)
	}
	if !(s.SnrStep > 0) || math.IsInf(s.SnrStep, 0) {
		return dsss.ConfigError("research", "snr step must be positive", "snrStep=%v", s.SnrStep)
	}
	if math.IsNaN(s.SnrFrom) || math.IsNaN(s.SnrTo) || math.IsInf(s.SnrFrom, 0) || math.IsInf(s.SnrTo, 0) {
		return dsss.ConfigError("research", "snr range must be finite", "from=%v to=%v", s.SnrFrom, s.SnrTo)
	}
	if s.SnrTo < s.SnrFrom {
		return dsss.ConfigError("research", "snr range must not be reversed", "from=%v to=%v", s.SnrFrom, s.SnrTo)
	}
	if s.Workers < 0 {
		return dsss.ConfigError("research", "workers must not be negative", "workers=%d", s.Workers)
	}
	return nil
}

// Grid lists the SNR values of the sweep, SnrFrom and SnrTo included.
func (s *Sweep) Grid() []float64 {
	n := int(math.Floor((s.SnrTo-s.SnrFrom)/s.SnrStep+1e-9)) + 1
	grid := make([]float64, n)
	for i := range grid {
		grid[i] = s.SnrFrom + float64(i)*s.SnrStep
	}
	return grid
}

// Run executes every trial and reduces them per SNR point. The clean
// transmitted envelope is computed once and only read by the trials; every
// trial draws its noise from its own generator.
func (s *Sweep) Run(ctx context.Context) (*Report, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	logger := s.Logger
	if logger == nil {
		logger = log.Default()
	}
	book := s.Book
	if book == nil {
		book = gold.DefaultCodeBook()
	}
	workers := s.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	runID := s.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	start := time.Now()
	grid := s.Grid()
	logger.Info("sweep started", "run", runID, "points", len(grid), "trials", s.MeanOrder, "bits", len(s.Bits))

	cfg := link.Config{Params: s.Params}
	chips, signal, err := link.Transmit(cfg, book)
	if err != nil {
		return nil, err
	}

	// every point's trials draw from one pool of workers
	sem := semaphore.NewWeighted(int64(workers))
	pending := make([]<-chan async.Result[Point], len(grid))
	for n, snr := range grid {
		pending[n] = async.Try(func() (Point, error) {
			bers, err := s.point(ctx, n, snr, func(rng channel.Uniform) (float64, error) {
				received, err := channel.AddNoise(signal.Envelope, snr, rng)
				if err != nil {
					return 0, err
				}
				_, decoded, err := link.Receive(cfg, book, received, len(chips))
				if err != nil {
					return 0, err
				}
				return receiver.BER(s.Bits, decoded), nil
			}, sem, workers)
			if err != nil {
				return Point{}, err
			}

			p := Point{SnrDb: snr, MeanBER: stat.Mean(bers, nil), Trials: len(bers)}
			logger.Debug("point done", "run", runID, "snr", p.SnrDb, "ber", p.MeanBER, "trials", p.Trials)
			if s.Observer != nil {
				s.Observer.ObservePoint(p.SnrDb, p.MeanBER)
			}
			return p, nil
		})
	}

	points, err := async.AwaitAll(ctx, async.GatherN(pending...))
	if err != nil {
		return nil, err
	}
	sort.Slice(points, func(i, j int) bool { return points[i].SnrDb < points[j].SnrDb })

	report := &Report{RunID: runID, Points: points, Duration: time.Since(start)}
	logger.Info("sweep finished", "run", runID, "duration", report.Duration)
	return report, nil
}

// point runs MeanOrder trials at one SNR and returns their BERs in trial
// order. A trial only runs while it holds a unit of sem.
func (s *Sweep) point(ctx context.Context, n int, snr float64, trial func(channel.Uniform) (float64, error), sem *semaphore.Weighted, workers int) ([]float64, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	bers := make([]float64, s.MeanOrder)
	for i := range bers {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := sem.Acquire(gctx, 1); err != nil {
				return err
			}
			defer sem.Release(1)
			if err := gctx.Err(); err != nil {
				return err
			}
			rng := rand.New(rand.NewSource(TrialSeed(s.Seed, n, i)))
			ber, err := trial(rng)
			if err != nil {
				return err
			}
			bers[i] = ber
			if s.Observer != nil {
				s.Observer.ObserveTrial(snr, ber)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return bers, nil
}

// TrialSeed derives an independent generator seed for trial i of point n.
func TrialSeed(seed uint64, n, i int) uint64 {
	z := seed + uint64(n)<<32 + uint64(i)
	// splitmix64 finalizer
	z += 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
