package optimize

import (
	"fmt"
	"sort"
	"sync"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-brain/internal/backtest"
	"github.com/rxtech-lab/argo-brain/internal/backtest/ledger"
	"github.com/rxtech-lab/argo-brain/internal/engine"
	"github.com/rxtech-lab/argo-brain/internal/logger"
	"github.com/rxtech-lab/argo-brain/internal/types"
	"go.uber.org/zap"
)

// Candidate is one parameter set in a grid search.
type Candidate struct {
	// Name labels the parameter set in the ranked output.
	Name string
	// Engine is the full decision-core configuration for this candidate.
	// Candidates never share configuration: each worker constructs its own
	// engine from its own copy, so no thresholds are mutated in place.
	Engine engine.Config
}

// Result is a scored candidate after replay.
type Result struct {
	Name  string
	Stats types.BacktestStats
	// Score is return over max drawdown, the risk-adjusted ranking metric.
	Score float64
}

// Runner replays the same candle sequence against many engine configurations
// in parallel, one fully isolated engine+simulator per worker.
type Runner struct {
	backtestConfig backtest.Config
	workers        int
	log            *logger.Logger
}

func NewRunner(backtestConfig backtest.Config, workers int, log *logger.Logger) *Runner {
	if workers < 1 {
		workers = 1
	}

	return &Runner{
		backtestConfig: backtestConfig,
		workers:        workers,
		log:            log,
	}
}

// Run scores every candidate and returns them sorted best first. A candidate
// whose replay fails aborts the whole search.
func (r *Runner) Run(candles []types.Candle, candidates []Candidate) ([]Result, error) {
	jobs := make(chan Candidate)
	results := make([]Result, 0, len(candidates))

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		firstErr error
	)

	for w := 0; w < r.workers; w++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for candidate := range jobs {
				result, err := r.runOne(candles, candidate)

				mu.Lock()
				if err != nil && firstErr == nil {
					firstErr = err
				}

				if err == nil {
					results = append(results, result)
				}
				mu.Unlock()
			}
		}()
	}

	for _, candidate := range candidates {
		jobs <- candidate
	}

	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}

		return results[i].Name < results[j].Name
	})

	return results, nil
}

func (r *Runner) runOne(candles []types.Candle, candidate Candidate) (Result, error) {
	// Workers log nothing per candle; a grid search would drown the output.
	workerLog := logger.NewDiscardLogger()

	led, err := ledger.NewLedger(workerLog)
	if err != nil {
		return Result{}, fmt.Errorf("candidate %s: %w", candidate.Name, err)
	}
	defer led.Close()

	eng := engine.New(candidate.Engine, workerLog)
	sim := backtest.NewSimulator(r.backtestConfig, eng, led, workerLog)

	stats, err := sim.Run(candles, optional.None[backtest.OnCandleCallback]())
	if err != nil {
		return Result{}, fmt.Errorf("candidate %s: %w", candidate.Name, err)
	}

	score := stats.TotalReturn
	if stats.TradeResult.MaxDrawdown > 0.01 {
		score = stats.TotalReturn / stats.TradeResult.MaxDrawdown
	}

	r.log.Info("Candidate scored",
		zap.String("name", candidate.Name),
		zap.Float64("return", stats.TotalReturn),
		zap.Float64("max_drawdown", stats.TradeResult.MaxDrawdown),
		zap.Float64("score", score),
	)

	return Result{
		Name:  candidate.Name,
		Stats: stats,
		Score: score,
	}, nil
}
