package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-brain/internal/backtest"
	"github.com/rxtech-lab/argo-brain/internal/backtest/datasource"
	"github.com/rxtech-lab/argo-brain/internal/backtest/ledger"
	"github.com/rxtech-lab/argo-brain/internal/engine"
	"github.com/rxtech-lab/argo-brain/internal/indicator"
	"github.com/rxtech-lab/argo-brain/internal/logger"
	"github.com/rxtech-lab/argo-brain/internal/types"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// backtestAction loads the candle file, computes features and replays the
// sequence through a fresh decision engine, writing results to the output
// folder.
func backtestAction(ctx context.Context, cmd *cli.Command) error {
	dataPath := cmd.String("data")
	// Validated here rather than marked required on the flag so that
	// subcommands such as schema stay runnable without it.
	if dataPath == "" {
		return fmt.Errorf("missing required flag: data")
	}

	resultsFolder := cmd.String("results")
	fundingRate := cmd.Float("funding")

	engineConfig, err := loadEngineConfig(cmd.String("engine-config"))
	if err != nil {
		return err
	}

	backtestConfig, err := loadBacktestConfig(cmd.String("config"))
	if err != nil {
		return err
	}

	appLogger, err := logger.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer appLogger.Sync()

	// Load candles through DuckDB so csv and parquet share one path.
	source, err := datasource.NewDuckDBDataSource(":memory:", appLogger)
	if err != nil {
		return fmt.Errorf("failed to create data source: %w", err)
	}
	defer source.Close()

	absPath, err := filepath.Abs(dataPath)
	if err != nil {
		return fmt.Errorf("failed to resolve data path: %w", err)
	}

	if err := source.Initialize(absPath); err != nil {
		return fmt.Errorf("failed to initialize data source: %w", err)
	}

	var rawData []types.MarketData

	for data, err := range source.ReadAll(backtestConfig.StartTime, backtestConfig.EndTime) {
		if err != nil {
			return fmt.Errorf("failed to read data: %w", err)
		}

		rawData = append(rawData, data)
	}

	pipeline := indicator.NewPipeline(indicator.DefaultConfig())

	candles := pipeline.Compute(rawData, fundingRate)
	if len(candles) == 0 {
		return fmt.Errorf("not enough candles after warmup: %d raw candles in %s", len(rawData), dataPath)
	}

	appLogger.Info("Starting replay",
		zap.String("data", absPath),
		zap.Int("candles", len(candles)),
		zap.Float64("initial_equity", backtestConfig.InitialEquity),
	)

	led, err := ledger.NewLedger(appLogger)
	if err != nil {
		return fmt.Errorf("failed to create ledger: %w", err)
	}
	defer led.Close()

	eng := engine.New(engineConfig, appLogger)
	sim := backtest.NewSimulator(backtestConfig, eng, led, appLogger)

	// Create progress bar
	bar := progressbar.Default(int64(len(candles)))
	bar.Describe(fmt.Sprintf("Replaying %s", filepath.Base(absPath)))

	callback := backtest.OnCandleCallback(func(current int, total int) {
		_ = bar.Set(current)
	})

	stats, err := sim.Run(candles, optional.Some(callback))
	if err != nil {
		return fmt.Errorf("replay failed: %w", err)
	}

	if err := os.MkdirAll(resultsFolder, 0755); err != nil {
		return fmt.Errorf("failed to create results folder: %w", err)
	}

	if err := types.WriteBacktestStats(filepath.Join(resultsFolder, "stats.yaml"), stats); err != nil {
		return fmt.Errorf("failed to write stats: %w", err)
	}

	if err := led.Write(resultsFolder); err != nil {
		return fmt.Errorf("failed to write ledger: %w", err)
	}

	appLogger.Info("Replay finished",
		zap.Float64("final_equity", stats.FinalEquity),
		zap.Float64("total_return", stats.TotalReturn),
		zap.Int("trades", stats.TradeResult.NumberOfTrades),
		zap.Float64("win_rate", stats.TradeResult.WinRate),
		zap.Float64("max_drawdown", stats.TradeResult.MaxDrawdown),
		zap.Float64("sharpe", stats.Sharpe),
	)

	return nil
}

// schemaAction prints the JSON schema of the engine and backtest configs.
func schemaAction(ctx context.Context, cmd *cli.Command) error {
	engineConfig := engine.DefaultConfig()

	engineSchema, err := engineConfig.GenerateSchemaJSON()
	if err != nil {
		return err
	}

	backtestConfig := backtest.DefaultConfig()

	backtestSchema, err := backtestConfig.GenerateSchemaJSON()
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.Root().Writer, engineSchema)
	fmt.Fprintln(cmd.Root().Writer, backtestSchema)

	return nil
}

func loadEngineConfig(path string) (engine.Config, error) {
	if path == "" {
		return engine.DefaultConfig(), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return engine.Config{}, fmt.Errorf("failed to read engine config: %w", err)
	}

	return engine.LoadConfig(string(content))
}

func loadBacktestConfig(path string) (backtest.Config, error) {
	if path == "" {
		return backtest.DefaultConfig(), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return backtest.Config{}, fmt.Errorf("failed to read backtest config: %w", err)
	}

	return backtest.LoadConfig(string(content))
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "backtest",
		Usage: "Replay historical candles through the decision engine",
		Commands: []*cli.Command{
			{
				Name:   "schema",
				Usage:  "Print the JSON schema of the configuration files",
				Action: schemaAction,
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Usage:   "Path to the candle file (csv or parquet)",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the backtest yaml config; defaults apply when omitted",
			},
			&cli.StringFlag{
				Name:    "engine-config",
				Aliases: []string{"e"},
				Usage:   "Path to the engine yaml config; defaults apply when omitted",
			},
			&cli.StringFlag{
				Name:    "results",
				Aliases: []string{"r"},
				Usage:   "Results output folder",
				Value:   "./results",
			},
			&cli.FloatFlag{
				Name:  "funding",
				Usage: "Constant funding rate applied across the replay",
				Value: 0.0001,
			},
		},
		Action: backtestAction,
	}
}

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
