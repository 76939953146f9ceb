package types

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type TradeResult struct {
	// Count of all trades.
	NumberOfTrades int `yaml:"number_of_trades"`
	// Count of winning trades that has positive pnl.
	NumberOfWinningTrades int `yaml:"number_of_winning_trades"`
	// Count of losing trades that has negative pnl.
	NumberOfLosingTrades int `yaml:"number_of_losing_trades"`
	// Win rate.
	WinRate float64 `yaml:"win_rate"`
	// Maximum drawdown, peak-to-trough on the equity curve.
	MaxDrawdown float64 `yaml:"max_drawdown"`
}

// BacktestStats is the summary written after a full replay.
type BacktestStats struct {
	// ID is the unique identifier for this backtest run.
	ID string `yaml:"id" json:"id"`
	// Timestamp is when this backtest run was executed.
	Timestamp time.Time `yaml:"timestamp" json:"timestamp"`
	// Symbol of the trading pair.
	Symbol string `yaml:"symbol"`
	// Initial equity at the start of the replay.
	InitialEquity float64 `yaml:"initial_equity"`
	// Final equity after the full candle sequence.
	FinalEquity float64 `yaml:"final_equity"`
	// Total return as a fraction of initial equity.
	TotalReturn float64 `yaml:"total_return"`
	// Annualized Sharpe-like ratio of the step-to-step equity returns.
	Sharpe float64 `yaml:"sharpe"`
	// Result of all trades.
	TradeResult TradeResult `yaml:"trade_result"`
	// Total commission paid across entries and exits.
	TotalFees float64 `yaml:"total_fees"`
	// Realized PnL per strategy name.
	StrategyPnL map[string]float64 `yaml:"strategy_pnl"`
	// Number of candles processed.
	CandleCount int `yaml:"candle_count"`
}

// WriteBacktestStats writes the stats to a yaml file at the given path.
func WriteBacktestStats(path string, stats BacktestStats) error {
	// Marshal the struct to YAML
	data, err := yaml.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal backtest stats to YAML: %w", err)
	}

	// Write the YAML data to the file
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write backtest stats to file: %w", err)
	}

	return nil
}
