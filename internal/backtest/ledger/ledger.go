package ledger

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/argo-brain/internal/logger"
	"github.com/rxtech-lab/argo-brain/internal/types"
	"go.uber.org/zap"
)

// ExitReason records which level closed a position.
type ExitReason string

const (
	ExitReasonStop   ExitReason = "stop"
	ExitReasonTarget ExitReason = "target"
)

// Trade is one closed round trip as recorded by the simulator. PnL is net of
// both commissions and slippage.
type Trade struct {
	ID         string
	Symbol     string
	Strategy   string
	Regime     types.Regime
	Direction  types.Direction
	Size       float64
	EntryPrice float64
	ExitPrice  float64
	PnL        float64
	Commission float64
	Reason     ExitReason
	OpenedAt   time.Time
	ClosedAt   time.Time
}

// Ledger persists closed trades in an in-memory DuckDB table so a finished run
// can be exported to parquet and queried per strategy.
type Ledger struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

func NewLedger(logger *logger.Logger) (*Ledger, error) {
	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger database: %w", err)
	}

	return &Ledger{
		db:     db,
		logger: logger,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}, nil
}

// Initialize creates the trades table.
func (l *Ledger) Initialize() error {
	_, err := l.db.Exec(`
		CREATE TABLE IF NOT EXISTS trades (
			trade_id TEXT PRIMARY KEY,
			symbol TEXT,
			strategy TEXT,
			regime TEXT,
			direction TEXT,
			size DOUBLE,
			entry_price DOUBLE,
			exit_price DOUBLE,
			pnl DOUBLE,
			commission DOUBLE,
			reason TEXT,
			opened_at TIMESTAMP,
			closed_at TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create trades table: %w", err)
	}

	return nil
}

// Record inserts one closed trade, assigning an id when the caller left it
// empty.
func (l *Ledger) Record(trade Trade) error {
	if trade.ID == "" {
		trade.ID = uuid.New().String()
	}

	insert := l.sq.
		Insert("trades").
		Columns(
			"trade_id", "symbol", "strategy", "regime", "direction", "size",
			"entry_price", "exit_price", "pnl", "commission", "reason",
			"opened_at", "closed_at",
		).
		Values(
			trade.ID, trade.Symbol, trade.Strategy, string(trade.Regime),
			string(trade.Direction), trade.Size, trade.EntryPrice,
			trade.ExitPrice, trade.PnL, trade.Commission, string(trade.Reason),
			trade.OpenedAt, trade.ClosedAt,
		).
		RunWith(l.db)

	if _, err := insert.Exec(); err != nil {
		return fmt.Errorf("failed to insert trade: %w", err)
	}

	return nil
}

// Trades returns all recorded trades in close order.
func (l *Ledger) Trades() ([]Trade, error) {
	rows, err := l.sq.
		Select(
			"trade_id", "symbol", "strategy", "regime", "direction", "size",
			"entry_price", "exit_price", "pnl", "commission", "reason",
			"opened_at", "closed_at",
		).
		From("trades").
		OrderBy("closed_at ASC").
		RunWith(l.db).
		Query()
	if err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}
	defer rows.Close()

	var trades []Trade

	for rows.Next() {
		var (
			trade     Trade
			regime    string
			direction string
			reason    string
		)

		err := rows.Scan(
			&trade.ID, &trade.Symbol, &trade.Strategy, &regime, &direction,
			&trade.Size, &trade.EntryPrice, &trade.ExitPrice, &trade.PnL,
			&trade.Commission, &reason, &trade.OpenedAt, &trade.ClosedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}

		trade.Regime = types.Regime(regime)
		trade.Direction = types.Direction(direction)
		trade.Reason = ExitReason(reason)
		trades = append(trades, trade)
	}

	return trades, rows.Err()
}

// StrategyPnL returns the realized PnL summed per strategy name.
func (l *Ledger) StrategyPnL() (map[string]float64, error) {
	rows, err := l.sq.
		Select("strategy", "SUM(pnl)").
		From("trades").
		GroupBy("strategy").
		RunWith(l.db).
		Query()
	if err != nil {
		return nil, fmt.Errorf("failed to query strategy pnl: %w", err)
	}
	defer rows.Close()

	result := make(map[string]float64)

	for rows.Next() {
		var (
			strategy string
			pnl      float64
		)

		if err := rows.Scan(&strategy, &pnl); err != nil {
			return nil, fmt.Errorf("failed to scan strategy pnl: %w", err)
		}

		result[strategy] = pnl
	}

	return result, rows.Err()
}

// Write exports the trades table to trades.parquet in the given folder.
func (l *Ledger) Write(folder string) error {
	path := filepath.Join(folder, "trades.parquet")

	query := fmt.Sprintf(`COPY trades TO '%s' (FORMAT PARQUET)`, path)
	if _, err := l.db.Exec(query); err != nil {
		return fmt.Errorf("failed to export trades: %w", err)
	}

	l.logger.Debug("Ledger written", zap.String("path", path))

	return nil
}

// Cleanup drops the trades table so the ledger can be reused for another run.
func (l *Ledger) Cleanup() error {
	if _, err := l.db.Exec(`DROP TABLE IF EXISTS trades`); err != nil {
		return fmt.Errorf("failed to drop trades table: %w", err)
	}

	return nil
}

// Close closes the underlying database.
func (l *Ledger) Close() error {
	return l.db.Close()
}
