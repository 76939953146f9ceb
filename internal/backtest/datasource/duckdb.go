package datasource

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-brain/internal/logger"
	"github.com/rxtech-lab/argo-brain/internal/types"
	"go.uber.org/zap"
)

// DuckDBDataSource reads candle files through a DuckDB view, so parquet and
// csv inputs share one query path.
type DuckDBDataSource struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

// NewDuckDBDataSource creates a new DuckDB-backed data source at the given
// database path (":memory:" for a throwaway instance). This is distinct from
// Initialize() which loads candle data into the database.
func NewDuckDBDataSource(path string, logger *logger.Logger) (DataSource, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, err
	}

	return &DuckDBDataSource{
		db:     db,
		logger: logger,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}, nil
}

// Initialize implements DataSource.
func (d *DuckDBDataSource) Initialize(path string) error {
	d.logger.Debug("Initializing DuckDB data source", zap.String("path", path))

	// First drop the view if it exists
	if _, err := d.db.Exec(`DROP VIEW IF EXISTS market_data;`); err != nil {
		return fmt.Errorf("failed to drop existing view: %w", err)
	}

	var reader string

	switch filepath.Ext(path) {
	case ".csv":
		reader = fmt.Sprintf(`read_csv_auto('%s')`, path)
	default:
		reader = fmt.Sprintf(`read_parquet('%s')`, path)
	}

	// Squirrel doesn't support CREATE VIEW, use raw SQL
	query := fmt.Sprintf(`CREATE VIEW market_data AS SELECT * FROM %s;`, reader)
	if _, err := d.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create market_data view: %w", err)
	}

	return nil
}

// ReadAll implements DataSource.
func (d *DuckDBDataSource) ReadAll(start optional.Option[time.Time], end optional.Option[time.Time]) func(yield func(types.MarketData, error) bool) {
	return func(yield func(types.MarketData, error) bool) {
		query := d.sq.
			Select("time", "symbol", "open", "high", "low", "close", "volume").
			From("market_data").
			OrderBy("time ASC")

		if start.IsSome() {
			query = query.Where(squirrel.GtOrEq{"time": start.Unwrap()})
		}

		if end.IsSome() {
			query = query.Where(squirrel.LtOrEq{"time": end.Unwrap()})
		}

		rows, err := query.RunWith(d.db).Query()
		if err != nil {
			yield(types.MarketData{}, fmt.Errorf("failed to query market data: %w", err))

			return
		}
		defer rows.Close()

		for rows.Next() {
			var data types.MarketData

			err := rows.Scan(&data.Time, &data.Symbol, &data.Open, &data.High, &data.Low, &data.Close, &data.Volume)
			if err != nil {
				yield(types.MarketData{}, fmt.Errorf("failed to scan market data: %w", err))

				return
			}

			if !yield(data, nil) {
				return
			}
		}

		if err := rows.Err(); err != nil {
			yield(types.MarketData{}, err)
		}
	}
}

// Count implements DataSource.
func (d *DuckDBDataSource) Count(start optional.Option[time.Time], end optional.Option[time.Time]) (int, error) {
	query := d.sq.Select("COUNT(*)").From("market_data")

	if start.IsSome() {
		query = query.Where(squirrel.GtOrEq{"time": start.Unwrap()})
	}

	if end.IsSome() {
		query = query.Where(squirrel.LtOrEq{"time": end.Unwrap()})
	}

	var count int
	if err := query.RunWith(d.db).QueryRow().Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count market data: %w", err)
	}

	return count, nil
}

// Close implements DataSource.
func (d *DuckDBDataSource) Close() error {
	return d.db.Close()
}
