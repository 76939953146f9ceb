package datasource

import (
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-brain/internal/types"
)

// DataSource provides the ordered candle sequence for a replay.
type DataSource interface {
	// Initialize initializes the data source with the given data path in
	// parquet or csv format
	Initialize(path string) error
	// ReadAll reads all the data from the data source in time order and
	// yields it to the caller
	ReadAll(start optional.Option[time.Time], end optional.Option[time.Time]) func(yield func(types.MarketData, error) bool)
	// Count returns the number of rows in the data source
	Count(start optional.Option[time.Time], end optional.Option[time.Time]) (int, error)
	// Close closes the data source and releases any resources
	Close() error
}
