package datasource

import (
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-brain/internal/types"
)

// MemoryDataSource serves candles from a slice, used in tests and parameter
// search where the data is already in memory.
type MemoryDataSource struct {
	data []types.MarketData
}

func NewMemoryDataSource(data []types.MarketData) DataSource {
	return &MemoryDataSource{data: data}
}

// Initialize implements DataSource. The slice is fixed at construction, so
// there is nothing to load.
func (m *MemoryDataSource) Initialize(path string) error {
	return nil
}

// ReadAll implements DataSource.
func (m *MemoryDataSource) ReadAll(start optional.Option[time.Time], end optional.Option[time.Time]) func(yield func(types.MarketData, error) bool) {
	return func(yield func(types.MarketData, error) bool) {
		for _, data := range m.data {
			if start.IsSome() && data.Time.Before(start.Unwrap()) {
				continue
			}

			if end.IsSome() && data.Time.After(end.Unwrap()) {
				continue
			}

			if !yield(data, nil) {
				return
			}
		}
	}
}

// Count implements DataSource.
func (m *MemoryDataSource) Count(start optional.Option[time.Time], end optional.Option[time.Time]) (int, error) {
	count := 0

	for _, data := range m.data {
		if start.IsSome() && data.Time.Before(start.Unwrap()) {
			continue
		}

		if end.IsSome() && data.Time.After(end.Unwrap()) {
			continue
		}

		count++
	}

	return count, nil
}

// Close implements DataSource.
func (m *MemoryDataSource) Close() error {
	return nil
}
