package ports

import "go.ridx.dev/ridx/internal/core/domain"

// ResultSink persists a computed index series.
//
//go:generate mockgen -source=sink.go -destination=mocks/mock_sink.go -package=mocks
type ResultSink interface {
	// Write stores the samples in ascending date order, replacing any
	// previous series at the same destination.
	Write(samples []domain.Sample) error

	// Close releases sink resources.
	Close() error
}
