package port

import "ansify/internal/domain"

// StateStore persists the outcome of previous conversions so unchanged
// files can be skipped.
type StateStore interface {
	Get(path string) (domain.ConversionRecord, bool, error)

	Put(rec domain.ConversionRecord) error

	Delete(path string) error

	List() ([]domain.ConversionRecord, error)

	Clear() error

	Close() error
}
