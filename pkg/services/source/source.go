package source

import (
	"context"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
)

// Source returns the full, current record set. Every call reads from scratch.
type Source interface {
	Rows(ctx context.Context) ([]domain.RawRow, error)
	Close() error
}

// Settings carries whatever a source kind needs to open its backing data.
type Settings struct {
	Path   string
	DbPath string
}
