package repository

import (
	"context"

	"github.com/wonny/dgi/internal/contracts"
)

// CompanyRepository supplies validated fundamentals records from a
// backing store. Implementations only do I/O; all record-level checks
// are delegated to the row validator, and I/O errors propagate to the
// caller as-is.
type CompanyRepository interface {
	GetRows(ctx context.Context) ([]contracts.Company, error)
}
