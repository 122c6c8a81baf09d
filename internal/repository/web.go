package repository

import (
	"context"
	"fmt"

	"github.com/wonny/dgi/internal/contracts"
	"github.com/wonny/dgi/internal/external/stockanalysis"
	"github.com/wonny/dgi/internal/validation"
)

// WebRepository pulls fundamentals from an HTML screener page instead of
// a local file. Page errors propagate; record problems go through the
// usual validator so partial pages degrade like partial CSVs.
type WebRepository struct {
	client    *stockanalysis.Client
	validator *validation.Validator
}

// NewWeb creates a web-backed repository
func NewWeb(client *stockanalysis.Client, validator *validation.Validator) *WebRepository {
	return &WebRepository{client: client, validator: validator}
}

// GetRows fetches and validates the remote fundamentals table
func (r *WebRepository) GetRows(ctx context.Context) ([]contracts.Company, error) {
	raw, err := r.client.FetchFundamentals(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch fundamentals: %w", err)
	}

	return r.validator.ValidateRows(raw)
}
