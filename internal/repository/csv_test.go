package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/dgi/internal/validation"
	"github.com/wonny/dgi/pkg/logger"
)

const sampleCSV = `symbol,name,sector,industry,dividend_yield,payout,dividend_cagr,fcf_yield
JNJ,Johnson & Johnson,Healthcare,Drug Manufacturers,2.9,45.0,6.0,4.5
KO,Coca-Cola,Consumer Defensive,Beverages,3.1,72.0,3.5,3.8
PG,Procter & Gamble,Consumer Defensive,Household Products,2.4,60.0,5.0,4.0
`

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fundamentals.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCSVRepository_GetRows(t *testing.T) {
	path := writeTempCSV(t, sampleCSV)
	validator := validation.New(validation.DefaultBounds(), logger.Nop())
	repo := NewCSV(path, validator)

	rows, err := repo.GetRows(context.Background())
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, "JNJ", rows[0].Symbol)
	assert.Equal(t, 72.0, rows[1].PayoutRatio)
	assert.Equal(t, 5.0, rows[2].DividendGrowth5Y)
}

func TestCSVRepository_FileNotFound(t *testing.T) {
	validator := validation.New(validation.DefaultBounds(), logger.Nop())
	repo := NewCSV("does/not/exist.csv", validator)

	_, err := repo.GetRows(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist), "I/O errors must stay inspectable")
}

func TestCSVRepository_SkipsBadRows(t *testing.T) {
	csv := sampleCSV + "BAD,Bad Co,Tech,Software,not-a-number,10,5,5\n"
	path := writeTempCSV(t, csv)
	validator := validation.New(validation.DefaultBounds(), logger.Nop())
	repo := NewCSV(path, validator)

	rows, err := repo.GetRows(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 3, "malformed row is skipped, not fatal")
}

func TestCSVRepository_AllRowsBad(t *testing.T) {
	csv := "symbol,name,sector,industry,dividend_yield,payout,dividend_cagr,fcf_yield\n" +
		"AAA,A,S,I,x,y,z,w\n"
	path := writeTempCSV(t, csv)
	validator := validation.New(validation.DefaultBounds(), logger.Nop())
	repo := NewCSV(path, validator)

	_, err := repo.GetRows(context.Background())
	require.Error(t, err)

	var batchErr *validation.DataValidationError
	assert.True(t, errors.As(err, &batchErr), "batch failure surfaces as DataValidationError")
}
