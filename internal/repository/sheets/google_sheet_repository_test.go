package sheets

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/herdbook/internal/domain/models"
)

type fakeWriter struct {
	ranges []string
	rows   [][]interface{}
	err    error
}

func (f *fakeWriter) WriteRow(_ context.Context, sheetRange string, values []interface{}) error {
	f.ranges = append(f.ranges, sheetRange)
	f.rows = append(f.rows, values)
	return f.err
}

func TestLedgerMirrorWritesRow(t *testing.T) {
	w := &fakeWriter{}
	rec := models.FinancialRecord{ID: "9", Kind: models.Expense, Category: "Services", Amount: 2800, Date: "2023-10-20", Description: "Vet visit"}

	require.NoError(t, NewLedgerMirror(w).AppendFinancialRecord(context.Background(), rec))
	assert.Equal(t, []string{FinanceRange}, w.ranges)
	assert.Equal(t, []interface{}{"2023-10-20", "expense", "Services", 2800.0, "Vet visit", "9"}, w.rows[0])
}

func TestLedgerMirrorPropagatesErrors(t *testing.T) {
	w := &fakeWriter{err: errors.New("quota exceeded")}
	err := NewLedgerMirror(w).AppendFinancialRecord(context.Background(), models.FinancialRecord{})
	assert.EqualError(t, err, "quota exceeded")
}
