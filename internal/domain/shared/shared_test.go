package shared

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Is(t *testing.T) {
	err := NewValidationError("quantity", "quantity must be greater than zero")

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, NewValidationError("quantity", ""))
	assert.NotErrorIs(t, err, NewValidationError("gst_type", ""))
	assert.NotErrorIs(t, err, ErrNotFound)

	wrapped := fmt.Errorf("pricing line: %w", err)
	assert.Equal(t, CodeValidation, CodeOf(wrapped))
}

func TestNewInternalError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewInternalError("database error", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "database error: connection reset", err.Error())
	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "PARA-500", NormalizeCode("  para-500 "))
	assert.Empty(t, NormalizeCode("   "))
}

func TestFilter(t *testing.T) {
	f := Filter{Page: 3, PageSize: 20}
	assert.Equal(t, 40, f.Offset())
	assert.Equal(t, 0, Filter{Page: 0, PageSize: 20}.Offset())

	with := Filter{}.With("status", "pending")
	assert.Equal(t, "pending", with.Filters["status"])

	paged := DefaultFilter().WithPage(2, 0, "vendor_name", "ASC")
	assert.Equal(t, 2, paged.Page)
	assert.Equal(t, 20, paged.PageSize)
	assert.Equal(t, "vendor_name", paged.OrderBy)
	assert.Equal(t, "asc", paged.OrderDir)
}

func TestNewPaginated(t *testing.T) {
	p := NewPaginated([]int{1, 2}, 41, 1, 20)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 0, NewPaginated([]int{}, 5, 1, 0).TotalPages)
}

func TestEndOfDay(t *testing.T) {
	assert.Nil(t, EndOfDay(nil))

	d := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	end := EndOfDay(&d)
	assert.Equal(t, time.Date(2025, 3, 9, 23, 59, 59, 999999999, time.UTC), *end)
}
