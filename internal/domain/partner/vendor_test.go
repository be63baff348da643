package partner

import (
	"testing"

	"github.com/google/uuid"
	"github.com/medstock/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVendor(t *testing.T) {
	t.Run("normalizes code", func(t *testing.T) {
		v, err := NewVendor("Acme Pharma", "  acme-01 ", VendorDetails{Address: "Pune"})
		require.NoError(t, err)

		assert.Equal(t, "ACME-01", v.VendorCode)
		assert.Equal(t, "Pune", v.Address)
		assert.False(t, v.IsDeleted)
	})

	t.Run("requires name and code", func(t *testing.T) {
		_, err := NewVendor("", "X1", VendorDetails{})
		assert.ErrorIs(t, err, shared.NewValidationError("vendor_name", ""))

		_, err = NewVendor("Acme", "   ", VendorDetails{})
		assert.ErrorIs(t, err, shared.NewValidationError("vendor_code", ""))
	})
}

func TestVendor_Delete(t *testing.T) {
	v, err := NewVendor("Acme", "A1", VendorDetails{})
	require.NoError(t, err)
	before := v.UpdatedAt

	v.Delete()

	assert.True(t, v.Deleted())
	assert.False(t, v.UpdatedAt.Before(before))
}

func TestNewVendorItem(t *testing.T) {
	vi, err := NewVendorItem(uuid.New(), uuid.New(), decimal.NewFromFloat(12.5))
	require.NoError(t, err)
	assert.True(t, vi.Price.Equal(decimal.NewFromFloat(12.5)))

	_, err = NewVendorItem(uuid.New(), uuid.New(), decimal.NewFromInt(-1))
	assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))

	_, err = NewVendorItem(uuid.Nil, uuid.New(), decimal.Zero)
	assert.Error(t, err)
}
