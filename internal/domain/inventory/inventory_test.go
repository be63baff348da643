package inventory

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/medstock/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocation(t *testing.T) {
	loc, err := NewLocation("Rack A1", "rack", "ra-01", "QR-1")
	require.NoError(t, err)
	assert.Equal(t, "RA-01", loc.LocationCode)

	_, err = NewLocation("Rack", "", "R1", "")
	assert.ErrorIs(t, err, shared.NewValidationError("location_type", ""))
}

func TestStockRecord_Quantity(t *testing.T) {
	rec, err := NewStockRecord(uuid.New(), uuid.New(), decimal.NewFromInt(5))
	require.NoError(t, err)
	assert.False(t, rec.LastUpdated.IsZero())

	require.NoError(t, rec.Receive(decimal.NewFromInt(7)))
	assert.True(t, rec.Quantity.Equal(decimal.NewFromInt(12)))

	assert.Error(t, rec.SetQuantity(decimal.NewFromInt(-1)))
	assert.Error(t, rec.Receive(decimal.Zero))
	assert.True(t, rec.Quantity.Equal(decimal.NewFromInt(12)))
}

func TestSummarizeByItem(t *testing.T) {
	itemA, itemB := uuid.New(), uuid.New()
	rows := []StockLine{
		{ItemID: itemA, ItemCode: "A", LocationCode: "L1", Quantity: decimal.NewFromInt(3)},
		{ItemID: itemB, ItemCode: "B", LocationCode: "L1", Quantity: decimal.NewFromInt(1)},
		{ItemID: itemA, ItemCode: "A", LocationCode: "L2", Quantity: decimal.NewFromInt(4)},
	}

	got := SummarizeByItem(rows)

	require.Len(t, got, 2)
	assert.Equal(t, itemA, got[0].ItemID)
	assert.True(t, got[0].TotalQuantity.Equal(decimal.NewFromInt(7)))
	assert.Len(t, got[0].Locations, 2)
	assert.True(t, got[1].TotalQuantity.Equal(decimal.NewFromInt(1)))
}

func TestStockRule_Apply(t *testing.T) {
	rule, err := NewStockRule(uuid.New(), StockRuleParams{ROL: decimal.NewFromInt(10), MaxStock: decimal.NewFromInt(50)})
	require.NoError(t, err)

	assert.True(t, rule.NeedsReorder(decimal.NewFromInt(9)))
	assert.False(t, rule.NeedsReorder(decimal.NewFromInt(10)))

	err = rule.Apply(StockRuleParams{ROL: decimal.NewFromInt(60), MaxStock: decimal.NewFromInt(50)})
	assert.ErrorIs(t, err, shared.NewValidationError("rol", ""))

	err = rule.Apply(StockRuleParams{SafetyStock: decimal.NewFromInt(-2)})
	assert.ErrorIs(t, err, shared.NewValidationError("safety_stock", ""))
}

func TestMRN_AddItemAndBin(t *testing.T) {
	mrn, err := NewMRN("MRN1", uuid.New(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, MRNStatusPending, mrn.Status)
	assert.Error(t, mrn.CanBin())

	mfg := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	exp := mfg.AddDate(-1, 0, 0)
	err = mrn.AddItem(MRNItem{ItemID: uuid.New(), Quantity: decimal.NewFromInt(1), ManufactureDate: &mfg, ExpiryDate: &exp})
	assert.ErrorIs(t, err, shared.NewValidationError("expiry_date", ""))

	require.NoError(t, mrn.AddItem(MRNItem{ItemID: uuid.New(), Quantity: decimal.NewFromInt(20), BatchNumber: "B1"}))
	assert.Equal(t, mrn.ID, mrn.Items[0].MRNID)
	assert.NoError(t, mrn.CanBin())

	require.NoError(t, mrn.UpdateStatus(MRNStatusBinned, nil))
	assert.True(t, shared.IsConflict(mrn.CanBin()))
}

func TestMRN_SetTaxDetails(t *testing.T) {
	mrn, err := NewMRN("MRN1", uuid.New(), time.Time{})
	require.NoError(t, err)

	require.NoError(t, mrn.SetTaxDetails(json.RawMessage(`{"cgst":9,"sgst":9}`)))
	assert.Error(t, mrn.SetTaxDetails(json.RawMessage(`{bad`)))
}
