package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	appinv "github.com/medstock/backend/internal/application/inventory"
	"github.com/medstock/backend/internal/domain/catalog"
	"github.com/medstock/backend/internal/domain/inventory"
	"github.com/medstock/backend/internal/domain/partner"
	"github.com/medstock/backend/internal/domain/report"
	"github.com/medstock/backend/internal/domain/shared"
	"github.com/medstock/backend/internal/domain/trade"
	"github.com/medstock/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seedItem(t *testing.T, db *gorm.DB, code string) *catalog.Item {
	t.Helper()
	item, err := catalog.NewItem("Item "+code, code, catalog.ItemDetails{UOM: "box"})
	require.NoError(t, err)
	require.NoError(t, NewGormItemRepository(db).Save(context.Background(), item))
	return item
}

func seedLocation(t *testing.T, db *gorm.DB, code string) *inventory.Location {
	t.Helper()
	loc, err := inventory.NewLocation("Bin "+code, "rack", code, "")
	require.NoError(t, err)
	require.NoError(t, NewGormLocationRepository(db).Save(context.Background(), loc))
	return loc
}

func TestGormVendorRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormVendorRepository(db)
	ctx := context.Background()

	v, err := partner.NewVendor("Acme Pharma", "acme", partner.VendorDetails{ItemType: "tablet"})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, v))

	t.Run("find by normalized code", func(t *testing.T) {
		found, err := repo.FindByCode(ctx, "ACME")
		require.NoError(t, err)
		assert.Equal(t, v.ID, found.ID)
		assert.Equal(t, "tablet", found.ItemType)
	})

	t.Run("duplicate code is a conflict", func(t *testing.T) {
		dup, err := partner.NewVendor("Other", "ACME", partner.VendorDetails{})
		require.NoError(t, err)
		exists, err := repo.ExistsByCode(ctx, "acme", nil)
		require.NoError(t, err)
		assert.True(t, exists)
		assert.True(t, shared.IsConflict(repo.Save(ctx, dup)))
	})

	t.Run("search matches name case-insensitively", func(t *testing.T) {
		f := shared.DefaultFilter()
		f.Search = "PHARMA"
		vendors, total, err := repo.FindAll(ctx, f)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Len(t, vendors, 1)
	})

	t.Run("soft-deleted vendor is hidden", func(t *testing.T) {
		v.Delete()
		require.NoError(t, repo.Save(ctx, v))

		_, err := repo.FindByID(ctx, v.ID)
		assert.True(t, shared.IsNotFound(err))

		_, total, err := repo.FindAll(ctx, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Equal(t, int64(1), countRows(t, db, &models.VendorModel{}))
	})
}

func TestGormPurchaseOrderRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPurchaseOrderRepository(db)
	ctx := context.Background()
	vendorID := uuid.New()
	item := seedItem(t, db, "PARA500")

	po, err := trade.NewPurchaseOrder(trade.GeneratePONumber(time.Now()), vendorID, time.Now().UTC())
	require.NoError(t, err)
	_, err = po.AddItem(item.ID, trade.LineInput{
		Quantity: dec("10"), UnitPrice: dec("100"), TaxPercent: dec("18"), GSTType: trade.GSTIntra,
	})
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, po))

	t.Run("loads order with items", func(t *testing.T) {
		found, err := repo.FindByID(ctx, po.ID)
		require.NoError(t, err)
		require.Len(t, found.Items, 1)
		assert.True(t, dec("1180").Equal(found.TotalAmount))
		assert.True(t, dec("90").Equal(found.Items[0].CGST))
		assert.True(t, dec("90").Equal(found.Items[0].SGST))
	})

	t.Run("item mutations recompute the total", func(t *testing.T) {
		line, err := trade.NewPurchaseOrderItem(po.ID, item.ID, trade.LineInput{
			Quantity: dec("5"), UnitPrice: dec("200"), TaxPercent: dec("12"), GSTType: trade.GSTInter,
		})
		require.NoError(t, err)
		require.NoError(t, repo.AddItem(ctx, line))

		found, err := repo.FindByID(ctx, po.ID)
		require.NoError(t, err)
		assert.True(t, dec("2300").Equal(found.TotalAmount), found.TotalAmount.String())

		require.NoError(t, line.Reprice(trade.LineInput{
			Quantity: dec("1"), UnitPrice: dec("200"), TaxPercent: dec("12"), GSTType: trade.GSTInter,
		}))
		require.NoError(t, repo.UpdateItem(ctx, line))
		found, err = repo.FindByID(ctx, po.ID)
		require.NoError(t, err)
		assert.True(t, dec("1404").Equal(found.TotalAmount), found.TotalAmount.String())

		require.NoError(t, repo.RemoveItem(ctx, line))
		found, err = repo.FindByID(ctx, po.ID)
		require.NoError(t, err)
		assert.True(t, dec("1180").Equal(found.TotalAmount), found.TotalAmount.String())
	})

	t.Run("filter by status", func(t *testing.T) {
		orders, total, err := repo.FindAll(ctx, shared.DefaultFilter().With("status", "completed"))
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, orders)

		orders, total, err = repo.FindAll(ctx, shared.DefaultFilter().With("vendor_id", vendorID))
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, po.PONumber, orders[0].PONumber)
	})

	t.Run("soft delete hides the order", func(t *testing.T) {
		po.Delete()
		require.NoError(t, repo.Update(ctx, po))
		_, err := repo.FindByID(ctx, po.ID)
		assert.True(t, shared.IsNotFound(err))
	})
}

func TestGormStockRecordRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormStockRecordRepository(db)
	ctx := context.Background()
	item := seedItem(t, db, "AMOX250")
	a := seedLocation(t, db, "A1")
	b := seedLocation(t, db, "B1")

	rec, err := inventory.NewStockRecord(item.ID, a.ID, dec("5"))
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, rec))

	t.Run("duplicate item and location is a conflict", func(t *testing.T) {
		dup, err := inventory.NewStockRecord(item.ID, a.ID, dec("1"))
		require.NoError(t, err)
		assert.True(t, shared.IsConflict(repo.Create(ctx, dup)))
	})

	t.Run("lines are joined and ordered by location", func(t *testing.T) {
		other, err := inventory.NewStockRecord(item.ID, b.ID, dec("7"))
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, other))

		lines, total, err := repo.FindLines(ctx, shared.DefaultFilter().With("item_id", item.ID))
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, lines, 2)
		assert.Equal(t, "A1", lines[0].LocationCode)
		assert.Equal(t, "AMOX250", lines[0].ItemCode)

		summary := inventory.SummarizeByItem(lines)
		require.Len(t, summary, 1)
		assert.True(t, dec("12").Equal(summary[0].TotalQuantity))
	})

	t.Run("update sets the quantity", func(t *testing.T) {
		require.NoError(t, rec.SetQuantity(dec("9")))
		require.NoError(t, repo.Update(ctx, rec))
		found, err := repo.FindByItemAndLocation(ctx, item.ID, a.ID)
		require.NoError(t, err)
		assert.True(t, dec("9").Equal(found.Quantity))
	})
}

func TestGormStockRuleRepository_FindReorderCandidates(t *testing.T) {
	db := setupTestDB(t)
	rules := NewGormStockRuleRepository(db)
	stock := NewGormStockRecordRepository(db)
	ctx := context.Background()
	loc := seedLocation(t, db, "A1")

	low := seedItem(t, db, "LOW")
	empty := seedItem(t, db, "EMPTY")
	fine := seedItem(t, db, "FINE")

	for _, it := range []*catalog.Item{low, empty, fine} {
		rule, err := inventory.NewStockRule(it.ID, inventory.StockRuleParams{ROL: dec("10"), MaxStock: dec("50")})
		require.NoError(t, err)
		require.NoError(t, rules.Save(ctx, rule))
	}
	for it, qty := range map[*catalog.Item]string{low: "4", fine: "10"} {
		rec, err := inventory.NewStockRecord(it.ID, loc.ID, dec(qty))
		require.NoError(t, err)
		require.NoError(t, stock.Create(ctx, rec))
	}

	candidates, err := rules.FindReorderCandidates(ctx)
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, "EMPTY", candidates[0].ItemCode)
	assert.True(t, dec("10").Equal(candidates[0].Shortfall))
	assert.Equal(t, "LOW", candidates[1].ItemCode)
	assert.True(t, dec("6").Equal(candidates[1].Shortfall))
	assert.True(t, dec("50").Equal(candidates[1].MaxStock))

	t.Run("second rule for an item is a conflict", func(t *testing.T) {
		rule, err := inventory.NewStockRule(low.ID, inventory.StockRuleParams{ROL: dec("1")})
		require.NoError(t, err)
		assert.True(t, shared.IsConflict(rules.Save(ctx, rule)))
	})
}

func TestGormMRNRepository_DeleteCascades(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormMRNRepository(db)
	logs := NewGormBinningLogRepository(db)
	ctx := context.Background()
	item := seedItem(t, db, "ORS")
	loc := seedLocation(t, db, "A1")

	mrn, err := inventory.NewMRN(inventory.GenerateMRNNumber(time.Now()), uuid.New(), time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, mrn.AddItem(inventory.MRNItem{ItemID: item.ID, Quantity: dec("3"), Price: dec("2.5")}))
	require.NoError(t, repo.Create(ctx, mrn))

	entry, err := inventory.NewBinningLog(mrn.ID, loc.ID, uuid.New(), time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, logs.Create(ctx, entry))

	found, total, err := logs.FindAll(ctx, shared.DefaultFilter().With("item_id", item.ID))
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, found, 1)

	require.NoError(t, repo.Delete(ctx, mrn.ID))
	assert.Zero(t, countRows(t, db, &models.BinningLogModel{}))
	assert.Zero(t, countRows(t, db, &models.MRNItemModel{}))
	assert.Zero(t, countRows(t, db, &models.MRNModel{}))

	assert.True(t, shared.IsNotFound(repo.Delete(ctx, mrn.ID)))
}

func TestGormTransactionScope_RollsBack(t *testing.T) {
	db := setupTestDB(t)
	scope := NewGormTransactionScope(db)
	ctx := context.Background()
	item := seedItem(t, db, "ZINC")
	loc := seedLocation(t, db, "A1")

	err := scope.Execute(ctx, func(repos appinv.TransactionalRepositories) error {
		rec, err := inventory.NewStockRecord(item.ID, loc.ID, dec("4"))
		require.NoError(t, err)
		if err := repos.StockRecordRepo().Create(ctx, rec); err != nil {
			return err
		}
		return shared.NewValidationError("mrn_id", "abort")
	})

	assert.Error(t, err)
	assert.Zero(t, countRows(t, db, &models.StockRecordModel{}))
}

func TestGormReportRepository(t *testing.T) {
	db := setupTestDB(t)
	reports := NewGormReportRepository(db)
	orders := NewGormPurchaseOrderRepository(db)
	vendors := NewGormVendorRepository(db)
	ctx := context.Background()

	v, err := partner.NewVendor("Acme", "ACME", partner.VendorDetails{})
	require.NoError(t, err)
	require.NoError(t, vendors.Save(ctx, v))
	item := seedItem(t, db, "PARA")

	for _, status := range []trade.PurchaseOrderStatus{trade.PurchaseOrderStatusPending, trade.PurchaseOrderStatusCompleted} {
		po, err := trade.NewPurchaseOrder(uuid.NewString(), v.ID, time.Now().UTC())
		require.NoError(t, err)
		_, err = po.AddItem(item.ID, trade.LineInput{Quantity: dec("1"), UnitPrice: dec("100"), TaxPercent: dec("18"), GSTType: trade.GSTInter})
		require.NoError(t, err)
		require.NoError(t, orders.Create(ctx, po))
		if status != trade.PurchaseOrderStatusPending {
			require.NoError(t, po.UpdateStatus(status))
			require.NoError(t, orders.Update(ctx, po))
		}
	}

	pending, err := reports.PendingPOs(ctx, report.Filter{})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "Acme", pending[0].VendorName)

	perf, err := reports.VendorPerformance(ctx, report.Filter{VendorID: &v.ID})
	require.NoError(t, err)
	require.Len(t, perf, 1)
	assert.Equal(t, int64(1), perf[0].OrderCount)
	assert.True(t, dec("118").Equal(perf[0].TotalValue))
}
