package persistence

import (
	"strings"

	"github.com/medstock/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

func sortFields(extra ...string) map[string]bool {
	m := map[string]bool{"id": true, "created_at": true, "updated_at": true}
	for _, f := range extra {
		m[f] = true
	}
	return m
}

// Allowed sort fields per table
var (
	UserSortFields          = sortFields("username", "email", "role", "status", "last_login")
	VendorSortFields        = sortFields("vendor_name", "vendor_code", "item_type")
	ItemSortFields          = sortFields("item_name", "item_code", "item_type", "status", "latest_price")
	VendorItemSortFields    = sortFields("price")
	PurchaseOrderSortFields = sortFields("po_number", "order_date", "status", "total_amount")
	ASNSortFields           = sortFields("expected_delivery_date")
	LocationSortFields      = sortFields("location_name", "location_code", "location_type")
	StockRuleSortFields     = sortFields("rol", "max_stock")
	MRNSortFields           = sortFields("mrn_number", "receipt_date", "status", "total_invoice_value")
	BinningLogSortFields    = sortFields("transaction_date")
	NotificationSortFields  = sortFields("is_read", "type")
)

// paginate applies the whitelisted ordering and the page window of filter
func paginate(query *gorm.DB, filter shared.Filter, allowed map[string]bool, defaultField string) *gorm.DB {
	field := ValidateSortField(filter.OrderBy, allowed, defaultField)
	query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	return query
}

// search matches term case-insensitively against any of the columns
func search(query *gorm.DB, term string, columns ...string) *gorm.DB {
	term = strings.TrimSpace(term)
	if term == "" || len(columns) == 0 {
		return query
	}
	pattern := "%" + strings.ToLower(term) + "%"
	clauses := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, c := range columns {
		clauses[i] = "LOWER(" + c + ") LIKE ?"
		args[i] = pattern
	}
	return query.Where(strings.Join(clauses, " OR "), args...)
}

// dateRange restricts column to filter.From (inclusive) and filter.To (inclusive)
func dateRange(query *gorm.DB, column string, filter shared.Filter) *gorm.DB {
	if filter.From != nil {
		query = query.Where(column+" >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where(column+" <= ?", *filter.To)
	}
	return query
}

// equals applies the whitelisted equality filters of filter
func equals(query *gorm.DB, filter shared.Filter, allowed ...string) *gorm.DB {
	for _, key := range allowed {
		if v, ok := filter.Filters[key]; ok && v != nil && v != "" {
			query = query.Where(key+" = ?", v)
		}
	}
	return query
}
