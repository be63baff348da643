package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/medstock/backend/internal/domain/shared"
)

// VendorRepository defines persistence operations for vendors.
// Reads never return soft-deleted vendors.
type VendorRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Vendor, error)
	FindByCode(ctx context.Context, code string) (*Vendor, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Vendor, int64, error)
	Save(ctx context.Context, vendor *Vendor) error
	ExistsByCode(ctx context.Context, code string, excludeID *uuid.UUID) (bool, error)
}

// VendorItemRepository defines persistence operations for vendor price links
type VendorItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*VendorItem, error)
	// FindAll lists links; filters: vendor_id, item_id
	FindAll(ctx context.Context, filter shared.Filter) ([]VendorItem, int64, error)
	Save(ctx context.Context, link *VendorItem) error
	Delete(ctx context.Context, id uuid.UUID) error
}
