package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/medstock/backend/internal/domain/shared"
)

// ItemRepository defines persistence operations for items.
// Reads never return soft-deleted items.
type ItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)
	FindByCode(ctx context.Context, code string) (*Item, error)
	// FindAll lists items; filters: status, item_type; Search matches name or code
	FindAll(ctx context.Context, filter shared.Filter) ([]Item, int64, error)
	Save(ctx context.Context, item *Item) error
	ExistsByCode(ctx context.Context, code string, excludeID *uuid.UUID) (bool, error)
}
