package persistence

import (
	"github.com/medstock/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// listPage counts the rows matched by scope and loads the requested page.
// scope must return a fresh query on each call.
func listPage[M any](scope func() *gorm.DB, filter shared.Filter, allowed map[string]bool, defaultField, resource string) ([]M, int64, error) {
	var total int64
	if err := scope().Count(&total).Error; err != nil {
		return nil, 0, translateError(err, resource)
	}
	var rows []M
	if total == 0 {
		return rows, 0, nil
	}
	if err := paginate(scope(), filter, allowed, defaultField).Find(&rows).Error; err != nil {
		return nil, 0, translateError(err, resource)
	}
	return rows, total, nil
}
