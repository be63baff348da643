package inventory

import (
	"github.com/medstock/backend/internal/domain/shared"
)

// Location is a bin or storage place that holds stock
type Location struct {
	shared.BaseEntity
	LocationName string
	LocationType string
	LocationCode string
	QRBarcode    string
}

// NewLocation creates a location with a normalized code
func NewLocation(name, locationType, code, qr string) (*Location, error) {
	l := &Location{BaseEntity: shared.NewBaseEntity()}
	if err := l.Update(name, locationType, code, qr); err != nil {
		return nil, err
	}
	return l, nil
}

// Update replaces every field of the location
func (l *Location) Update(name, locationType, code, qr string) error {
	if name == "" {
		return shared.NewValidationError("location_name", "location_name is required")
	}
	if locationType == "" {
		return shared.NewValidationError("location_type", "location_type is required")
	}
	code = shared.NormalizeCode(code)
	if code == "" {
		return shared.NewValidationError("location_code", "location_code is required")
	}
	l.LocationName = name
	l.LocationType = locationType
	l.LocationCode = code
	l.QRBarcode = qr
	l.Touch()
	return nil
}
