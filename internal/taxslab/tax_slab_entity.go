package taxslab

import (
	"time"

	"github.com/google/uuid"
)

// TaxSlab maps an inclusive salary range to a flat professional tax amount.
// Overlap consistency across slabs is maintained by the accounts tooling,
// not checked here; lookup resolves ambiguity by taking the first match in
// ascending range_from order.
type TaxSlab struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	RangeFrom float64   `gorm:"not null"`
	RangeTo   float64   `gorm:"not null"`
	TaxAmount float64   `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (TaxSlab) TableName() string {
	return "tax_slabs"
}
