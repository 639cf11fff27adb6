package increment

import (
	"time"

	"github.com/google/uuid"
)

const (
	ModeManual = "MANUAL"
	ModeBulk   = "BULK"
)

// IncrementHistory is an append-only audit row for a base salary change.
// Rows are never updated or deleted.
type IncrementHistory struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	StaffID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Mode           string    `gorm:"type:varchar(10);not null"`
	Department     string    `gorm:"type:varchar(80)"`
	Amount         float64   `gorm:"not null"`
	PreviousSalary float64   `gorm:"not null"`
	NewSalary      float64   `gorm:"not null"`
	EffectiveMonth int       `gorm:"not null"`
	EffectiveYear  int       `gorm:"not null"`
	AppliedBy      string    `gorm:"type:varchar(80)"`
	CreatedAt      time.Time
}

func (IncrementHistory) TableName() string {
	return "increment_history"
}
