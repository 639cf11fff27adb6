package staff

import (
	"time"

	"github.com/google/uuid"
)

// Staff is the pay-basis master record. Rows are never deleted; leavers are
// soft-deactivated so historical salary records keep a valid reference.
type Staff struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	StaffNumber int64     `gorm:"uniqueIndex:uq_staff_number;not null"`
	Name        string    `gorm:"type:varchar(120);not null"`
	Category    string    `gorm:"type:varchar(50);not null;default:'Teaching'"`
	Department  string    `gorm:"type:varchar(80);not null"`
	Designation string    `gorm:"type:varchar(80);not null"`

	BaseSalary  float64 `gorm:"not null"`
	Allowances  float64 `gorm:"not null;default:0"`
	EPFEligible bool    `gorm:"not null;default:false"`
	ESIEligible bool    `gorm:"not null;default:false"`

	DateJoined  time.Time `gorm:"type:date;not null"`
	BankAccount string    `gorm:"type:varchar(30);not null"`
	Aadhar      string    `gorm:"type:varchar(12);not null"`
	PFNumber    *string   `gorm:"type:varchar(30)"`
	ESINumber   *string   `gorm:"type:varchar(30)"`

	Active    bool `gorm:"not null;default:true;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Staff) TableName() string {
	return "staff"
}
