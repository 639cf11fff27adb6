package salaryrecord

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusDraft     = "DRAFT"
	StatusFinalized = "FINALIZED"
)

// SalaryRecord is one staff member's pay for one calendar month. The
// (staff_id, month, year) triple is unique at the storage level; both
// lifecycle phases upsert against that key, never append.
type SalaryRecord struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	StaffID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_salary_record_period"`
	Month   int       `gorm:"not null;uniqueIndex:uq_salary_record_period"`
	Year    int       `gorm:"not null;uniqueIndex:uq_salary_record_period"`

	GrossSalary        float64 `gorm:"not null"`
	LOPDays            float64 `gorm:"column:lop_days;not null;default:0"`
	LOPAmount          float64 `gorm:"column:lop_amount;not null;default:0"`
	EPF                float64 `gorm:"column:epf;not null;default:0"`
	ESI                float64 `gorm:"column:esi;not null;default:0"`
	IT                 float64 `gorm:"column:it;not null;default:0"`
	Loan               float64 `gorm:"not null;default:0"`
	Advance            float64 `gorm:"not null;default:0"`
	Uniform            float64 `gorm:"not null;default:0"`
	CD                 float64 `gorm:"column:cd;not null;default:0"`
	Hostel             float64 `gorm:"not null;default:0"`
	Suspense           float64 `gorm:"not null;default:0"`
	Misc               float64 `gorm:"not null;default:0"`
	ProfessionalTax    float64 `gorm:"not null;default:0"`
	TotalDeductions    float64 `gorm:"not null;default:0"`
	TotalReimbursement float64 `gorm:"not null;default:0"`
	NetSalary          float64 `gorm:"not null;default:0"`

	// Status tracks the lifecycle explicitly; listings still treat
	// net_salary > 0 as the finalized marker for compatibility with the
	// export tooling.
	Status string `gorm:"type:varchar(10);not null;default:'DRAFT'"`

	PayslipURL         *string
	PayslipGeneratedAt *time.Time `gorm:"index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (SalaryRecord) TableName() string {
	return "salary_records"
}
