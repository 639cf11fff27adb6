package salaryrecord

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// FinalizedRow is the staff-joined projection the export listing uses.
type FinalizedRow struct {
	SalaryRecord
	StaffNumber int64
	StaffName   string
	Department  string
}

//go:generate mockgen -source=salary_record_repo.go -destination=mock/salary_record_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, rec *SalaryRecord) error
	Update(ctx context.Context, rec *SalaryRecord) error
	FindByID(ctx context.Context, id string) (*SalaryRecord, error)
	FindByStaffAndPeriod(ctx context.Context, staffID string, month, year int) (*SalaryRecord, error)
	ListFinalized(ctx context.Context, filter ListFinalizedFilter) ([]FinalizedRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx mengikat seluruh query repo ke transaksi milik service, supaya
// batch write ikut commit/rollback bersama tx tersebut.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	txDB := r.db.Session(&gorm.Session{NewDB: true, Context: context.Background()})
	txDB.Statement.ConnPool = tx
	return &repository{db: txDB}
}

func (r *repository) Create(ctx context.Context, rec *SalaryRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *repository) Update(ctx context.Context, rec *SalaryRecord) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*SalaryRecord, error) {
	var rec SalaryRecord
	err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	return &rec, err
}

func (r *repository) FindByStaffAndPeriod(ctx context.Context, staffID string, month, year int) (*SalaryRecord, error) {
	var rec SalaryRecord
	err := r.db.WithContext(ctx).
		Where("staff_id = ?", staffID).
		Where("month = ?", month).
		Where("year = ?", year).
		First(&rec).Error
	return &rec, err
}

// ListFinalized returns finalized records joined with the staff master.
// net_salary > 0 stays the external completion marker, so drafts never
// appear here.
func (r *repository) ListFinalized(ctx context.Context, filter ListFinalizedFilter) ([]FinalizedRow, error) {
	var rows []FinalizedRow
	q := r.db.WithContext(ctx).
		Table("salary_records").
		Select("salary_records.*, staff.staff_number AS staff_number, staff.name AS staff_name, staff.department AS department").
		Joins("JOIN staff ON staff.id = salary_records.staff_id").
		Where("salary_records.net_salary > 0")
	if filter.Month != nil {
		q = q.Where("salary_records.month = ?", *filter.Month)
	}
	if filter.Year != nil {
		q = q.Where("salary_records.year = ?", *filter.Year)
	}
	err := q.
		Order("salary_records.year DESC, salary_records.month DESC, staff.staff_number ASC").
		Scan(&rows).Error
	return rows, err
}
