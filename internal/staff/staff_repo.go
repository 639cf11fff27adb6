package staff

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=staff_repo.go -destination=mock/staff_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, st *Staff) error
	FindAll(ctx context.Context, includeInactive bool) ([]Staff, error)
	FindAllActive(ctx context.Context) ([]Staff, error)
	FindByDepartment(ctx context.Context, department string) ([]Staff, error)
	FindByID(ctx context.Context, id string) (*Staff, error)
	FindOptions(ctx context.Context) ([]Staff, error)
	Update(ctx context.Context, st *Staff) error
	SetActive(ctx context.Context, id string, active bool) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx mengikat seluruh query repo ke transaksi milik service.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	txDB := r.db.Session(&gorm.Session{NewDB: true, Context: context.Background()})
	txDB.Statement.ConnPool = tx
	return &repository{db: txDB}
}

func (r *repository) Create(ctx context.Context, st *Staff) error {
	return r.db.WithContext(ctx).Create(st).Error
}

func (r *repository) FindAll(ctx context.Context, includeInactive bool) ([]Staff, error) {
	var staff []Staff
	q := r.db.WithContext(ctx).Order("staff_number ASC")
	if !includeInactive {
		q = q.Where("active = ?", true)
	}
	err := q.Find(&staff).Error
	return staff, err
}

func (r *repository) FindAllActive(ctx context.Context) ([]Staff, error) {
	return r.FindAll(ctx, false)
}

func (r *repository) FindByDepartment(ctx context.Context, department string) ([]Staff, error) {
	var staff []Staff
	err := r.db.WithContext(ctx).
		Where("department = ?", department).
		Where("active = ?", true).
		Order("staff_number ASC").
		Find(&staff).Error
	return staff, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Staff, error) {
	var st Staff
	err := r.db.WithContext(ctx).First(&st, "id = ?", id).Error
	return &st, err
}

func (r *repository) FindOptions(ctx context.Context) ([]Staff, error) {
	var staff []Staff
	err := r.db.WithContext(ctx).
		Select("id", "staff_number", "name").
		Where("active = ?", true).
		Order("name ASC").
		Find(&staff).Error
	return staff, err
}

func (r *repository) Update(ctx context.Context, st *Staff) error {
	return r.db.WithContext(ctx).Save(st).Error
}

func (r *repository) SetActive(ctx context.Context, id string, active bool) error {
	res := r.db.WithContext(ctx).
		Model(&Staff{}).
		Where("id = ?", id).
		Update("active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
