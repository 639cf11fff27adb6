package increment

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=increment_repo.go -destination=mock/increment_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, hist *IncrementHistory) error
	FindAll(ctx context.Context) ([]IncrementHistory, error)
	FindByStaff(ctx context.Context, staffID string) ([]IncrementHistory, error)
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

func (r *repository) Create(ctx context.Context, hist *IncrementHistory) error {
	return r.db.WithContext(ctx).Create(hist).Error
}

func (r *repository) FindAll(ctx context.Context) ([]IncrementHistory, error) {
	var hists []IncrementHistory
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&hists).Error
	return hists, err
}

func (r *repository) FindByStaff(ctx context.Context, staffID string) ([]IncrementHistory, error) {
	var hists []IncrementHistory
	err := r.db.WithContext(ctx).
		Where("staff_id = ?", staffID).
		Order("created_at DESC").
		Find(&hists).Error
	return hists, err
}
