package taxslab

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=tax_slab_repo.go -destination=mock/tax_slab_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, slab *TaxSlab) error
	FindAll(ctx context.Context) ([]TaxSlab, error)
	FindByID(ctx context.Context, id string) (*TaxSlab, error)
	FindForSalary(ctx context.Context, salary float64) (*TaxSlab, error)
	Update(ctx context.Context, slab *TaxSlab) error
	Delete(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, slab *TaxSlab) error {
	return r.db.WithContext(ctx).Create(slab).Error
}

func (r *repository) FindAll(ctx context.Context) ([]TaxSlab, error) {
	var slabs []TaxSlab
	err := r.db.WithContext(ctx).
		Order("range_from ASC").
		Find(&slabs).Error
	return slabs, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*TaxSlab, error) {
	var slab TaxSlab
	err := r.db.WithContext(ctx).First(&slab, "id = ?", id).Error
	return &slab, err
}

// FindForSalary returns the first slab whose inclusive range contains the
// salary, ordered by range_from ascending. gorm.ErrRecordNotFound when no
// slab matches.
func (r *repository) FindForSalary(ctx context.Context, salary float64) (*TaxSlab, error) {
	var slab TaxSlab
	err := r.db.WithContext(ctx).
		Where("range_from <= ?", salary).
		Where("range_to >= ?", salary).
		Order("range_from ASC").
		First(&slab).Error
	return &slab, err
}

func (r *repository) Update(ctx context.Context, slab *TaxSlab) error {
	return r.db.WithContext(ctx).Save(slab).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&TaxSlab{}, "id = ?", id).Error
}
