package taxslab

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=tax_slab_service.go -destination=mock/tax_slab_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateTaxSlabRequest) (TaxSlabResponse, error)
	GetAll(ctx context.Context) ([]TaxSlabResponse, error)
	GetByID(ctx context.Context, id string) (TaxSlabResponse, error)
	Update(ctx context.Context, id string, req UpdateTaxSlabRequest) (TaxSlabResponse, error)
	Delete(ctx context.Context, id string) error
	FindForSalary(ctx context.Context, salary float64) (SlabLookupResponse, error)
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(
	ctx context.Context,
	req CreateTaxSlabRequest,
) (TaxSlabResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TaxSlabResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	slab := &TaxSlab{
		ID:        uuid.New(),
		RangeFrom: req.RangeFrom,
		RangeTo:   req.RangeTo,
		TaxAmount: req.TaxAmount,
	}

	if err := qtx.Create(ctx, slab); err != nil {
		return TaxSlabResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return TaxSlabResponse{}, err
	}

	return mapToResponse(*slab), nil
}

func (s *service) GetAll(ctx context.Context) ([]TaxSlabResponse, error) {
	slabs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	return mapToListResponse(slabs), nil
}

func (s *service) GetByID(ctx context.Context, id string) (TaxSlabResponse, error) {
	slab, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return TaxSlabResponse{}, err
	}

	return mapToResponse(*slab), nil
}

func (s *service) Update(
	ctx context.Context,
	id string,
	req UpdateTaxSlabRequest,
) (TaxSlabResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TaxSlabResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	slab, err := qtx.FindByID(ctx, id)
	if err != nil {
		return TaxSlabResponse{}, err
	}

	slab.RangeFrom = req.RangeFrom
	slab.RangeTo = req.RangeTo
	slab.TaxAmount = req.TaxAmount

	if err := qtx.Update(ctx, slab); err != nil {
		return TaxSlabResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return TaxSlabResponse{}, err
	}

	return mapToResponse(*slab), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}

	return tx.Commit()
}

// FindForSalary resolves the professional tax owed for a salary. A salary
// outside every slab is not an error: tax is simply zero.
func (s *service) FindForSalary(ctx context.Context, salary float64) (SlabLookupResponse, error) {
	slab, err := s.repo.FindForSalary(ctx, salary)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SlabLookupResponse{Salary: salary, TaxAmount: 0, Matched: false}, nil
		}
		return SlabLookupResponse{}, err
	}

	return SlabLookupResponse{Salary: salary, TaxAmount: slab.TaxAmount, Matched: true}, nil
}

func mapToResponse(slab TaxSlab) TaxSlabResponse {
	return TaxSlabResponse{
		ID:        slab.ID.String(),
		RangeFrom: slab.RangeFrom,
		RangeTo:   slab.RangeTo,
		TaxAmount: slab.TaxAmount,
	}
}

func mapToListResponse(slabs []TaxSlab) []TaxSlabResponse {
	res := make([]TaxSlabResponse, len(slabs))
	for i, slab := range slabs {
		res[i] = mapToResponse(slab)
	}
	return res
}
