package increment

import (
	"context"
	"database/sql"
	"errors"

	incrementerrors "go-payroll/internal/increment/errors"
	"go-payroll/internal/shared/contextutil"
	stafferrors "go-payroll/internal/staff/errors"

	"go-payroll/internal/staff"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=increment_service.go -destination=mock/increment_service_mock.go -package=mock
type Service interface {
	ApplyIncrement(ctx context.Context, req ApplyIncrementRequest) (IncrementHistoryResponse, error)
	ApplyBulkIncrement(ctx context.Context, req ApplyBulkIncrementRequest) (BulkIncrementResponse, error)
	GetHistory(ctx context.Context, staffID string) ([]IncrementHistoryResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	staffRepo staff.Repository
	logger    *zap.Logger
}

func NewService(db *sql.DB, repo Repository, staffRepo staff.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("increment.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("increment.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		staffRepo: staffRepo,
		logger:    l,
	}
}

// ApplyIncrement raises one staff member's base salary and appends a
// history row. Existing salary records are never touched; only future
// finalizations see the new base.
func (s *service) ApplyIncrement(
	ctx context.Context,
	req ApplyIncrementRequest,
) (IncrementHistoryResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("apply increment requested",
		zap.String("request_id", rid),
		zap.String("staff_id", req.StaffID),
		zap.Float64("amount", req.Amount),
	)

	if req.Amount <= 0 {
		return IncrementHistoryResponse{}, incrementerrors.ErrNonPositiveAmount
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("apply increment begin tx failed", zap.Error(err))
		return IncrementHistoryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	staffTx := s.staffRepo.WithTx(tx)

	st, err := staffTx.FindByID(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return IncrementHistoryResponse{}, stafferrors.ErrStaffNotFound
		}
		s.logger.Error("apply increment fetch staff failed", zap.Error(err))
		return IncrementHistoryResponse{}, err
	}

	previous := st.BaseSalary
	st.BaseSalary += req.Amount
	if err := staffTx.Update(ctx, st); err != nil {
		s.logger.Error("apply increment update staff failed", zap.Error(err))
		return IncrementHistoryResponse{}, err
	}

	hist := &IncrementHistory{
		ID:             uuid.New(),
		StaffID:        st.ID,
		Mode:           ModeManual,
		Amount:         req.Amount,
		PreviousSalary: previous,
		NewSalary:      st.BaseSalary,
		EffectiveMonth: req.EffectiveMonth,
		EffectiveYear:  req.EffectiveYear,
		AppliedBy:      contextutil.GetUserID(ctx),
	}
	if err := qtx.Create(ctx, hist); err != nil {
		s.logger.Error("apply increment persist history failed", zap.Error(err))
		return IncrementHistoryResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("apply increment commit failed", zap.Error(err))
		return IncrementHistoryResponse{}, err
	}

	s.logger.Info("apply increment success",
		zap.String("request_id", rid),
		zap.String("staff_id", req.StaffID),
		zap.Float64("new_salary", st.BaseSalary),
	)

	return mapToResponse(*hist), nil
}

// ApplyBulkIncrement raises every active staff member of a department by
// the same amount in one transaction. Any failure rolls back the whole
// batch.
func (s *service) ApplyBulkIncrement(
	ctx context.Context,
	req ApplyBulkIncrementRequest,
) (BulkIncrementResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("apply bulk increment requested",
		zap.String("request_id", rid),
		zap.String("department", req.Department),
		zap.Float64("amount", req.Amount),
	)

	if req.Amount <= 0 {
		return BulkIncrementResponse{}, incrementerrors.ErrNonPositiveAmount
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("apply bulk increment begin tx failed", zap.Error(err))
		return BulkIncrementResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	staffTx := s.staffRepo.WithTx(tx)

	members, err := staffTx.FindByDepartment(ctx, req.Department)
	if err != nil {
		s.logger.Error("apply bulk increment fetch staff failed", zap.Error(err))
		return BulkIncrementResponse{}, err
	}
	if len(members) == 0 {
		return BulkIncrementResponse{}, incrementerrors.ErrNoStaffInDepartment
	}

	appliedBy := contextutil.GetUserID(ctx)
	for i := range members {
		st := &members[i]
		previous := st.BaseSalary
		st.BaseSalary += req.Amount
		if err := staffTx.Update(ctx, st); err != nil {
			s.logger.Error("apply bulk increment update staff failed",
				zap.String("staff_id", st.ID.String()),
				zap.Error(err),
			)
			return BulkIncrementResponse{}, err
		}

		hist := &IncrementHistory{
			ID:             uuid.New(),
			StaffID:        st.ID,
			Mode:           ModeBulk,
			Department:     req.Department,
			Amount:         req.Amount,
			PreviousSalary: previous,
			NewSalary:      st.BaseSalary,
			EffectiveMonth: req.EffectiveMonth,
			EffectiveYear:  req.EffectiveYear,
			AppliedBy:      appliedBy,
		}
		if err := qtx.Create(ctx, hist); err != nil {
			s.logger.Error("apply bulk increment persist history failed",
				zap.String("staff_id", st.ID.String()),
				zap.Error(err),
			)
			return BulkIncrementResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("apply bulk increment commit failed", zap.Error(err))
		return BulkIncrementResponse{}, err
	}

	s.logger.Info("apply bulk increment success",
		zap.String("request_id", rid),
		zap.String("department", req.Department),
		zap.Int("applied", len(members)),
	)

	return BulkIncrementResponse{
		Department: req.Department,
		Amount:     req.Amount,
		Applied:    len(members),
	}, nil
}

func (s *service) GetHistory(ctx context.Context, staffID string) ([]IncrementHistoryResponse, error) {
	var (
		hists []IncrementHistory
		err   error
	)
	if staffID == "" {
		hists, err = s.repo.FindAll(ctx)
	} else {
		hists, err = s.repo.FindByStaff(ctx, staffID)
	}
	if err != nil {
		s.logger.Error("get increment history failed", zap.Error(err))
		return nil, err
	}

	res := make([]IncrementHistoryResponse, len(hists))
	for i, h := range hists {
		res[i] = mapToResponse(h)
	}
	return res, nil
}

func mapToResponse(h IncrementHistory) IncrementHistoryResponse {
	return IncrementHistoryResponse{
		ID:             h.ID.String(),
		StaffID:        h.StaffID.String(),
		Mode:           h.Mode,
		Department:     h.Department,
		Amount:         h.Amount,
		PreviousSalary: h.PreviousSalary,
		NewSalary:      h.NewSalary,
		EffectiveMonth: h.EffectiveMonth,
		EffectiveYear:  h.EffectiveYear,
		AppliedBy:      h.AppliedBy,
		CreatedAt:      h.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
