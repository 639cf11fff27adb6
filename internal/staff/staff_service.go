package staff

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"go-payroll/internal/shared/contextutil"
	"go-payroll/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const StaffOptionsKey = "staff:options"

// staffNumberOffset keeps generated numbers four digits from the start so
// they line up with the legacy register.
const staffNumberOffset = 1000

//go:generate mockgen -source=staff_service.go -destination=mock/staff_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateStaffRequest) (StaffResponse, error)
	GetAll(ctx context.Context, includeInactive bool) ([]StaffResponse, error)
	GetOptions(ctx context.Context) ([]StaffOptionResponse, error)
	GetByID(ctx context.Context, id string) (StaffResponse, error)
	Update(ctx context.Context, id string, req UpdateStaffRequest) (StaffResponse, error)
	Deactivate(ctx context.Context, id string) error
	Reactivate(ctx context.Context, id string) error
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	rdb     *redis.Client
	sf      *singleflight.Group
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, counter counter.Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("staff.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("staff.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counter,
		rdb:     rdb,
		sf:      &singleflight.Group{},
		logger:  l,
	}
}

func (s *service) Create(
	ctx context.Context,
	req CreateStaffRequest,
) (StaffResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create staff requested",
		zap.String("request_id", rid), // Propagasi ke logs
		zap.String("name", req.Name),
		zap.String("department", req.Department),
	)

	dateJoined, err := time.Parse("2006-01-02", req.DateJoined)
	if err != nil {
		s.logger.Warn("create staff invalid date_joined",
			zap.String("date_joined", req.DateJoined),
			zap.Error(err),
		)
		return StaffResponse{}, errors.New("invalid date_joined format, expected YYYY-MM-DD")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create staff begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return StaffResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	nextVal, err := s.counter.GetNextValue(ctx, "staff_number")
	if err != nil {
		s.logger.Error("create staff generate number failed", zap.Error(err))
		return StaffResponse{}, err
	}

	st := &Staff{
		ID:          uuid.New(),
		StaffNumber: staffNumberOffset + nextVal,
		Name:        req.Name,
		Category:    req.Category,
		Department:  req.Department,
		Designation: req.Designation,
		BaseSalary:  req.BaseSalary,
		Allowances:  req.Allowances,
		EPFEligible: req.EPFEligible,
		ESIEligible: req.ESIEligible,
		DateJoined:  dateJoined,
		BankAccount: req.BankAccount,
		Aadhar:      req.Aadhar,
		PFNumber:    req.PFNumber,
		ESINumber:   req.ESINumber,
		Active:      true,
	}

	if err := qtx.Create(ctx, st); err != nil {
		s.logger.Error("create staff persist failed", zap.Error(err))
		return StaffResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return StaffResponse{}, err
	}

	s.invalidateOptionsCache(ctx)

	s.logger.Info("create staff success",
		zap.String("request_id", rid),
		zap.String("staff_id", st.ID.String()),
		zap.Int64("staff_number", st.StaffNumber),
	)

	return mapToResponse(*st), nil
}

func (s *service) GetAll(ctx context.Context, includeInactive bool) ([]StaffResponse, error) {
	s.logger.Debug("get all staff requested", zap.Bool("include_inactive", includeInactive))
	staff, err := s.repo.FindAll(ctx, includeInactive)
	if err != nil {
		s.logger.Error("get all staff failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(staff), nil
}

func (s *service) GetOptions(ctx context.Context) ([]StaffOptionResponse, error) {
	// 1. Cek Redis
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, StaffOptionsKey).Result(); err == nil {
			var resp []StaffOptionResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// 2. Singleflight untuk handle traffic tinggi saat Accounts buka form absensi
	v, err, _ := s.sf.Do(StaffOptionsKey, func() (interface{}, error) {
		staff, err := s.repo.FindOptions(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := make([]StaffOptionResponse, len(staff))
		for i, st := range staff {
			resp[i] = StaffOptionResponse{
				ID:          st.ID.String(),
				StaffNumber: st.StaffNumber,
				Name:        st.Name,
			}
		}

		// 3. Simpan ke Redis (TTL 1 jam cukup karena data master)
		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, StaffOptionsKey, jsonData, 1*time.Hour)
			}
		}

		return resp, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]StaffOptionResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (StaffResponse, error) {
	s.logger.Debug("get staff by id requested", zap.String("staff_id", id))
	st, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("get staff by id failed", zap.Error(err))
		return StaffResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*st), nil
}

// Update never touches base_salary: revisions to the pay basis go through
// the increment module so every change leaves a history row.
func (s *service) Update(
	ctx context.Context,
	id string,
	req UpdateStaffRequest,
) (StaffResponse, error) {
	s.logger.Debug("update staff requested", zap.String("staff_id", id))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update staff begin tx failed", zap.Error(err))
		return StaffResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	st, err := qtx.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("update staff fetch existing failed", zap.Error(err))
		return StaffResponse{}, mapRepositoryError(err)
	}

	st.Name = req.Name
	st.Category = req.Category
	st.Department = req.Department
	st.Designation = req.Designation
	st.Allowances = req.Allowances
	st.EPFEligible = req.EPFEligible
	st.ESIEligible = req.ESIEligible
	st.BankAccount = req.BankAccount
	st.PFNumber = req.PFNumber
	st.ESINumber = req.ESINumber

	if err := qtx.Update(ctx, st); err != nil {
		s.logger.Error("update staff persist failed", zap.Error(err))
		return StaffResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update staff commit failed", zap.Error(err))
		return StaffResponse{}, err
	}

	s.invalidateOptionsCache(ctx)

	s.logger.Info("update staff success", zap.String("staff_id", id))

	return mapToResponse(*st), nil
}

func (s *service) Deactivate(ctx context.Context, id string) error {
	return s.setActive(ctx, id, false)
}

func (s *service) Reactivate(ctx context.Context, id string) error {
	return s.setActive(ctx, id, true)
}

func (s *service) setActive(ctx context.Context, id string, active bool) error {
	s.logger.Debug("set staff active requested",
		zap.String("staff_id", id),
		zap.Bool("active", active),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("set staff active begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.SetActive(ctx, id, active); err != nil {
		s.logger.Error("set staff active failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("set staff active commit failed", zap.Error(err))
		return err
	}

	s.invalidateOptionsCache(ctx)

	s.logger.Info("set staff active success",
		zap.String("staff_id", id),
		zap.Bool("active", active),
	)
	return nil
}

func (s *service) invalidateOptionsCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, StaffOptionsKey).Err(); err != nil {
		s.logger.Error("failed to invalidate staff options cache",
			zap.Error(err),
			zap.String("key", StaffOptionsKey),
		)
	}
}

func mapToResponse(st Staff) StaffResponse {
	return StaffResponse{
		ID:          st.ID.String(),
		StaffNumber: st.StaffNumber,
		Name:        st.Name,
		Category:    st.Category,
		Department:  st.Department,
		Designation: st.Designation,
		BaseSalary:  st.BaseSalary,
		Allowances:  st.Allowances,
		EPFEligible: st.EPFEligible,
		ESIEligible: st.ESIEligible,
		DateJoined:  st.DateJoined.Format("2006-01-02"),
		BankAccount: st.BankAccount,
		Aadhar:      st.Aadhar,
		PFNumber:    st.PFNumber,
		ESINumber:   st.ESINumber,
		Active:      st.Active,
	}
}

func mapToListResponse(staff []Staff) []StaffResponse {
	res := make([]StaffResponse, len(staff))
	for i, st := range staff {
		res[i] = mapToResponse(st)
	}
	return res
}
