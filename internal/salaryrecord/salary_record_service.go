package salaryrecord

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"math"
	"time"

	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/paycalc"
	salaryrecorderrors "go-payroll/internal/salaryrecord/errors"
	"go-payroll/internal/shared/contextutil"
	"go-payroll/internal/staff"
	stafferrors "go-payroll/internal/staff/errors"
	"go-payroll/internal/taxslab"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=salary_record_service.go -destination=mock/salary_record_service_mock.go -package=mock
type Service interface {
	SetLOP(ctx context.Context, req SetLOPRequest) (SetLOPResponse, error)
	GetLOP(ctx context.Context, staffID string, month, year int) (LOPResponse, error)
	Finalize(ctx context.Context, req FinalizeRequest) (SalaryRecordResponse, error)
	Estimate(ctx context.Context, req EstimateRequest) (paycalc.Breakdown, error)
	GetAllFinalized(ctx context.Context, filter ListFinalizedFilter) ([]FinalizedRecordResponse, error)
	GeneratePayslip(ctx context.Context, recordID string) (SalaryRecordResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	staffRepo staff.Repository
	slabs     taxslab.Service
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	staffRepo staff.Repository,
	slabs taxslab.Service,
	logger ...*zap.Logger,
) Service {
	return NewServiceWithOutbox(db, repo, staffRepo, slabs, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	staffRepo staff.Repository,
	slabs taxslab.Service,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("salaryrecord.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salaryrecord.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		staffRepo: staffRepo,
		slabs:     slabs,
		outbox:    outboxRepo,
		logger:    l,
	}
}

// isFilingMonth reports whether professional tax is levied in the month.
// Filing happens twice a year, in February and August.
func isFilingMonth(month int) bool {
	return month == 2 || month == 8
}

// SetLOP records attendance loss for a batch of staff in one transaction.
// A missing record is created as a draft with a provisional gross; an
// existing one only has its lop_days overwritten. The calculator never
// runs here. Any failure rolls back the whole batch.
func (s *service) SetLOP(ctx context.Context, req SetLOPRequest) (SetLOPResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("set lop requested",
		zap.String("request_id", rid),
		zap.Int("month", req.Month),
		zap.Int("year", req.Year),
		zap.Int("entries", len(req.Entries)),
	)

	if len(req.Entries) == 0 {
		return SetLOPResponse{}, salaryrecorderrors.ErrEmptyBatch
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("set lop begin tx failed", zap.Error(err))
		return SetLOPResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	staffTx := s.staffRepo.WithTx(tx)

	resp := SetLOPResponse{Month: req.Month, Year: req.Year}
	for _, entry := range req.Entries {
		rec, err := qtx.FindByStaffAndPeriod(ctx, entry.StaffID, req.Month, req.Year)
		switch {
		case err == nil:
			rec.LOPDays = entry.LOPDays
			if err := qtx.Update(ctx, rec); err != nil {
				s.logger.Error("set lop update failed",
					zap.String("staff_id", entry.StaffID),
					zap.Error(err),
				)
				return SetLOPResponse{}, mapRepositoryError(err)
			}
			resp.Updated++
		case errors.Is(err, gorm.ErrRecordNotFound):
			st, err := staffTx.FindByID(ctx, entry.StaffID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return SetLOPResponse{}, stafferrors.ErrStaffNotFound
				}
				s.logger.Error("set lop fetch staff failed",
					zap.String("staff_id", entry.StaffID),
					zap.Error(err),
				)
				return SetLOPResponse{}, err
			}

			rec := &SalaryRecord{
				ID:          uuid.New(),
				StaffID:     st.ID,
				Month:       req.Month,
				Year:        req.Year,
				GrossSalary: st.BaseSalary + st.Allowances,
				LOPDays:     entry.LOPDays,
				Status:      StatusDraft,
			}
			if err := qtx.Create(ctx, rec); err != nil {
				s.logger.Error("set lop create draft failed",
					zap.String("staff_id", entry.StaffID),
					zap.Error(err),
				)
				return SetLOPResponse{}, mapRepositoryError(err)
			}
			resp.Created++
		default:
			s.logger.Error("set lop lookup failed",
				zap.String("staff_id", entry.StaffID),
				zap.Error(err),
			)
			return SetLOPResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("set lop commit failed", zap.Error(err))
		return SetLOPResponse{}, err
	}

	s.logger.Info("set lop success",
		zap.String("request_id", rid),
		zap.Int("created", resp.Created),
		zap.Int("updated", resp.Updated),
	)
	return resp, nil
}

// GetLOP is the prefill query for the attendance form. A missing draft is
// the default state, not an error, so it answers 0 LOP days.
func (s *service) GetLOP(ctx context.Context, staffID string, month, year int) (LOPResponse, error) {
	rec, err := s.repo.FindByStaffAndPeriod(ctx, staffID, month, year)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return LOPResponse{
			StaffID: staffID,
			Month:   month,
			Year:    year,
			LOPDays: 0,
		}, nil
	}
	if err != nil {
		return LOPResponse{}, mapRepositoryError(err)
	}

	return LOPResponse{
		StaffID: rec.StaffID.String(),
		Month:   rec.Month,
		Year:    rec.Year,
		LOPDays: rec.LOPDays,
		Status:  rec.Status,
	}, nil
}

// Finalize recomputes one staff member's pay for the period and writes the
// full breakdown, transitioning the record to FINALIZED. The persisted LOP
// days from the attendance phase are authoritative (0 when no draft
// exists); gross is taken fresh from the staff row so a mid-period base
// change is picked up. Re-running with identical inputs stores an
// identical record.
func (s *service) Finalize(ctx context.Context, req FinalizeRequest) (SalaryRecordResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("finalize requested",
		zap.String("request_id", rid),
		zap.String("staff_id", req.StaffID),
		zap.Int("month", req.Month),
		zap.Int("year", req.Year),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("finalize begin tx failed", zap.Error(err))
		return SalaryRecordResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	staffTx := s.staffRepo.WithTx(tx)

	st, err := staffTx.FindByID(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SalaryRecordResponse{}, stafferrors.ErrStaffNotFound
		}
		s.logger.Error("finalize fetch staff failed", zap.Error(err))
		return SalaryRecordResponse{}, err
	}

	var (
		rec     *SalaryRecord
		lopDays float64
	)
	rec, err = qtx.FindByStaffAndPeriod(ctx, req.StaffID, req.Month, req.Year)
	switch {
	case err == nil:
		lopDays = rec.LOPDays
	case errors.Is(err, gorm.ErrRecordNotFound):
		// No attendance draft: proceed with zero LOP.
		rec = nil
		lopDays = 0
	default:
		s.logger.Error("finalize lookup record failed", zap.Error(err))
		return SalaryRecordResponse{}, err
	}

	professionalTax := 0.0
	if isFilingMonth(req.Month) {
		// The slab is resolved against base salary, not the LOP-adjusted
		// gross.
		lookup, err := s.slabs.FindForSalary(ctx, st.BaseSalary)
		if err != nil {
			s.logger.Error("finalize slab lookup failed", zap.Error(err))
			return SalaryRecordResponse{}, err
		}
		professionalTax = lookup.TaxAmount
	}

	deductions := map[string]float64{
		"it":               req.Deductions.IT,
		"loan":             req.Deductions.Loan,
		"advance":          req.Deductions.Advance,
		"uniform":          req.Deductions.Uniform,
		"cd":               req.Deductions.CD,
		"hostel":           req.Deductions.Hostel,
		"suspense":         req.Deductions.Suspense,
		"misc":             req.Deductions.Misc,
		"professional_tax": professionalTax,
	}

	breakdown := paycalc.Compute(paycalc.Input{
		GrossSalary:    st.BaseSalary + st.Allowances,
		LOPDays:        lopDays,
		Deductions:     deductions,
		Reimbursements: req.Reimbursements,
		Month:          req.Month,
		Year:           req.Year,
		EPFEligible:    st.EPFEligible,
		ESIEligible:    st.ESIEligible,
	})

	if rec == nil {
		rec = &SalaryRecord{
			ID:      uuid.New(),
			StaffID: st.ID,
			Month:   req.Month,
			Year:    req.Year,
		}
		applyBreakdown(rec, breakdown, req.Deductions, professionalTax)
		if err := qtx.Create(ctx, rec); err != nil {
			s.logger.Error("finalize insert failed", zap.Error(err))
			return SalaryRecordResponse{}, mapRepositoryError(err)
		}
	} else {
		applyBreakdown(rec, breakdown, req.Deductions, professionalTax)
		if err := qtx.Update(ctx, rec); err != nil {
			s.logger.Error("finalize update failed", zap.Error(err))
			return SalaryRecordResponse{}, mapRepositoryError(err)
		}
	}

	if s.outbox != nil {
		event := events.SalaryRecordFinalizedEvent{
			EventType:  "salary_record_finalized",
			RequestID:  rid,
			RecordID:   rec.ID.String(),
			StaffID:    rec.StaffID.String(),
			Month:      rec.Month,
			Year:       rec.Year,
			NetSalary:  rec.NetSalary,
			OccurredAt: time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
			return SalaryRecordResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "salary_record",
			AggregateID:   rec.ID.String(),
			EventType:     event.EventType,
			Topic:         events.SalaryRecordFinalizedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("finalize outbox persist failed",
				zap.String("record_id", rec.ID.String()),
				zap.Error(err),
			)
			return SalaryRecordResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("finalize commit failed", zap.Error(err))
		return SalaryRecordResponse{}, err
	}

	s.logger.Info("finalize success",
		zap.String("request_id", rid),
		zap.String("record_id", rec.ID.String()),
		zap.Float64("net_salary", rec.NetSalary),
	)

	return mapToResponse(*rec), nil
}

// Estimate is a dry run over explicit inputs. Nothing is read or written.
func (s *service) Estimate(ctx context.Context, req EstimateRequest) (paycalc.Breakdown, error) {
	deductions := map[string]float64{
		"it":       req.Deductions.IT,
		"loan":     req.Deductions.Loan,
		"advance":  req.Deductions.Advance,
		"uniform":  req.Deductions.Uniform,
		"cd":       req.Deductions.CD,
		"hostel":   req.Deductions.Hostel,
		"suspense": req.Deductions.Suspense,
		"misc":     req.Deductions.Misc,
	}

	return paycalc.Compute(paycalc.Input{
		GrossSalary:    req.GrossSalary,
		LOPDays:        req.LOPDays,
		Deductions:     deductions,
		Reimbursements: req.Reimbursements,
		Month:          req.Month,
		Year:           req.Year,
		EPFEligible:    req.EPFEligible,
		ESIEligible:    req.ESIEligible,
	}), nil
}

func (s *service) GetAllFinalized(ctx context.Context, filter ListFinalizedFilter) ([]FinalizedRecordResponse, error) {
	rows, err := s.repo.ListFinalized(ctx, filter)
	if err != nil {
		s.logger.Error("list finalized failed", zap.Error(err))
		return nil, err
	}

	res := make([]FinalizedRecordResponse, len(rows))
	for i, row := range rows {
		res[i] = FinalizedRecordResponse{
			ID:              row.ID.String(),
			StaffID:         row.StaffID.String(),
			StaffNumber:     row.StaffNumber,
			StaffName:       row.StaffName,
			Department:      row.Department,
			Month:           row.Month,
			Year:            row.Year,
			GrossSalary:     row.GrossSalary,
			LOPDays:         row.LOPDays,
			TotalDeductions: row.TotalDeductions,
			NetSalary:       row.NetSalary,
			PayslipURL:      row.PayslipURL,
		}
	}
	return res, nil
}

func applyBreakdown(rec *SalaryRecord, b paycalc.Breakdown, d DeductionInputs, professionalTax float64) {
	rec.GrossSalary = b.GrossSalary
	rec.LOPDays = b.LOPDays
	rec.LOPAmount = b.LOPAmount
	rec.EPF = b.EPF
	rec.ESI = b.ESI
	rec.IT = d.IT
	rec.Loan = d.Loan
	rec.Advance = d.Advance
	rec.Uniform = d.Uniform
	rec.CD = d.CD
	rec.Hostel = d.Hostel
	rec.Suspense = d.Suspense
	rec.Misc = d.Misc
	rec.ProfessionalTax = professionalTax
	rec.TotalDeductions = b.TotalDeductions
	rec.TotalReimbursement = b.TotalReimbursements
	rec.NetSalary = b.NetSalary
	rec.Status = StatusFinalized
}

func ceilDays(v float64) float64 {
	return math.Ceil(v)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// mapToResponse rebuilds the full breakdown from the persisted fields so
// reads after the fact expose the same intermediates finalization did.
func mapToResponse(rec SalaryRecord) SalaryRecordResponse {
	daysInMonth := float64(paycalc.DaysInMonth(rec.Year, rec.Month))
	resp := SalaryRecordResponse{
		ID:      rec.ID.String(),
		StaffID: rec.StaffID.String(),
		Month:   rec.Month,
		Year:    rec.Year,
		Status:  rec.Status,
		Breakdown: paycalc.Breakdown{
			GrossSalary:            rec.GrossSalary,
			LOPDays:                rec.LOPDays,
			LOPAmount:              rec.LOPAmount,
			RoundedLOP:             int(ceilDays(rec.LOPDays)),
			AdjustedGross:          rec.GrossSalary - rec.LOPAmount,
			EPF:                    rec.EPF,
			ESI:                    rec.ESI,
			TotalDeductions:        rec.TotalDeductions,
			TotalReimbursements:    rec.TotalReimbursement,
			TotalManualDeductions:  rec.TotalDeductions - rec.EPF - rec.ESI,
			NetSalary:              rec.NetSalary,
			LOPAmountForEPFESI:     0,
			AdjustedGrossForEPFESI: 0,
		},
		Deductions: DeductionInputs{
			IT:       rec.IT,
			Loan:     rec.Loan,
			Advance:  rec.Advance,
			Uniform:  rec.Uniform,
			CD:       rec.CD,
			Hostel:   rec.Hostel,
			Suspense: rec.Suspense,
			Misc:     rec.Misc,
		},
		ProfessionalTax: rec.ProfessionalTax,
		PayslipURL:      rec.PayslipURL,
	}
	if daysInMonth > 0 {
		resp.Breakdown.LOPAmountForEPFESI = round2((ceilDays(rec.LOPDays) / daysInMonth) * rec.GrossSalary)
		resp.Breakdown.AdjustedGrossForEPFESI = round2(rec.GrossSalary - resp.Breakdown.LOPAmountForEPFESI)
	}
	if rec.PayslipGeneratedAt != nil {
		resp.PayslipGeneratedAt = rec.PayslipGeneratedAt.UTC().Format(time.RFC3339)
	}
	return resp
}
