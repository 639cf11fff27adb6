package salaryrecord_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/salaryrecord"
	salaryrecorderrors "go-payroll/internal/salaryrecord/errors"
	"go-payroll/internal/staff"
	stafferrors "go-payroll/internal/staff/errors"
	"go-payroll/internal/taxslab"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeSalaryRecordRepository struct {
	withTxFn               func(tx *sql.Tx) salaryrecord.Repository
	createFn               func(ctx context.Context, rec *salaryrecord.SalaryRecord) error
	updateFn               func(ctx context.Context, rec *salaryrecord.SalaryRecord) error
	findByIDFn             func(ctx context.Context, id string) (*salaryrecord.SalaryRecord, error)
	findByStaffAndPeriodFn func(ctx context.Context, staffID string, month, year int) (*salaryrecord.SalaryRecord, error)
	listFinalizedFn        func(ctx context.Context, filter salaryrecord.ListFinalizedFilter) ([]salaryrecord.FinalizedRow, error)
}

func (f *fakeSalaryRecordRepository) WithTx(tx *sql.Tx) salaryrecord.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeSalaryRecordRepository) Create(ctx context.Context, rec *salaryrecord.SalaryRecord) error {
	if f.createFn != nil {
		return f.createFn(ctx, rec)
	}
	return nil
}

func (f *fakeSalaryRecordRepository) Update(ctx context.Context, rec *salaryrecord.SalaryRecord) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, rec)
	}
	return nil
}

func (f *fakeSalaryRecordRepository) FindByID(ctx context.Context, id string) (*salaryrecord.SalaryRecord, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSalaryRecordRepository) FindByStaffAndPeriod(ctx context.Context, staffID string, month, year int) (*salaryrecord.SalaryRecord, error) {
	if f.findByStaffAndPeriodFn != nil {
		return f.findByStaffAndPeriodFn(ctx, staffID, month, year)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSalaryRecordRepository) ListFinalized(ctx context.Context, filter salaryrecord.ListFinalizedFilter) ([]salaryrecord.FinalizedRow, error) {
	if f.listFinalizedFn != nil {
		return f.listFinalizedFn(ctx, filter)
	}
	return nil, nil
}

type fakeStaffRepository struct {
	findByIDFn func(ctx context.Context, id string) (*staff.Staff, error)
}

func (f *fakeStaffRepository) WithTx(tx *sql.Tx) staff.Repository { return f }

func (f *fakeStaffRepository) Create(ctx context.Context, st *staff.Staff) error { return nil }

func (f *fakeStaffRepository) FindAll(ctx context.Context, includeInactive bool) ([]staff.Staff, error) {
	return nil, nil
}

func (f *fakeStaffRepository) FindAllActive(ctx context.Context) ([]staff.Staff, error) {
	return nil, nil
}

func (f *fakeStaffRepository) FindByDepartment(ctx context.Context, department string) ([]staff.Staff, error) {
	return nil, nil
}

func (f *fakeStaffRepository) FindByID(ctx context.Context, id string) (*staff.Staff, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStaffRepository) FindOptions(ctx context.Context) ([]staff.Staff, error) {
	return nil, nil
}

func (f *fakeStaffRepository) Update(ctx context.Context, st *staff.Staff) error { return nil }

func (f *fakeStaffRepository) SetActive(ctx context.Context, id string, active bool) error {
	return nil
}

type fakeTaxSlabService struct {
	findForSalaryFn func(ctx context.Context, salary float64) (taxslab.SlabLookupResponse, error)
}

func (f *fakeTaxSlabService) Create(ctx context.Context, req taxslab.CreateTaxSlabRequest) (taxslab.TaxSlabResponse, error) {
	return taxslab.TaxSlabResponse{}, nil
}

func (f *fakeTaxSlabService) GetAll(ctx context.Context) ([]taxslab.TaxSlabResponse, error) {
	return nil, nil
}

func (f *fakeTaxSlabService) GetByID(ctx context.Context, id string) (taxslab.TaxSlabResponse, error) {
	return taxslab.TaxSlabResponse{}, nil
}

func (f *fakeTaxSlabService) Update(ctx context.Context, id string, req taxslab.UpdateTaxSlabRequest) (taxslab.TaxSlabResponse, error) {
	return taxslab.TaxSlabResponse{}, nil
}

func (f *fakeTaxSlabService) Delete(ctx context.Context, id string) error { return nil }

func (f *fakeTaxSlabService) FindForSalary(ctx context.Context, salary float64) (taxslab.SlabLookupResponse, error) {
	if f.findForSalaryFn != nil {
		return f.findForSalaryFn(ctx, salary)
	}
	return taxslab.SlabLookupResponse{Salary: salary}, nil
}

type fakeOutboxRepository struct {
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type serviceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   salaryrecord.Service
	repo      *fakeSalaryRecordRepository
	staffRepo *fakeStaffRepository
	slabs     *fakeTaxSlabService
	outbox    *fakeOutboxRepository
}

func setupServiceTest(t *testing.T) *serviceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeSalaryRecordRepository{}
	staffRepo := &fakeStaffRepository{}
	slabs := &fakeTaxSlabService{}
	outbox := &fakeOutboxRepository{}
	svc := salaryrecord.NewServiceWithOutbox(db, repo, staffRepo, slabs, outbox)

	return &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   svc,
		repo:      repo,
		staffRepo: staffRepo,
		slabs:     slabs,
		outbox:    outbox,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestSalaryRecordService_SetLOP(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()
	staffID := uuid.New()

	t.Run("creates draft with provisional gross and zero net", func(t *testing.T) {
		req := salaryrecord.SetLOPRequest{
			Month: 4,
			Year:  2026,
			Entries: []salaryrecord.LOPEntry{
				{StaffID: staffID.String(), LOPDays: 2},
			},
		}

		expectTx(t, deps.sqlMock, true)

		deps.repo.findByStaffAndPeriodFn = func(ctx context.Context, id string, month, year int) (*salaryrecord.SalaryRecord, error) {
			return nil, gorm.ErrRecordNotFound
		}
		deps.staffRepo.findByIDFn = func(ctx context.Context, id string) (*staff.Staff, error) {
			return &staff.Staff{ID: staffID, BaseSalary: 28000, Allowances: 2000, Active: true}, nil
		}
		deps.repo.createFn = func(ctx context.Context, rec *salaryrecord.SalaryRecord) error {
			assert.Equal(t, staffID, rec.StaffID)
			assert.Equal(t, float64(30000), rec.GrossSalary)
			assert.Equal(t, float64(2), rec.LOPDays)
			assert.Equal(t, float64(0), rec.NetSalary)
			assert.Equal(t, salaryrecord.StatusDraft, rec.Status)
			return nil
		}

		resp, err := deps.service.SetLOP(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, 1, resp.Created)
		assert.Equal(t, 0, resp.Updated)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("existing record gets only lop_days overwritten", func(t *testing.T) {
		req := salaryrecord.SetLOPRequest{
			Month: 4,
			Year:  2026,
			Entries: []salaryrecord.LOPEntry{
				{StaffID: staffID.String(), LOPDays: 3.5},
			},
		}

		expectTx(t, deps.sqlMock, true)

		existing := &salaryrecord.SalaryRecord{
			ID:          uuid.New(),
			StaffID:     staffID,
			Month:       4,
			Year:        2026,
			GrossSalary: 30000,
			LOPDays:     1,
			NetSalary:   25438,
			Status:      salaryrecord.StatusFinalized,
		}
		deps.repo.findByStaffAndPeriodFn = func(ctx context.Context, id string, month, year int) (*salaryrecord.SalaryRecord, error) {
			return existing, nil
		}
		deps.repo.updateFn = func(ctx context.Context, rec *salaryrecord.SalaryRecord) error {
			assert.Equal(t, existing.ID, rec.ID)
			assert.Equal(t, float64(3.5), rec.LOPDays)
			assert.Equal(t, float64(25438), rec.NetSalary)
			assert.Equal(t, float64(30000), rec.GrossSalary)
			return nil
		}

		resp, err := deps.service.SetLOP(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, 0, resp.Created)
		assert.Equal(t, 1, resp.Updated)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("any failure rolls back the whole batch", func(t *testing.T) {
		other := uuid.New()
		req := salaryrecord.SetLOPRequest{
			Month: 4,
			Year:  2026,
			Entries: []salaryrecord.LOPEntry{
				{StaffID: staffID.String(), LOPDays: 1},
				{StaffID: other.String(), LOPDays: 2},
			},
		}

		expectTx(t, deps.sqlMock, false)

		deps.repo.findByStaffAndPeriodFn = func(ctx context.Context, id string, month, year int) (*salaryrecord.SalaryRecord, error) {
			return nil, gorm.ErrRecordNotFound
		}
		deps.staffRepo.findByIDFn = func(ctx context.Context, id string) (*staff.Staff, error) {
			if id == other.String() {
				return nil, gorm.ErrRecordNotFound
			}
			return &staff.Staff{ID: staffID, BaseSalary: 28000, Allowances: 2000, Active: true}, nil
		}
		created := 0
		deps.repo.createFn = func(ctx context.Context, rec *salaryrecord.SalaryRecord) error {
			created++
			return nil
		}

		_, err := deps.service.SetLOP(ctx, req)

		assert.ErrorIs(t, err, stafferrors.ErrStaffNotFound)
		assert.Equal(t, 1, created)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("empty batch", func(t *testing.T) {
		_, err := deps.service.SetLOP(ctx, salaryrecord.SetLOPRequest{Month: 4, Year: 2026})

		assert.ErrorIs(t, err, salaryrecorderrors.ErrEmptyBatch)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestSalaryRecordService_Finalize(t *testing.T) {
	ctx := context.Background()
	staffID := uuid.New()

	t.Run("recovers persisted lop and computes full breakdown", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.staffRepo.findByIDFn = func(ctx context.Context, id string) (*staff.Staff, error) {
			return &staff.Staff{
				ID:          staffID,
				BaseSalary:  28000,
				Allowances:  2000,
				EPFEligible: true,
				ESIEligible: true,
				Active:      true,
			}, nil
		}

		draft := &salaryrecord.SalaryRecord{
			ID:          uuid.New(),
			StaffID:     staffID,
			Month:       4,
			Year:        2026,
			GrossSalary: 29000, // stale; a raise happened after the draft
			LOPDays:     2,
			Status:      salaryrecord.StatusDraft,
		}
		deps.repo.findByStaffAndPeriodFn = func(ctx context.Context, id string, month, year int) (*salaryrecord.SalaryRecord, error) {
			return draft, nil
		}

		var saved *salaryrecord.SalaryRecord
		deps.repo.updateFn = func(ctx context.Context, rec *salaryrecord.SalaryRecord) error {
			saved = rec
			return nil
		}

		var queued kafka.OutboxEvent
		deps.outbox.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
			queued = event
			return nil
		}

		resp, err := deps.service.Finalize(ctx, salaryrecord.FinalizeRequest{
			StaffID: staffID.String(),
			Month:   4,
			Year:    2026,
		})

		assert.NoError(t, err)
		if assert.NotNil(t, saved) {
			// April has 30 days: lop = (2/30)*30000 = 2000, EPF/ESI on 28000.
			assert.Equal(t, float64(30000), saved.GrossSalary)
			assert.Equal(t, float64(2), saved.LOPDays)
			assert.Equal(t, float64(2000), saved.LOPAmount)
			assert.Equal(t, float64(2352), saved.EPF)
			assert.Equal(t, float64(210), saved.ESI)
			assert.Equal(t, float64(0), saved.ProfessionalTax)
			assert.Equal(t, float64(2562), saved.TotalDeductions)
			assert.Equal(t, float64(25438), saved.NetSalary)
			assert.Equal(t, salaryrecord.StatusFinalized, saved.Status)
		}
		assert.Equal(t, float64(25438), resp.Breakdown.NetSalary)

		assert.Equal(t, events.SalaryRecordFinalizedTopic, queued.Topic)
		var payload events.SalaryRecordFinalizedEvent
		assert.NoError(t, json.Unmarshal(queued.Payload, &payload))
		assert.Equal(t, draft.ID.String(), payload.RecordID)
		assert.Equal(t, float64(25438), payload.NetSalary)

		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("filing month adds slab tax on base salary", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.staffRepo.findByIDFn = func(ctx context.Context, id string) (*staff.Staff, error) {
			return &staff.Staff{ID: staffID, BaseSalary: 15000, Allowances: 1000, Active: true}, nil
		}
		deps.slabs.findForSalaryFn = func(ctx context.Context, salary float64) (taxslab.SlabLookupResponse, error) {
			// Lookup must use base salary, not gross.
			assert.Equal(t, float64(15000), salary)
			return taxslab.SlabLookupResponse{Salary: salary, TaxAmount: 150, Matched: true}, nil
		}

		var saved *salaryrecord.SalaryRecord
		deps.repo.createFn = func(ctx context.Context, rec *salaryrecord.SalaryRecord) error {
			saved = rec
			return nil
		}

		_, err := deps.service.Finalize(ctx, salaryrecord.FinalizeRequest{
			StaffID: staffID.String(),
			Month:   2,
			Year:    2026,
		})

		assert.NoError(t, err)
		if assert.NotNil(t, saved) {
			assert.Equal(t, float64(150), saved.ProfessionalTax)
			assert.Equal(t, float64(150), saved.TotalDeductions)
			assert.Equal(t, float64(15850), saved.NetSalary)
		}
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("non-filing month sets professional tax to zero without lookup", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.staffRepo.findByIDFn = func(ctx context.Context, id string) (*staff.Staff, error) {
			return &staff.Staff{ID: staffID, BaseSalary: 15000, Active: true}, nil
		}
		deps.slabs.findForSalaryFn = func(ctx context.Context, salary float64) (taxslab.SlabLookupResponse, error) {
			t.Fatal("slab lookup must not run outside filing months")
			return taxslab.SlabLookupResponse{}, nil
		}

		var saved *salaryrecord.SalaryRecord
		deps.repo.createFn = func(ctx context.Context, rec *salaryrecord.SalaryRecord) error {
			saved = rec
			return nil
		}

		_, err := deps.service.Finalize(ctx, salaryrecord.FinalizeRequest{
			StaffID: staffID.String(),
			Month:   5,
			Year:    2026,
		})

		assert.NoError(t, err)
		if assert.NotNil(t, saved) {
			assert.Equal(t, float64(0), saved.ProfessionalTax)
		}
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("no draft defaults to zero lop and inserts", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.staffRepo.findByIDFn = func(ctx context.Context, id string) (*staff.Staff, error) {
			return &staff.Staff{ID: staffID, BaseSalary: 30000, Active: true}, nil
		}

		var saved *salaryrecord.SalaryRecord
		deps.repo.createFn = func(ctx context.Context, rec *salaryrecord.SalaryRecord) error {
			saved = rec
			return nil
		}

		_, err := deps.service.Finalize(ctx, salaryrecord.FinalizeRequest{
			StaffID: staffID.String(),
			Month:   4,
			Year:    2026,
			Deductions: salaryrecord.DeductionInputs{
				Loan: 1000,
			},
			Reimbursements: []float64{500},
		})

		assert.NoError(t, err)
		if assert.NotNil(t, saved) {
			assert.Equal(t, float64(0), saved.LOPDays)
			assert.Equal(t, float64(1000), saved.Loan)
			assert.Equal(t, float64(500), saved.TotalReimbursement)
			assert.Equal(t, float64(29500), saved.NetSalary)
			assert.Equal(t, salaryrecord.StatusFinalized, saved.Status)
		}
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("running twice stores identical records", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.staffRepo.findByIDFn = func(ctx context.Context, id string) (*staff.Staff, error) {
			return &staff.Staff{
				ID:          staffID,
				BaseSalary:  28000,
				Allowances:  2000,
				EPFEligible: true,
				ESIEligible: true,
				Active:      true,
			}, nil
		}

		stored := &salaryrecord.SalaryRecord{
			ID:      uuid.New(),
			StaffID: staffID,
			Month:   4,
			Year:    2026,
			LOPDays: 2,
			Status:  salaryrecord.StatusDraft,
		}
		deps.repo.findByStaffAndPeriodFn = func(ctx context.Context, id string, month, year int) (*salaryrecord.SalaryRecord, error) {
			copied := *stored
			return &copied, nil
		}

		var first, second salaryrecord.SalaryRecord
		run := 0
		deps.repo.updateFn = func(ctx context.Context, rec *salaryrecord.SalaryRecord) error {
			run++
			if run == 1 {
				first = *rec
				persisted := *rec
				stored = &persisted
			} else {
				second = *rec
			}
			return nil
		}

		req := salaryrecord.FinalizeRequest{
			StaffID:    staffID.String(),
			Month:      4,
			Year:       2026,
			Deductions: salaryrecord.DeductionInputs{Misc: 100},
		}

		expectTx(t, deps.sqlMock, true)
		_, err := deps.service.Finalize(ctx, req)
		assert.NoError(t, err)

		expectTx(t, deps.sqlMock, true)
		_, err = deps.service.Finalize(ctx, req)
		assert.NoError(t, err)

		assert.Equal(t, 2, run)
		assert.Equal(t, first, second)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("unknown staff", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.staffRepo.findByIDFn = func(ctx context.Context, id string) (*staff.Staff, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := deps.service.Finalize(ctx, salaryrecord.FinalizeRequest{
			StaffID: staffID.String(),
			Month:   4,
			Year:    2026,
		})

		assert.ErrorIs(t, err, stafferrors.ErrStaffNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("outbox failure aborts the whole finalization", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.staffRepo.findByIDFn = func(ctx context.Context, id string) (*staff.Staff, error) {
			return &staff.Staff{ID: staffID, BaseSalary: 30000, Active: true}, nil
		}
		deps.outbox.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
			return errors.New("outbox insert failed")
		}

		_, err := deps.service.Finalize(ctx, salaryrecord.FinalizeRequest{
			StaffID: staffID.String(),
			Month:   4,
			Year:    2026,
		})

		assert.Error(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestSalaryRecordService_Estimate(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()

	breakdown, err := deps.service.Estimate(ctx, salaryrecord.EstimateRequest{
		GrossSalary: 30000,
		LOPDays:     2.5,
		Month:       4,
		Year:        2026,
		EPFEligible: true,
		ESIEligible: true,
	})

	assert.NoError(t, err)
	// Fractional LOP: exact proration for net pay, ceiling-rounded days
	// for the statutory base.
	assert.Equal(t, float64(2500), breakdown.LOPAmount)
	assert.Equal(t, float64(27500), breakdown.AdjustedGross)
	assert.Equal(t, 3, breakdown.RoundedLOP)
	assert.Equal(t, float64(27000), breakdown.AdjustedGrossForEPFESI)
	assert.Equal(t, float64(2268), breakdown.EPF)
	assert.Equal(t, float64(203), breakdown.ESI)
}

func TestSalaryRecordService_GetAllFinalized(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()
	staffID := uuid.New()

	month := 4
	deps.repo.listFinalizedFn = func(ctx context.Context, filter salaryrecord.ListFinalizedFilter) ([]salaryrecord.FinalizedRow, error) {
		if assert.NotNil(t, filter.Month) {
			assert.Equal(t, 4, *filter.Month)
		}
		return []salaryrecord.FinalizedRow{
			{
				SalaryRecord: salaryrecord.SalaryRecord{
					ID:        uuid.New(),
					StaffID:   staffID,
					Month:     4,
					Year:      2026,
					NetSalary: 25438,
					Status:    salaryrecord.StatusFinalized,
				},
				StaffNumber: 1007,
				StaffName:   "Asha Verma",
				Department:  "Mathematics",
			},
		}, nil
	}

	resp, err := deps.service.GetAllFinalized(ctx, salaryrecord.ListFinalizedFilter{Month: &month})

	assert.NoError(t, err)
	assert.Len(t, resp, 1)
	assert.Equal(t, int64(1007), resp[0].StaffNumber)
	assert.Equal(t, float64(25438), resp[0].NetSalary)
}

func TestSalaryRecordService_GeneratePayslip(t *testing.T) {
	ctx := context.Background()
	staffID := uuid.New()
	recordID := uuid.New()

	deps := setupServiceTest(t)
	defer deps.db.Close()

	tmpDir := t.TempDir()
	_ = os.Setenv("PAYSLIP_STORAGE_DIR", tmpDir)
	_ = os.Setenv("PAYSLIP_PUBLIC_BASE_URL", "/files/payslips")
	t.Cleanup(func() {
		_ = os.Unsetenv("PAYSLIP_STORAGE_DIR")
		_ = os.Unsetenv("PAYSLIP_PUBLIC_BASE_URL")
	})

	expectTx(t, deps.sqlMock, true)
	deps.repo.findByIDFn = func(ctx context.Context, id string) (*salaryrecord.SalaryRecord, error) {
		return &salaryrecord.SalaryRecord{
			ID:          uuid.MustParse(id),
			StaffID:     staffID,
			Month:       4,
			Year:        2026,
			GrossSalary: 30000,
			LOPDays:     2,
			LOPAmount:   2000,
			EPF:         2352,
			ESI:         210,
			NetSalary:   25438,
			Status:      salaryrecord.StatusFinalized,
		}, nil
	}
	deps.staffRepo.findByIDFn = func(ctx context.Context, id string) (*staff.Staff, error) {
		return &staff.Staff{ID: staffID, StaffNumber: 1007, Name: "Asha Verma", Department: "Mathematics"}, nil
	}

	resp, err := deps.service.GeneratePayslip(ctx, recordID.String())
	assert.NoError(t, err)
	if assert.NotNil(t, resp.PayslipURL) {
		assert.Contains(t, *resp.PayslipURL, "/files/payslips/payslip_")
	}
	assert.NotEmpty(t, resp.PayslipGeneratedAt)

	filename := "payslip_" + recordID.String() + ".pdf"
	_, statErr := os.Stat(filepath.Join(tmpDir, filename))
	assert.NoError(t, statErr)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())

	t.Run("draft record is rejected", func(t *testing.T) {
		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*salaryrecord.SalaryRecord, error) {
			return &salaryrecord.SalaryRecord{
				ID:      uuid.MustParse(id),
				StaffID: staffID,
				Status:  salaryrecord.StatusDraft,
			}, nil
		}

		_, err := deps.service.GeneratePayslip(ctx, recordID.String())

		assert.ErrorIs(t, err, salaryrecorderrors.ErrRecordNotFinalized)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestSalaryRecordService_GetLOP(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()
	staffID := uuid.New()

	t.Run("found", func(t *testing.T) {
		deps.repo.findByStaffAndPeriodFn = func(ctx context.Context, id string, month, year int) (*salaryrecord.SalaryRecord, error) {
			return &salaryrecord.SalaryRecord{
				StaffID: staffID,
				Month:   4,
				Year:    2026,
				LOPDays: 1.5,
				Status:  salaryrecord.StatusDraft,
			}, nil
		}

		resp, err := deps.service.GetLOP(ctx, staffID.String(), 4, 2026)

		assert.NoError(t, err)
		assert.Equal(t, float64(1.5), resp.LOPDays)
		assert.Equal(t, salaryrecord.StatusDraft, resp.Status)
	})

	t.Run("absent answers zero days", func(t *testing.T) {
		deps.repo.findByStaffAndPeriodFn = func(ctx context.Context, id string, month, year int) (*salaryrecord.SalaryRecord, error) {
			return nil, gorm.ErrRecordNotFound
		}

		resp, err := deps.service.GetLOP(ctx, staffID.String(), 4, 2026)

		assert.NoError(t, err)
		assert.Equal(t, staffID.String(), resp.StaffID)
		assert.Equal(t, 4, resp.Month)
		assert.Equal(t, 2026, resp.Year)
		assert.Equal(t, float64(0), resp.LOPDays)
	})
}
