package salaryrecord

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	salaryrecorderrors "go-payroll/internal/salaryrecord/errors"
	stafferrors "go-payroll/internal/staff/errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultPayslipStorageDir = "storage/payslips"
	defaultPayslipBaseURL    = "/files/payslips"
)

// GeneratePayslip renders the finalized record to a PDF on disk and stores
// its public URL on the record. Re-running overwrites the existing file.
func (s *service) GeneratePayslip(ctx context.Context, recordID string) (SalaryRecordResponse, error) {
	s.logger.Debug("generate payslip requested", zap.String("record_id", recordID))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("generate payslip begin tx failed", zap.Error(err))
		return SalaryRecordResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	staffTx := s.staffRepo.WithTx(tx)

	rec, err := qtx.FindByID(ctx, recordID)
	if err != nil {
		return SalaryRecordResponse{}, mapRepositoryError(err)
	}
	if rec.Status != StatusFinalized {
		return SalaryRecordResponse{}, salaryrecorderrors.ErrRecordNotFinalized
	}

	st, err := staffTx.FindByID(ctx, rec.StaffID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SalaryRecordResponse{}, stafferrors.ErrStaffNotFound
		}
		return SalaryRecordResponse{}, err
	}

	pdf, err := buildPayslipPDF(payslipLines(rec, st.Name, st.StaffNumber, st.Department))
	if err != nil {
		s.logger.Error("build payslip pdf failed", zap.Error(err))
		return SalaryRecordResponse{}, err
	}

	storageDir := os.Getenv("PAYSLIP_STORAGE_DIR")
	if storageDir == "" {
		storageDir = defaultPayslipStorageDir
	}
	if err := os.MkdirAll(storageDir, 0o755); err != nil {
		s.logger.Error("create payslip storage dir failed", zap.Error(err))
		return SalaryRecordResponse{}, err
	}

	filename := "payslip_" + rec.ID.String() + ".pdf"
	if err := os.WriteFile(filepath.Join(storageDir, filename), pdf, 0o644); err != nil {
		s.logger.Error("write payslip file failed", zap.Error(err))
		return SalaryRecordResponse{}, err
	}

	baseURL := os.Getenv("PAYSLIP_PUBLIC_BASE_URL")
	if baseURL == "" {
		baseURL = defaultPayslipBaseURL
	}
	url := strings.TrimRight(baseURL, "/") + "/" + filename
	now := time.Now().UTC()
	rec.PayslipURL = &url
	rec.PayslipGeneratedAt = &now

	if err := qtx.Update(ctx, rec); err != nil {
		s.logger.Error("persist payslip url failed", zap.Error(err))
		return SalaryRecordResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("generate payslip commit failed", zap.Error(err))
		return SalaryRecordResponse{}, err
	}

	s.logger.Info("payslip generated",
		zap.String("record_id", rec.ID.String()),
		zap.String("url", url),
	)

	return mapToResponse(*rec), nil
}

func payslipLines(rec *SalaryRecord, staffName string, staffNumber int64, department string) []string {
	period := fmt.Sprintf("%s %d", time.Month(rec.Month).String(), rec.Year)
	return []string{
		"SALARY SLIP",
		fmt.Sprintf("Period: %s", period),
		fmt.Sprintf("Staff: %s (No. %d)", staffName, staffNumber),
		fmt.Sprintf("Department: %s", department),
		"",
		fmt.Sprintf("Gross Salary: %.2f", rec.GrossSalary),
		fmt.Sprintf("LOP Days: %.2f", rec.LOPDays),
		fmt.Sprintf("LOP Amount: %.2f", rec.LOPAmount),
		fmt.Sprintf("EPF: %.2f", rec.EPF),
		fmt.Sprintf("ESI: %.2f", rec.ESI),
		fmt.Sprintf("Income Tax: %.2f", rec.IT),
		fmt.Sprintf("Loan: %.2f", rec.Loan),
		fmt.Sprintf("Advance: %.2f", rec.Advance),
		fmt.Sprintf("Uniform: %.2f", rec.Uniform),
		fmt.Sprintf("CD: %.2f", rec.CD),
		fmt.Sprintf("Hostel: %.2f", rec.Hostel),
		fmt.Sprintf("Suspense: %.2f", rec.Suspense),
		fmt.Sprintf("Misc: %.2f", rec.Misc),
		fmt.Sprintf("Professional Tax: %.2f", rec.ProfessionalTax),
		fmt.Sprintf("Total Deductions: %.2f", rec.TotalDeductions),
		fmt.Sprintf("Reimbursements: %.2f", rec.TotalReimbursement),
		"",
		fmt.Sprintf("NET SALARY: %.2f", rec.NetSalary),
	}
}
