package salaryrecord

import (
	"errors"
	"strings"

	salaryrecorderrors "go-payroll/internal/salaryrecord/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return salaryrecorderrors.ErrRecordNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_salary_record_period" {
			return salaryrecorderrors.ErrPeriodAlreadyExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_salary_record_period") {
		return salaryrecorderrors.ErrPeriodAlreadyExists
	}

	return err
}
