package salaryrecord_test

import (
	"context"
	"regexp"
	"testing"

	"go-payroll/internal/salaryrecord"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Writes issued through WithTx harus jalan di koneksi transaksi milik
// service, bukan di pool gorm. Kalau tidak, rollback batch tidak pernah
// membatalkan apa-apa.
func TestSalaryRecordRepository_WithTxUsesCallerTransaction(t *testing.T) {
	poolDB, poolMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer poolDB.Close()

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: poolDB}), &gorm.Config{})
	assert.NoError(t, err)

	txConnDB, txMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer txConnDB.Close()

	txMock.ExpectBegin()
	txMock.ExpectExec(regexp.QuoteMeta(`UPDATE "salary_records" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	txMock.ExpectRollback()

	tx, err := txConnDB.Begin()
	assert.NoError(t, err)

	qtx := salaryrecord.NewRepository(gormDB).WithTx(tx)

	rec := &salaryrecord.SalaryRecord{
		ID:          uuid.New(),
		StaffID:     uuid.New(),
		Month:       4,
		Year:        2026,
		GrossSalary: 30000,
		LOPDays:     2,
		Status:      salaryrecord.StatusDraft,
	}
	assert.NoError(t, qtx.Update(context.Background(), rec))
	assert.NoError(t, tx.Rollback())

	// statement harus muncul di koneksi tx; pool gorm tetap bersih
	assert.NoError(t, txMock.ExpectationsWereMet())
	assert.NoError(t, poolMock.ExpectationsWereMet())
}
