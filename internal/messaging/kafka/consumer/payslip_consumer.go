package consumer

import (
	"context"
	"encoding/json"

	"go-payroll/internal/events"
	"go-payroll/internal/salaryrecord"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeSalaryFinalized generates a payslip for every finalized salary
// record event. Generation is idempotent (same file, same URL), so
// at-least-once delivery is safe.
func ConsumeSalaryFinalized(
	ctx context.Context,
	reader *kafkago.Reader,
	salaryService salaryrecord.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.salary_finalized")
	log.Info("salary finalized consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("salary finalized consumer stopped")
				return
			}
			log.Error("fetch salary finalized message failed", zap.Error(err))
			continue
		}

		var event events.SalaryRecordFinalizedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode salary finalized event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		_, err = salaryService.GeneratePayslip(ctx, event.RecordID)
		if err != nil {
			log.Error("generate payslip failed",
				zap.String("record_id", event.RecordID),
				zap.String("staff_id", event.StaffID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit salary finalized message failed", zap.Error(err))
			continue
		}

		log.Info("payslip generated from salary finalized event",
			zap.String("record_id", event.RecordID),
			zap.Int("month", event.Month),
			zap.Int("year", event.Year),
		)
	}
}
