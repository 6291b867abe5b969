package payroll

import (
	"context"
	"encoding/json"
	"time"

	"go-hcm/internal/events"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// CompensationChangedConsumer mendengarkan perubahan ledger kompensasi
// dan membuang cache payroll karyawan terkait, supaya read berikutnya
// tidak menyajikan data yang digenerate dari snapshot lama.
type CompensationChangedConsumer struct {
	reader  *kafka.Reader
	service Service
	logger  *zap.Logger
}

func NewCompensationChangedConsumer(
	broker string,
	groupID string,
	service Service,
	logger ...*zap.Logger,
) *CompensationChangedConsumer {
	l := zap.L().Named("payroll.consumer")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.consumer")
	}

	return &CompensationChangedConsumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        []string{broker},
			Topic:          events.CompensationChangedTopic,
			GroupID:        groupID,
			CommitInterval: time.Second,
			StartOffset:    kafka.FirstOffset,
		}),
		service: service,
		logger:  l,
	}
}

func (c *CompensationChangedConsumer) Start(ctx context.Context) {
	go func() {
		for {
			msg, err := c.reader.FetchMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				c.logger.Error("consume compensation_changed failed", zap.Error(err))
				continue
			}

			var event events.CompensationChangedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				c.logger.Error("decode compensation_changed event failed", zap.Error(err))
				if commitErr := c.reader.CommitMessages(ctx, msg); commitErr != nil {
					c.logger.Error("commit invalid compensation_changed event failed", zap.Error(commitErr))
				}
				continue
			}

			if err := c.service.InvalidateEmployeeCache(ctx, event.CompanyID, event.EmployeeID); err != nil {
				// Dibiarkan uncommitted supaya dicoba ulang; cache basi
				// lebih buruk daripada pesan diproses dua kali.
				c.logger.Error("invalidate payroll cache from event failed",
					zap.String("employee_id", event.EmployeeID),
					zap.Error(err),
				)
				continue
			}

			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				c.logger.Error("commit compensation_changed event failed", zap.Error(err))
				continue
			}

			c.logger.Info("payroll cache invalidated from compensation change",
				zap.String("employee_id", event.EmployeeID),
				zap.String("change_type", event.ChangeType),
			)
		}
	}()
}

func (c *CompensationChangedConsumer) Close() error {
	return c.reader.Close()
}
