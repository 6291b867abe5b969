package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-hcm/internal/employee"
	"go-hcm/internal/events"
	"go-hcm/internal/messaging/kafka"
	payrollerrors "go-hcm/internal/payroll/errors"
	"go-hcm/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const listCacheTTL = 10 * time.Minute

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Generate(ctx context.Context, companyID, actorID, employeeID string, req GeneratePayrollRequest) (PayrollRecordResponse, error)
	GetAllByEmployee(ctx context.Context, companyID, employeeID string) ([]PayrollRecordResponse, error)
	GetByID(ctx context.Context, companyID, id string) (PayrollRecordResponse, error)
	InvalidateEmployeeCache(ctx context.Context, companyID, employeeID string) error
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees employee.Repository
	outbox    kafka.OutboxRepository
	tax       TaxPolicy
	rdb       *redis.Client
	sf        singleflight.Group
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees employee.Repository,
	logger ...*zap.Logger,
) Service {
	return NewServiceWithDeps(db, repo, employees, nil, DefaultTaxPolicy(), nil, logger...)
}

func NewServiceWithDeps(
	db *sql.DB,
	repo Repository,
	employees employee.Repository,
	outboxRepo kafka.OutboxRepository,
	tax TaxPolicy,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	if tax == nil {
		tax = DefaultTaxPolicy()
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		outbox:    outboxRepo,
		tax:       tax,
		rdb:       rdb,
		logger:    l,
	}
}

func listCacheKey(companyID, employeeID string) string {
	return fmt.Sprintf("payroll:records:%s:%s", companyID, employeeID)
}

// Generate membekukan snapshot kompensasi saat ini menjadi satu
// PayrollRecord. Snapshot nol menghasilkan record bernilai nol, bukan
// error: karyawan baru yang belum punya ledger tetap bisa diproses.
func (s *service) Generate(
	ctx context.Context,
	companyID, actorID, employeeID string,
	req GeneratePayrollRequest,
) (PayrollRecordResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return PayrollRecordResponse{}, payrollerrors.ErrInvalidCompanyID
	}
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return PayrollRecordResponse{}, payrollerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("generate payroll begin tx failed", zap.Error(err))
		return PayrollRecordResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	emp, err := s.employees.WithTx(tx).FindByIDAndCompany(ctx, companyID, employeeID)
	if err != nil {
		return PayrollRecordResponse{}, err
	}

	// Pajak dihitung dari gaji pokok saja; tunjangan tidak kena potongan.
	snap := emp.Snapshot()
	basic := snap.GrossSalary
	allowances := snap.HouseRent + snap.UtilityAllowance + snap.OtherAllowance
	gross := basic + allowances
	tax := s.tax.Compute(basic)
	net := gross - tax

	now := time.Now().UTC()
	record := &PayrollRecord{
		ID:           uuid.New(),
		CompanyID:    companyUUID,
		EmployeeID:   employeeUUID,
		EmployeeName: emp.FullName,
		Department:   emp.Department,
		BasicSalary:  basic,
		Allowances:   allowances,
		GrossSalary:  gross,
		Tax:          tax,
		Deductions:   tax,
		NetPayable:   net,
		Status:       StatusProcessed,
		Month:        now.Format("January 2006"),
		PaymentDate:  now,
		GeneratedBy:  actorID,
	}

	if err := qtx.Create(ctx, record); err != nil {
		return PayrollRecordResponse{}, err
	}

	if s.outbox != nil {
		if err := s.enqueueGeneratedEvent(ctx, tx, rid, record); err != nil {
			s.logger.Error("generate payroll enqueue event failed", zap.Error(err))
			return PayrollRecordResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return PayrollRecordResponse{}, err
	}

	if err := s.InvalidateEmployeeCache(ctx, companyID, employeeID); err != nil {
		// Cache basi hanya bertahan sampai TTL; jangan gagalkan generate.
		s.logger.Warn("invalidate payroll cache failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
	}

	s.logger.Info("payroll record generated",
		zap.String("request_id", rid),
		zap.String("employee_id", employeeID),
		zap.String("month", record.Month),
		zap.Float64("net_payable", record.NetPayable),
	)

	return mapToResponse(*record), nil
}

func (s *service) enqueueGeneratedEvent(
	ctx context.Context,
	tx *sql.Tx,
	rid string,
	record *PayrollRecord,
) error {
	event := events.PayrollGeneratedEvent{
		EventType:  "payroll.generated",
		PayrollID:  record.ID.String(),
		EmployeeID: record.EmployeeID.String(),
		CompanyID:  record.CompanyID.String(),
		Month:      record.Month,
		Net:        record.NetPayable,
		OccurredAt: time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     rid,
		AggregateType: "payroll",
		AggregateID:   record.ID.String(),
		EventType:     event.EventType,
		Topic:         events.PayrollGeneratedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

// GetAllByEmployee membaca riwayat payroll dengan cache-aside.
// Singleflight mencegah stampede ke database saat cache miss di bawah
// beban tinggi.
func (s *service) GetAllByEmployee(
	ctx context.Context,
	companyID, employeeID string,
) ([]PayrollRecordResponse, error) {
	if s.rdb == nil {
		return s.loadFromDB(ctx, companyID, employeeID)
	}

	key := listCacheKey(companyID, employeeID)

	if cached, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
		var resp []PayrollRecordResponse
		if err := json.Unmarshal(cached, &resp); err == nil {
			return resp, nil
		}
	}

	v, err, _ := s.sf.Do(key, func() (any, error) {
		resp, err := s.loadFromDB(ctx, companyID, employeeID)
		if err != nil {
			return nil, err
		}

		if payload, marshalErr := json.Marshal(resp); marshalErr == nil {
			if setErr := s.rdb.Set(ctx, key, payload, listCacheTTL).Err(); setErr != nil {
				s.logger.Warn("set payroll cache failed", zap.Error(setErr))
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]PayrollRecordResponse), nil
}

func (s *service) loadFromDB(ctx context.Context, companyID, employeeID string) ([]PayrollRecordResponse, error) {
	records, err := s.repo.FindAllByEmployee(ctx, companyID, employeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(records), nil
}

func (s *service) GetByID(
	ctx context.Context,
	companyID, id string,
) (PayrollRecordResponse, error) {
	record, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollRecordResponse{}, payrollerrors.ErrPayrollRecordNotFound
		}
		return PayrollRecordResponse{}, err
	}
	return mapToResponse(*record), nil
}

// InvalidateEmployeeCache dipanggil setelah generate dan oleh consumer
// compensation.changed.
func (s *service) InvalidateEmployeeCache(ctx context.Context, companyID, employeeID string) error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.Del(ctx, listCacheKey(companyID, employeeID)).Err()
}

func mapToResponse(record PayrollRecord) PayrollRecordResponse {
	return PayrollRecordResponse{
		ID:          record.ID.String(),
		EmployeeID:  record.EmployeeID.String(),
		Department:  record.Department,
		BasicSalary: record.BasicSalary,
		Allowances:  record.Allowances,
		GrossSalary: record.GrossSalary,
		Tax:         record.Tax,
		Deductions:  record.Deductions,
		NetPayable:  record.NetPayable,
		Status:      record.Status,
		Month:       record.Month,
		PaymentDate: record.PaymentDate.Format("2006-01-02"),
	}
}

func mapToListResponse(records []PayrollRecord) []PayrollRecordResponse {
	resp := make([]PayrollRecordResponse, len(records))
	for i, record := range records {
		resp[i] = mapToResponse(record)
	}
	return resp
}
