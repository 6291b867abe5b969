package salarychange

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"go-hcm/internal/compensation"
	"go-hcm/internal/employee"
	"go-hcm/internal/events"
	"go-hcm/internal/messaging/kafka"
	salarychangeerrors "go-hcm/internal/salarychange/errors"
	"go-hcm/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=salary_change_service.go -destination=mock/salary_change_service_mock.go -package=mock
type Service interface {
	Append(ctx context.Context, companyID, actorID, employeeID string, req AppendChangeRequest) (MutationResponse, error)
	EditField(ctx context.Context, companyID, employeeID string, index int, req EditChangeFieldRequest) (MutationResponse, error)
	Remove(ctx context.Context, companyID, employeeID string, index int) (MutationResponse, error)
	List(ctx context.Context, companyID, employeeID string) ([]ChangeRecordResponse, error)
}

type service struct {
	db        *sql.DB
	employees employee.Repository
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
}

func NewService(db *sql.DB, employees employee.Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, employees, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	employees employee.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("salarychange.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salarychange.service")
	}
	return &service{
		db:        db,
		employees: employees,
		outbox:    outboxRepo,
		logger:    l,
	}
}

// Append menambahkan satu event perubahan ke ujung ledger. Engine
// menyinkronkan snapshot secara eager; seluruh worker record (snapshot +
// ledger penuh) lalu dipersist dalam satu kali Save. Tidak ada retry:
// kegagalan persist diteruskan ke caller dan reload berikutnya yang
// merekonsiliasi state lokal dengan server.
func (s *service) Append(
	ctx context.Context,
	companyID, actorID, employeeID string,
	req AppendChangeRequest,
) (MutationResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("append salary change requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("employee_id", employeeID),
		zap.String("change_type", req.ChangeType),
	)

	// Validasi lokal sebelum mutasi: append yang invalid adalah no-op.
	if req.EffectiveDate == "" {
		return MutationResponse{}, salarychangeerrors.ErrEffectiveDateRequired
	}
	if !compensation.ValidChangeType(req.ChangeType) {
		return MutationResponse{}, salarychangeerrors.ErrInvalidChangeType
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("append salary change begin tx failed", zap.Error(err))
		return MutationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.employees.WithTx(tx)

	emp, err := qtx.FindByIDAndCompany(ctx, companyID, employeeID)
	if err != nil {
		return MutationResponse{}, err
	}

	rec := compensation.ChangeRecord{
		EffectiveDate:    req.EffectiveDate,
		GrossSalary:      req.GrossSalary.Float64(),
		HouseRent:        req.HouseRent.Float64(),
		UtilityAllowance: req.UtilityAllowance.Float64(),
		OtherAllowance:   req.OtherAllowance.Float64(),
		ChangeType:       req.ChangeType,
		Remarks:          req.Remarks,
		CreatedAt:        time.Now().UTC(),
		CreatedBy:        actorID,
	}

	snap := emp.Snapshot()
	emp.CompensationHistory.Append(rec, &snap)
	emp.ApplySnapshot(snap)

	if err := qtx.Save(ctx, emp); err != nil {
		return MutationResponse{}, err
	}

	if s.outbox != nil {
		if err := s.enqueueChangedEvent(ctx, tx, rid, emp, rec); err != nil {
			s.logger.Error("append salary change enqueue event failed", zap.Error(err))
			return MutationResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return MutationResponse{}, err
	}

	s.logger.Info("salary change appended",
		zap.String("request_id", rid),
		zap.String("employee_id", employeeID),
		zap.String("change_type", rec.ChangeType),
		zap.Float64("new_gross", rec.GrossSalary),
	)

	// Record pada response dibaca balik dari ledger, bukan dari input,
	// supaya yang dikembalikan persis seperti yang tersimpan.
	last, _ := emp.CompensationHistory.Last()
	recResp := mapRecordToResponse(len(emp.CompensationHistory)-1, last)
	return MutationResponse{
		Record:   &recResp,
		Snapshot: mapSnapshotToResponse(snap),
		Count:    len(emp.CompensationHistory),
	}, nil
}

func (s *service) enqueueChangedEvent(
	ctx context.Context,
	tx *sql.Tx,
	rid string,
	emp *employee.Employee,
	rec compensation.ChangeRecord,
) error {
	event := events.CompensationChangedEvent{
		EventType:     "compensation.changed",
		EmployeeID:    emp.ID.String(),
		CompanyID:     emp.CompanyID.String(),
		ChangeType:    rec.ChangeType,
		EffectiveDate: rec.EffectiveDate,
		GrossSalary:   rec.GrossSalary,
		OccurredAt:    time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     rid,
		AggregateType: "employee",
		AggregateID:   emp.ID.String(),
		EventType:     event.EventType,
		Topic:         events.CompensationChangedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

// EditField mengganti satu field dari record pada index (koreksi
// historis, bukan insert/remove). Snapshot hanya tersentuh bila index
// adalah elemen terakhir ledger.
func (s *service) EditField(
	ctx context.Context,
	companyID, employeeID string,
	index int,
	req EditChangeFieldRequest,
) (MutationResponse, error) {
	field, err := compensation.ParseField(req.Field)
	if err != nil {
		return MutationResponse{}, salarychangeerrors.ErrUnknownChangeField
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return MutationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.employees.WithTx(tx)

	emp, err := qtx.FindByIDAndCompany(ctx, companyID, employeeID)
	if err != nil {
		return MutationResponse{}, err
	}

	snap := emp.Snapshot()
	if err := emp.CompensationHistory.EditField(index, field, req.Value.Float64(), &snap); err != nil {
		return MutationResponse{}, mapEngineError(err)
	}
	emp.ApplySnapshot(snap)

	if err := qtx.Save(ctx, emp); err != nil {
		return MutationResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return MutationResponse{}, err
	}

	rec := emp.CompensationHistory[index]
	recResp := mapRecordToResponse(index, rec)
	return MutationResponse{
		Record:   &recResp,
		Snapshot: mapSnapshotToResponse(snap),
		Count:    len(emp.CompensationHistory),
	}, nil
}

// Remove menghapus record pada index. Bila yang terhapus adalah elemen
// terakhir, snapshot resync ke record terakhir yang baru; bila ledger
// menjadi kosong, snapshot mempertahankan nilai terakhirnya.
func (s *service) Remove(
	ctx context.Context,
	companyID, employeeID string,
	index int,
) (MutationResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return MutationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.employees.WithTx(tx)

	emp, err := qtx.FindByIDAndCompany(ctx, companyID, employeeID)
	if err != nil {
		return MutationResponse{}, err
	}

	snap := emp.Snapshot()
	if err := emp.CompensationHistory.RemoveAt(index, &snap); err != nil {
		return MutationResponse{}, mapEngineError(err)
	}
	emp.ApplySnapshot(snap)

	if err := qtx.Save(ctx, emp); err != nil {
		return MutationResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return MutationResponse{}, err
	}

	return MutationResponse{
		Snapshot: mapSnapshotToResponse(snap),
		Count:    len(emp.CompensationHistory),
	}, nil
}

func (s *service) List(
	ctx context.Context,
	companyID, employeeID string,
) ([]ChangeRecordResponse, error) {
	emp, err := s.employees.FindByIDAndCompany(ctx, companyID, employeeID)
	if err != nil {
		return nil, err
	}

	res := make([]ChangeRecordResponse, len(emp.CompensationHistory))
	for i, rec := range emp.CompensationHistory {
		res[i] = mapRecordToResponse(i, rec)
	}
	return res, nil
}

func mapEngineError(err error) error {
	switch {
	case errors.Is(err, compensation.ErrIndexOutOfRange):
		return salarychangeerrors.ErrChangeIndexOutOfRange
	case errors.Is(err, compensation.ErrUnknownField):
		return salarychangeerrors.ErrUnknownChangeField
	}
	return err
}

func mapRecordToResponse(index int, rec compensation.ChangeRecord) ChangeRecordResponse {
	return ChangeRecordResponse{
		Index:            index,
		EffectiveDate:    rec.EffectiveDate,
		GrossSalary:      rec.GrossSalary,
		HouseRent:        rec.HouseRent,
		UtilityAllowance: rec.UtilityAllowance,
		OtherAllowance:   rec.OtherAllowance,
		ChangeType:       rec.ChangeType,
		Remarks:          rec.Remarks,
		CreatedAt:        rec.CreatedAt.Format(time.RFC3339),
		CreatedBy:        rec.CreatedBy,
	}
}

func mapSnapshotToResponse(snap compensation.Snapshot) SnapshotResponse {
	return SnapshotResponse{
		GrossSalary:      snap.GrossSalary,
		HouseRent:        snap.HouseRent,
		UtilityAllowance: snap.UtilityAllowance,
		OtherAllowance:   snap.OtherAllowance,
	}
}
