package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"go-hcm/internal/compensation"
	"go-hcm/internal/events"
	"go-hcm/internal/messaging/kafka"
	"go-hcm/internal/shared/contextutil"
	"go-hcm/internal/shared/counter"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const counterTypeEmployeeNumber = "employee_number"

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, companyID string) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, companyID, id string) (EmployeeResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	outbox  kafka.OutboxRepository
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, counter counter.Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, counter, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	counter counter.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counter,
		outbox:  outboxRepo,
		logger:  l,
	}
}

func (s *service) Create(
	ctx context.Context,
	companyID string,
	req CreateEmployeeRequest,
) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("email", req.Email),
	)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return EmployeeResponse{}, fmt.Errorf("invalid company id")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	seq, err := s.counter.GetNextValue(ctx, companyID, counterTypeEmployeeNumber)
	if err != nil {
		s.logger.Error("create employee get next number failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	emp := &Employee{
		ID:               uuid.New(),
		CompanyID:        companyUUID,
		EmployeeNumber:   fmt.Sprintf("EMP-%04d", seq),
		FullName:         req.FullName,
		Email:            req.Email,
		Department:       req.Department,
		CompensationLock: compensation.LockBootstrap,
	}

	// Kompensasi awal: tulis langsung ke snapshot, tanpa entry ledger.
	// Satu-satunya momen hal ini legal adalah sebelum persistensi pertama.
	if req.Compensation != nil {
		if err := emp.SetCompensationDirect(req.Compensation.Snapshot()); err != nil {
			return EmployeeResponse{}, err
		}
	}

	// Persistensi pertama yang sukses mengunci snapshot. Jika commit di
	// bawah gagal, objek in-memory ikut dibuang, jadi "locked iff
	// persisted" tetap terjaga secara observabel.
	if err := emp.CommitFirstSave(); err != nil {
		return EmployeeResponse{}, err
	}

	if err := qtx.Create(ctx, emp); err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		if err := s.enqueueCreatedEvent(ctx, tx, rid, emp); err != nil {
			s.logger.Error("create employee enqueue event failed", zap.Error(err))
			return EmployeeResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, err
	}

	s.logger.Info("employee created",
		zap.String("request_id", rid),
		zap.String("employee_id", emp.ID.String()),
		zap.String("employee_number", emp.EmployeeNumber),
	)

	return mapToResponse(*emp), nil
}

func (s *service) enqueueCreatedEvent(ctx context.Context, tx *sql.Tx, rid string, emp *Employee) error {
	event := events.EmployeeCreatedEvent{
		EventType:      "employee.created",
		EmployeeID:     emp.ID.String(),
		CompanyID:      emp.CompanyID.String(),
		EmployeeNumber: emp.EmployeeNumber,
		FullName:       emp.FullName,
		OccurredAt:     time.Now().UTC(),
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
		Topic:         events.EmployeeCreatedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) GetAll(
	ctx context.Context,
	companyID string,
) ([]EmployeeResponse, error) {
	employees, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(employees), nil
}

func (s *service) GetByID(
	ctx context.Context,
	companyID, id string,
) (EmployeeResponse, error) {
	emp, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*emp), nil
}

func (s *service) Update(
	ctx context.Context,
	companyID, id string,
	req UpdateEmployeeRequest,
) (EmployeeResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	emp, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	// Tulis langsung ke snapshot setelah LOCKED ditolak; editing surface
	// hanya boleh mengubah kompensasi lewat salary change ledger.
	if req.Compensation != nil {
		if err := emp.SetCompensationDirect(req.Compensation.Snapshot()); err != nil {
			s.logger.Warn("update employee direct compensation write rejected",
				zap.String("employee_id", id),
				zap.String("lock_state", string(emp.CompensationLock)),
			)
			return EmployeeResponse{}, err
		}
	}

	emp.FullName = req.FullName
	emp.Email = req.Email
	emp.Department = req.Department

	if err := qtx.Save(ctx, emp); err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, err
	}

	return mapToResponse(*emp), nil
}

func (s *service) Delete(
	ctx context.Context,
	companyID, id string,
) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.Delete(ctx, companyID, id); err != nil {
		return mapRepositoryError(err)
	}

	return tx.Commit()
}

func mapToResponse(emp Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:             emp.ID.String(),
		CompanyID:      emp.CompanyID.String(),
		EmployeeNumber: emp.EmployeeNumber,
		FullName:       emp.FullName,
		Email:          emp.Email,
		Department:     emp.Department,
		Compensation: CompensationResponse{
			GrossSalary:      emp.GrossSalary,
			HouseRent:        emp.HouseRent,
			UtilityAllowance: emp.UtilityAllowance,
			OtherAllowance:   emp.OtherAllowance,
		},
		CompensationLock: string(emp.CompensationLock),
		ChangeCount:      len(emp.CompensationHistory),
	}
}

func mapToListResponse(employees []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(employees))
	for i, emp := range employees {
		res[i] = mapToResponse(emp)
	}
	return res
}
