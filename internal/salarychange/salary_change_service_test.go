package salarychange_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"go-hcm/internal/compensation"
	"go-hcm/internal/employee"
	"go-hcm/internal/events"
	"go-hcm/internal/messaging/kafka"
	"go-hcm/internal/salarychange"
	salarychangeerrors "go-hcm/internal/salarychange/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeEmployeeRepository struct {
	employee *employee.Employee
	saved    *employee.Employee
	saveErr  error
}

func (f *fakeEmployeeRepository) WithTx(tx *sql.Tx) employee.Repository {
	return f
}

func (f *fakeEmployeeRepository) Create(ctx context.Context, emp *employee.Employee) error {
	return nil
}

func (f *fakeEmployeeRepository) Save(ctx context.Context, emp *employee.Employee) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = emp
	return nil
}

func (f *fakeEmployeeRepository) FindAllByCompany(ctx context.Context, companyID string) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*employee.Employee, error) {
	return f.employee, nil
}

func (f *fakeEmployeeRepository) Delete(ctx context.Context, companyID string, id string) error {
	return nil
}

type fakeOutboxRepository struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository {
	return f
}

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error {
	return nil
}

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type serviceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service salarychange.Service
	repo    *fakeEmployeeRepository
	outbox  *fakeOutboxRepository
}

func setupServiceTest(t *testing.T, emp *employee.Employee) *serviceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeEmployeeRepository{employee: emp}
	outbox := &fakeOutboxRepository{}
	svc := salarychange.NewServiceWithOutbox(db, repo, outbox)

	return &serviceDeps{db: db, sqlMock: sqlMock, service: svc, repo: repo, outbox: outbox}
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

func lockedEmployee(history compensation.History, snap compensation.Snapshot) *employee.Employee {
	emp := &employee.Employee{
		ID:                  uuid.New(),
		CompanyID:           uuid.New(),
		FullName:            "Siti Rahma",
		Email:               "siti@example.com",
		CompensationLock:    compensation.LockLocked,
		CompensationHistory: history,
	}
	emp.ApplySnapshot(snap)
	return emp
}

func historyOf(grosses ...float64) compensation.History {
	h := make(compensation.History, 0, len(grosses))
	for _, g := range grosses {
		h = append(h, compensation.ChangeRecord{
			EffectiveDate: "2026-01-01",
			GrossSalary:   g,
			ChangeType:    compensation.ChangeTypeIncrement,
			CreatedAt:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			CreatedBy:     "tester",
		})
	}
	return h
}

func TestSalaryChangeService_AppendSyncsSnapshotAndPersists(t *testing.T) {
	ctx := context.Background()
	emp := lockedEmployee(nil, compensation.Snapshot{GrossSalary: 50000})

	deps := setupServiceTest(t, emp)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, true)

	resp, err := deps.service.Append(ctx, emp.CompanyID.String(), "actor-1", emp.ID.String(), salarychange.AppendChangeRequest{
		EffectiveDate:    "2026-03-01",
		GrossSalary:      60000,
		HouseRent:        12000,
		UtilityAllowance: 2500,
		ChangeType:       compensation.ChangeTypeIncrement,
		Remarks:          "annual increment",
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, 60000.0, resp.Snapshot.GrossSalary)
	assert.Equal(t, 12000.0, resp.Snapshot.HouseRent)
	assert.Equal(t, "actor-1", resp.Record.CreatedBy)

	// Worker record yang dipersist memuat snapshot baru dan ledger penuh.
	assert.NotNil(t, deps.repo.saved)
	assert.Equal(t, 60000.0, deps.repo.saved.GrossSalary)
	assert.Len(t, deps.repo.saved.CompensationHistory, 1)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestSalaryChangeService_AppendRequiresEffectiveDate(t *testing.T) {
	ctx := context.Background()
	emp := lockedEmployee(nil, compensation.Snapshot{GrossSalary: 50000})

	deps := setupServiceTest(t, emp)
	defer deps.db.Close()

	_, err := deps.service.Append(ctx, emp.CompanyID.String(), "actor-1", emp.ID.String(), salarychange.AppendChangeRequest{
		GrossSalary: 60000,
		ChangeType:  compensation.ChangeTypeIncrement,
	})

	// No-op: tidak ada transaksi yang dibuka, tidak ada mutasi.
	assert.ErrorIs(t, err, salarychangeerrors.ErrEffectiveDateRequired)
	assert.Nil(t, deps.repo.saved)
	assert.Len(t, emp.CompensationHistory, 0)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestSalaryChangeService_AppendRejectsUnknownChangeType(t *testing.T) {
	ctx := context.Background()
	emp := lockedEmployee(nil, compensation.Snapshot{})

	deps := setupServiceTest(t, emp)
	defer deps.db.Close()

	_, err := deps.service.Append(ctx, emp.CompanyID.String(), "actor-1", emp.ID.String(), salarychange.AppendChangeRequest{
		EffectiveDate: "2026-03-01",
		GrossSalary:   60000,
		ChangeType:    "Bonus",
	})

	assert.ErrorIs(t, err, salarychangeerrors.ErrInvalidChangeType)
}

func TestSalaryChangeService_AppendEnqueuesCompensationChangedEvent(t *testing.T) {
	ctx := context.Background()
	emp := lockedEmployee(nil, compensation.Snapshot{})

	deps := setupServiceTest(t, emp)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, true)

	_, err := deps.service.Append(ctx, emp.CompanyID.String(), "actor-1", emp.ID.String(), salarychange.AppendChangeRequest{
		EffectiveDate: "2026-03-01",
		GrossSalary:   60000,
		ChangeType:    compensation.ChangeTypePromotion,
	})

	assert.NoError(t, err)
	assert.Len(t, deps.outbox.created, 1)
	assert.Equal(t, events.CompensationChangedTopic, deps.outbox.created[0].Topic)

	var event events.CompensationChangedEvent
	assert.NoError(t, json.Unmarshal(deps.outbox.created[0].Payload, &event))
	assert.Equal(t, compensation.ChangeTypePromotion, event.ChangeType)
	assert.Equal(t, 60000.0, event.GrossSalary)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestSalaryChangeService_EditFieldOnLastIndexPropagates(t *testing.T) {
	ctx := context.Background()
	history := historyOf(50000, 60000)
	emp := lockedEmployee(history, compensation.Snapshot{GrossSalary: 60000})

	deps := setupServiceTest(t, emp)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, true)

	resp, err := deps.service.EditField(ctx, emp.CompanyID.String(), emp.ID.String(), 1, salarychange.EditChangeFieldRequest{
		Field: "gross_salary",
		Value: 65000,
	})

	assert.NoError(t, err)
	assert.Equal(t, 65000.0, resp.Snapshot.GrossSalary)
	assert.Equal(t, 65000.0, deps.repo.saved.GrossSalary)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestSalaryChangeService_EditFieldOnHistoricalIndexDoesNotPropagate(t *testing.T) {
	ctx := context.Background()
	history := historyOf(50000, 60000, 70000)
	emp := lockedEmployee(history, compensation.Snapshot{GrossSalary: 70000})

	deps := setupServiceTest(t, emp)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, true)

	resp, err := deps.service.EditField(ctx, emp.CompanyID.String(), emp.ID.String(), 0, salarychange.EditChangeFieldRequest{
		Field: "gross_salary",
		Value: 55000,
	})

	assert.NoError(t, err)
	assert.Equal(t, 55000.0, resp.Record.GrossSalary)
	assert.Equal(t, 70000.0, resp.Snapshot.GrossSalary)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestSalaryChangeService_EditFieldIndexOutOfRange(t *testing.T) {
	ctx := context.Background()
	emp := lockedEmployee(historyOf(50000), compensation.Snapshot{GrossSalary: 50000})

	deps := setupServiceTest(t, emp)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, false)

	_, err := deps.service.EditField(ctx, emp.CompanyID.String(), emp.ID.String(), 4, salarychange.EditChangeFieldRequest{
		Field: "gross_salary",
		Value: 1,
	})

	assert.ErrorIs(t, err, salarychangeerrors.ErrChangeIndexOutOfRange)
	assert.Nil(t, deps.repo.saved)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestSalaryChangeService_RemoveMiddleLeavesSnapshotAlone(t *testing.T) {
	ctx := context.Background()
	history := historyOf(50000, 60000, 70000)
	emp := lockedEmployee(history, compensation.Snapshot{GrossSalary: 70000})

	deps := setupServiceTest(t, emp)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, true)

	resp, err := deps.service.Remove(ctx, emp.CompanyID.String(), emp.ID.String(), 1)

	assert.NoError(t, err)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, 70000.0, resp.Snapshot.GrossSalary)
	assert.Equal(t, 50000.0, deps.repo.saved.CompensationHistory[0].GrossSalary)
	assert.Equal(t, 70000.0, deps.repo.saved.CompensationHistory[1].GrossSalary)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestSalaryChangeService_RemoveLastEntryRetainsSnapshot(t *testing.T) {
	ctx := context.Background()
	emp := lockedEmployee(historyOf(50000), compensation.Snapshot{GrossSalary: 50000})

	deps := setupServiceTest(t, emp)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, true)

	resp, err := deps.service.Remove(ctx, emp.CompanyID.String(), emp.ID.String(), 0)

	assert.NoError(t, err)
	assert.Equal(t, 0, resp.Count)
	// Ledger kosong: snapshot mempertahankan nilai terakhir, tidak di-reset.
	assert.Equal(t, 50000.0, resp.Snapshot.GrossSalary)
	assert.Equal(t, 50000.0, deps.repo.saved.GrossSalary)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestSalaryChangeService_List(t *testing.T) {
	ctx := context.Background()
	emp := lockedEmployee(historyOf(50000, 60000), compensation.Snapshot{GrossSalary: 60000})

	deps := setupServiceTest(t, emp)
	defer deps.db.Close()

	resp, err := deps.service.List(ctx, emp.CompanyID.String(), emp.ID.String())

	assert.NoError(t, err)
	assert.Len(t, resp, 2)
	assert.Equal(t, 0, resp[0].Index)
	assert.Equal(t, 1, resp[1].Index)
	assert.Equal(t, 60000.0, resp[1].GrossSalary)
}
