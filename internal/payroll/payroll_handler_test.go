package payroll_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hcm/internal/payroll"
	payrollerrors "go-hcm/internal/payroll/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func mustDecodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakePayrollService struct {
	generateFn   func(ctx context.Context, companyID, actorID, employeeID string, req payroll.GeneratePayrollRequest) (payroll.PayrollRecordResponse, error)
	getAllFn     func(ctx context.Context, companyID, employeeID string) ([]payroll.PayrollRecordResponse, error)
	getByIDFn    func(ctx context.Context, companyID, id string) (payroll.PayrollRecordResponse, error)
	invalidateFn func(ctx context.Context, companyID, employeeID string) error
}

func (f *fakePayrollService) Generate(ctx context.Context, companyID, actorID, employeeID string, req payroll.GeneratePayrollRequest) (payroll.PayrollRecordResponse, error) {
	return f.generateFn(ctx, companyID, actorID, employeeID, req)
}

func (f *fakePayrollService) GetAllByEmployee(ctx context.Context, companyID, employeeID string) ([]payroll.PayrollRecordResponse, error) {
	return f.getAllFn(ctx, companyID, employeeID)
}

func (f *fakePayrollService) GetByID(ctx context.Context, companyID, id string) (payroll.PayrollRecordResponse, error) {
	return f.getByIDFn(ctx, companyID, id)
}

func (f *fakePayrollService) InvalidateEmployeeCache(ctx context.Context, companyID, employeeID string) error {
	if f.invalidateFn != nil {
		return f.invalidateFn(ctx, companyID, employeeID)
	}
	return nil
}

func performRequest(handler gin.HandlerFunc, companyID, method, target, body string, params ...gin.Param) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("company_id", companyID)
	c.Set("employee_id", "actor-1")
	c.Params = params
	handler(c)
	return w
}

func TestPayrollHandler_Generate(t *testing.T) {
	companyID := uuid.New().String()
	employeeID := uuid.New().String()

	svc := &fakePayrollService{
		generateFn: func(ctx context.Context, cid, actorID, id string, req payroll.GeneratePayrollRequest) (payroll.PayrollRecordResponse, error) {
			assert.Equal(t, companyID, cid)
			assert.Equal(t, "actor-1", actorID)
			assert.Equal(t, employeeID, id)
			return payroll.PayrollRecordResponse{
				ID:          uuid.New().String(),
				EmployeeID:  id,
				BasicSalary: 100000,
				Allowances:  25000,
				Tax:         5000,
				Deductions:  5000,
				NetPayable:  120000,
				Status:      "Processed",
			}, nil
		},
	}

	h := payroll.NewHandler(svc)
	w := performRequest(h.Generate, companyID, http.MethodPost, "/api/v1/employees/"+employeeID+"/payroll-records", "",
		gin.Param{Key: "id", Value: employeeID})

	assert.Equal(t, http.StatusCreated, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)

	var record payroll.PayrollRecordResponse
	assert.NoError(t, json.Unmarshal(env.Data, &record))
	assert.Equal(t, 120000.0, record.NetPayable)
	assert.Equal(t, "Processed", record.Status)
}

func TestPayrollHandler_GetAllByEmployee(t *testing.T) {
	companyID := uuid.New().String()
	employeeID := uuid.New().String()

	svc := &fakePayrollService{
		getAllFn: func(ctx context.Context, cid, id string) ([]payroll.PayrollRecordResponse, error) {
			return []payroll.PayrollRecordResponse{
				{ID: uuid.New().String(), Month: "March 2026", NetPayable: 120000},
				{ID: uuid.New().String(), Month: "February 2026", NetPayable: 114000},
			}, nil
		},
	}

	h := payroll.NewHandler(svc)
	w := performRequest(h.GetAllByEmployee, companyID, http.MethodGet, "/api/v1/employees/"+employeeID+"/payroll-records", "",
		gin.Param{Key: "id", Value: employeeID})

	assert.Equal(t, http.StatusOK, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)

	var records []payroll.PayrollRecordResponse
	assert.NoError(t, json.Unmarshal(env.Data, &records))
	assert.Len(t, records, 2)
}

func TestPayrollHandler_GetByIdNotFound(t *testing.T) {
	companyID := uuid.New().String()

	svc := &fakePayrollService{
		getByIDFn: func(ctx context.Context, cid, id string) (payroll.PayrollRecordResponse, error) {
			return payroll.PayrollRecordResponse{}, payrollerrors.ErrPayrollRecordNotFound
		},
	}

	h := payroll.NewHandler(svc)
	w := performRequest(h.GetById, companyID, http.MethodGet, "/api/v1/payroll-records/x", "",
		gin.Param{Key: "recordId", Value: "x"})

	assert.Equal(t, http.StatusNotFound, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Ok)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}
