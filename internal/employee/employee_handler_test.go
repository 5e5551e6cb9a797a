package employee_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-attendance/internal/employee"
	employeeerrors "go-attendance/internal/employee/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeService struct {
	GetAllFn  func(ctx context.Context, q employee.ListEmployeesQuery) ([]employee.EmployeeResponse, error)
	LookupFn  func(ctx context.Context, q employee.LookupEmployeeQuery) (employee.EmployeeResponse, error)
	GetByIDFn func(ctx context.Context, id string) (employee.EmployeeResponse, error)
}

func (f *fakeEmployeeService) GetAll(ctx context.Context, q employee.ListEmployeesQuery) ([]employee.EmployeeResponse, error) {
	return f.GetAllFn(ctx, q)
}
func (f *fakeEmployeeService) Lookup(ctx context.Context, q employee.LookupEmployeeQuery) (employee.EmployeeResponse, error) {
	return f.LookupFn(ctx, q)
}
func (f *fakeEmployeeService) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	return f.GetByIDFn(ctx, id)
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func newTestContext(method, target string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, nil)
	return c, w
}

func TestEmployeeHandler_GetAll(t *testing.T) {
	t.Run("binds optional filters", func(t *testing.T) {
		deptID := uuid.NewString()
		svc := &fakeEmployeeService{
			GetAllFn: func(_ context.Context, q employee.ListEmployeesQuery) ([]employee.EmployeeResponse, error) {
				require.NotNil(t, q.DepartmentID)
				assert.Equal(t, deptID, *q.DepartmentID)
				assert.Nil(t, q.Status)
				return []employee.EmployeeResponse{
					{ID: uuid.NewString(), FullName: "Ana"},
					{ID: uuid.NewString(), FullName: "Budi"},
				}, nil
			},
		}

		c, w := newTestContext(http.MethodGet, "/employees?department_id="+deptID)
		employee.NewHandler(svc).GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w)
		assert.True(t, env.Ok)
		assert.Contains(t, string(env.Data), "Budi")
	})

	t.Run("malformed department id is rejected before the service", func(t *testing.T) {
		svc := &fakeEmployeeService{}

		c, w := newTestContext(http.MethodGet, "/employees?department_id=sales")
		employee.NewHandler(svc).GetAll(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_INPUT", decodeEnvelope(t, w).Error.Code)
	})
}

func TestEmployeeHandler_Lookup(t *testing.T) {
	t.Run("missing keys", func(t *testing.T) {
		svc := &fakeEmployeeService{
			LookupFn: func(_ context.Context, q employee.LookupEmployeeQuery) (employee.EmployeeResponse, error) {
				assert.Nil(t, q.ID)
				assert.Nil(t, q.EmployeeNumber)
				return employee.EmployeeResponse{}, employeeerrors.ErrLookupKeyRequired
			},
		}

		c, w := newTestContext(http.MethodGet, "/employees/lookup")
		employee.NewHandler(svc).Lookup(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w)
		assert.False(t, env.Ok)
		assert.Equal(t, "either id or employee_number is required", env.Error.Message)
	})

	t.Run("by number", func(t *testing.T) {
		svc := &fakeEmployeeService{
			LookupFn: func(_ context.Context, q employee.LookupEmployeeQuery) (employee.EmployeeResponse, error) {
				require.NotNil(t, q.EmployeeNumber)
				return employee.EmployeeResponse{EmployeeNumber: *q.EmployeeNumber, FullName: "Ana"}, nil
			},
		}

		c, w := newTestContext(http.MethodGet, "/employees/lookup?employee_number=EMP-001")
		employee.NewHandler(svc).Lookup(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "EMP-001")
	})
}

func TestEmployeeHandler_GetByID(t *testing.T) {
	svc := &fakeEmployeeService{
		GetByIDFn: func(_ context.Context, id string) (employee.EmployeeResponse, error) {
			return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		},
	}

	c, w := newTestContext(http.MethodGet, "/employees/x")
	c.Params = gin.Params{{Key: "id", Value: uuid.NewString()}}
	employee.NewHandler(svc).GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decodeEnvelope(t, w).Error.Code)
}
