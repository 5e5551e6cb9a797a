package overtime_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-attendance/internal/overtime"
	overtimeerrors "go-attendance/internal/overtime/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOvertimeService struct {
	createFn  func(ctx context.Context, req overtime.CreateOvertimeRequest) (overtime.OvertimeResponse, error)
	getAllFn  func(ctx context.Context, q overtime.ListOvertimeQuery) ([]overtime.OvertimeResponse, error)
	getByIDFn func(ctx context.Context, id string) (overtime.OvertimeResponse, error)
	decideFn  func(ctx context.Context, actorID, id string, req overtime.DecideOvertimeRequest) (overtime.OvertimeResponse, error)
}

func (f *fakeOvertimeService) Create(ctx context.Context, req overtime.CreateOvertimeRequest) (overtime.OvertimeResponse, error) {
	return f.createFn(ctx, req)
}
func (f *fakeOvertimeService) GetAll(ctx context.Context, q overtime.ListOvertimeQuery) ([]overtime.OvertimeResponse, error) {
	return f.getAllFn(ctx, q)
}
func (f *fakeOvertimeService) GetByID(ctx context.Context, id string) (overtime.OvertimeResponse, error) {
	return f.getByIDFn(ctx, id)
}
func (f *fakeOvertimeService) Decide(ctx context.Context, actorID, id string, req overtime.DecideOvertimeRequest) (overtime.OvertimeResponse, error) {
	return f.decideFn(ctx, actorID, id, req)
}

type envelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func TestOvertimeHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeOvertimeService{
		createFn: func(context.Context, overtime.CreateOvertimeRequest) (overtime.OvertimeResponse, error) {
			return overtime.OvertimeResponse{}, overtimeerrors.ErrEndNotAfterStart
		},
	}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := `{"employee_id":"x","overtime_date":"2024-01-01","start_time":"2024-01-01 20:00:00","end_time":"2024-01-01 18:00:00"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/overtimes", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	overtime.NewHandler(svc).Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	assert.Equal(t, "end_time must be after start_time", env.Error.Message)
}

func TestOvertimeHandler_DecideRequiresDecision(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/overtimes/1/decision", strings.NewReader(`{"approver_id":"a"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	overtime.NewHandler(&fakeOvertimeService{}).Decide(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
