package attendance

import (
	"net/http"

	"go-attendance/internal/shared/apperror"
	"go-attendance/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("attendance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("attendance request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.Error(err),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// actorID is the employee bound to the token, falling back to the user id.
func actorID(c *gin.Context) string {
	if id := c.GetString("employee_id"); id != "" {
		return id
	}
	return c.GetString("user_id_validated")
}

func (h *Handler) Submit(c *gin.Context) {
	var req SubmitAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	status := http.StatusOK
	if resp.Created {
		status = http.StatusCreated
	}
	response.Success(c, status, resp, nil)
}

func (h *Handler) ClockIn(c *gin.Context) {
	var req ClockRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.ClockIn(c.Request.Context(), actorID(c), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ClockOut(c *gin.Context) {
	var req ClockRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.ClockOut(c.Request.Context(), actorID(c), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Get(c *gin.Context) {
	employeeID := c.Param("employee_id")
	date := c.Param("date")
	h.logger.Debug("http get attendance",
		zap.String("employee_id", employeeID),
		zap.String("record_date", date),
	)

	resp, err := h.service.Get(c.Request.Context(), employeeID, date)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	var q ListAttendanceQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.GetAll(c.Request.Context(), q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, meta := response.Page(c, resp)
	response.Success(c, http.StatusOK, page, &meta)
}

// bindOptionalJSON accepts an empty body.
func bindOptionalJSON(c *gin.Context, obj any) error {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil
	}
	return c.ShouldBindJSON(obj)
}
