package rbac

import (
	"net/http"

	"go-attendance/internal/domain"
	"go-attendance/internal/shared/apperror"
	"go-attendance/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// Me lists the caller's effective permissions.
func (h *Handler) Me(c *gin.Context) {
	role := c.GetString("role")
	if role == "" {
		h.writeServiceError(c, apperror.ErrUnauthorized)
		return
	}

	resp, err := h.service.Permissions(role)
	if err != nil {
		h.writeServiceError(c, apperror.Wrap(err, apperror.CodeInternalError, "failed to read permissions", http.StatusInternalServerError))
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// Enforce answers whether the caller's role may perform an action, for
// clients that hide controls they cannot use.
func (h *Handler) Enforce(c *gin.Context) {
	var req struct {
		Resource string `json:"resource" binding:"required"`
		Action   string `json:"action" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	allowed, err := h.service.Enforce(domain.EnforceRequest{
		Role:     c.GetString("role"),
		Resource: req.Resource,
		Action:   req.Action,
	})
	if err != nil {
		h.writeServiceError(c, apperror.Wrap(err, apperror.CodeInternalError, "failed to evaluate policy", http.StatusInternalServerError))
		return
	}
	response.Success(c, http.StatusOK, domain.EnforceResponse{Allowed: allowed}, nil)
}
