package bulkentry

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/middleware"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/shared/apperror"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/shared/response"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Apply(c *gin.Context) {
	actor, err := middleware.ActorFrom(c)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Apply(c.Request.Context(), actor, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	status := http.StatusOK
	if resp.Falhas > 0 {
		status = http.StatusMultiStatus
	}
	response.Success(c, status, resp, nil)
}
