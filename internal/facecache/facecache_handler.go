package facecache

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

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

// Rebuild reconstrói a partição do administrador autenticado; SUPER_ADMIN
// pode pedir o cache inteiro com ?todos=true.
func (h *Handler) Rebuild(c *gin.Context) {
	actor, err := middleware.ActorFrom(c)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	var tenantID *uuid.UUID
	if c.Query("todos") != "true" {
		id := actor.ResolveTenant()
		tenantID = &id
	}

	stats, err := h.service.Rebuild(c.Request.Context(), tenantID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats, nil)
}
