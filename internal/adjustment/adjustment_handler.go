package adjustment

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

func (h *Handler) Create(c *gin.Context) {
	actor, err := middleware.ActorFrom(c)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	var req UpsertAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	actor, err := middleware.ActorFrom(c)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	var req UpsertAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Update(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListByEmployee(c *gin.Context) {
	actor, err := middleware.ActorFrom(c)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	resp, err := h.service.ListByEmployee(
		c.Request.Context(), actor,
		c.Param("funcionarioId"),
		c.Query("data_inicio"),
		c.Query("data_fim"),
	)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	actor, err := middleware.ActorFrom(c)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"excluido": true}, nil)
}
