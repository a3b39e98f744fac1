package employee

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

	var req CreateEmployeeRequest
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

	var req UpdateEmployeeRequest
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

func (h *Handler) GetAll(c *gin.Context) {
	actor, err := middleware.ActorFrom(c)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	onlyActive := c.DefaultQuery("ativos", "false") == "true"
	resp, err := h.service.GetAll(c.Request.Context(), actor, onlyActive)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetOptions(c *gin.Context) {
	actor, err := middleware.ActorFrom(c)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	resp, err := h.service.GetOptions(c.Request.Context(), actor)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	actor, err := middleware.ActorFrom(c)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) AddPhoto(c *gin.Context) {
	actor, err := middleware.ActorFrom(c)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	var req AddPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	if err := h.service.AddPhoto(c.Request.Context(), actor, c.Param("id"), req); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"status": "queued"}, nil)
}

func (h *Handler) DeletePhotos(c *gin.Context) {
	actor, err := middleware.ActorFrom(c)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	if err := h.service.DeletePhotos(c.Request.Context(), actor, c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"status": "removed"}, nil)
}
