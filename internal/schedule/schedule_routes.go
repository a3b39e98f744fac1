package schedule

import (
	"github.com/gin-gonic/gin"

	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/middleware"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	horarios := r.Group("/horarios")
	horarios.Use(middleware.AuthMiddleware())
	{
		horarios.GET("", middleware.RBACAuthorize(rbacService, "schedule", "read"), h.GetAll)
		horarios.POST("", middleware.RBACAuthorize(rbacService, "schedule", "create"), h.Create)
		horarios.PUT("/:id", middleware.RBACAuthorize(rbacService, "schedule", "update"), h.Update)
		horarios.DELETE("/:id", middleware.RBACAuthorize(rbacService, "schedule", "delete"), h.Delete)
	}
}
