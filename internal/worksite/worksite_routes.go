package worksite

import (
	"github.com/gin-gonic/gin"

	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/middleware"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	obras := r.Group("/obras")
	obras.Use(middleware.AuthMiddleware())
	{
		obras.GET("", middleware.RBACAuthorize(rbacService, "worksite", "read"), h.GetAll)
		obras.GET("/:id", middleware.RBACAuthorize(rbacService, "worksite", "read"), h.GetByID)
		obras.POST("", middleware.RBACAuthorize(rbacService, "worksite", "create"), h.Create)
		obras.PUT("/:id", middleware.RBACAuthorize(rbacService, "worksite", "update"), h.Update)
	}
}
