package employee

import (
	"github.com/gin-gonic/gin"

	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/middleware"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	funcionarios := r.Group("/funcionarios")
	funcionarios.Use(middleware.AuthMiddleware())
	{
		funcionarios.GET("", middleware.RBACAuthorize(rbacService, "employee", "read"), h.GetAll)
		funcionarios.GET("/options", middleware.RBACAuthorize(rbacService, "employee", "read"), h.GetOptions)
		funcionarios.GET("/:id", middleware.RBACAuthorize(rbacService, "employee", "read"), h.GetByID)
		funcionarios.POST("", middleware.RBACAuthorize(rbacService, "employee", "create"), h.Create)
		funcionarios.PUT("/:id", middleware.RBACAuthorize(rbacService, "employee", "update"), h.Update)
		funcionarios.POST("/:id/fotos", middleware.RBACAuthorize(rbacService, "employee", "update"), h.AddPhoto)
		funcionarios.DELETE("/:id/fotos", middleware.RBACAuthorize(rbacService, "employee", "update"), h.DeletePhotos)
	}
}
