package adjustment

import (
	"github.com/gin-gonic/gin"

	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/middleware"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	custos := r.Group("/outros-custos")
	custos.Use(middleware.AuthMiddleware())
	{
		custos.GET("/funcionario/:funcionarioId", middleware.RBACAuthorize(rbacService, "adjustment", "read"), h.ListByEmployee)
		custos.POST("", middleware.RBACAuthorize(rbacService, "adjustment", "create"), h.Create)
		custos.PUT("/:id", middleware.RBACAuthorize(rbacService, "adjustment", "update"), h.Update)
		custos.DELETE("/:id", middleware.RBACAuthorize(rbacService, "adjustment", "delete"), h.Delete)
	}
}
