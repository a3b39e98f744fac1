package meal

import (
	"github.com/gin-gonic/gin"

	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/middleware"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	alimentacao := r.Group("/alimentacao")
	alimentacao.Use(middleware.AuthMiddleware())
	{
		alimentacao.GET("/funcionario/:funcionarioId", middleware.RBACAuthorize(rbacService, "meal", "read"), h.ListByEmployee)
		alimentacao.POST("", middleware.RBACAuthorize(rbacService, "meal", "create"), h.Create)
		alimentacao.PUT("/:id", middleware.RBACAuthorize(rbacService, "meal", "update"), h.Update)
		alimentacao.DELETE("/:id", middleware.RBACAuthorize(rbacService, "meal", "delete"), h.Delete)
	}
}
