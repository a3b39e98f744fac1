package bulkentry

import (
	"github.com/gin-gonic/gin"

	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/middleware"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	lote := r.Group("/lancamento-multiplo")
	lote.Use(middleware.AuthMiddleware())
	{
		lote.POST("", middleware.RBACAuthorize(rbacService, "bulk", "create"), h.Apply)
	}
}
