package kpi

import (
	"github.com/gin-gonic/gin"

	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/middleware"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	kpis := r.Group("/kpis")
	kpis.Use(middleware.AuthMiddleware())
	{
		kpis.GET("", middleware.RBACAuthorize(rbacService, "kpi", "read"), h.Compute)
	}
}
