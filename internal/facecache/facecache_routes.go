package facecache

import (
	"github.com/gin-gonic/gin"

	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/middleware"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	cache := r.Group("/cache-facial")
	cache.Use(middleware.AuthMiddleware())
	{
		cache.POST("/rebuild", middleware.RBACAuthorize(rbacService, "facecache", "rebuild"), h.Rebuild)
	}
}
