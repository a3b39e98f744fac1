package timerecord

import (
	"github.com/gin-gonic/gin"

	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/middleware"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	registros := r.Group("/registros-ponto")
	registros.Use(middleware.AuthMiddleware())
	{
		registros.GET("", middleware.RBACAuthorize(rbacService, "timerecord", "read"), h.List)
		registros.GET("/:funcionarioId/:data", middleware.RBACAuthorize(rbacService, "timerecord", "read"), h.Get)
		registros.POST("", middleware.RBACAuthorize(rbacService, "timerecord", "create"), h.Submit)
		registros.DELETE("/:id", middleware.RBACAuthorize(rbacService, "timerecord", "delete"), h.Delete)
		registros.POST("/exclusao-periodo", middleware.RBACAuthorize(rbacService, "timerecord", "delete"), h.DeleteByPeriod)
	}
}
