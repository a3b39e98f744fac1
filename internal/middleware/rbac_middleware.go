package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/rbac"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/shared/apperror"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/shared/response"
)

// RBACAuthorize checa (papel, recurso, ação) no enforcer. Roda depois do
// AuthMiddleware, que já validou o token e pôs o papel no contexto.
func RBACAuthorize(service rbac.Service, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ctxRole)
		if role == "" {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Contexto de autenticação ausente", nil)
			c.Abort()
			return
		}

		allowed, err := service.Enforce(rbac.EnforceRequest{
			Role:     role,
			Resource: resource,
			Action:   action,
		})
		if err != nil {
			response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, "Falha na autorização", nil)
			c.Abort()
			return
		}

		if !allowed {
			response.Error(c, http.StatusForbidden, apperror.CodeForbidden, "Permissão negada", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
