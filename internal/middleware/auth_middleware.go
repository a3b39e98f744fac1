package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/shared/apperror"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/shared/response"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/tenant"
)

const (
	ctxActorID  = "actor_id"
	ctxTenantID = "tenant_id"
	ctxRole     = "role"
)

// AuthMiddleware valida o JWT e materializa o actor nas chaves do contexto.
// A resolução de tenant é feita aqui uma única vez; os serviços recebem o
// actor explicitamente e nunca leem estado ambiente.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		authHeader := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Token não encontrado", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})

		if err != nil || !token.Valid {
			msg := "Token inválido"
			if err != nil && strings.Contains(err.Error(), "expired") {
				msg = "Token expirado"
			}
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, msg, nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Claims inválidas", nil)
			c.Abort()
			return
		}

		actorID, _ := claims["user_id"].(string)
		tenantID, _ := claims["tenant_id"].(string)
		role, _ := claims["role"].(string)
		if actorID == "" || tenantID == "" {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Token sem identificação de tenant", nil)
			c.Abort()
			return
		}

		c.Set(ctxActorID, actorID)
		c.Set(ctxTenantID, tenantID)
		c.Set(ctxRole, strings.ToUpper(strings.TrimSpace(role)))

		c.Next()
	}
}

// ActorFrom reconstrói o actor a partir das chaves postas pelo AuthMiddleware.
func ActorFrom(c *gin.Context) (tenant.Actor, error) {
	actorID, err := uuid.Parse(c.GetString(ctxActorID))
	if err != nil {
		return tenant.Actor{}, apperror.ErrUnauthorized
	}
	tenantID, err := uuid.Parse(c.GetString(ctxTenantID))
	if err != nil {
		return tenant.Actor{}, apperror.ErrUnauthorized
	}
	return tenant.Actor{
		ID:       actorID,
		TenantID: tenantID,
		Role:     c.GetString(ctxRole),
	}, nil
}
