package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/shared/contextutil"
)

const requestIDHeader = "X-Request-ID"

// RequestID propaga (ou gera) o identificador da requisição e o injeta no
// context para os logs estruturados.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(requestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}

		ctx := contextutil.WithRequestID(c.Request.Context(), rid)
		c.Request = c.Request.WithContext(ctx)
		c.Writer.Header().Set(requestIDHeader, rid)

		c.Next()
	}
}
