package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	IdempotencyCacheKey = "idempotency_cache_key"
	IdempotencyLockKey  = "idempotency_lock_key"

	idempotencyLockTTL = 30 * time.Second
)

// Idempotency protege POSTs (lançamento de ponto, lançamento em lote) contra
// reenvio duplicado. O lock curto expira sozinho se o processo morrer.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		actorID := c.GetString(ctxActorID)

		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), actorID, idempKey)
		lockKey := cacheKey + ":lock"

		if val, err := rdb.Get(c.Request.Context(), cacheKey).Result(); err == nil {
			var cached any
			_ = json.Unmarshal([]byte(val), &cached)
			c.AbortWithStatusJSON(http.StatusOK, gin.H{"ok": true, "data": cached})
			return
		}

		isNew, _ := rdb.SetNX(c.Request.Context(), lockKey, "locked", idempotencyLockTTL).Result()
		if !isNew {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"code":    "PROCESSING",
				"message": "Requisição em processamento, aguarde",
			})
			return
		}

		c.Set(IdempotencyCacheKey, cacheKey)
		c.Set(IdempotencyLockKey, lockKey)

		c.Next()
	}
}
