package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/shared/response"
)

type clientLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

func (cl *clientLimiter) get(key string) *rate.Limiter {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	if l, ok := cl.limiters[key]; ok {
		return l
	}
	l := rate.NewLimiter(cl.rps, cl.burst)
	cl.limiters[key] = l
	return l
}

// RateLimit limita requisições por cliente (IP). Operações pesadas como o
// agregador de KPIs e o preview de exclusão em lote ficam atrás disto.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	cl := &clientLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(rps),
		burst:    burst,
	}

	return func(c *gin.Context) {
		if !cl.get(c.ClientIP()).Allow() {
			response.Error(c, http.StatusTooManyRequests, "RATE_LIMITED", "Muitas requisições, tente novamente", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
