package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Throttle aplica un límite global de requests por segundo a todo el
// servidor. No encola: si no hay token disponible responde 429.
func Throttle(rps float64, burst int) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Demasiadas solicitudes. Inténtalo más tarde."})
			c.Abort()
			return
		}
		c.Next()
	}
}
