package middleware

import (
	"crypto/subtle"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

func AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		adminKey := c.GetHeader("Admin-Key")
		secret := os.Getenv("ADMIN_SECRET_KEY")

		// Comparación en tiempo constante; una clave vacía nunca autoriza
		if secret == "" || subtle.ConstantTimeCompare([]byte(adminKey), []byte(secret)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Acceso no autorizado"})
			c.Abort()
			return
		}
		c.Next()
	}
}
