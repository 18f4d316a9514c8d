package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORS habilita el acceso desde el frontend. Abierto a cualquier origen:
// la autorización real pasa por el JWT, no por el origen.
func CORS() gin.HandlerFunc {
	headers := map[string]string{
		"Access-Control-Allow-Origin":   "*",
		"Access-Control-Allow-Methods":  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		"Access-Control-Allow-Headers":  "Authorization, Content-Type, X-Request-ID",
		"Access-Control-Expose-Headers": "X-Request-ID",
	}
	return func(c *gin.Context) {
		for k, v := range headers {
			c.Header(k, v)
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
