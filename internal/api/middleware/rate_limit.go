package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/pkg/redis"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/pkg/response"
)

// RateLimit ventana fija en Redis por IP y ruta. Protege login,
// autorregistro y recuperación de contraseña contra fuerza bruta.
// Con rdb en nil o Redis caído la petición pasa (modo degradado).
func RateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate_limit:%s:%s", c.ClientIP(), c.FullPath())
		permitido, err := rdb.CheckRateLimit(c.Request.Context(), key, limit, window)
		if err != nil {
			c.Next()
			return
		}
		if !permitido {
			response.Error(c, http.StatusTooManyRequests, "Demasiados intentos, espere unos minutos")
			c.Abort()
			return
		}

		c.Next()
	}
}
