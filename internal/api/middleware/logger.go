package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Logger registro estructurado de cada petición con zap
func Logger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		inicio := time.Now()
		ruta := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latencia := time.Since(inicio)
		status := c.Writer.Status()

		campos := []zap.Field{
			zap.Int("status", status),
			zap.String("metodo", c.Request.Method),
			zap.String("ruta", ruta),
			zap.String("query", query),
			zap.String("ip", c.ClientIP()),
			zap.Duration("latencia", latencia),
			zap.String("request_id", c.GetString(CtxRequestID)),
		}
		if len(c.Errors) > 0 {
			campos = append(campos, zap.String("errores", c.Errors.ByType(gin.ErrorTypePrivate).String()))
		}

		switch {
		case status >= 500:
			logger.Error("error al procesar la petición", campos...)
		case status >= 400:
			logger.Warn("error del cliente", campos...)
		default:
			logger.Info("petición completada", campos...)
		}
	}
}
