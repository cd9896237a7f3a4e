package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CtxRequestID clave del identificador de petición en el contexto
const CtxRequestID = "request_id"

// HeaderRequestID encabezado de entrada/salida del identificador
const HeaderRequestID = "X-Request-ID"

// RequestID propaga el identificador del cliente o genera uno nuevo
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(CtxRequestID, id)
		c.Writer.Header().Set(HeaderRequestID, id)
		c.Next()
	}
}
