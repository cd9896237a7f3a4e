package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response envoltura única de respuesta. Versiones anteriores del sistema
// mezclaban {success,data} con objetos y arreglos sueltos; aquí todos los
// endpoints responden con esta forma.
type Response struct {
	Success bool        `json:"success"`
	Msg     string      `json:"msg,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Pagination metadatos de paginación
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// PageData datos paginados
type PageData struct {
	Docs       interface{} `json:"docs"`
	Pagination Pagination  `json:"pagination"`
}

// ── Respuestas de éxito ──

// OK 200
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

// OKMsg 200 con mensaje
func OKMsg(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Msg: msg, Data: data})
}

// Created 201
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Success: true, Data: data})
}

// OKPage 200 paginado
func OKPage(c *gin.Context, docs interface{}, total int64, page, pageSize int) {
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: PageData{
			Docs: docs,
			Pagination: Pagination{
				Page:       page,
				PageSize:   pageSize,
				Total:      total,
				TotalPages: totalPages,
			},
		},
	})
}

// ── Respuestas de error ──

// Error respuesta de error genérica
func Error(c *gin.Context, httpStatus int, msg string) {
	c.JSON(httpStatus, Response{Success: false, Msg: msg})
}

// BadRequest 400
func BadRequest(c *gin.Context, msg string) {
	Error(c, http.StatusBadRequest, msg)
}

// Unauthorized 401
func Unauthorized(c *gin.Context, msg string) {
	Error(c, http.StatusUnauthorized, msg)
}

// Forbidden 403
func Forbidden(c *gin.Context, msg string) {
	Error(c, http.StatusForbidden, msg)
}

// NotFound 404
func NotFound(c *gin.Context, msg string) {
	Error(c, http.StatusNotFound, msg)
}

// InternalError 500, el detalle queda en los logs, nunca en la respuesta
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Error interno del servidor")
}
