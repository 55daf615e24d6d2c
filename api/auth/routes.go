package auth

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers auth endpoints on the given group
func RegisterRoutes(router *gin.RouterGroup, handler *Handler) {
	router.POST("/register", handler.Register)
	router.POST("/login", handler.Login)
	router.GET("/me", handler.AuthMiddleware(), handler.Me)
}
