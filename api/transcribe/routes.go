package transcribe

import (
	"github.com/gin-gonic/gin"
	authapi "github.com/scribeworks/transcriber-api/api/auth"
	"github.com/scribeworks/transcriber-api/api/types"
)

// RegisterRoutes registers the transcription endpoints. All routes
// require a valid bearer token.
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	authHandler := authapi.NewHandler(deps.AuthService)
	router.Use(authHandler.AuthMiddleware())

	router.POST("", Post(deps))
	router.GET("/history", GetHistory(deps))
}
