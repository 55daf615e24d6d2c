package transcribe

import (
	"net/http"

	"github.com/gin-gonic/gin"
	authapi "github.com/scribeworks/transcriber-api/api/auth"
	"github.com/scribeworks/transcriber-api/api/types"
)

// GetHistory returns the caller's past transcriptions
// @Summary Get transcription history
// @Description List the authenticated user's past transcription records, newest first
// @Tags transcribe
// @Security BearerAuth
// @Produce json
// @Success 200 {object} types.HistoryResponse
// @Failure 401 {object} types.ErrorResponse
// @Router /api/v1/transcribe/history [get]
func GetHistory(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := authapi.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: "Unauthorized"})
			return
		}

		records, err := deps.TranscriptionService.GetHistory(c.Request.Context(), userID)
		if err != nil {
			abortTranscribeError(c, err)
			return
		}

		c.JSON(http.StatusOK, types.HistoryResponse{
			Records: records,
			Count:   len(records),
		})
	}
}
