package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/scribeworks/transcriber-api/api/types"
	authservice "github.com/scribeworks/transcriber-api/internal/services/auth"
	apperrors "github.com/scribeworks/transcriber-api/pkg/errors"
)

// Handler manages auth endpoints
type Handler struct {
	authService *authservice.Service
}

// NewHandler creates a new auth handler
func NewHandler(authService *authservice.Service) *Handler {
	return &Handler{authService: authService}
}

// credentialsRequest is the body for register and login
type credentialsRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates a new account
// @Summary Register a new user
// @Description Create an account with email and password and receive a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body credentialsRequest true "Credentials"
// @Success 200 {object} types.AuthResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 409 {object} types.ErrorResponse
// @Router /api/v1/auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "email and password are required"})
		return
	}

	token, err := h.authService.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		abortAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.AuthResponse{Token: token, Message: "Registration successful."})
}

// Login verifies credentials and issues a token
// @Summary Log in
// @Description Exchange email and password for a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body credentialsRequest true "Credentials"
// @Success 200 {object} types.AuthResponse
// @Failure 401 {object} types.ErrorResponse
// @Router /api/v1/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "email and password are required"})
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		abortAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.AuthResponse{Token: token, Message: "Login successful"})
}

// Me returns current user info from the validated token
// @Summary Get current user
// @Description Get current user information from the bearer token
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 401 {object} types.ErrorResponse
// @Router /api/v1/auth/me [get]
func (h *Handler) Me(c *gin.Context) {
	claims, exists := c.Get("claims")
	if !exists {
		c.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: "Unauthorized"})
		return
	}

	authClaims := claims.(*authservice.Claims)
	c.JSON(http.StatusOK, gin.H{
		"user_id": authClaims.UserID,
		"email":   authClaims.Email,
		"role":    authClaims.Role,
	})
}

// AuthMiddleware validates bearer tokens and stores the caller's identity
// in the request context for downstream handlers
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := h.authService.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("claims", claims)
		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", string(claims.Role))

		c.Next()
	}
}

// CurrentUserID extracts the authenticated user's ID set by AuthMiddleware
func CurrentUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	userID, ok := value.(uint)
	return userID, ok
}

func abortAuthError(c *gin.Context, err error) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		c.JSON(appErr.GetHTTPCode(), types.ErrorResponse{Error: appErr.Message, Code: string(appErr.Code)})
		return
	}
	c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "internal server error"})
}
