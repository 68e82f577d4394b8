package auth

import (
	"log/slog"
	"net/http"

	"accounts/internal/httpx"
	"accounts/internal/session"

	"github.com/gin-gonic/gin"
)

// Handler handles authentication-related HTTP requests
type Handler struct {
	service Service
	cookies session.CookieOptions
	logger  *slog.Logger
}

// NewHandler creates a new authentication handler
func NewHandler(service Service, cookies session.CookieOptions, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		cookies: cookies,
		logger:  logger,
	}
}

// Register handles POST /api/register
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if !httpx.BindJSON(c, &req) {
		return
	}

	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, UserResponse{
		Message: "Account created successfully",
		User:    user,
	})
}

// Login handles POST /api/login and sets the session cookie
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if !httpx.BindJSON(c, &req) {
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}

	session.SetCookie(c.Writer, result.Token, h.cookies)

	c.JSON(http.StatusOK, UserResponse{
		Message: "Login successful",
		User:    result.User,
	})
}

// Logout handles POST /api/logout. It succeeds with or without a session.
func (h *Handler) Logout(c *gin.Context) {
	token := session.TokenFromRequest(c.Request)
	msg := h.service.Logout(c.Request.Context(), token)

	session.ClearCookie(c.Writer, h.cookies)

	c.JSON(http.StatusOK, gin.H{"message": msg})
}

// RegisterRoutes mounts the authentication endpoints on rg
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/register", h.Register)
	rg.POST("/login", h.Login)
	rg.POST("/logout", h.Logout)
}
