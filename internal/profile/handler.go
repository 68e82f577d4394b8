package profile

import (
	"log/slog"
	"net/http"

	"accounts/internal/auth"
	"accounts/internal/httpx"
	"accounts/internal/session"

	"github.com/gin-gonic/gin"
)

// Handler handles profile HTTP requests. Both endpoints need the session cookie.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// NewHandler creates a new profile handler
func NewHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Get handles GET /api/profile
func (h *Handler) Get(c *gin.Context) {
	p, err := h.service.GetProfile(c.Request.Context(), session.TokenFromRequest(c.Request))
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// Update handles PUT /api/profile
func (h *Handler) Update(c *gin.Context) {
	var req UpdateRequest
	if !httpx.BindJSON(c, &req) {
		return
	}

	p, err := h.service.UpdateProfile(c.Request.Context(), session.TokenFromRequest(c.Request), req)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, auth.UserResponse{
		Message: "Profile updated",
		User:    p,
	})
}

// RegisterRoutes mounts the profile endpoints on rg
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/profile", h.Get)
	rg.PUT("/profile", h.Update)
}
