package server

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const apiPrefix = "/api"

// RegisterRoutes builds the gin engine with every endpoint mounted
func (s *Server) RegisterRoutes() http.Handler {
	r := gin.New()

	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		s.logger.ErrorContext(c.Request.Context(), "Panic recovered",
			"path", c.Request.URL.Path,
			"request_id", c.GetString("request_id"),
			"panic", recovered,
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}))
	r.Use(RequestIDMiddleware())
	r.Use(LoggingMiddleware(s.logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Content-Type"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true, // the session cookie must cross origins
	}))
	r.Use(SessionContextMiddleware(s.sessions))

	r.GET("/health", s.healthHandler)

	api := r.Group(apiPrefix)
	s.auth.RegisterRoutes(api)
	s.profile.RegisterRoutes(api)

	r.NoRoute(s.fallbackHandler)

	return r
}

func (s *Server) healthHandler(c *gin.Context) {
	response := make(map[string]any)

	response["database"] = s.db.Health()
	response["sessions"] = map[string]any{
		"status": "up",
		"active": s.sessions.Count(),
	}

	c.JSON(http.StatusOK, response)
}

// fallbackHandler answers unknown API paths with JSON and serves the client
// bundle for everything else. Other misses get a plain-text 404.
func (s *Server) fallbackHandler(c *gin.Context) {
	path := c.Request.URL.Path

	if path == apiPrefix || strings.HasPrefix(path, apiPrefix+"/") {
		c.JSON(http.StatusNotFound, gin.H{"error": "API route not found"})
		return
	}

	method := c.Request.Method
	if s.static == nil || (method != http.MethodGet && method != http.MethodHead) || !s.static.exists(path) {
		c.String(http.StatusNotFound, "Not Found")
		return
	}

	// http.FileServer cleans the path, so ".." cannot escape the static root
	c.FileFromFS(path, s.static)
}
