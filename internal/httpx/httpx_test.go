package httpx

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"accounts/internal/apperr"

	"github.com/gin-gonic/gin"
)

func TestBindJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		body     string
		wantOK   bool
		wantCode int
	}{
		{"valid", `{"name":"x"}`, true, http.StatusOK},
		{"empty body", ``, true, http.StatusOK},
		{"malformed", `{"name":`, false, http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.POST("/", func(c *gin.Context) {
				var dst struct {
					Name string `json:"name"`
				}
				if BindJSON(c, &dst) {
					c.JSON(http.StatusOK, gin.H{"name": dst.Name})
				}
			})

			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tc.wantCode {
				t.Errorf("Expected status %d, got %d", tc.wantCode, w.Code)
			}
			if !tc.wantOK && !strings.Contains(w.Body.String(), "Invalid JSON") {
				t.Errorf("Expected Invalid JSON error, got %s", w.Body.String())
			}
		})
	}
}

func TestError_MapsKinds(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		err      error
		wantCode int
		wantBody string
	}{
		{apperr.ErrUnauthorized, http.StatusUnauthorized, `{"error":"Unauthorized"}`},
		{apperr.ErrDuplicateEmail, http.StatusBadRequest, `{"error":"Email already registered"}`},
		{apperr.Operation("select", errors.New("secret detail")), http.StatusInternalServerError, `{"error":"Internal server error"}`},
	}

	for _, tc := range tests {
		r := gin.New()
		r.GET("/", func(c *gin.Context) { Error(c, logger, tc.err) })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		if w.Code != tc.wantCode {
			t.Errorf("Expected status %d, got %d", tc.wantCode, w.Code)
		}
		if w.Body.String() != tc.wantBody {
			t.Errorf("Expected body %s, got %s", tc.wantBody, w.Body.String())
		}
	}
}
