package handler

import (
	"errors"
	"net/http"

	"github.com/Abraxas-365/craftable/errx"
	"github.com/gin-gonic/gin"

	"multiauth-service/internal/auth"
	"multiauth-service/internal/auth/provider"
)

type Handler struct {
	auth      *auth.Service
	providers *provider.Registry
}

func NewHandler(authService *auth.Service, registry *provider.Registry) *Handler {
	return &Handler{
		auth:      authService,
		providers: registry,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/api/auth/register", h.Register)
	r.POST("/api/auth/login", h.Login)
	r.GET("/oauth/login/:provider", h.oauthLogin)
	r.GET("/oauth/callback/:provider", h.oauthCallback)
}

// writeError renders the structured error with its mapped HTTP status:
// 400 validation, 401 authentication, 404 not found, 409 conflict.
func writeError(c *gin.Context, err error) {
	var xerr *errx.Error
	if errors.As(err, &xerr) {
		status := xerr.HTTPStatus
		if status == 0 {
			status = http.StatusInternalServerError
		}
		c.JSON(status, xerr)
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
