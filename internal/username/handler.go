package username

import (
	"errors"
	"net/http"

	"github.com/Abraxas-365/craftable/errx"
	"github.com/gin-gonic/gin"

	"multiauth-service/internal/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the CRUD surface on an authenticated group;
// the user id comes from the bearer token, never from the request.
func (h *Handler) RegisterRoutes(g *gin.RouterGroup) {
	g.GET("/username", h.get)
	g.POST("/username", h.create)
	g.PUT("/username", h.update)
	g.DELETE("/username", h.delete)
}

type request struct {
	Username string `json:"username" binding:"required"`
}

func (h *Handler) get(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c.Request.Context())
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	res, err := h.service.Get(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) create(c *gin.Context) {
	h.set(c, http.StatusCreated)
}

func (h *Handler) update(c *gin.Context) {
	h.set(c, http.StatusOK)
}

func (h *Handler) set(c *gin.Context, successStatus int) {
	userID, ok := middleware.UserIDFromContext(c.Request.Context())
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username cannot be blank"})
		return
	}

	res, err := h.service.Set(c.Request.Context(), userID, req.Username)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(successStatus, res)
}

func (h *Handler) delete(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c.Request.Context())
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

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
