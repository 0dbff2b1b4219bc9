package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"multiauth-service/internal/auth"
)

type loginRequest struct {
	Email       string `json:"email"`
	Mobile      string `json:"mobile"`
	Password    string `json:"password"`
	GoogleToken string `json:"googleToken"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	creds, err := auth.CredentialsFromRequest(
		req.Email,
		req.Mobile,
		req.Password,
		req.GoogleToken,
	)
	if err != nil {
		writeError(c, err)
		return
	}

	res, err := h.auth.Login(c.Request.Context(), creds)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
