package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rpg-server/internal/middleware"
	"rpg-server/internal/models"
)

func (h *Handler) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request data: "+err.Error())
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if len(req.Username) < minUsernameLength || len(req.Username) > maxUsernameLength {
		badRequest(c, fmt.Sprintf("Username length must be between %d and %d characters", minUsernameLength, maxUsernameLength))
		return
	}
	if !usernameRegex.MatchString(req.Username) {
		badRequest(c, "Username can only contain letters, numbers, dots, underscores and hyphens")
		return
	}
	if len(req.Password) < minPasswordLength || len(req.Password) > maxPasswordLength {
		badRequest(c, fmt.Sprintf("Password length must be between %d and %d characters", minPasswordLength, maxPasswordLength))
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.Username, strings.TrimSpace(req.DisplayName), req.Password)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.logger.Info("User signed up", zap.String("username", user.Username))
	c.JSON(http.StatusCreated, messageResponse{Msg: "Usuário registrado com sucesso"})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}

	tokens, err := h.authService.Login(c.Request.Context(), strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tokens)
}

func (h *Handler) logout(c *gin.Context) {
	accessUUID, ok := middleware.GetAccessUUID(c)
	if !ok {
		h.handleServiceError(c, models.ErrUnauthorized)
		return
	}
	if err := h.authService.Logout(c.Request.Context(), accessUUID); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, messageResponse{Msg: "Logout realizado com sucesso"})
}
