package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rpg-server/internal/engine"
	"rpg-server/internal/middleware"
	"rpg-server/internal/models"
)

func (h *Handler) startGame(c *gin.Context) {
	owner, ok := h.owner(c)
	if !ok {
		return
	}
	var req startGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request data: "+err.Error())
		return
	}

	if req.CharacterID != nil {
		character, err := h.characterService.Get(c.Request.Context(), owner, *req.CharacterID)
		if err != nil {
			h.handleServiceError(c, err)
			return
		}
		req.State.Player = character.AsActor()
	}

	out, err := h.encounterService.Start(c.Request.Context(), models.StartInput{State: req.State, Rules: req.Rules})
	if err != nil {
		h.logEncounterError(c, "start", err)
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newStartGameResponse(out))
}

func (h *Handler) turn(c *gin.Context) {
	if _, ok := h.owner(c); !ok {
		return
	}
	var req turnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request data: "+err.Error())
		return
	}

	out, err := h.encounterService.Turn(c.Request.Context(), models.TurnInput{
		Action: req.Action,
		State:  req.State,
		Rules:  req.Rules,
	})
	if err != nil {
		h.logEncounterError(c, "turn", err)
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) logEncounterError(c *gin.Context, operation string, err error) {
	fields := []zap.Field{
		zap.String("operation", operation),
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.Error(err),
	}
	if engine.IsClientError(err) {
		h.logger.Debug("Encounter request rejected", fields...)
		return
	}
	h.logger.Warn("Encounter request failed", fields...)
}
