// Package handler exposes accounts, characters and encounters over HTTP.
package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rpg-server/internal/interfaces"
)

// Handler serves every API route.
type Handler struct {
	authService      interfaces.AuthService
	characterService interfaces.CharacterService
	encounterService interfaces.EncounterService
	logger           *zap.Logger
}

func NewHandler(
	authService interfaces.AuthService,
	characterService interfaces.CharacterService,
	encounterService interfaces.EncounterService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		authService:      authService,
		characterService: characterService,
		encounterService: encounterService,
		logger:           logger.Named("Handler"),
	}
}

// RegisterRoutes mounts the API. llmLimit guards the encounter endpoints and may be nil.
func (h *Handler) RegisterRoutes(router *gin.Engine, authMiddleware gin.HandlerFunc, llmLimit gin.HandlerFunc) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/signup", h.signup)
		authGroup.POST("/login", h.login)
		authGroup.POST("/logout", authMiddleware, h.logout)
	}

	characters := router.Group("/personagens", authMiddleware)
	{
		characters.POST("", h.createCharacter)
		characters.GET("", h.listCharacters)
		characters.GET("/:id", h.getCharacter)
		characters.PUT("/:id", h.updateCharacter)
		characters.DELETE("/:id", h.deleteCharacter)
	}

	llmGroup := router.Group("/llm", authMiddleware)
	if llmLimit != nil {
		llmGroup.Use(llmLimit)
	}
	{
		llmGroup.POST("/start_game", h.startGame)
		llmGroup.POST("/turn", h.turn)
	}
}
