package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rpg-server/internal/middleware"
	"rpg-server/internal/models"
)

// owner returns the authenticated username or aborts with 401.
func (h *Handler) owner(c *gin.Context) (string, bool) {
	username, ok := middleware.GetUsername(c)
	if !ok {
		h.handleServiceError(c, models.ErrUnauthorized)
	}
	return username, ok
}

func (h *Handler) characterID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.handleServiceError(c, models.ErrInvalidCharacterID)
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) createCharacter(c *gin.Context) {
	owner, ok := h.owner(c)
	if !ok {
		return
	}
	var in models.CharacterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "Invalid request data: "+err.Error())
		return
	}

	character, err := h.characterService.Create(c.Request.Context(), owner, in)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, character)
}

func (h *Handler) listCharacters(c *gin.Context) {
	owner, ok := h.owner(c)
	if !ok {
		return
	}
	characters, err := h.characterService.List(c.Request.Context(), owner)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, characters)
}

func (h *Handler) getCharacter(c *gin.Context) {
	owner, ok := h.owner(c)
	if !ok {
		return
	}
	id, ok := h.characterID(c)
	if !ok {
		return
	}
	character, err := h.characterService.Get(c.Request.Context(), owner, id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, character)
}

func (h *Handler) updateCharacter(c *gin.Context) {
	owner, ok := h.owner(c)
	if !ok {
		return
	}
	id, ok := h.characterID(c)
	if !ok {
		return
	}
	var in models.CharacterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "Invalid request data: "+err.Error())
		return
	}

	character, err := h.characterService.Update(c.Request.Context(), owner, id, in)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, character)
}

func (h *Handler) deleteCharacter(c *gin.Context) {
	owner, ok := h.owner(c)
	if !ok {
		return
	}
	id, ok := h.characterID(c)
	if !ok {
		return
	}
	if err := h.characterService.Delete(c.Request.Context(), owner, id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, messageResponse{Msg: "Personagem removido com sucesso"})
}
