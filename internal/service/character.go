package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rpg-server/internal/interfaces"
	"rpg-server/internal/models"
)

type characterService struct {
	repo   interfaces.CharacterRepository
	logger *zap.Logger
}

var _ interfaces.CharacterService = (*characterService)(nil)

func NewCharacterService(repo interfaces.CharacterRepository, logger *zap.Logger) interfaces.CharacterService {
	return &characterService{repo: repo, logger: logger.Named("CharacterService")}
}

func (s *characterService) Create(ctx context.Context, owner string, in models.CharacterInput) (*models.Character, error) {
	in, err := cleanInput(in)
	if err != nil {
		return nil, err
	}
	c := &models.Character{ID: uuid.New(), OwnerUsername: owner}
	applyInput(c, in)

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	s.logger.Info("Character created", zap.String("owner", owner), zap.String("characterID", c.ID.String()), zap.String("nome", c.Name))
	return c, nil
}

func (s *characterService) List(ctx context.Context, owner string) ([]models.Character, error) {
	list, err := s.repo.ListByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []models.Character{}
	}
	return list, nil
}

func (s *characterService) Get(ctx context.Context, owner string, id uuid.UUID) (*models.Character, error) {
	return s.repo.GetByID(ctx, owner, id)
}

// Update replaces every mutable field. The per-owner unique name rule still applies.
func (s *characterService) Update(ctx context.Context, owner string, id uuid.UUID, in models.CharacterInput) (*models.Character, error) {
	in, err := cleanInput(in)
	if err != nil {
		return nil, err
	}
	c, err := s.repo.GetByID(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	applyInput(c, in)
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	s.logger.Info("Character updated", zap.String("owner", owner), zap.String("characterID", id.String()))
	return c, nil
}

func (s *characterService) Delete(ctx context.Context, owner string, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, owner, id); err != nil {
		return err
	}
	s.logger.Info("Character deleted", zap.String("owner", owner), zap.String("characterID", id.String()))
	return nil
}

func cleanInput(in models.CharacterInput) (models.CharacterInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Role = strings.TrimSpace(in.Role)
	if in.Name == "" || in.Role == "" {
		return in, fmt.Errorf("%w: nome and role are required", models.ErrInvalidInput)
	}
	// A character becomes an encounter actor at full health, so both must be playable.
	if in.CurrentHP <= 0 || in.Stamina <= 0 {
		return in, fmt.Errorf("%w: hpAtual and stamina must be positive", models.ErrInvalidInput)
	}
	inventory := make([]string, 0, len(in.Inventory))
	for _, item := range in.Inventory {
		if item = strings.TrimSpace(item); item != "" {
			inventory = append(inventory, item)
		}
	}
	in.Inventory = inventory
	return in, nil
}

func applyInput(c *models.Character, in models.CharacterInput) {
	c.Name = in.Name
	c.Role = in.Role
	c.CurrentHP = in.CurrentHP
	c.Stamina = in.Stamina
	c.SpecialAttack = in.SpecialAttack
	c.Inventory = in.Inventory
	c.Image = in.Image
}
