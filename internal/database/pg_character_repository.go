package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"rpg-server/internal/interfaces"
	"rpg-server/internal/models"
)

var _ interfaces.CharacterRepository = (*pgCharacterRepository)(nil)

const characterColumns = `id, owner_username, nome, role, hp_atual, stamina, ataque_especial, inventario, image, created_at, updated_at`

const (
	insertCharacterQuery = `
INSERT INTO characters (id, owner_username, nome, role, hp_atual, stamina, ataque_especial, inventario, image)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING created_at, updated_at`
	listCharactersQuery  = `SELECT ` + characterColumns + ` FROM characters WHERE owner_username = $1 ORDER BY created_at, nome`
	getCharacterQuery    = `SELECT ` + characterColumns + ` FROM characters WHERE owner_username = $1 AND id = $2`
	updateCharacterQuery = `
UPDATE characters
SET nome = $3, role = $4, hp_atual = $5, stamina = $6, ataque_especial = $7, inventario = $8, image = $9, updated_at = NOW()
WHERE owner_username = $1 AND id = $2
RETURNING updated_at`
	deleteCharacterQuery = `DELETE FROM characters WHERE owner_username = $1 AND id = $2`
)

type pgCharacterRepository struct {
	db     interfaces.DBTX
	logger *zap.Logger
}

// NewPgCharacterRepository creates a PostgreSQL-backed CharacterRepository.
func NewPgCharacterRepository(db interfaces.DBTX, logger *zap.Logger) interfaces.CharacterRepository {
	return &pgCharacterRepository{db: db, logger: logger.Named("PgCharacterRepo")}
}

func (r *pgCharacterRepository) Create(ctx context.Context, c *models.Character) error {
	err := r.db.QueryRow(ctx, insertCharacterQuery,
		c.ID, c.OwnerUsername, c.Name, c.Role, c.CurrentHP, c.Stamina, c.SpecialAttack, inventory(c.Inventory), c.Image,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return r.writeError("create", c, err)
	}
	return nil
}

func (r *pgCharacterRepository) ListByOwner(ctx context.Context, owner string) ([]models.Character, error) {
	var list []models.Character
	if err := pgxscan.Select(ctx, r.db, &list, listCharactersQuery, owner); err != nil {
		r.logger.Error("Failed to list characters", zap.Error(err), zap.String("owner", owner))
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}
	return list, nil
}

func (r *pgCharacterRepository) GetByID(ctx context.Context, owner string, id uuid.UUID) (*models.Character, error) {
	var c models.Character
	if err := pgxscan.Get(ctx, r.db, &c, getCharacterQuery, owner, id); err != nil {
		if pgxscan.NotFound(err) {
			return nil, models.ErrCharacterNotFound
		}
		r.logger.Error("Failed to get character", zap.Error(err), zap.String("owner", owner), zap.String("characterID", id.String()))
		return nil, fmt.Errorf("failed to get character: %w", err)
	}
	return &c, nil
}

func (r *pgCharacterRepository) Update(ctx context.Context, c *models.Character) error {
	err := r.db.QueryRow(ctx, updateCharacterQuery,
		c.OwnerUsername, c.ID, c.Name, c.Role, c.CurrentHP, c.Stamina, c.SpecialAttack, inventory(c.Inventory), c.Image,
	).Scan(&c.UpdatedAt)
	if err != nil {
		if pgxscan.NotFound(err) {
			return models.ErrCharacterNotFound
		}
		return r.writeError("update", c, err)
	}
	return nil
}

func (r *pgCharacterRepository) Delete(ctx context.Context, owner string, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, deleteCharacterQuery, owner, id)
	if err != nil {
		r.logger.Error("Failed to delete character", zap.Error(err), zap.String("characterID", id.String()))
		return fmt.Errorf("failed to delete character: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrCharacterNotFound
	}
	return nil
}

func (r *pgCharacterRepository) writeError(op string, c *models.Character, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		r.logger.Warn("Duplicate character name for owner", zap.String("owner", c.OwnerUsername), zap.String("nome", c.Name))
		return models.ErrCharacterAlreadyExists
	}
	r.logger.Error("Failed to "+op+" character", zap.Error(err), zap.String("characterID", c.ID.String()))
	return fmt.Errorf("failed to %s character: %w", op, err)
}

// inventory maps nil to an empty array for the NOT NULL column.
func inventory(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
