package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"rpg-server/internal/mocks"
	"rpg-server/internal/models"
)

func newCharacters(t *testing.T) (*characterService, *mocks.MockCharacterRepository) {
	repo := &mocks.MockCharacterRepository{}
	t.Cleanup(func() { repo.AssertExpectations(t) })
	return NewCharacterService(repo, zap.NewNop()).(*characterService), repo
}

func TestCharacterService_Create(t *testing.T) {
	ctx := context.Background()
	svc, repo := newCharacters(t)

	repo.On("Create", ctx, mock.MatchedBy(func(c *models.Character) bool {
		return c.OwnerUsername == "maria" && c.Name == "Iara" && c.ID != uuid.Nil &&
			assert.ObjectsAreEqual([]string{"concha"}, c.Inventory)
	})).Return(nil).Once()

	c, err := svc.Create(ctx, "maria", models.CharacterInput{
		Name: " Iara ", Role: "mage", CurrentHP: 30, Stamina: 20, Inventory: []string{"concha", " "},
	})
	require.NoError(t, err)
	assert.Equal(t, "Iara", c.Name)
}

func TestCharacterService_CreateRejectsBadInput(t *testing.T) {
	svc, _ := newCharacters(t)

	_, err := svc.Create(context.Background(), "maria", models.CharacterInput{Name: "Iara", Role: " "})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	_, err = svc.Create(context.Background(), "maria", models.CharacterInput{Name: "Iara", Role: "mage", CurrentHP: -1, Stamina: 10})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestCharacterService_CreateRejectsUnplayableStats(t *testing.T) {
	svc, _ := newCharacters(t)

	for name, in := range map[string]models.CharacterInput{
		"zero hp":      {Name: "Iara", Role: "mage", CurrentHP: 0, Stamina: 10},
		"zero stamina": {Name: "Iara", Role: "mage", CurrentHP: 10, Stamina: 0},
		"zero both":    {Name: "Iara", Role: "mage"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), "maria", in)
			assert.ErrorIs(t, err, models.ErrInvalidInput)
		})
	}
}

func TestCharacter_AsActorFromValidInputIsPlayable(t *testing.T) {
	c := models.Character{Name: "Iara", Role: "mage", CurrentHP: 1, Stamina: 1}
	assert.NoError(t, c.AsActor().Validate("player"))
}

func TestCharacterService_CreateDuplicate(t *testing.T) {
	ctx := context.Background()
	svc, repo := newCharacters(t)
	repo.On("Create", ctx, mock.Anything).Return(models.ErrCharacterAlreadyExists).Once()

	_, err := svc.Create(ctx, "maria", models.CharacterInput{Name: "Iara", Role: "mage", CurrentHP: 30, Stamina: 20})
	assert.ErrorIs(t, err, models.ErrCharacterAlreadyExists)
}

func TestCharacterService_ListNeverNil(t *testing.T) {
	ctx := context.Background()
	svc, repo := newCharacters(t)
	repo.On("ListByOwner", ctx, "maria").Return(nil, nil).Once()

	list, err := svc.List(ctx, "maria")
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestCharacterService_Update(t *testing.T) {
	ctx := context.Background()
	svc, repo := newCharacters(t)
	id := uuid.New()

	repo.On("GetByID", ctx, "maria", id).Return(&models.Character{ID: id, OwnerUsername: "maria", Name: "Iara", Role: "mage"}, nil).Once()
	repo.On("Update", ctx, mock.MatchedBy(func(c *models.Character) bool {
		return c.ID == id && c.Name == "Iara Rainha" && c.CurrentHP == 50
	})).Return(nil).Once()

	c, err := svc.Update(ctx, "maria", id, models.CharacterInput{Name: "Iara Rainha", Role: "mage", CurrentHP: 50, Stamina: 10})
	require.NoError(t, err)
	assert.Equal(t, "Iara Rainha", c.Name)
}

func TestCharacterService_UpdateNotFound(t *testing.T) {
	ctx := context.Background()
	svc, repo := newCharacters(t)
	id := uuid.New()
	repo.On("GetByID", ctx, "maria", id).Return(nil, models.ErrCharacterNotFound).Once()

	_, err := svc.Update(ctx, "maria", id, models.CharacterInput{Name: "x", Role: "y", CurrentHP: 1, Stamina: 1})
	assert.ErrorIs(t, err, models.ErrCharacterNotFound)
}

func TestCharacterService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, repo := newCharacters(t)
	id := uuid.New()
	repo.On("Delete", ctx, "maria", id).Return(models.ErrCharacterNotFound).Once()

	assert.ErrorIs(t, svc.Delete(ctx, "maria", id), models.ErrCharacterNotFound)
}
