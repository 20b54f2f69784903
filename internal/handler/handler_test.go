package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"rpg-server/internal/middleware"
	"rpg-server/internal/mocks"
	"rpg-server/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	router     *gin.Engine
	auth       *mocks.MockAuthService
	characters *mocks.MockCharacterService
	encounters *mocks.MockEncounterService
}

// fakeAuth authenticates every request as "joao" with access uuid "jti-1".
func fakeAuth(c *gin.Context) {
	c.Set(middleware.UsernameKey, "joao")
	c.Set(middleware.AccessUUIDKey, "jti-1")
	c.Next()
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		router:     gin.New(),
		auth:       new(mocks.MockAuthService),
		characters: new(mocks.MockCharacterService),
		encounters: new(mocks.MockEncounterService),
	}
	h := NewHandler(env.auth, env.characters, env.encounters, zap.NewNop())
	h.RegisterRoutes(env.router, fakeAuth, nil)
	t.Cleanup(func() {
		env.auth.AssertExpectations(t)
		env.characters.AssertExpectations(t)
		env.encounters.AssertExpectations(t)
	})
	return env
}

func (e *testEnv) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

var (
	player = models.Actor{Name: "Zé", HP: 100, MaxHP: 100, Stamina: 50, MaxStamina: 50}
	enemy  = models.Actor{Name: "Curupira", HP: 80, MaxHP: 80, Stamina: 40, MaxStamina: 40}
)

func TestSignup(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		env := newTestEnv(t)
		env.auth.On("Register", mock.Anything, "joao", "João", "segredo123").
			Return(&models.User{Username: "joao"}, nil).Once()

		w := env.do(http.MethodPost, "/auth/signup", signupRequest{Username: " joao ", DisplayName: "João", Password: "segredo123"})
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"msg":"Usuário registrado com sucesso"}`, w.Body.String())
	})

	t.Run("duplicate is a bad request", func(t *testing.T) {
		env := newTestEnv(t)
		env.auth.On("Register", mock.Anything, "joao", "João", "segredo123").
			Return(nil, fmt.Errorf("create: %w", models.ErrUserAlreadyExists)).Once()

		w := env.do(http.MethodPost, "/auth/signup", signupRequest{Username: "joao", DisplayName: "João", Password: "segredo123"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, models.ErrCodeDuplicateUser, decodeError(t, w).Code)
	})

	for name, req := range map[string]signupRequest{
		"short username": {Username: "jo", DisplayName: "x", Password: "segredo123"},
		"bad characters": {Username: "jo ão", DisplayName: "x", Password: "segredo123"},
		"short password": {Username: "joao", DisplayName: "x", Password: "123"},
		"missing name":   {Username: "joao", Password: "segredo123"},
	} {
		t.Run(name, func(t *testing.T) {
			env := newTestEnv(t)
			w := env.do(http.MethodPost, "/auth/signup", req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestLogin(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		env := newTestEnv(t)
		env.auth.On("Login", mock.Anything, "joao", "segredo123").
			Return(&models.TokenDetails{AccessToken: "tok", TokenType: "bearer", AccessUUID: "jti"}, nil).Once()

		w := env.do(http.MethodPost, "/auth/login", loginRequest{Username: "joao", Password: "segredo123"})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"access_token":"tok","token_type":"bearer"}`, w.Body.String())
	})

	t.Run("wrong credentials", func(t *testing.T) {
		env := newTestEnv(t)
		env.auth.On("Login", mock.Anything, "joao", "nope").Return(nil, models.ErrInvalidCredentials).Once()

		w := env.do(http.MethodPost, "/auth/login", loginRequest{Username: "joao", Password: "nope"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, models.ErrCodeWrongCredentials, decodeError(t, w).Code)
	})
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)
	env.auth.On("Logout", mock.Anything, "jti-1").Return(nil).Once()

	w := env.do(http.MethodPost, "/auth/logout", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCharacters(t *testing.T) {
	id := uuid.New()
	stored := &models.Character{ID: id, OwnerUsername: "joao", Name: "Zé", Role: "caçador", CurrentHP: 100, Stamina: 50}
	input := models.CharacterInput{Name: "Zé", Role: "caçador", CurrentHP: 100, Stamina: 50}

	t.Run("create", func(t *testing.T) {
		env := newTestEnv(t)
		env.characters.On("Create", mock.Anything, "joao", input).Return(stored, nil).Once()

		w := env.do(http.MethodPost, "/personagens", input)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), id.String())
	})

	t.Run("create duplicate", func(t *testing.T) {
		env := newTestEnv(t)
		env.characters.On("Create", mock.Anything, "joao", input).Return(nil, models.ErrCharacterAlreadyExists).Once()

		w := env.do(http.MethodPost, "/personagens", input)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, models.ErrCodeDuplicateName, decodeError(t, w).Code)
	})

	t.Run("create negative hp fails binding", func(t *testing.T) {
		env := newTestEnv(t)
		w := env.do(http.MethodPost, "/personagens", `{"nome":"Zé","role":"x","hpAtual":-1}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("create with zero hp or stamina fails binding", func(t *testing.T) {
		env := newTestEnv(t)
		for _, body := range []string{
			`{"nome":"Zé","role":"x","hpAtual":0,"stamina":5}`,
			`{"nome":"Zé","role":"x","hpAtual":5,"stamina":0}`,
		} {
			w := env.do(http.MethodPost, "/personagens", body)
			assert.Equal(t, http.StatusBadRequest, w.Code, body)
		}
	})

	t.Run("list", func(t *testing.T) {
		env := newTestEnv(t)
		env.characters.On("List", mock.Anything, "joao").Return([]models.Character{*stored}, nil).Once()

		w := env.do(http.MethodGet, "/personagens", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		var got []models.Character
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "Zé", got[0].Name)
	})

	t.Run("get invalid id", func(t *testing.T) {
		env := newTestEnv(t)
		w := env.do(http.MethodGet, "/personagens/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("get not found", func(t *testing.T) {
		env := newTestEnv(t)
		env.characters.On("Get", mock.Anything, "joao", id).Return(nil, models.ErrCharacterNotFound).Once()

		w := env.do(http.MethodGet, "/personagens/"+id.String(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, models.ErrCodeNotFound, decodeError(t, w).Code)
	})

	t.Run("update", func(t *testing.T) {
		env := newTestEnv(t)
		env.characters.On("Update", mock.Anything, "joao", id, input).Return(stored, nil).Once()

		w := env.do(http.MethodPut, "/personagens/"+id.String(), input)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("delete not found", func(t *testing.T) {
		env := newTestEnv(t)
		env.characters.On("Delete", mock.Anything, "joao", id).Return(models.ErrCharacterNotFound).Once()

		w := env.do(http.MethodDelete, "/personagens/"+id.String(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestStartGame(t *testing.T) {
	state := models.GameState{Player: player, Enemy: enemy, Chapter: "1"}
	outcome := &models.TurnOutcome{
		Narrative: []string{"A mata escurece."},
		Choices:   []string{"Atacar", "Fugir"},
		Status:    models.Status{Player: player, Enemy: enemy},
		Player:    player,
		Enemy:     enemy,
	}

	t.Run("ok", func(t *testing.T) {
		env := newTestEnv(t)
		env.encounters.On("Start", mock.Anything, models.StartInput{State: state, Rules: []string{"sem magia"}}).
			Return(outcome, nil).Once()

		w := env.do(http.MethodPost, "/llm/start_game", startGameRequest{State: state, Rules: []string{"sem magia"}})
		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Contains(t, body, "narrativa")
		assert.Contains(t, body, "escolhas")
		assert.Contains(t, body, "status")
		assert.NotContains(t, body, "turn_result")
	})

	t.Run("stored character becomes the player", func(t *testing.T) {
		env := newTestEnv(t)
		id := uuid.New()
		character := &models.Character{ID: id, Name: "Maria", Role: "benzedeira", CurrentHP: 70, Stamina: 30}
		env.characters.On("Get", mock.Anything, "joao", id).Return(character, nil).Once()
		env.encounters.On("Start", mock.Anything, mock.MatchedBy(func(in models.StartInput) bool {
			return in.State.Player.Name == "Maria" && in.State.Player.MaxHP == 70 && in.State.Player.Class == "benzedeira"
		})).Return(outcome, nil).Once()

		w := env.do(http.MethodPost, "/llm/start_game", startGameRequest{State: state, CharacterID: &id})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("invalid state", func(t *testing.T) {
		env := newTestEnv(t)
		env.encounters.On("Start", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("%w: player: nome is required", models.ErrInvalidGameState)).Once()

		w := env.do(http.MethodPost, "/llm/start_game", startGameRequest{State: models.GameState{Enemy: enemy}})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, models.ErrCodeValidation, decodeError(t, w).Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		env := newTestEnv(t)
		w := env.do(http.MethodPost, "/llm/start_game", `{"state":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTurn(t *testing.T) {
	state := models.GameState{Player: player, Enemy: enemy, Chapter: "1", Narrative: "..."}

	t.Run("game over", func(t *testing.T) {
		env := newTestEnv(t)
		dead := enemy
		dead.HP = 0
		out := &models.TurnOutcome{
			Narrative:  []string{"O Curupira cai."},
			Choices:    []string{"Continuar"},
			Status:     models.Status{Player: player, Enemy: dead},
			TurnResult: models.TurnResult{Enemy: models.ActorDelta{HPChange: -80}},
			Player:     player,
			Enemy:      dead,
			GameOver:   &models.GameOver{GameOver: true, Winner: models.SidePlayer, Loser: models.SideEnemy},
		}
		env.encounters.On("Turn", mock.Anything, models.TurnInput{Action: "atacar", State: state}).Return(out, nil).Once()

		w := env.do(http.MethodPost, "/llm/turn", turnRequest{Action: "atacar", State: state})
		require.Equal(t, http.StatusOK, w.Code)

		var got models.TurnOutcome
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		require.NotNil(t, got.GameOver)
		assert.Equal(t, models.SidePlayer, got.GameOver.Winner)
		assert.Equal(t, -80, got.TurnResult.Enemy.HPChange)
	})

	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{models.ErrInvalidAction, http.StatusBadRequest, models.ErrCodeValidation},
		{models.ErrEncounterConcluded, http.StatusConflict, models.ErrCodeEncounterOver},
		{fmt.Errorf("turn: %w", models.ErrIncompleteOutcome), http.StatusBadGateway, models.ErrCodeProviderContract},
		{fmt.Errorf("render: boom"), http.StatusInternalServerError, models.ErrCodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			env := newTestEnv(t)
			env.encounters.On("Turn", mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			w := env.do(http.MethodPost, "/llm/turn", turnRequest{Action: "x", State: state})
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCode, decodeError(t, w).Code)
		})
	}
}

func TestRoutesRequireAuth(t *testing.T) {
	router := gin.New()
	h := NewHandler(new(mocks.MockAuthService), new(mocks.MockCharacterService), new(mocks.MockEncounterService), zap.NewNop())
	deny := func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Code: models.ErrCodeTokenInvalid})
	}
	h.RegisterRoutes(router, deny, nil)

	for _, route := range []struct{ method, path string }{
		{http.MethodPost, "/auth/logout"},
		{http.MethodGet, "/personagens"},
		{http.MethodPost, "/llm/start_game"},
		{http.MethodPost, "/llm/turn"},
	} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(route.method, route.path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, route.path)
	}
}
