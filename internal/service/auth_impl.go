package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"rpg-server/internal/interfaces"
	"rpg-server/internal/models"
)

var (
	signupsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rpg_auth_signups_total",
		Help: "Number of accounts created.",
	})
	tokenVerificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rpg_auth_token_verifications_total",
		Help: "Access token verifications by result.",
	}, []string{"status"})
)

// AuthConfig is the part of the application config the auth service needs.
type AuthConfig struct {
	JWTSecret      string
	PasswordPepper string
	AccessTokenTTL time.Duration
}

type authServiceImpl struct {
	userRepo  interfaces.UserRepository
	tokenRepo interfaces.TokenRepository
	cfg       AuthConfig
	logger    *zap.Logger
	now       func() time.Time
}

var _ interfaces.AuthService = (*authServiceImpl)(nil)

// NewAuthService creates the account service.
func NewAuthService(userRepo interfaces.UserRepository, tokenRepo interfaces.TokenRepository, cfg AuthConfig, logger *zap.Logger) interfaces.AuthService {
	if cfg.AccessTokenTTL <= 0 {
		cfg.AccessTokenTTL = 24 * time.Hour
	}
	return &authServiceImpl{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		cfg:       cfg,
		logger:    logger.Named("AuthService"),
		now:       time.Now,
	}
}

// Register creates a new account.
func (s *authServiceImpl) Register(ctx context.Context, username, displayName, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	displayName = strings.TrimSpace(displayName)
	log := s.logger.With(zap.String("username", username))

	if username == "" || password == "" {
		log.Warn("Registration attempt with empty username or password")
		return nil, fmt.Errorf("%w: username and password are required", models.ErrInvalidInput)
	}
	if displayName == "" {
		displayName = username
	}

	existing, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil && !errors.Is(err, models.ErrUserNotFound) {
		log.Error("Error checking existing username during registration", zap.Error(err))
		return nil, fmt.Errorf("error checking existing username: %w", err)
	}
	if existing != nil {
		log.Warn("Registration attempt for existing username")
		return nil, models.ErrUserAlreadyExists
	}

	hashed, err := hashPassword(password, s.cfg.PasswordPepper)
	if err != nil {
		log.Error("Failed to hash password during registration", zap.Error(err))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		DisplayName:  displayName,
		PasswordHash: hashed,
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		if !errors.Is(err, models.ErrUserAlreadyExists) {
			log.Error("Failed to create user via repository", zap.Error(err))
		}
		return nil, err
	}

	signupsTotal.Inc()
	log.Info("User registered successfully", zap.String("userID", user.ID.String()))
	return user, nil
}

// Login checks the credentials and issues an access token recorded in the token store.
func (s *authServiceImpl) Login(ctx context.Context, username, password string) (*models.TokenDetails, error) {
	username = strings.TrimSpace(username)
	log := s.logger.With(zap.String("username", username))

	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			log.Warn("Login failed: user not found")
			return nil, models.ErrInvalidCredentials
		}
		log.Error("Login failed: error getting user from repository", zap.Error(err))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !checkPasswordHash(password, user.PasswordHash, s.cfg.PasswordPepper) {
		log.Warn("Login failed: invalid password")
		return nil, models.ErrInvalidCredentials
	}

	td, err := s.createToken(user.Username)
	if err != nil {
		log.Error("Failed to create access token", zap.Error(err))
		return nil, fmt.Errorf("failed to create token: %w", err)
	}
	if err := s.tokenRepo.SetToken(ctx, td.AccessUUID, user.Username, s.cfg.AccessTokenTTL); err != nil {
		log.Error("Failed to store access token", zap.Error(err))
		return nil, fmt.Errorf("failed to save token details: %w", err)
	}

	log.Info("User logged in successfully")
	return td, nil
}

// Logout revokes an access token. Unknown or expired tokens are not an error.
func (s *authServiceImpl) Logout(ctx context.Context, accessUUID string) error {
	log := s.logger.With(zap.String("accessUUID", accessUUID))
	if err := s.tokenRepo.DeleteToken(ctx, accessUUID); err != nil {
		log.Error("Failed to delete token during logout", zap.Error(err))
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	log.Info("Access token revoked")
	return nil
}

// VerifyAccessToken parses an access token and checks it is still recorded in the store.
func (s *authServiceImpl) VerifyAccessToken(ctx context.Context, tokenString string) (*models.Claims, error) {
	claims, err := s.verify(ctx, tokenString)
	status := "valid"
	switch {
	case errors.Is(err, models.ErrTokenExpired):
		status = "expired"
	case errors.Is(err, models.ErrTokenMalformed):
		status = "malformed"
	case errors.Is(err, models.ErrTokenInvalid):
		status = "invalid"
	case err != nil:
		status = "error"
	}
	tokenVerificationsTotal.WithLabelValues(status).Inc()
	return claims, err
}

func (s *authServiceImpl) verify(ctx context.Context, tokenString string) (*models.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			s.logger.Debug("Access token verification failed: expired")
			return nil, models.ErrTokenExpired
		}
		if errors.Is(err, jwt.ErrTokenMalformed) {
			s.logger.Warn("Access token verification failed: malformed")
			return nil, models.ErrTokenMalformed
		}
		s.logger.Warn("Failed to parse access token", zap.Error(err))
		return nil, models.ErrTokenInvalid
	}

	claims, ok := token.Claims.(*models.Claims)
	if !ok || !token.Valid || claims.Subject == "" || claims.ID == "" {
		s.logger.Warn("Access token verification failed (invalid claims)")
		return nil, models.ErrTokenInvalid
	}

	username, err := s.tokenRepo.GetUsernameByAccessUUID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, models.ErrTokenNotFound) {
			s.logger.Debug("Access token not found in store (revoked/logged out)", zap.String("accessUUID", claims.ID))
			return nil, models.ErrTokenInvalid
		}
		s.logger.Error("Error checking access token existence", zap.Error(err), zap.String("accessUUID", claims.ID))
		return nil, fmt.Errorf("error checking access token existence: %w", err)
	}
	if username != claims.Subject {
		s.logger.Warn("Access token subject does not match store", zap.String("accessUUID", claims.ID))
		return nil, models.ErrTokenInvalid
	}
	return claims, nil
}

func (s *authServiceImpl) createToken(username string) (*models.TokenDetails, error) {
	now := s.now()
	expires := now.Add(s.cfg.AccessTokenTTL)
	td := &models.TokenDetails{
		TokenType:  "bearer",
		AccessUUID: uuid.NewString(),
		AtExpires:  expires.Unix(),
	}

	claims := models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ID:        td.AccessUUID,
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}
	td.AccessToken = signed
	return td, nil
}

// applyPepper applies HMAC-SHA256 keyed with the pepper. Without a pepper the password is used as is.
func applyPepper(password, pepper string) []byte {
	if pepper == "" {
		return []byte(password)
	}
	h := hmac.New(sha256.New, []byte(pepper))
	h.Write([]byte(password))
	return h.Sum(nil)
}

// hashPassword generates a bcrypt hash of the peppered password.
func hashPassword(password, pepper string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword(applyPepper(password, pepper), bcrypt.DefaultCost)
	return string(bytes), err
}

// checkPasswordHash compares a plain text password with a stored hash.
func checkPasswordHash(password, hash, pepper string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), applyPepper(password, pepper)) == nil
}
