package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rpg-server/internal/interfaces"
	"rpg-server/internal/models"
)

// Context keys set by Auth.
const (
	UsernameKey   = "username"
	AccessUUIDKey = "access_uuid"
)

// Auth requires a valid bearer access token and stores the username and access uuid on the context.
func Auth(authService interfaces.AuthService, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
			log.Debug("Missing or malformed Authorization header", zap.String("path", c.Request.URL.Path))
			abortUnauthorized(c, models.ErrTokenInvalid)
			return
		}

		claims, err := authService.VerifyAccessToken(c.Request.Context(), strings.TrimSpace(parts[1]))
		if err != nil {
			log.Warn("Access token verification failed", zap.Error(err), zap.String("request_id", GetRequestID(c)))
			abortUnauthorized(c, err)
			return
		}

		c.Set(UsernameKey, claims.Subject)
		c.Set(AccessUUIDKey, claims.ID)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, err error) {
	resp := models.ErrorResponse{Code: models.ErrCodeTokenInvalid, Message: "Token is invalid or revoked"}
	if errors.Is(err, models.ErrTokenExpired) {
		resp = models.ErrorResponse{Code: models.ErrCodeTokenExpired, Message: "Token has expired"}
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, resp)
}

// GetUsername returns the authenticated username.
func GetUsername(c *gin.Context) (string, bool) {
	username := c.GetString(UsernameKey)
	return username, username != ""
}

// GetAccessUUID returns the id of the access token used for the request.
func GetAccessUUID(c *gin.Context) (string, bool) {
	id := c.GetString(AccessUUIDKey)
	return id, id != ""
}
