package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rahulserver/task-management-backend/internal/adapter/auth"
	"github.com/rahulserver/task-management-backend/internal/core/ports"
	"github.com/rahulserver/task-management-backend/pkg/apierrors"
)

const userIDKey = "user_id"

// Authenticate rejects requests without a valid bearer token and stores the
// caller's user id on the context.
func Authenticate(verifier ports.IdentityVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := verify(c, verifier)
		if err != nil {
			lang := GetLang(c)
			msg := apierrors.MsgInvalidToken
			if errors.Is(err, auth.ErrMissingCredential) {
				msg = apierrors.MsgUnauthorized
			}
			zap.L().Debug("request rejected by authentication", zap.String("path", c.Request.URL.Path), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierrors.CreateError(http.StatusUnauthorized, msg, lang))
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// OptionalAuthenticate lets anonymous requests through. A credential that is
// present must still be valid.
func OptionalAuthenticate(verifier ports.IdentityVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}
		Authenticate(verifier)(c)
	}
}

func GetUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

func verify(c *gin.Context, verifier ports.IdentityVerifier) (string, error) {
	token, err := auth.BearerToken(c.GetHeader("Authorization"))
	if err != nil {
		return "", err
	}
	return verifier.Verify(c.Request.Context(), token)
}
