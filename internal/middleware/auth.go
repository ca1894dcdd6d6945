package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"synergysphere/internal/apierrors"
	"synergysphere/internal/auth"
	"synergysphere/internal/session"
)

// Context keys set by JWTAuthMiddleware.
const (
	CtxUserID = "user_id"
	CtxEmail  = "email"
)

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}
	// Browsers cannot set headers on a WebSocket upgrade.
	return c.Query("token")
}

// JWTAuthMiddleware validates the bearer token and checks that it belongs to
// the user currently logged in to sess.
func JWTAuthMiddleware(issuer *auth.Issuer, sess *session.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := GetLang(c)

		tokenString := bearerToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgAuthorizationRequired, lang))
			return
		}

		claims, err := issuer.ValidateToken(tokenString)
		if err != nil {
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgInvalidToken, lang))
			return
		}

		current, ok := sess.CurrentUser()
		if !ok || current.ID != claims.UserID {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgSessionExpired, lang))
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxEmail, claims.Email)
		c.Next()
	}
}
