package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"quizgem/internal/dto"
	"quizgem/internal/service"
)

// Context keys set by RequireAuth for downstream handlers.
const (
	ContextAccountID   = "accountID"
	ContextAccessToken = "accessToken"
)

// RequireAuth validates the bearer session token, rejects requests whose
// account no longer exists and attaches a freshly re-issued token to the
// context (sliding expiry).
func RequireAuth(authSvc service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if header == "" || token == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Missing bearer token"})
			return
		}

		identity, fresh, err := authSvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, service.ErrUnauthenticated) {
				log.Error().Err(err).Msg("RequireAuth: authentication failed")
				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Authentication failed"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Invalid or expired token"})
			return
		}

		c.Set(ContextAccountID, identity.Subject)
		c.Set(ContextAccessToken, fresh)
		c.Next()
	}
}
