package middleware

import (
	"context"
	"lexdraft/internal/auth"
	"lexdraft/internal/domain"
	"lexdraft/internal/errors"
	"lexdraft/internal/session"
	"strings"

	"github.com/gin-gonic/gin"
)

type UserProvider interface {
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
}

type Auth struct {
	UserService UserProvider
}

// AuthMiddleWare resolves the bearer token into a session.User. Refresh
// tokens are rejected here; they are only good for /auth/refresh.
func (m *Auth) AuthMiddleWare() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")
		if authHeader == "" {
			ctx.Error(errors.Unauthorized("Authorization is not found!", nil))
			ctx.Abort()
			return
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")

		parsedToken, err := auth.VerifyJWT(token)
		if err != nil {
			ctx.Error(errors.Unauthorized("Invalid token!", err))
			ctx.Abort()
			return
		}

		userID, tokenVersion, kind, err := auth.GetDataFromToken(parsedToken)
		if err != nil || kind != "access" {
			ctx.Error(errors.Unauthorized("Invalid token!", err))
			ctx.Abort()
			return
		}

		user, err := m.UserService.GetUserByID(ctx.Request.Context(), userID)
		if err != nil {
			ctx.Error(errors.Unauthorized("Invalid User ID!", err))
			ctx.Abort()
			return
		}

		if !user.IsActive {
			ctx.Error(errors.Unauthorized("User is not active", nil))
			ctx.Abort()
			return
		}

		// a logout bumps the version and kills every token issued before
		if user.TokenVersion != tokenVersion {
			ctx.Error(errors.Unauthorized("Invalid token version!", nil))
			ctx.Abort()
			return
		}

		current := &session.User{
			ID:       user.ID,
			Email:    user.Email,
			FullName: user.FullName,
		}
		ctx.Request = ctx.Request.WithContext(session.WithUser(ctx.Request.Context(), current))
		ctx.Set(session.GinKey, current)
		ctx.Set("user_id", user.ID)
		ctx.Set("jwt_token", token)
		ctx.Next()
	}
}
