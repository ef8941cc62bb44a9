package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/N0Xl0US/HMP-issue-fix/internal/http/response"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/apierr"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/ctxutil"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/logger"
	"github.com/N0Xl0US/HMP-issue-fix/internal/services"
)

type AuthMiddleware struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthMiddleware(log *logger.Logger, authService services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{log: log.With("middleware", "AuthMiddleware"), authService: authService}
}

// RequireAuth accepts only an Authorization: Bearer header.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return am.require(false)
}

// RequireStreamAuth also accepts ?token=, for EventSource clients that cannot
// set headers.
func (am *AuthMiddleware) RequireStreamAuth() gin.HandlerFunc {
	return am.require(true)
}

func (am *AuthMiddleware) require(allowQuery bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" && allowQuery {
			token = strings.TrimSpace(c.Query("token"))
		}
		if token == "" {
			am.abort(c, apierr.Unauthorized("missing bearer token"))
			return
		}
		ctx, err := am.authService.SetContextFromToken(c.Request.Context(), token)
		if err != nil {
			am.log.Debug("token rejected", "path", c.FullPath(), "error", err)
			am.abort(c, apierr.Unauthorized("invalid or expired token"))
			return
		}
		if _, ok := ctxutil.CurrentUserID(ctx); !ok {
			am.abort(c, apierr.Forbidden("token carries no user"))
			return
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func (am *AuthMiddleware) abort(c *gin.Context, err error) {
	response.RespondError(c, err)
	c.Abort()
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
