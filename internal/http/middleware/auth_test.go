package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/N0Xl0US/HMP-issue-fix/internal/data/repos/testutil"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/ctxutil"
	"github.com/N0Xl0US/HMP-issue-fix/internal/services"
)

// stubAuth accepts "good" for userID and "anon" as a valid token with no user.
type stubAuth struct {
	services.AuthService
	userID uuid.UUID
}

func (s stubAuth) SetContextFromToken(ctx context.Context, token string) (context.Context, error) {
	switch token {
	case "good":
		return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{TokenString: token, UserID: s.userID}), nil
	case "anon":
		return ctx, nil
	default:
		return nil, errors.New("bad token")
	}
}

func authRouter(t *testing.T, userID uuid.UUID) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	am := NewAuthMiddleware(testutil.Logger(t), stubAuth{userID: userID})
	echo := func(c *gin.Context) {
		id, _ := ctxutil.CurrentUserID(c.Request.Context())
		c.String(http.StatusOK, id.String())
	}
	r := gin.New()
	r.GET("/me", am.RequireAuth(), echo)
	r.GET("/stream", am.RequireStreamAuth(), echo)
	return r
}

func TestRequireAuth(t *testing.T) {
	userID := uuid.New()
	r := authRouter(t, userID)

	cases := []struct {
		name   string
		path   string
		header string
		status int
	}{
		{"bearer header", "/me", "Bearer good", http.StatusOK},
		{"scheme is case-insensitive", "/me", "bearer good", http.StatusOK},
		{"missing header", "/me", "", http.StatusUnauthorized},
		{"wrong scheme", "/me", "Basic good", http.StatusUnauthorized},
		{"rejected token", "/me", "Bearer nope", http.StatusUnauthorized},
		{"token without user", "/me", "Bearer anon", http.StatusForbidden},
		{"query token ignored on api routes", "/me?token=good", "", http.StatusUnauthorized},
		{"query token accepted on stream", "/stream?token=good", "", http.StatusOK},
		{"header still works on stream", "/stream", "Bearer good", http.StatusOK},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tc.status, rec.Code, rec.Body.String())
			if tc.status == http.StatusOK {
				assert.Equal(t, userID.String(), rec.Body.String())
			} else {
				assert.Contains(t, rec.Body.String(), `"code"`)
			}
		})
	}
}
