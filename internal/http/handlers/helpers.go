package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/N0Xl0US/HMP-issue-fix/internal/http/response"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/apierr"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/ctxutil"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/dbctx"
)

const dateLayout = "2006-01-02"

func dbcOf(c *gin.Context) dbctx.Context {
	return dbctx.Context{Ctx: c.Request.Context()}
}

// currentUser writes a 401 and returns false when the request carries no identity.
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	id, ok := ctxutil.CurrentUserID(c.Request.Context())
	if !ok {
		response.RespondError(c, apierr.Unauthorized("not authenticated"))
		return uuid.Nil, false
	}
	return id, true
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param(name)))
	if err != nil {
		response.RespondError(c, apierr.Invalid("invalid %s", name))
		return uuid.Nil, false
	}
	return id, true
}

// dateQuery parses name as YYYY-MM-DD, falling back to def when absent.
func dateQuery(c *gin.Context, name string, def time.Time) (time.Time, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return def, true
	}
	t, err := time.ParseInLocation(dateLayout, raw, time.UTC)
	if err != nil {
		response.RespondError(c, apierr.Invalid("%s must be YYYY-MM-DD", name))
		return time.Time{}, false
	}
	return t, true
}

func intQuery(c *gin.Context, name string, def int) (int, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		response.RespondError(c, apierr.Invalid("%s must be a non-negative integer", name))
		return 0, false
	}
	return n, true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.RespondStatus(c, http.StatusBadRequest, "invalid_request", err)
		return false
	}
	return true
}

func splitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return strings.Split(raw, ",")
}
