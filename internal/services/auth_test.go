package services

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/N0Xl0US/HMP-issue-fix/internal/data/codestore"
	"github.com/N0Xl0US/HMP-issue-fix/internal/data/repos/testutil"
	types "github.com/N0Xl0US/HMP-issue-fix/internal/domain"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/apierr"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/ctxutil"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/dbctx"
)

type sentMail struct {
	subject, recipient, body string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(_ context.Context, subject, recipient, body string) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{subject, recipient, body})
	return nil
}

var codePattern = regexp.MustCompile(`\b\d{6}\b`)

func (m *fakeMailer) lastCode(t *testing.T) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.sent)
	code := codePattern.FindString(m.sent[len(m.sent)-1].body)
	require.NotEmpty(t, code)
	return code
}

func newAuth(t *testing.T, h *harness, mailer Mailer) (AuthService, *codestore.MemoryStore) {
	t.Helper()
	store := codestore.NewMemoryStore(h.log)
	return NewAuthService(h.tx, h.log, h.users, store, mailer, h.auditService(), "test-secret", time.Hour), store
}

func TestAuth_SignupVerifyLogin(t *testing.T) {
	h := newHarness(t)
	mailer := &fakeMailer{}
	svc, _ := newAuth(t, h, mailer)

	err := svc.Signup(h.ctx, SignupInput{Name: "Ada", Email: " Ada@Example.com ", Password: "correct horse"})
	require.NoError(t, err)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "Verify Your Email", mailer.sent[0].subject)
	assert.Equal(t, "ada@example.com", mailer.sent[0].recipient)

	_, err = svc.VerifyEmail(h.ctx, "ada@example.com", "000000x")
	assert.True(t, errors.Is(err, apierr.ErrInvalidArgument))

	u, err := svc.VerifyEmail(h.ctx, "ada@example.com", mailer.lastCode(t))
	require.NoError(t, err)
	assert.True(t, u.EmailVerified)
	assert.NotEqual(t, "correct horse", u.Password)

	// The code is single use.
	_, err = svc.VerifyEmail(h.ctx, "ada@example.com", mailer.lastCode(t))
	assert.True(t, errors.Is(err, apierr.ErrInvalidArgument))

	_, _, err = svc.Login(h.ctx, "ada@example.com", "wrong password")
	assert.True(t, errors.Is(err, apierr.ErrAuthentication))

	token, got, err := svc.Login(h.ctx, "ADA@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	ctx, err := svc.SetContextFromToken(h.ctx, token)
	require.NoError(t, err)
	id, ok := ctxutil.CurrentUserID(ctx)
	require.True(t, ok)
	assert.Equal(t, u.ID, id)

	require.NoError(t, svc.Logout(ctx))

	logs, err := h.audit.ListByUser(h.dbc, u.ID, 10)
	require.NoError(t, err)
	actions := map[types.AuditAction]bool{}
	for _, l := range logs {
		actions[l.ActionType] = true
	}
	assert.True(t, actions[types.ActionSignupVerified])
	assert.True(t, actions[types.ActionLogin])
	assert.True(t, actions[types.ActionLogout])
}

func TestAuth_SignupConflictAndMailFailure(t *testing.T) {
	h := newHarness(t)
	testutil.SeedUser(t, h.ctx, h.tx, "taken@example.com")
	mailer := &fakeMailer{}
	svc, store := newAuth(t, h, mailer)

	err := svc.Signup(h.ctx, SignupInput{Name: "X", Email: "taken@example.com", Password: "password1"})
	assert.True(t, errors.Is(err, apierr.ErrConflict))

	err = svc.Signup(h.ctx, SignupInput{Name: "X", Email: "not-an-email", Password: "password1"})
	assert.True(t, errors.Is(err, apierr.ErrInvalidArgument))

	mailer.err = errors.New("smtp down")
	err = svc.Signup(h.ctx, SignupInput{Name: "Y", Email: "new@example.com", Password: "password1"})
	require.Error(t, err)
	assert.Zero(t, store.Len())
}

func TestAuth_UnverifiedLoginForbidden(t *testing.T) {
	h := newHarness(t)
	svc, _ := newAuth(t, h, &fakeMailer{})
	u := testutil.SeedUser(t, h.ctx, h.tx, "pending@example.com", func(u *types.User) { u.EmailVerified = false })
	require.NoError(t, h.users.UpdatePassword(dbctx.Context{Ctx: h.ctx}, u.ID, mustHash(t, "password1")))

	_, _, err := svc.Login(h.ctx, "pending@example.com", "password1")
	assert.True(t, errors.Is(err, apierr.ErrAuthorization))
}

func TestAuth_PasswordReset(t *testing.T) {
	h := newHarness(t)
	mailer := &fakeMailer{}
	svc, _ := newAuth(t, h, mailer)
	u := testutil.SeedUser(t, h.ctx, h.tx, "reset@example.com")

	err := svc.SendResetCode(h.ctx, "nobody@example.com")
	assert.True(t, errors.Is(err, apierr.ErrNotFound))

	require.NoError(t, svc.SendResetCode(h.ctx, "reset@example.com"))
	code := mailer.lastCode(t)

	err = svc.ResetPassword(h.ctx, "reset@example.com", "123", "new-password")
	assert.True(t, errors.Is(err, apierr.ErrInvalidArgument))

	require.NoError(t, svc.ResetPassword(h.ctx, "reset@example.com", code, "new-password"))
	_, got, err := svc.Login(h.ctx, "reset@example.com", "new-password")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	err = svc.ResetPassword(h.ctx, "reset@example.com", code, "another-password")
	assert.True(t, errors.Is(err, apierr.ErrInvalidArgument))
}

func TestAuth_SetContextFromTokenRejectsForeignSecret(t *testing.T) {
	h := newHarness(t)
	u := testutil.SeedUser(t, h.ctx, h.tx, "jwt@example.com")
	other := NewAuthService(h.tx, h.log, h.users, codestore.NewMemoryStore(h.log), &fakeMailer{}, nil, "other-secret", time.Hour)
	token, err := other.(*authService).generateAccessToken(u)
	require.NoError(t, err)

	svc, _ := newAuth(t, h, &fakeMailer{})
	_, err = svc.SetContextFromToken(h.ctx, token)
	assert.Error(t, err)

	ctx, err := svc.SetContextFromToken(h.ctx, "")
	require.NoError(t, err)
	_, ok := ctxutil.CurrentUserID(ctx)
	assert.False(t, ok)
}
