package services

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/N0Xl0US/HMP-issue-fix/internal/data/codestore"
	"github.com/N0Xl0US/HMP-issue-fix/internal/data/db"
	"github.com/N0Xl0US/HMP-issue-fix/internal/data/repos"
	types "github.com/N0Xl0US/HMP-issue-fix/internal/domain"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/apierr"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/ctxutil"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/dbctx"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/logger"
)

const (
	SignupCodeTTL = 10 * time.Minute
	ResetCodeTTL  = 5 * time.Minute
)

type JWTClaims struct {
	jwt.RegisteredClaims
}

type SignupInput struct {
	Name     string `validate:"required,max=120"`
	Email    string `validate:"required,email,max=254"`
	Password string `validate:"required,min=8,max=72"`
}

type AuthService interface {
	// Signup emails a verification code and parks the pending account in the
	// code store. Nothing is stored when the email cannot be sent.
	Signup(ctx context.Context, in SignupInput) error
	VerifyEmail(ctx context.Context, email, code string) (*types.User, error)
	Login(ctx context.Context, email, password string) (string, *types.User, error)
	Logout(ctx context.Context) error
	SendResetCode(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type pendingSignup struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
	Code         string `json:"code"`
}

type authService struct {
	db           *gorm.DB
	log          *logger.Logger
	validate     *validator.Validate
	userRepo     repos.UserRepo
	codes        codestore.Store
	mailer       Mailer
	audit        AuditService
	jwtSecretKey string
	accessTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	baseLog *logger.Logger,
	userRepo repos.UserRepo,
	codes codestore.Store,
	mailer Mailer,
	audit AuditService,
	jwtSecretKey string,
	accessTTL time.Duration,
) AuthService {
	if audit == nil {
		audit = NewAuditService(baseLog, nil)
	}
	return &authService{
		db:           db,
		log:          baseLog.With("service", "AuthService"),
		validate:     validator.New(),
		userRepo:     userRepo,
		codes:        codes,
		mailer:       mailer,
		audit:        audit,
		jwtSecretKey: jwtSecretKey,
		accessTTL:    accessTTL,
	}
}

func (as *authService) Signup(ctx context.Context, in SignupInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	if err := as.validate.Struct(in); err != nil {
		return apierr.Invalid("%s", validationMessage(err))
	}
	dbc := dbctx.Context{Ctx: ctx}
	exists, err := as.userRepo.EmailExists(dbc, in.Email)
	if err != nil {
		return apierr.DataAccess("check email", err)
	}
	if exists {
		return apierr.Conflict("email already registered")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	code, err := generateCode()
	if err != nil {
		return err
	}
	body := fmt.Sprintf("Your verification code is: %s\n\nIt expires in %d minutes.", code, int(SignupCodeTTL.Minutes()))
	if err := as.mailer.Send(ctx, "Verify Your Email", in.Email, body); err != nil {
		as.log.Warn("verification email failed", "error", err)
		return fmt.Errorf("send verification email: %w", err)
	}
	raw, err := json.Marshal(pendingSignup{Name: in.Name, Email: in.Email, PasswordHash: string(hash), Code: code})
	if err != nil {
		return err
	}
	if err := as.codes.Put(ctx, codestore.Key(codestore.PurposeSignup, in.Email), raw, SignupCodeTTL); err != nil {
		return apierr.DataAccess("store verification code", err)
	}
	return nil
}

func (as *authService) VerifyEmail(ctx context.Context, email, code string) (*types.User, error) {
	email = normalizeEmail(email)
	key := codestore.Key(codestore.PurposeSignup, email)
	raw, err := as.codes.Get(ctx, key)
	if errors.Is(err, codestore.ErrNotFound) {
		return nil, apierr.Invalid("invalid or expired verification code")
	}
	if err != nil {
		return nil, apierr.DataAccess("load verification code", err)
	}
	var pending pendingSignup
	if err := json.Unmarshal(raw, &pending); err != nil {
		return nil, fmt.Errorf("decode pending signup: %w", err)
	}
	if !codesEqual(pending.Code, code) {
		return nil, apierr.Invalid("invalid or expired verification code")
	}

	created, err := as.userRepo.Create(dbctx.Context{Ctx: ctx}, []*types.User{{
		FullName:      pending.Name,
		Email:         pending.Email,
		Password:      pending.PasswordHash,
		EmailVerified: true,
		Conditions:    []string{},
	}})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, apierr.Conflict("email already registered")
		}
		return nil, apierr.DataAccess("create user", err)
	}
	if err := as.codes.Delete(ctx, key); err != nil {
		as.log.Warn("failed to delete used verification code", "error", err)
	}
	u := created[0]
	as.audit.Record(dbctx.Context{Ctx: ctx}, u.ID, types.ActionSignupVerified, "Email verified and account created")
	return u, nil
}

func (as *authService) Login(ctx context.Context, email, password string) (string, *types.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, apierr.Invalid("email and password are required")
	}
	u, err := as.userRepo.GetByEmail(dbctx.Context{Ctx: ctx}, email)
	if err != nil {
		return "", nil, apierr.DataAccess("load user", err)
	}
	if u == nil {
		return "", nil, apierr.Unauthorized("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return "", nil, apierr.Unauthorized("invalid email or password")
	}
	if !u.EmailVerified {
		return "", nil, apierr.Forbidden("email not verified")
	}
	token, err := as.generateAccessToken(u)
	if err != nil {
		return "", nil, fmt.Errorf("generate access token: %w", err)
	}
	as.audit.Record(dbctx.Context{Ctx: ctx}, u.ID, types.ActionLogin, "User logged in")
	return token, u, nil
}

func (as *authService) Logout(ctx context.Context) error {
	userID, ok := ctxutil.CurrentUserID(ctx)
	if !ok {
		return apierr.Unauthorized("not logged in")
	}
	as.audit.Record(dbctx.Context{Ctx: ctx}, userID, types.ActionLogout, "User logged out")
	return nil
}

func (as *authService) SendResetCode(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	u, err := as.userRepo.GetByEmail(dbctx.Context{Ctx: ctx}, email)
	if err != nil {
		return apierr.DataAccess("load user", err)
	}
	if u == nil {
		return apierr.NotFound("no account for that email")
	}
	code, err := generateCode()
	if err != nil {
		return err
	}
	body := fmt.Sprintf("Your password reset code is: %s\n\nIt expires in %d minutes.", code, int(ResetCodeTTL.Minutes()))
	if err := as.mailer.Send(ctx, "Password Reset Code", email, body); err != nil {
		as.log.Warn("reset email failed", "error", err)
		return fmt.Errorf("send reset email: %w", err)
	}
	if err := as.codes.Put(ctx, codestore.Key(codestore.PurposeReset, email), []byte(code), ResetCodeTTL); err != nil {
		return apierr.DataAccess("store reset code", err)
	}
	return nil
}

func (as *authService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	email = normalizeEmail(email)
	if len(newPassword) < 8 || len(newPassword) > 72 {
		return apierr.Invalid("new password must be 8 to 72 characters")
	}
	key := codestore.Key(codestore.PurposeReset, email)
	stored, err := as.codes.Get(ctx, key)
	if errors.Is(err, codestore.ErrNotFound) {
		return apierr.Invalid("invalid or expired reset code")
	}
	if err != nil {
		return apierr.DataAccess("load reset code", err)
	}
	if !codesEqual(string(stored), code) {
		return apierr.Invalid("invalid or expired reset code")
	}
	dbc := dbctx.Context{Ctx: ctx}
	u, err := as.userRepo.GetByEmail(dbc, email)
	if err != nil {
		return apierr.DataAccess("load user", err)
	}
	if u == nil {
		return apierr.NotFound("no account for that email")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := as.userRepo.UpdatePassword(dbc, u.ID, string(hash)); err != nil {
		return apierr.DataAccess("update password", err)
	}
	if err := as.codes.Delete(ctx, key); err != nil {
		as.log.Warn("failed to delete used reset code", "error", err)
	}
	as.audit.Record(dbc, u.ID, types.ActionPasswordReset, "Password reset via emailed code")
	return nil
}

func (as *authService) generateAccessToken(u *types.User) (string, error) {
	now := time.Now()
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString == "" {
		return ctx, nil
	}
	parsedToken, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(as.jwtSecretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return ctx, fmt.Errorf("failed to parse token: %w", err)
	}
	claims, ok := parsedToken.Claims.(*JWTClaims)
	if !ok || !parsedToken.Valid {
		return ctx, fmt.Errorf("invalid or expired JWT token")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, fmt.Errorf("invalid user id in token: %w", err)
	}
	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{
		TokenString: tokenString,
		UserID:      userID,
	}), nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func codesEqual(want, got string) bool {
	got = strings.TrimSpace(got)
	if want == "" || got == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(want), []byte(got)) == 1
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
