package service

import (
	"context"
	"time"

	"rollingpaper/internal/model"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type LoginLogStorage interface {
	Create(ctx context.Context, entry *model.LoginLog) error
	List(ctx context.Context) ([]model.LoginLog, error)
}

type IdentityVerifier interface {
	Verify(ctx context.Context, idToken string) (model.Identity, error)
}

type TokenIssuer interface {
	GenerateToken(id model.Identity) (string, error)
	Expiry() time.Duration
}

type LoginService struct {
	logs     LoginLogStorage
	verifier IdentityVerifier
	tokens   TokenIssuer
	authz    *Authorizer
	log      *zap.Logger
	newID    func() string
}

func NewLoginService(
	logs LoginLogStorage,
	verifier IdentityVerifier,
	tokens TokenIssuer,
	authz *Authorizer,
	log *zap.Logger,
) *LoginService {
	return &LoginService{
		logs:     logs,
		verifier: verifier,
		tokens:   tokens,
		authz:    authz,
		log:      log,
		newID:    uuid.NewString,
	}
}

// Session is the result of a successful sign-in.
type Session struct {
	Token     string
	ExpiresIn time.Duration
	Identity  model.Identity
	IsAdmin   bool
}

// SignIn exchanges an identity-provider token for an access token and records the login.
// A failed login-log write is logged and does not fail the sign-in.
func (s *LoginService) SignIn(ctx context.Context, idToken string) (*Session, error) {
	if idToken == "" {
		return nil, validationf("id_token is required")
	}

	id, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		return nil, withKind(ErrAuth, err)
	}

	token, err := s.tokens.GenerateToken(id)
	if err != nil {
		return nil, withKind(ErrStore, err)
	}

	if err := s.Record(ctx, id); err != nil {
		s.log.Warn("failed to record login", zap.String("uid", id.UID), zap.Error(err))
	}

	return &Session{
		Token:     token,
		ExpiresIn: s.tokens.Expiry(),
		Identity:  id,
		IsAdmin:   s.authz.IsAdmin(&id),
	}, nil
}

// Record appends one login entry stamped by the server.
func (s *LoginService) Record(ctx context.Context, id model.Identity) error {
	return s.logs.Create(ctx, &model.LoginLog{
		ID:          s.newID(),
		UID:         id.UID,
		Email:       id.Email,
		DisplayName: id.DisplayName,
	})
}

// List returns all logins, newest first. Admin only.
func (s *LoginService) List(ctx context.Context, caller *model.Identity) ([]model.LoginLog, error) {
	if caller == nil {
		return nil, ErrUnauthenticated
	}
	if !s.authz.IsAdmin(caller) {
		return nil, ErrForbidden
	}

	logs, err := s.logs.List(ctx)
	if err != nil {
		return nil, fromStore(err)
	}
	return logs, nil
}

// IsAdmin reports whether caller is on the admin allow-list.
func (s *LoginService) IsAdmin(caller *model.Identity) bool {
	return s.authz.IsAdmin(caller)
}
