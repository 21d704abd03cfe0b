package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/ack-hub/internal/auth"
	"github.com/spec-kit/ack-hub/internal/directory"
	"github.com/spec-kit/ack-hub/internal/domain"
	apperrors "github.com/spec-kit/ack-hub/pkg/util/errorutil"
)

// AuthService implements the email-only mock login.
type AuthService struct {
	dir      *directory.Directory
	resolver *auth.Resolver
	tokens   *auth.TokenManager
	logger   *zap.Logger
}

// AuthDependencies bundles collaborators for the auth service.
type AuthDependencies struct {
	Directory *directory.Directory
	Resolver  *auth.Resolver
	Tokens    *auth.TokenManager
	Logger    *zap.Logger
}

// Session is an issued access token for an identity.
type Session struct {
	Identity  *domain.Identity
	Token     string
	ExpiresAt time.Time
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	svc := &AuthService{
		dir:      deps.Directory,
		resolver: deps.Resolver,
		tokens:   deps.Tokens,
		logger:   deps.Logger,
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	return svc
}

// Login resolves email and issues a token. Unknown addresses are unauthorized.
func (s *AuthService) Login(_ context.Context, email string) (*Session, error) {
	identity, err := s.resolver.Resolve(email)
	if err != nil {
		if apperrors.HasCode(err, apperrors.CodeNotFound) {
			return nil, apperrors.NewUnauthorized("email is not registered")
		}
		return nil, err
	}

	token, expiresAt, err := s.tokens.GenerateToken(identity)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	s.logger.Info("user signed in", zap.String("email", identity.Email), zap.String("role", string(identity.Role)))
	return &Session{Identity: identity, Token: token, ExpiresAt: expiresAt}, nil
}

// Switch replaces the current session with one for email.
func (s *AuthService) Switch(ctx context.Context, current *domain.Identity, email string) (*Session, error) {
	if current == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	session, err := s.Login(ctx, email)
	if err != nil {
		return nil, err
	}
	s.logger.Info("user switched", zap.String("from", current.Email), zap.String("to", session.Identity.Email))
	return session, nil
}

// QuickUsers lists every directory identity for the demo login picker.
func (s *AuthService) QuickUsers() []domain.Identity {
	emails := s.dir.KnownEmails()
	users := make([]domain.Identity, 0, len(emails))
	for _, email := range emails {
		identity, err := s.resolver.Resolve(email)
		if err != nil {
			continue
		}
		users = append(users, *identity)
	}
	return users
}
