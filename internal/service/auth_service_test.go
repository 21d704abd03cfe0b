package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ack-hub/internal/auth"
	"github.com/spec-kit/ack-hub/internal/domain"
	apperrors "github.com/spec-kit/ack-hub/pkg/util/errorutil"
)

func newAuthService(f *fixture) (*AuthService, *auth.TokenManager) {
	tokens := auth.NewTokenManager("test-secret", 5)
	return NewAuthService(AuthDependencies{Directory: f.dir, Resolver: f.resolver, Tokens: tokens}), tokens
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	svc, tokens := newAuthService(f)

	session, err := svc.Login(context.Background(), "supervisorD@domain.com")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleSupervisor, session.Identity.Role)

	claims, err := tokens.ParseToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, "supervisorD@domain.com", claims.Email)

	_, err = svc.Login(context.Background(), "stranger@domain.com")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeUnauthorized))
}

func TestSwitch(t *testing.T) {
	f := newFixture(t)
	svc, _ := newAuthService(f)

	session, err := svc.Switch(context.Background(), f.admin(t), "nour.ali@domain.com")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleEmployee, session.Identity.Role)

	_, err = svc.Switch(context.Background(), nil, "nour.ali@domain.com")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeUnauthorized))
}

func TestQuickUsers(t *testing.T) {
	f := newFixture(t)
	svc, _ := newAuthService(f)

	users := svc.QuickUsers()
	require.Len(t, users, 14)
	assert.Equal(t, domain.RoleAdmin, users[0].Role)
	assert.Equal(t, domain.RoleEmployee, users[len(users)-1].Role)
}
