package service_test

import (
	"context"
	"testing"

	"github.com/pageza/greenmeal/backend/internal/service"
	"github.com/pageza/greenmeal/backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type AuthServiceSuite struct {
	suite.Suite
	auth *service.AuthService
	ctx  context.Context
}

func (s *AuthServiceSuite) SetupTest() {
	db := testhelpers.SetupSQLite(s.T())
	s.auth = service.NewAuthService(db, "test-secret", testLogger, nil)
	s.ctx = context.Background()
}

func (s *AuthServiceSuite) TestRegisterAndLogin() {
	user, err := s.auth.Register(s.ctx, "cook@example.com", "hunter22")
	s.Require().NoError(err)
	s.NotEqual("hunter22", user.PasswordHash)

	token, err := s.auth.Login(s.ctx, "cook@example.com", "hunter22")
	s.Require().NoError(err)
	s.NotEmpty(token)

	claims, err := s.auth.ValidateToken(token)
	s.Require().NoError(err)
	s.Equal(user.ID, claims.UserID)
	s.Equal("cook@example.com", claims.Email)
}

func (s *AuthServiceSuite) TestRegisterDuplicateEmail() {
	_, err := s.auth.Register(s.ctx, "cook@example.com", "hunter22")
	s.Require().NoError(err)

	_, err = s.auth.Register(s.ctx, "cook@example.com", "different")
	s.ErrorIs(err, service.ErrEmailExists)
}

func (s *AuthServiceSuite) TestMissingCredentials() {
	_, err := s.auth.Register(s.ctx, "", "secret")
	s.ErrorIs(err, service.ErrMissingCredentials)
	_, err = s.auth.Register(s.ctx, "cook@example.com", "")
	s.ErrorIs(err, service.ErrMissingCredentials)
	_, err = s.auth.Login(s.ctx, "  ", "secret")
	s.ErrorIs(err, service.ErrMissingCredentials)
}

func (s *AuthServiceSuite) TestLoginFailuresLookTheSame() {
	_, err := s.auth.Register(s.ctx, "cook@example.com", "hunter22")
	s.Require().NoError(err)

	_, wrongPassword := s.auth.Login(s.ctx, "cook@example.com", "hunter23")
	_, unknownEmail := s.auth.Login(s.ctx, "nobody@example.com", "hunter22")
	s.ErrorIs(wrongPassword, service.ErrInvalidCredentials)
	s.ErrorIs(unknownEmail, service.ErrInvalidCredentials)
	s.Equal(wrongPassword.Error(), unknownEmail.Error())
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}

func TestValidateTokenRejectsForeignSignature(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	issuer := service.NewAuthService(db, "one-secret", testLogger, nil)
	verifier := service.NewAuthService(db, "other-secret", testLogger, nil)

	user, err := issuer.Register(context.Background(), "cook@example.com", "hunter22")
	require.NoError(t, err)
	token, err := issuer.GenerateToken(user)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.ErrorIs(t, err, service.ErrInvalidToken)

	_, err = issuer.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}
