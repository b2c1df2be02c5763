package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk/internal/apperrors"
	"github.com/spec-kit/helpdesk/internal/config"
	"github.com/spec-kit/helpdesk/internal/events"
	"github.com/spec-kit/helpdesk/internal/observability"
)

func newAuthService(users *fakeUserRepo) *AuthService {
	return NewAuthService(config.AuthConfig{
		JWTSecret:     "test-secret",
		TokenTTLHours: 1,
		BcryptCost:    4,
	}, AuthDependencies{
		UserRepo:   users,
		Dispatcher: events.NewInMemoryDispatcher(),
		EventLog:   observability.NewEventLogger(nil),
	})
}

func requireDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	var de *apperrors.DomainError
	require.ErrorAs(t, err, &de)
	require.Equal(t, code, de.Code)
}

func TestRegisterCreatesUserAndSession(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthService(users)

	user, token, err := svc.Register(context.Background(), "Ann", "ann@x.com", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.Equal(t, 1, users.creates)

	// the session token names exactly the created user
	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)

	// plaintext never stored
	stored, err := users.GetByEmail(context.Background(), "ann@x.com")
	require.NoError(t, err)
	require.NotEqual(t, "secret123", stored.PasswordHash)
}

func TestRegisterRequiresAllFields(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthService(users)

	cases := [][3]string{
		{"", "ann@x.com", "secret123"},
		{"Ann", "", "secret123"},
		{"Ann", "ann@x.com", ""},
	}
	for _, tc := range cases {
		_, _, err := svc.Register(context.Background(), tc[0], tc[1], tc[2])
		requireDomainCode(t, err, apperrors.CodeValidation)
		require.Equal(t, "All fields are required", err.(*apperrors.DomainError).Message)
	}
	require.Equal(t, 0, users.creates)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthService(users)

	_, _, err := svc.Register(context.Background(), "Ann", "ann@x.com", "secret123")
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), "Imposter", "ann@x.com", "hunter2")
	requireDomainCode(t, err, apperrors.CodeConflict)
	require.Equal(t, "User already exists", err.(*apperrors.DomainError).Message)
	require.Equal(t, 1, users.creates)
}

func TestLoginFailureMessageDoesNotLeakAccountExistence(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthService(users)

	_, _, err := svc.Register(context.Background(), "Ann", "ann@x.com", "secret123")
	require.NoError(t, err)

	_, _, unknownErr := svc.Login(context.Background(), "nobody@x.com", "secret123")
	requireDomainCode(t, unknownErr, apperrors.CodeAuthFailed)

	_, _, wrongErr := svc.Login(context.Background(), "ann@x.com", "wrong")
	requireDomainCode(t, wrongErr, apperrors.CodeAuthFailed)

	require.Equal(t, "Invalid email or password", unknownErr.(*apperrors.DomainError).Message)
	require.Equal(t,
		unknownErr.(*apperrors.DomainError).Message,
		wrongErr.(*apperrors.DomainError).Message)
}

func TestRegisterLoginRoundTrip(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthService(users)

	registered, _, err := svc.Register(context.Background(), "Ann", "ann@x.com", "secret123")
	require.NoError(t, err)

	loggedIn, token, err := svc.Login(context.Background(), "ann@x.com", "secret123")
	require.NoError(t, err)
	require.Equal(t, registered.ID, loggedIn.ID)
	require.NotEmpty(t, token)

	_, _, err = svc.Login(context.Background(), "ann@x.com", "wrong")
	require.Error(t, err)
}

func TestLoginRequiresFields(t *testing.T) {
	svc := newAuthService(newFakeUserRepo())

	_, _, err := svc.Login(context.Background(), "", "secret123")
	requireDomainCode(t, err, apperrors.CodeValidation)

	_, _, err = svc.Login(context.Background(), "ann@x.com", "")
	requireDomainCode(t, err, apperrors.CodeValidation)
	require.Equal(t, "Email and password are required", err.(*apperrors.DomainError).Message)
}
