package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk/internal/apperrors"
	"github.com/spec-kit/helpdesk/internal/auth"
	"github.com/spec-kit/helpdesk/internal/config"
	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/events"
	"github.com/spec-kit/helpdesk/internal/observability"
	"github.com/spec-kit/helpdesk/internal/repository"
)

// AuthService coordinates registration, login and logout flows.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	log        *observability.EventLogger
	bcryptCost int
}

// AuthDependencies encapsulates collaborator requirements for the
// auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
	EventLog   *observability.EventLogger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTLHours),
		dispatcher: deps.Dispatcher,
		log:        deps.EventLog,
		bcryptCost: cfg.BcryptCost,
	}
}

// Register creates a new user account and returns the user together
// with a freshly signed session token.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	if name == "" || email == "" || password == "" {
		s.log.LogEvent("Validation Error: Missing registration fields", "auth",
			map[string]any{"name": name, "email": email}, observability.SeverityWarning)
		return nil, "", apperrors.NewValidation("All fields are required")
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		s.log.LogEvent("Registration Error: User already exists", "auth",
			map[string]any{"email": email}, observability.SeverityWarning)
		return nil, "", apperrors.NewConflict("User already exists")
	} else if err != pgx.ErrNoRows {
		s.log.LogEvent("Unexpected error registering user", "auth",
			map[string]any{"email": email}, observability.SeverityError, err)
		return nil, "", apperrors.NewUnexpected("Error registering user", err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		s.log.LogEvent("Unexpected error registering user", "auth",
			map[string]any{"email": email}, observability.SeverityError, err)
		return nil, "", apperrors.NewUnexpected("Error registering user", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		s.log.LogEvent("Unexpected error registering user", "auth",
			map[string]any{"email": email}, observability.SeverityError, err)
		return nil, "", apperrors.NewUnexpected("Error registering user", err)
	}

	token, _, err := s.tokenMgr.GenerateToken(user.ID)
	if err != nil {
		return nil, "", apperrors.NewUnexpected("Error registering user", err)
	}

	s.publish(ctx, events.Event{
		Type:    events.EventUserRegistered,
		UserID:  user.ID,
		Payload: events.UserRegisteredPayload{Email: user.Email},
	})
	s.log.LogEvent("User registered successfully", "auth",
		map[string]any{"user_id": user.ID, "email": user.Email}, observability.SeverityInfo)
	return user, token, nil
}

// Login authenticates a user. Unknown email and wrong password fail
// with the exact same message so accounts cannot be enumerated.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	if email == "" || password == "" {
		s.log.LogEvent("Validation Error: Missing login fields", "auth",
			map[string]any{"email": email}, observability.SeverityWarning)
		return nil, "", apperrors.NewValidation("Email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err == pgx.ErrNoRows {
		s.log.LogEvent("Login Error: User not found", "auth",
			map[string]any{"email": email}, observability.SeverityWarning)
		return nil, "", apperrors.NewAuthFailed("Invalid email or password")
	} else if err != nil {
		s.log.LogEvent("Unexpected error logging in user", "auth",
			map[string]any{"email": email}, observability.SeverityError, err)
		return nil, "", apperrors.NewUnexpected("Error logging in user", err)
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		s.log.LogEvent("Login Error: Incorrect password", "auth",
			map[string]any{"email": email}, observability.SeverityWarning)
		return nil, "", apperrors.NewAuthFailed("Invalid email or password")
	}

	token, _, err := s.tokenMgr.GenerateToken(user.ID)
	if err != nil {
		return nil, "", apperrors.NewUnexpected("Error logging in user", err)
	}

	s.publish(ctx, events.Event{Type: events.EventUserLoggedIn, UserID: user.ID})
	return user, token, nil
}

// Logout records the end of a session. Clearing the cookie itself is
// the transport adapter's job; this only emits the diagnostic trail.
func (s *AuthService) Logout(ctx context.Context, userID string) {
	s.publish(ctx, events.Event{Type: events.EventUserLoggedOut, UserID: userID})
	s.log.LogEvent("User logged out successfully", "auth",
		map[string]any{"user_id": userID}, observability.SeverityInfo)
}

// TokenManager exposes the underlying token manager for resolver wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}
