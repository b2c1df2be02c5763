package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/observability"
	"github.com/spec-kit/helpdesk/internal/repository"
)

const currentUserKey = "current_user"

// Resolver answers "who, if anyone, is making this request". It is a
// predicate, not an assertion: a missing cookie, a bad token, or a
// dangling user id all resolve to nobody, never to an error.
type Resolver struct {
	cookies *CookieAdapter
	tokens  *TokenManager
	users   repository.UserRepository
	log     *observability.EventLogger
}

// NewResolver constructs the resolver.
func NewResolver(cookies *CookieAdapter, tokens *TokenManager, users repository.UserRepository, log *observability.EventLogger) *Resolver {
	return &Resolver{cookies: cookies, tokens: tokens, users: users, log: log}
}

// Resolve returns the authenticated user for the request, or nil.
func (r *Resolver) Resolve(c *fiber.Ctx) *domain.User {
	token := r.cookies.Read(c)
	if token == "" {
		return nil
	}

	claims, err := r.tokens.ParseToken(token)
	if err != nil {
		r.log.LogEvent("Session token rejected", "auth",
			map[string]any{"token": token}, observability.SeverityDebug, err)
		return nil
	}

	user, err := r.users.GetByID(c.UserContext(), claims.UserID)
	if err != nil {
		if err != pgx.ErrNoRows {
			r.log.LogEvent("Error loading session user", "auth",
				map[string]any{"user_id": claims.UserID}, observability.SeverityError, err)
		}
		return nil
	}
	return user
}

// LoadCurrentUser resolves the session once per request and stashes
// the result for handlers. Routes stay reachable without a session;
// handlers decide whether one is required.
func (r *Resolver) LoadCurrentUser(c *fiber.Ctx) error {
	if user := r.Resolve(c); user != nil {
		c.Locals(currentUserKey, user)
	}
	return c.Next()
}

// UserFromContext retrieves the resolved user, if any.
func UserFromContext(c *fiber.Ctx) (*domain.User, bool) {
	val := c.Locals(currentUserKey)
	if val == nil {
		return nil, false
	}
	user, ok := val.(*domain.User)
	return user, ok
}
