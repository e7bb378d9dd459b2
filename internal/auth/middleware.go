package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/shift-roster/internal/domain"
	"github.com/spec-kit/shift-roster/internal/repository"
	apperrors "github.com/spec-kit/shift-roster/pkg/util/errorutil"
)

const principalKey = "auth_principal"

const unauthenticatedMessage = "could not validate credentials"

// AuthMiddleware validates bearer tokens and loads the calling user.
type AuthMiddleware struct {
	tokens *TokenManager
	users  repository.UserRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, users repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users}
}

// Handle enforces authentication for protected routes. Every failure yields
// the same UNAUTHORIZED response so callers cannot tell expired from forged.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return unauthenticated(c)
	}

	claims, err := m.tokens.ParseToken(strings.TrimSpace(parts[1]))
	if err != nil {
		return unauthenticated(c)
	}

	user, err := m.users.GetByID(c.UserContext(), claims.Subject)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return unauthenticated(c)
		}
		return apperrors.MapError(err)
	}
	if !user.Active {
		return unauthenticated(c)
	}

	c.Locals(principalKey, user)
	return c.Next()
}

func unauthenticated(c *fiber.Ctx) error {
	c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	return apperrors.NewUnauthorized(unauthenticatedMessage)
}

// PrincipalFromContext retrieves the authenticated user.
func PrincipalFromContext(c *fiber.Ctx) (*domain.User, bool) {
	user, ok := c.Locals(principalKey).(*domain.User)
	return user, ok && user != nil
}

// ActorFromContext returns the policy actor for the authenticated user.
func ActorFromContext(c *fiber.Ctx) (Actor, error) {
	user, ok := PrincipalFromContext(c)
	if !ok {
		return Actor{}, apperrors.NewUnauthorized(unauthenticatedMessage)
	}
	return ActorFromUser(user), nil
}
