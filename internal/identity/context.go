package identity

import (
	"errors"
	"strings"

	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrNoIdentity = errors.New("no authenticated user in context")

// Caller is the authenticated user behind a request, read from JWT claims.
type Caller struct {
	ID    uuid.UUID
	Email string
	Role  models.Role
}

func (c Caller) IsAdmin() bool { return c.Role == models.RoleAdmin }

// CanActFor reports whether the caller may read or change data owned by id.
func (c Caller) CanActFor(id uuid.UUID) bool {
	return c.IsAdmin() || (c.ID != uuid.Nil && c.ID == id)
}

func (c Caller) CanActForEmail(email string) bool {
	return c.IsAdmin() || (c.Email != "" && strings.EqualFold(c.Email, strings.TrimSpace(email)))
}

// FromContext extracts the caller from the token stored by the JWT middleware.
func FromContext(c *fiber.Ctx) (Caller, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return Caller{}, ErrNoIdentity
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Caller{}, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return Caller{}, errors.New("missing sub claim")
	}
	id, err := uuid.Parse(sub)
	if err != nil {
		return Caller{}, err
	}

	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	return Caller{ID: id, Email: email, Role: models.Role(role)}, nil
}

// GetUserID extracts the user UUID from JWT claims in context.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	caller, err := FromContext(c)
	if err != nil {
		return uuid.Nil, err
	}
	return caller.ID, nil
}
