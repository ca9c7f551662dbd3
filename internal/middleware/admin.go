package middleware

import (
	"context"
	"strings"

	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/fitclass-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// UserLookup is the slice of the user repository the admin check needs.
type UserLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// AdminRequired lets a request through when the caller is listed in
// ADMIN_EMAILS / ADMIN_USER_IDS or has the admin role in the database. The
// role claim in the token is not trusted on its own here.
func AdminRequired(users UserLookup, cfg *config.Config) fiber.Handler {
	adminEmails := parseCSV(strings.ToLower(cfg.AdminEmails))
	adminUserIDs := parseCSV(cfg.AdminUserIDs)

	return func(c *fiber.Ctx) error {
		caller, err := identity.FromContext(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Envelope{
				Success: false, Message: "Unauthorized",
			})
		}

		if contains(adminEmails, strings.ToLower(caller.Email)) || contains(adminUserIDs, caller.ID.String()) {
			return c.Next()
		}

		if user, err := users.FindByID(c.UserContext(), caller.ID); err == nil && user.Role == models.RoleAdmin {
			return c.Next()
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.Envelope{
			Success: false, Message: "Admin access required",
		})
	}
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}
