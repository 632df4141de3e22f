package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/askfield/user_service/internal/domain"
	"github.com/askfield/user_service/internal/helper"
	"github.com/askfield/user_service/internal/services"
)

// AuthMiddleware requires a bearer token in the Authorization header,
// validates it, and loads the referenced account into the request context.
// The three failure modes (missing token, bad token, account gone) all
// reject with 401 but keep their distinct messages.
func AuthMiddleware(auth helper.Auth, userSvc services.UserService) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		header := strings.TrimSpace(ctx.Get("Authorization"))
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Not authorized, no token provided",
			})
		}

		userID, err := auth.VerifyToken(header)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Not authorized, token failed",
			})
		}

		user, err := userSvc.GetProfile(userID)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "User not found",
			})
		}

		// domain.User marshals without password or token hashes, so
		// downstream handlers can return it as-is
		ctx.Locals("userID", user.ID)
		ctx.Locals("user", user)
		return ctx.Next()
	}
}

// RequireRoles authorizes an already-authenticated request by role.
func RequireRoles(roles ...string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user, ok := ctx.Locals("user").(*domain.User)
		if !ok || user == nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Not authorized, no token provided",
			})
		}

		for _, role := range roles {
			if user.Role == role {
				return ctx.Next()
			}
		}

		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": fmt.Sprintf("Role '%s' is not authorized to access this route", user.Role),
		})
	}
}
