// FILE: internal/pkg/serverutils/auth_middleware.go
package serverutils

import (
	"strings"

	"ai-charstudio-be/pkg/identity"

	"github.com/gofiber/fiber/v2"
)

const (
	localsPrincipal = "principal"
	localsUserUID   = "user_uid"
)

// AuthMiddleware verifies the bearer token and stores the resolved principal
// in request locals for downstream handlers.
func AuthMiddleware(verifier identity.Verifier) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return challenge(ctx, "Missing token")
		}

		principal, err := verifier.Verify(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			return challenge(ctx, "Invalid token")
		}

		ctx.Locals(localsPrincipal, principal)
		ctx.Locals(localsUserUID, principal.UID)
		return ctx.Next()
	}
}

func challenge(ctx *fiber.Ctx, message string) error {
	ctx.Set("WWW-Authenticate", "Bearer")
	return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": message})
}

// CallerPrincipal reads the principal the auth middleware stored. Handlers
// behind AuthMiddleware can rely on it being present.
func CallerPrincipal(ctx *fiber.Ctx) *identity.Principal {
	principal, _ := ctx.Locals(localsPrincipal).(*identity.Principal)
	return principal
}

func CallerUID(ctx *fiber.Ctx) string {
	uid, _ := ctx.Locals(localsUserUID).(string)
	return uid
}
