// FILE: internal/controller/auth_controller.go
package controller

import (
	"ai-charstudio-be/internal/pkg/serverutils"
	"ai-charstudio-be/internal/service"
	"ai-charstudio-be/pkg/identity"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	GetMe(ctx *fiber.Ctx) error
}

type authController struct {
	service  service.IUserService
	verifier identity.Verifier
}

func NewAuthController(service service.IUserService, verifier identity.Verifier) IAuthController {
	return &authController{service: service, verifier: verifier}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")
	h.Get("/me", serverutils.AuthMiddleware(c.verifier), c.GetMe)
}

func (c *authController) GetMe(ctx *fiber.Ctx) error {
	principal := serverutils.CallerPrincipal(ctx)

	res, err := c.service.GetProfile(ctx.Context(), principal)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(res)
}
