// FILE: internal/controller/generate_controller.go
package controller

import (
	"errors"

	"ai-charstudio-be/internal/dto"
	"ai-charstudio-be/internal/pkg/serverutils"
	"ai-charstudio-be/internal/service"
	"ai-charstudio-be/pkg/identity"
	"ai-charstudio-be/pkg/ledger"
	"ai-charstudio-be/pkg/ratelimit"

	"github.com/gofiber/fiber/v2"
)

type IGenerateController interface {
	RegisterRoutes(r fiber.Router)
	GenerateCharacter(ctx *fiber.Ctx) error
	ModifyCharacter(ctx *fiber.Ctx) error
}

type generateController struct {
	service  service.IGenerationService
	verifier identity.Verifier
	limiter  ratelimit.Limiter
}

func NewGenerateController(service service.IGenerationService, verifier identity.Verifier, limiter ratelimit.Limiter) IGenerateController {
	return &generateController{service: service, verifier: verifier, limiter: limiter}
}

func (c *generateController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/generate")
	h.Use(serverutils.AuthMiddleware(c.verifier))
	h.Post("/character", c.GenerateCharacter)
	h.Post("/modify", c.ModifyCharacter)
}

func (c *generateController) GenerateCharacter(ctx *fiber.Ctx) error {
	var req dto.GenerateCharacterRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	principal := serverutils.CallerPrincipal(ctx)
	if !c.limiter.Allow(ctx.Context(), principal.UID) {
		return ctx.Status(fiber.StatusTooManyRequests).JSON(serverutils.ErrorResponse(429, "too many generation requests"))
	}

	res, err := c.service.GenerateCharacter(ctx.Context(), principal, &req)
	if err != nil {
		return ledgerError(ctx, err)
	}
	return ctx.JSON(res)
}

func (c *generateController) ModifyCharacter(ctx *fiber.Ctx) error {
	var req dto.ModifyCharacterRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	principal := serverutils.CallerPrincipal(ctx)
	if !c.limiter.Allow(ctx.Context(), principal.UID) {
		return ctx.Status(fiber.StatusTooManyRequests).JSON(serverutils.ErrorResponse(429, "too many generation requests"))
	}

	res, err := c.service.ModifyCharacter(ctx.Context(), principal, &req)
	if err != nil {
		return ledgerError(ctx, err)
	}
	return ctx.JSON(res)
}

// ledgerError maps ledger failures onto their contractual status codes:
// denied gates are 402, a missing account or source project is 404,
// everything else is 500.
func ledgerError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ledger.ErrInsufficientCredits):
		return ctx.Status(fiber.StatusPaymentRequired).JSON(serverutils.ErrorResponse(402, "insufficient credits"))
	case errors.Is(err, ledger.ErrAccountNotFound), errors.Is(err, service.ErrProjectNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "not found"))
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, "generation failed"))
	}
}
