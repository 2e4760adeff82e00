// FILE: internal/controller/payment_controller.go
package controller

import (
	"errors"
	"fmt"

	"ai-charstudio-be/internal/dto"
	"ai-charstudio-be/internal/pkg/serverutils"
	"ai-charstudio-be/internal/service"
	"ai-charstudio-be/pkg/identity"

	"github.com/gofiber/fiber/v2"
)

type IPaymentController interface {
	RegisterRoutes(r fiber.Router)
	CreateCheckoutSession(ctx *fiber.Ctx) error
	Webhook(ctx *fiber.Ctx) error
}

type paymentController struct {
	service  service.IPaymentService
	verifier identity.Verifier
}

func NewPaymentController(service service.IPaymentService, verifier identity.Verifier) IPaymentController {
	return &paymentController{service: service, verifier: verifier}
}

func (c *paymentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/payments")
	h.Post("/webhook", c.Webhook)
	h.Post("/create-checkout-session", serverutils.AuthMiddleware(c.verifier), c.CreateCheckoutSession)
}

func (c *paymentController) CreateCheckoutSession(ctx *fiber.Ctx) error {
	principal := serverutils.CallerPrincipal(ctx)

	res, err := c.service.CreateCheckout(ctx.Context(), principal.UID, principal.Email, principal.Name)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(res)
}

func (c *paymentController) Webhook(ctx *fiber.Ctx) error {
	var req dto.MidtransWebhookRequest
	if err := ctx.BodyParser(&req); err != nil {
		fmt.Printf("[WEBHOOK ERROR] Body parsing failed: %v\n", err)
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid payload"))
	}

	err := c.service.HandleNotification(ctx.Context(), &req)
	switch {
	case err == nil:
		return ctx.JSON(dto.WebhookResponse{Status: "success"})
	case errors.Is(err, service.ErrInvalidSignature), errors.Is(err, service.ErrInvalidPayload):
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	default:
		fmt.Printf("[WEBHOOK ERROR] Service handling failed for OrderId=%s: %v\n", req.OrderId, err)
		// Return 500 so Midtrans will retry the notification
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, "webhook processing failed"))
	}
}
