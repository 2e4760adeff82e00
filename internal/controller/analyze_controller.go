// FILE: internal/controller/analyze_controller.go
package controller

import (
	"io"

	"ai-charstudio-be/internal/pkg/serverutils"
	"ai-charstudio-be/internal/service"
	"ai-charstudio-be/pkg/identity"

	"github.com/gofiber/fiber/v2"
)

type IAnalyzeController interface {
	RegisterRoutes(r fiber.Router)
	Analyze(ctx *fiber.Ctx) error
}

type analyzeController struct {
	service  service.IAnalyzeService
	verifier identity.Verifier
}

func NewAnalyzeController(service service.IAnalyzeService, verifier identity.Verifier) IAnalyzeController {
	return &analyzeController{service: service, verifier: verifier}
}

func (c *analyzeController) RegisterRoutes(r fiber.Router) {
	r.Post("/analyze", serverutils.AuthMiddleware(c.verifier), c.Analyze)
}

func (c *analyzeController) Analyze(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "image file is required"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "unable to read image file"))
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "unable to read image file"))
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "image/png"
	}

	res, err := c.service.Analyze(ctx.Context(), mimeType, image)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, "image analysis failed"))
	}
	return ctx.JSON(res)
}
