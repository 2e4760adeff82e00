// FILE: internal/controller/project_controller.go
package controller

import (
	"ai-charstudio-be/internal/pkg/serverutils"
	"ai-charstudio-be/internal/service"
	"ai-charstudio-be/pkg/identity"

	"github.com/gofiber/fiber/v2"
)

type IProjectController interface {
	RegisterRoutes(r fiber.Router)
	ListProjects(ctx *fiber.Ctx) error
}

type projectController struct {
	service  service.IProjectService
	verifier identity.Verifier
}

func NewProjectController(service service.IProjectService, verifier identity.Verifier) IProjectController {
	return &projectController{service: service, verifier: verifier}
}

func (c *projectController) RegisterRoutes(r fiber.Router) {
	r.Get("/projects", serverutils.AuthMiddleware(c.verifier), c.ListProjects)
}

func (c *projectController) ListProjects(ctx *fiber.Ctx) error {
	uid := serverutils.CallerUID(ctx)

	res, err := c.service.ListProjects(ctx.Context(), uid)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(res)
}
