package handler

import (
	"github.com/gofiber/fiber/v2"

	"district/internal/content"
	"district/internal/service"
)

// GetGlobal godoc
// @Summary Get a CMS global with every documented field present
// @Tags globals
// @Produce json
// @Param slug path string true "home-page or site-settings"
// @Success 200 {object} map[string]any
// @Failure 404 {object} errorPayload
// @Router /api/globals/{slug} [get]
func GetGlobal(svc service.GlobalService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		doc, err := svc.Get(c.UserContext(), c.Params("slug"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(doc)
	}
}

// UpdateGlobal godoc
// @Summary Replace a CMS global
// @Tags globals
// @Accept json
// @Produce json
// @Param slug path string true "home-page or site-settings"
// @Param body body map[string]any true "document"
// @Success 200 {object} map[string]any
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /api/globals/{slug} [put]
func UpdateGlobal(svc service.GlobalService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body content.Node
		if err := c.BodyParser(&body); err != nil || body == nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "body must be a JSON object")
		}

		doc, err := svc.Update(c.UserContext(), c.Params("slug"), body)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(doc)
	}
}
