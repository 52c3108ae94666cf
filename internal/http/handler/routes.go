package handler

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"district/internal/service"
)

const healthTimeout = 2 * time.Second

// RegisterRoutes attaches HTTP routes to the provided Fiber app. Files in servingDir are
// served under /media.
func RegisterRoutes(app *fiber.App, db *sql.DB, mediaSvc service.MediaService, globalSvc service.GlobalService, servingDir string) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api")

	api.Get("/media", ListMedia(mediaSvc))
	api.Post("/media", UploadMedia(mediaSvc))
	// Registered before /media/:id so "lookup" is not taken for an ID.
	api.Get("/media/lookup", LookupMedia(mediaSvc))
	api.Get("/media/:id", GetMedia(mediaSvc))
	api.Get("/media/:id/file", DownloadMedia(mediaSvc))
	api.Delete("/media/:id", DeleteMedia(mediaSvc))

	api.Get("/globals/:slug", GetGlobal(globalSvc))
	api.Put("/globals/:slug", UpdateGlobal(globalSvc))

	app.Get("/media/:filename", ServeMedia(servingDir, mediaSvc))
}

// HealthCheck godoc
// @Summary Readiness probe
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} errorPayload
// @Router /health [get]
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe answers 200 as long as the process serves requests.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}
