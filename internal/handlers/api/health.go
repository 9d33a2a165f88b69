package api

import (
	"github.com/gofiber/fiber/v3"
)

// Healthz reports that the server is up. It does not touch the search log;
// store problems are reported by the integrity checker instead.
func Healthz(c fiber.Ctx) error {
	return jsonSuccess(c, fiber.Map{"alive": true})
}
