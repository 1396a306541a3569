package handlers

import "github.com/gofiber/fiber/v2"

// Guards are the shared middlewares handlers attach to their routes.
type Guards struct {
	Auth       fiber.Handler // valid session required
	Admin      fiber.Handler // ADMIN role, checked against the database
	LoginLimit fiber.Handler
}
