package routes

import "github.com/gofiber/fiber/v2"

func APIRoot(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "railnext train search API",
		"version": "v0.1",
	})
}

func APIVersion(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"version": "v0.1",
	})
}
