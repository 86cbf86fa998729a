package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/railnext/railnext/pkg/api/routes"
	"github.com/railnext/railnext/pkg/trainfinder"
)

func SetupServer(listen string, finder *trainfinder.Finder) error {
	webApp := fiber.New()
	webApp.Use(NewLogger())

	webApp.Get("/", routes.APIRoot)
	webApp.Get("version", routes.APIVersion)

	routes.TrainsRouter(webApp.Group("/trains"), finder)

	return webApp.Listen(listen)
}
