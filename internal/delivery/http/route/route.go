package route

import (
	"github.com/fahrizm/soalgen-be/internal/delivery/http/handler"
	"github.com/fahrizm/soalgen-be/internal/delivery/http/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type RouteConfig struct {
	Api            *fiber.App
	Middleware     *middleware.Middleware
	SessionHandler handler.SessionHandler
	BankHandler    handler.BankHandler
	PaperHandler   handler.PaperHandler
}

func Setup(c *RouteConfig) {
	c.Api.Use(recover.New())
	c.Api.Use(logger.New(logger.Config{
		Format: "[${ip}]:${port} ${status} - ${method} ${path}\n",
	}))
	c.Api.Use(c.Middleware.CorsMiddleware())

	SetupSessionRoute(c.Api, c.SessionHandler, c.Middleware)
	SetupBankRoute(c.Api, c.BankHandler, c.Middleware)
	SetupPaperRoute(c.Api, c.PaperHandler, c.Middleware)
}
