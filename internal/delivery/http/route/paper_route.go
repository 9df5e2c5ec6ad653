package route

import (
	"github.com/fahrizm/soalgen-be/internal/delivery/http/handler"
	"github.com/fahrizm/soalgen-be/internal/delivery/http/middleware"
	"github.com/gofiber/fiber/v2"
)

func SetupPaperRoute(api *fiber.App, handler handler.PaperHandler, m *middleware.Middleware) {
	router := api.Group("/papers")
	{
		router.Post("/generate", handler.Generate)
		router.Post("/generate/diversified", handler.GenerateDiversified)
		router.Post("/generate/evaluated", handler.GenerateEvaluated)
	}
}
