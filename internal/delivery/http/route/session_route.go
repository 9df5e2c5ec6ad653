package route

import (
	"github.com/fahrizm/soalgen-be/internal/delivery/http/handler"
	"github.com/fahrizm/soalgen-be/internal/delivery/http/middleware"
	"github.com/gofiber/fiber/v2"
)

func SetupSessionRoute(api *fiber.App, handler handler.SessionHandler, m *middleware.Middleware) {
	router := api.Group("/sessions")
	{
		router.Post("/", handler.StartSession)
		router.Get("/", handler.ListSessions)
		router.Get("/:session_id", handler.GetSession)
		router.Get("/:session_id/stream", handler.StreamSession)
		router.Get("/:session_id/questions", handler.GetSessionQuestions)
	}
}
