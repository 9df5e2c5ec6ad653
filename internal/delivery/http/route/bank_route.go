package route

import (
	"github.com/fahrizm/soalgen-be/internal/delivery/http/handler"
	"github.com/fahrizm/soalgen-be/internal/delivery/http/middleware"
	"github.com/gofiber/fiber/v2"
)

func SetupBankRoute(api *fiber.App, handler handler.BankHandler, m *middleware.Middleware) {
	router := api.Group("/bank")
	{
		router.Post("/promote", handler.Promote)
		router.Get("/pending", handler.PendingPromotion)
		router.Patch("/entries/:entry_id", handler.UpdateEntryMetadata)
	}
}
