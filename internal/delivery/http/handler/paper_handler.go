package handler

import (
	"github.com/fahrizm/soalgen-be/internal/delivery/http/domain"
	"github.com/fahrizm/soalgen-be/internal/delivery/http/entity"
	"github.com/fahrizm/soalgen-be/internal/delivery/http/usecase"
	"github.com/fahrizm/soalgen-be/internal/pkg/response"
	"github.com/fahrizm/soalgen-be/internal/pkg/validate"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type (
	PaperHandler interface {
		Generate(ctx *fiber.Ctx) error
		GenerateDiversified(ctx *fiber.Ctx) error
		GenerateEvaluated(ctx *fiber.Ctx) error
	}

	paperHandler struct {
		validator *validate.Validator
		logger    *logrus.Logger
		usecase   usecase.PaperUsecase
	}
)

func NewPaperHandler(validator *validate.Validator, logger *logrus.Logger, usecase usecase.PaperUsecase) PaperHandler {
	return &paperHandler{
		validator: validator,
		logger:    logger,
		usecase:   usecase,
	}
}

func (h *paperHandler) generate(ctx *fiber.Ctx, run func(*fiber.Ctx, entity.PaperRequest) (*entity.GeneratedPaper, error)) error {
	var req entity.PaperRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.PAPER_GENERATE_FAILED, err, h.logger).Send(ctx)
	}

	result, err := run(ctx, req)
	if err != nil {
		return response.NewFailed(domain.PAPER_GENERATE_FAILED, fiber.NewError(fiber.StatusBadRequest, err.Error()), h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.PAPER_GENERATE_SUCCESS, result, nil).Send(ctx)
}

// POST /papers/generate
func (h *paperHandler) Generate(ctx *fiber.Ctx) error {
	return h.generate(ctx, func(c *fiber.Ctx, req entity.PaperRequest) (*entity.GeneratedPaper, error) {
		return h.usecase.Generate(c.UserContext(), req)
	})
}

// POST /papers/generate/diversified
func (h *paperHandler) GenerateDiversified(ctx *fiber.Ctx) error {
	return h.generate(ctx, func(c *fiber.Ctx, req entity.PaperRequest) (*entity.GeneratedPaper, error) {
		return h.usecase.GenerateDiversified(c.UserContext(), req)
	})
}

// POST /papers/generate/evaluated
func (h *paperHandler) GenerateEvaluated(ctx *fiber.Ctx) error {
	return h.generate(ctx, func(c *fiber.Ctx, req entity.PaperRequest) (*entity.GeneratedPaper, error) {
		return h.usecase.GenerateEvaluated(c.UserContext(), req)
	})
}
