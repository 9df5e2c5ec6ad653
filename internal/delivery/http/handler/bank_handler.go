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
	BankHandler interface {
		Promote(ctx *fiber.Ctx) error
		PendingPromotion(ctx *fiber.Ctx) error
		UpdateEntryMetadata(ctx *fiber.Ctx) error
	}

	bankHandler struct {
		validator *validate.Validator
		logger    *logrus.Logger
		usecase   usecase.QuestionBankUsecase
	}
)

func NewBankHandler(validator *validate.Validator, logger *logrus.Logger, usecase usecase.QuestionBankUsecase) BankHandler {
	return &bankHandler{
		validator: validator,
		logger:    logger,
		usecase:   usecase,
	}
}

// POST /bank/promote
func (h *bankHandler) Promote(ctx *fiber.Ctx) error {
	var req entity.PromoteRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.BANK_PROMOTE_FAILED, err, h.logger).Send(ctx)
	}

	result, err := h.usecase.Promote(ctx.UserContext(), req)
	if err != nil {
		return response.NewFailed(domain.BANK_PROMOTE_FAILED, fiber.NewError(fiber.StatusBadRequest, err.Error()), h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.BANK_PROMOTE_SUCCESS, result, nil).Send(ctx)
}

// GET /bank/pending?session_id=...
func (h *bankHandler) PendingPromotion(ctx *fiber.Ctx) error {
	sessionID := ctx.Query("session_id")

	questions, err := h.usecase.PendingPromotion(ctx.UserContext(), sessionID)
	if err != nil {
		return response.NewFailed(domain.BANK_PENDING_FAILED, fiber.NewError(fiber.StatusInternalServerError, err.Error()), h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.BANK_PENDING_SUCCESS, questions, nil).Send(ctx)
}

// PATCH /bank/entries/:entry_id
func (h *bankHandler) UpdateEntryMetadata(ctx *fiber.Ctx) error {
	entryID := ctx.Params("entry_id")
	if entryID == "" {
		return response.NewFailed(domain.BANK_UPDATE_METADATA_FAILED, fiber.NewError(fiber.StatusBadRequest, "entry_id is required"), h.logger).Send(ctx)
	}

	var req entity.UpdateEntryMetadataRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.BANK_UPDATE_METADATA_FAILED, err, h.logger).Send(ctx)
	}

	result, err := h.usecase.UpdateEntryMetadata(ctx.UserContext(), entryID, req)
	if err != nil {
		return response.NewFailed(domain.BANK_UPDATE_METADATA_FAILED, fiber.NewError(fiber.StatusNotFound, err.Error()), h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.BANK_UPDATE_METADATA_SUCCESS, result, nil).Send(ctx)
}
