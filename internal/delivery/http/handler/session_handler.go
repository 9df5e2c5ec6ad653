package handler

import (
	"bufio"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/fahrizm/soalgen-be/internal/delivery/http/domain"
	"github.com/fahrizm/soalgen-be/internal/delivery/http/entity"
	"github.com/fahrizm/soalgen-be/internal/delivery/http/usecase"
	internalEntity "github.com/fahrizm/soalgen-be/internal/entity"
	"github.com/fahrizm/soalgen-be/internal/pkg/response"
	"github.com/fahrizm/soalgen-be/internal/pkg/stream"
	"github.com/fahrizm/soalgen-be/internal/pkg/validate"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"
)

type (
	SessionHandler interface {
		StartSession(ctx *fiber.Ctx) error
		StreamSession(ctx *fiber.Ctx) error
		ListSessions(ctx *fiber.Ctx) error
		GetSession(ctx *fiber.Ctx) error
		GetSessionQuestions(ctx *fiber.Ctx) error
	}

	sessionHandler struct {
		validator *validate.Validator
		logger    *logrus.Logger
		usecase   usecase.ExtractionUsecase
		streams   *stream.Registry
	}
)

func NewSessionHandler(validator *validate.Validator, logger *logrus.Logger, usecase usecase.ExtractionUsecase, streams *stream.Registry) SessionHandler {
	return &sessionHandler{
		validator: validator,
		logger:    logger,
		usecase:   usecase,
		streams:   streams,
	}
}

// POST /sessions
func (h *sessionHandler) StartSession(ctx *fiber.Ctx) error {
	var req entity.StartSessionRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.EXTRACTION_START_FAILED, err, h.logger).Send(ctx)
	}

	result, err := h.usecase.StartSession(ctx.UserContext(), req)
	if err != nil {
		return response.NewFailed(domain.EXTRACTION_START_FAILED, fiber.NewError(fiber.StatusBadRequest, err.Error()), h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.EXTRACTION_START_SUCCESS, result, nil).Send(ctx)
}

// GET /sessions/:session_id/stream - single-subscriber SSE feed of the
// session's ordered event stream.
func (h *sessionHandler) StreamSession(ctx *fiber.Ctx) error {
	// The stream writer outlives this handler, so the param must be copied
	// out of fiber's reusable buffers.
	sessionID := utils.CopyString(ctx.Params("session_id"))
	if sessionID == "" {
		return response.NewFailed(domain.EXTRACTION_STREAM_FAILED, fiber.NewError(fiber.StatusBadRequest, "session_id is required"), h.logger).Send(ctx)
	}

	st, err := h.streams.Attach(sessionID)
	if err != nil {
		code := fiber.StatusNotFound
		if err == stream.ErrStreamBusy {
			code = fiber.StatusConflict
		}
		return response.NewFailed(domain.EXTRACTION_STREAM_FAILED, fiber.NewError(code, err.Error()), h.logger).Send(ctx)
	}

	ctx.Set("Content-Type", "text/event-stream")
	ctx.Set("Cache-Control", "no-cache")
	ctx.Set("Connection", "keep-alive")

	streams := h.streams
	log := h.logger

	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		ended := false
		for ev := range st.Events() {
			if err := writeSSE(w, ev); err != nil {
				// Consumer went away; release the stream for a reattach.
				log.Warnf("stream %s consumer disconnected: %v", sessionID, err)
				streams.Detach(sessionID)
				return
			}
			if ev.Type == stream.EventComplete || ev.Type == stream.EventError {
				ended = true
			}
		}

		if !ended && st.Dropped() {
			// Dropped by backpressure: surface a stream-level error, the
			// session itself keeps running.
			_ = writeSSE(w, stream.Event{Type: stream.EventError, Data: stream.ErrorData{
				Message: "stream dropped: consumer too slow",
			}})
		}
		streams.Detach(sessionID)
		if ended {
			streams.Remove(sessionID)
		}
	}))

	return nil
}

func writeSSE(w *bufio.Writer, ev stream.Event) error {
	payload, err := json.Marshal(ev.Data)
	if err != nil {
		return err
	}
	if _, err := w.WriteString("event: " + string(ev.Type) + "\ndata: " + string(payload) + "\n\n"); err != nil {
		return err
	}
	return w.Flush()
}

// GET /sessions?status=completed&page=1&limit=10
func (h *sessionHandler) ListSessions(ctx *fiber.Ctx) error {
	page := 1
	if v := strings.TrimSpace(ctx.Query("page")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	limit := 10
	if v := strings.TrimSpace(ctx.Query("limit")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	status := strings.TrimSpace(ctx.Query("status"))
	if status != "" {
		switch status {
		case internalEntity.SessionStatusPending, internalEntity.SessionStatusProcessing,
			internalEntity.SessionStatusCompleted, internalEntity.SessionStatusFailed:
			// ok
		default:
			return response.NewFailed(domain.EXTRACTION_LIST_SESSION_FAILED, fiber.NewError(fiber.StatusBadRequest, "invalid status"), h.logger).Send(ctx)
		}
	}

	sessions, total, err := h.usecase.ListSessions(ctx.UserContext(), status, page, limit)
	if err != nil {
		return response.NewFailed(domain.EXTRACTION_LIST_SESSION_FAILED, fiber.NewError(fiber.StatusInternalServerError, err.Error()), h.logger).Send(ctx)
	}

	meta := response.NewPaginationMeta(page, limit, total)
	return response.NewSuccess(domain.EXTRACTION_LIST_SESSION_SUCCESS, sessions, meta).Send(ctx)
}

// GET /sessions/:session_id
func (h *sessionHandler) GetSession(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("session_id")
	if sessionID == "" {
		return response.NewFailed(domain.EXTRACTION_GET_SESSION_FAILED, fiber.NewError(fiber.StatusBadRequest, "session_id is required"), h.logger).Send(ctx)
	}

	session, err := h.usecase.GetSession(ctx.UserContext(), sessionID)
	if err != nil {
		return response.NewFailed(domain.EXTRACTION_GET_SESSION_FAILED, fiber.NewError(fiber.StatusNotFound, err.Error()), h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.EXTRACTION_GET_SESSION_SUCCESS, session, nil).Send(ctx)
}

// GET /sessions/:session_id/questions
func (h *sessionHandler) GetSessionQuestions(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("session_id")
	if sessionID == "" {
		return response.NewFailed(domain.EXTRACTION_GET_QUESTIONS_FAILED, fiber.NewError(fiber.StatusBadRequest, "session_id is required"), h.logger).Send(ctx)
	}

	questions, err := h.usecase.SessionQuestions(ctx.UserContext(), sessionID)
	if err != nil {
		return response.NewFailed(domain.EXTRACTION_GET_QUESTIONS_FAILED, fiber.NewError(fiber.StatusNotFound, err.Error()), h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.EXTRACTION_GET_QUESTIONS_SUCCESS, questions, nil).Send(ctx)
}
