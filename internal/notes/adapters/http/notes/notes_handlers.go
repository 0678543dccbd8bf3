// Package notes содержит HTTP-обработчики для работы с заметками.
package notes

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"smartnotes/internal/notes/adapters/http/dto"
	"smartnotes/internal/notes/adapters/http/middleware"
	"smartnotes/internal/notes/app"
	"smartnotes/internal/notes/ports/api"
	"smartnotes/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerSummarize = "handling summarize request"
	LogHandlerSave      = "handling save note request"
	LogHandlerHistory   = "handling history request"

	ErrMsgNoText             = "No text provided"
	ErrMsgProcessing         = "Error processing text"
	ErrMsgSaveNote           = "Failed to save note"
	ErrMsgFetchHistory       = "Failed to fetch history"
	ErrMsgInvalidRequestBody = "invalid request body"

	MsgNoteSaved = "Note saved successfully!"
)

// Handler обработчик HTTP-запросов для работы с заметками.
type Handler struct {
	notes api.NoteUseCase
}

// NewHandler создает новый экземпляр обработчика заметок.
func NewHandler(notes api.NoteUseCase) *Handler {
	return &Handler{notes: notes}
}

// Summarize анализирует текст без сохранения.
func (h *Handler) Summarize(ctx fiber.Ctx) error {
	reqCtx := middleware.RequestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.Summarize"))
	log.Debug(reqCtx, LogHandlerSummarize)

	var req dto.SummarizeRequest
	if err := bindBody(ctx, &req); err != nil {
		log.Warn(reqCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}

	summary, err := h.notes.Summarize(reqCtx, req.Text)
	if err != nil {
		if errors.Is(err, app.ErrInvalidInput) {
			return sendError(ctx, fiber.StatusBadRequest, ErrMsgNoText)
		}
		log.Error(reqCtx, "failed to summarize text", zap.Error(err))
		return sendError(ctx, fiber.StatusInternalServerError, ErrMsgProcessing)
	}

	if err := ctx.JSON(dto.FromSummary(summary)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// Save сохраняет заметку в том виде, в котором ее прислал клиент.
func (h *Handler) Save(ctx fiber.Ctx) error {
	reqCtx := middleware.RequestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.Save"))
	log.Debug(reqCtx, LogHandlerSave)

	var req dto.SaveNoteRequest
	if err := bindBody(ctx, &req); err != nil {
		log.Warn(reqCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}

	note, err := h.notes.Save(reqCtx, req.OriginalText, req.Summary, req.Keywords)
	if err != nil {
		log.Error(reqCtx, "failed to save note", zap.Error(err))
		return sendError(ctx, fiber.StatusInternalServerError, ErrMsgSaveNote)
	}

	resp := dto.SaveNoteResponse{
		Message: MsgNoteSaved,
		Note:    dto.FromNote(note),
	}
	if err := ctx.JSON(resp); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// History возвращает все заметки, новые первыми.
func (h *Handler) History(ctx fiber.Ctx) error {
	reqCtx := middleware.RequestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.History"))
	log.Debug(reqCtx, LogHandlerHistory)

	notes, err := h.notes.ListHistory(reqCtx)
	if err != nil {
		log.Error(reqCtx, "failed to fetch history", zap.Error(err))
		return sendError(ctx, fiber.StatusInternalServerError, ErrMsgFetchHistory)
	}

	if err := ctx.JSON(dto.FromNotes(notes)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// bindBody разбирает JSON тело. Пустое тело дает нулевую структуру.
func bindBody(ctx fiber.Ctx, out any) error {
	if len(ctx.Body()) == 0 {
		return nil
	}
	if err := ctx.Bind().JSON(out); err != nil {
		return fmt.Errorf("bind body: %w", err)
	}
	return nil
}

func sendError(ctx fiber.Ctx, status int, msg string) error {
	if err := ctx.Status(status).JSON(fiber.Map{"error": msg}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}
	return nil
}
