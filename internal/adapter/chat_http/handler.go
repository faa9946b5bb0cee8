package chat_http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"nelson-chat/internal/domain"
	"nelson-chat/internal/infra/logger"
	"nelson-chat/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// CORS settings for the browser caller. Preflight never reaches the
// pipeline; the middleware in cmd/server answers it.
var (
	AllowOrigins = []string{"*"}
	AllowHeaders = []string{"authorization", "x-client-info", "apikey", "content-type"}
)

// fallbackAnswer is the only answer text a caller ever sees on
// failure. Upstream error detail stays in the logs; it must never be
// mistaken for medical content.
const fallbackAnswer = "I apologize, but I encountered an error processing your request. Please try again in a moment."

// Coarse cause messages for the 500 body. Fixed strings, no upstream text.
const (
	causeRetrieval  = "Error searching reference content"
	causeGeneration = "Error generating AI response"
	causeInternal   = "Internal error"
)

// ChatRequest is the request contract of the chat endpoint.
type ChatRequest struct {
	Message string `json:"message" validate:"required"`
	UserID  string `json:"userId"`
}

// ChatResponse is the success contract: the grounded answer plus the
// labeled passages actually used, in retrieval order.
type ChatResponse struct {
	Answer  string   `json:"answer"`
	Context []string `json:"context"`
}

// ErrorResponse is the canonical failure body. Answer carries the
// apologetic fallback on pipeline failures and is omitted on
// validation failures.
type ErrorResponse struct {
	Error  string `json:"error"`
	Answer string `json:"answer,omitempty"`
}

type Handler struct {
	answerUsecase usecase.AnswerQuestionUsecase
	validate      *validator.Validate
	contextLogger *logger.ContextLogger
}

func NewHandler(answerUsecase usecase.AnswerQuestionUsecase, contextLogger *logger.ContextLogger) *Handler {
	return &Handler{
		answerUsecase: answerUsecase,
		validate:      validator.New(),
		contextLogger: contextLogger,
	}
}

// Chat answers a free-text pediatric question from the reference corpus.
// (POST /nelson-chat)
func (h *Handler) Chat(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Message is required"})
	}
	if err := h.validate.Struct(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Message is required"})
	}

	ctx := logger.WithUserID(c.Request().Context(), req.UserID)
	if requestID := c.Response().Header().Get(echo.HeaderXRequestID); requestID != "" {
		ctx = logger.WithRequestID(ctx, requestID)
	}
	log := h.contextLogger.WithContext(ctx)

	output, err := h.answerUsecase.Execute(ctx, usecase.AnswerQuestionInput{
		Message: req.Message,
		UserID:  req.UserID,
	})
	if err != nil {
		return h.writeError(c, log, err)
	}

	return c.JSON(http.StatusOK, ChatResponse{
		Answer:  output.Answer,
		Context: output.Context,
	})
}

// writeError maps pipeline failures to the canonical error body. Full
// detail goes to the log; the caller gets a coarse cause plus the
// fixed fallback answer.
func (h *Handler) writeError(c echo.Context, log *slog.Logger, err error) error {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: validationErr.Reason})
	}

	cause := causeInternal
	var retrievalErr *domain.RetrievalError
	var generationErr *domain.GenerationError
	switch {
	case errors.As(err, &retrievalErr):
		cause = causeRetrieval
		log.Error("chat_retrieval_error",
			slog.String("collection", string(retrievalErr.Collection)),
			slog.String("error", err.Error()))
	case errors.As(err, &generationErr):
		cause = causeGeneration
		log.Error("chat_generation_error",
			slog.String("kind", string(generationErr.Kind)),
			slog.Int("status", generationErr.StatusCode),
			slog.String("error", err.Error()))
	default:
		log.Error("chat_internal_error", slog.String("error", err.Error()))
	}

	return c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:  cause,
		Answer: fallbackAnswer,
	})
}
