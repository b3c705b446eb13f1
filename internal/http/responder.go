package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/marcelopachecouba/sgme/internal/application"
)

var (
	errBadRequestBody     = errors.New("formato de requisição inválido.")
	errInvalidParishID    = errors.New("ID de paróquia inválido.")
	errInvalidMinisterID  = errors.New("ID de ministro inválido.")
	errInvalidMassID      = errors.New("ID de missa inválido.")
	errInvalidSlotID      = errors.New("ID de horário fixo inválido.")
	errInvalidAbsenceID   = errors.New("ID de indisponibilidade inválido.")
	errInvalidAssignment  = errors.New("ID de escala inválido.")
	errMissingParishScope = errors.New("informe a paróquia no cabeçalho da requisição.")
	errInvalidMonth       = errors.New("ano e mês inválidos.")
)

type responder struct {
	logger *slog.Logger
}

func newResponder(logger *slog.Logger) responder {
	if logger == nil {
		logger = slog.Default()
	}
	return responder{logger: logger}
}

func (r responder) writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}

	if status == http.StatusNoContent || payload == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		r.loggerFor(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

func (r responder) writeError(ctx context.Context, w http.ResponseWriter, status int, err error) {
	message := localizedStatusMessage(status)
	if err != nil {
		if msg := strings.TrimSpace(err.Error()); msg != "" {
			message = msg
		}
		r.loggerFor(ctx).ErrorContext(ctx, "request failed", "status", status, "error", err)
	}

	r.writeJSON(ctx, w, status, errorResponse{Message: message})
}

func (r responder) handleServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	if err == nil {
		r.writeError(ctx, w, http.StatusInternalServerError, errors.New("unknown error"))
		return
	}

	switch {
	case errors.Is(err, application.ErrNotFound):
		r.writeJSON(ctx, w, http.StatusNotFound, errorResponse{Message: "o recurso solicitado não foi encontrado."})
	case errors.Is(err, application.ErrAlreadyExists):
		r.writeJSON(ctx, w, http.StatusConflict, errorResponse{Message: "já existe um registro com esses dados."})
	default:
		var vErr *application.ValidationError
		if errors.As(err, &vErr) {
			r.writeJSON(ctx, w, http.StatusUnprocessableEntity, errorResponse{
				Message: "há erros nos dados informados.",
				Errors:  localizeValidationErrors(vErr),
			})
			return
		}

		r.loggerFor(ctx).ErrorContext(ctx, "request failed", "error", err, "error_kind", application.ErrorKind(err))
		r.writeJSON(ctx, w, http.StatusInternalServerError, errorResponse{Message: "ocorreu um erro interno no servidor."})
	}
}

func (r responder) loggerFor(ctx context.Context) *slog.Logger {
	if logger := LoggerFromContext(ctx); logger != nil {
		return logger
	}
	return r.logger
}

func localizedStatusMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "a requisição não está correta."
	case http.StatusNotFound:
		return "o recurso solicitado não foi encontrado."
	case http.StatusConflict:
		return "a requisição conflita com o estado atual do recurso."
	case http.StatusUnprocessableEntity:
		return "há erros nos dados informados."
	default:
		return "ocorreu um erro interno no servidor."
	}
}

func localizeValidationErrors(vErr *application.ValidationError) map[string]string {
	if vErr == nil || len(vErr.FieldErrors) == 0 {
		return nil
	}

	translated := make(map[string]string, len(vErr.FieldErrors))
	for field, msg := range vErr.FieldErrors {
		translated[field] = translateValidationMessage(msg)
	}
	return translated
}

func translateValidationMessage(message string) string {
	switch message {
	case "name is required":
		return "o nome é obrigatório."
	case "date is required":
		return "a data é obrigatória."
	case "time label is required":
		return "o horário é obrigatório."
	case "required count must not be negative":
		return "a quantidade de ministros não pode ser negativa."
	case "years served must not be negative":
		return "os anos de serviço não podem ser negativos."
	case "week must be between 1 and 5":
		return "a semana deve estar entre 1 e 5."
	case "weekday must be between 0 (Monday) and 6 (Sunday)":
		return "o dia da semana deve estar entre 0 (segunda) e 6 (domingo)."
	case "minister is required":
		return "o ministro é obrigatório."
	case "minister does not exist":
		return "o ministro informado não existe."
	case "action must be confirm or decline":
		return "a ação deve ser confirmar ou recusar."
	default:
		return message
	}
}

type errorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}
