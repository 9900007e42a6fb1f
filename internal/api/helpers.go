package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/facegate/facegate/internal/entity"
	"github.com/facegate/facegate/internal/service"
)

const (
	msgInternal         = "Internal error"
	msgBadRequest       = "Malformed request"
	msgDecisionFailed   = "The access decision could not be made"
	msgEmployeeNotFound = "Employee not found"
)

type ResponseError struct {
	Message string `json:"message"`
}

func sendErr(ctx context.Context, w http.ResponseWriter, code int, err error, msg string) {
	slog.ErrorContext(ctx, msg, "error", err.Error(), "http_code", code)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	err = json.NewEncoder(w).Encode(ResponseError{
		Message: msg,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to encode error response",
			"error", err.Error(),
			"http_code", http.StatusInternalServerError)
	}
}

func sendJSON(ctx context.Context, w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		sendErr(ctx, w, http.StatusInternalServerError, err, msgInternal)
		return
	}
}

func isValidationErr(err error) bool {
	return errors.Is(err, entity.ErrInvalidRole) ||
		errors.Is(err, entity.ErrInvalidStatus) ||
		errors.Is(err, entity.ErrInvalidLevel) ||
		errors.Is(err, entity.ErrPinFormat)
}

func validationErrText(err error) string {
	switch {
	case errors.Is(err, entity.ErrInvalidRole):
		return "Unknown employee role"
	case errors.Is(err, entity.ErrInvalidStatus):
		return "Unknown employee status"
	case errors.Is(err, entity.ErrInvalidLevel):
		return fmt.Sprintf("Access level must be between %d and %d",
			entity.AreaMinAccessLevel, entity.AreaMaxAccessLevel)
	case errors.Is(err, entity.ErrPinFormat):
		return pinFormatText()
	default:
		return msgInternal
	}
}

func pinFormatText() string {
	return fmt.Sprintf("The PIN must be %d to %d digits", service.PINMinLen, service.PINMaxLen)
}
