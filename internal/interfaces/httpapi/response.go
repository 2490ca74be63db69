package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/statsfeed/internal/domain/event"
	"github.com/riskibarqy/statsfeed/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "statsfeed"

	// statusClientClosedRequest follows the nginx and Google API convention for a caller
	// that went away.
	statusClientClosedRequest = 499
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
	// Message replaces err.Error() as the top-level message when set.
	Message string
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	ctx, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	ctx, span := startSpan(ctx, "httpapi.writeSuccess")
	defer span.End()

	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(ctx, err)
	annotateSpanError(ctx, mapped, err)
	message := mapped.Message
	if message == "" {
		message = err.Error()
	}
	writeJSON(ctx, w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: message,
			Status:  mapped.Status,
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  mapped.Reason,
					Message: err.Error(),
				},
			},
		},
	})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	ctx, span := startSpan(ctx, "httpapi.writeInternalError")
	defer span.End()

	const msg = "internal server error"

	writeJSON(ctx, w, http.StatusInternalServerError, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    http.StatusInternalServerError,
			Message: msg,
			Status:  "INTERNAL",
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  "internalError",
					Message: msg,
				},
			},
		},
	})
}

func mapError(ctx context.Context, err error) mappedError {
	_, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return mappedError{
			HTTPStatus: http.StatusBadRequest,
			Reason:     "invalidInput",
			Status:     "INVALID_ARGUMENT",
		}
	case errors.Is(err, event.ErrUnsupportedSport):
		return mappedError{
			HTTPStatus: http.StatusBadRequest,
			Reason:     "unsupportedSport",
			Status:     "INVALID_ARGUMENT",
		}
	case errors.Is(err, event.ErrNoData):
		return mappedError{
			HTTPStatus: http.StatusNotFound,
			Reason:     "noData",
			Status:     "NOT_FOUND",
			Message:    event.NoDataMessage,
		}
	case errors.Is(err, event.ErrInvalidStatus):
		return mappedError{
			HTTPStatus: http.StatusConflict,
			Reason:     "invalidStatus",
			Status:     "FAILED_PRECONDITION",
			Message:    event.InvalidStatusMessage,
		}
	case errors.Is(err, event.ErrMissingField):
		return mappedError{
			HTTPStatus: http.StatusBadGateway,
			Reason:     "missingField",
			Status:     "UNAVAILABLE",
		}
	case errors.Is(err, event.ErrMalformedPayload):
		return mappedError{
			HTTPStatus: http.StatusBadGateway,
			Reason:     "malformedPayload",
			Status:     "UNAVAILABLE",
		}
	case errors.Is(err, event.ErrTransport):
		return mappedError{
			HTTPStatus: http.StatusBadGateway,
			Reason:     "transportError",
			Status:     "UNAVAILABLE",
		}
	case errors.Is(err, context.DeadlineExceeded):
		return mappedError{
			HTTPStatus: http.StatusGatewayTimeout,
			Reason:     "deadlineExceeded",
			Status:     "DEADLINE_EXCEEDED",
		}
	case errors.Is(err, context.Canceled):
		return mappedError{
			HTTPStatus: statusClientClosedRequest,
			Reason:     "cancelled",
			Status:     "CANCELLED",
		}
	default:
		return mappedError{
			HTTPStatus: http.StatusInternalServerError,
			Reason:     "internalError",
			Status:     "INTERNAL",
		}
	}
}
