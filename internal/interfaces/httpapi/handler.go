package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/statsfeed/internal/platform/logging"
	"github.com/riskibarqy/statsfeed/internal/usecase"
)

type Handler struct {
	eventService *usecase.EventService
	logger       *logging.Logger
	validator    *validator.Validate
}

func NewHandler(eventService *usecase.EventService, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		eventService: eventService,
		logger:       logger,
		validator:    validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type listEventsQuery struct {
	StartDate string `validate:"required,min=8,max=10"`
	EndDate   string `validate:"required,min=8,max=10"`
}

type eventDetailsQuery struct {
	IDs []string `validate:"required,min=1,dive,required,numeric"`
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListSports(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSports")
	defer span.End()

	sports := h.eventService.Sports(ctx)
	items := make([]sportDTO, 0, len(sports))
	for _, item := range sports {
		items = append(items, sportToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListEvents", routeAttributes(r)...)
	defer span.End()

	sport := r.PathValue("sport")
	query := listEventsQuery{
		StartDate: strings.TrimSpace(r.URL.Query().Get("startDate")),
		EndDate:   strings.TrimSpace(r.URL.Query().Get("endDate")),
	}
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.eventService.ListEvents(ctx, sport, query.StartDate, query.EndDate)
	if err != nil {
		h.logger.WarnContext(ctx, "list events failed", "sport", sport, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]eventSummaryDTO, 0, len(items))
	for _, item := range items {
		out = append(out, eventSummaryToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetEventDetail(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetEventDetail", routeAttributes(r)...)
	defer span.End()

	sport := r.PathValue("sport")
	eventID := r.PathValue("eventID")
	detail, err := h.eventService.GetEventDetail(ctx, sport, eventID)
	if err != nil {
		h.logger.WarnContext(ctx, "get event detail failed", "sport", sport, "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, eventDetailToDTO(detail))
}

func (h *Handler) GetEventDetails(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetEventDetails", routeAttributes(r)...)
	defer span.End()

	sport := r.PathValue("sport")
	query := eventDetailsQuery{IDs: parseCSVQuery(r.URL.Query()["ids"])}
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}

	results, err := h.eventService.GetEventDetails(ctx, sport, query.IDs)
	if err != nil {
		h.logger.WarnContext(ctx, "get event details failed", "sport", sport, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]eventDetailResultDTO, 0, len(results))
	for _, item := range results {
		out = append(out, eventDetailResultToDTO(ctx, item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

// parseCSVQuery accepts both ids=1,2 and ids=1&ids=2.
func parseCSVQuery(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			item := strings.TrimSpace(part)
			if item == "" {
				continue
			}
			out = append(out, item)
		}
	}
	return out
}
