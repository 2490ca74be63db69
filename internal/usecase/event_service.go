package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/statsfeed/internal/domain/event"
	"github.com/riskibarqy/statsfeed/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

const (
	defaultLookupWorkers = 4
	defaultLookupMaxIDs  = 20
)

// EventProvider fetches and normalizes events from the upstream stats feed.
type EventProvider interface {
	Sports() []event.Sport
	ListEvents(ctx context.Context, sport string, dates DateRange) ([]event.Summary, error)
	GetEventDetail(ctx context.Context, sport, eventID string) (event.Detail, error)
}

type EventServiceConfig struct {
	// Workers bounds concurrent lookups in GetEventDetails.
	Workers int
	// MaxBatchIDs caps how many ids one GetEventDetails call may request.
	MaxBatchIDs int
	Logger      *logging.Logger
}

// DetailResult is one entry of a batch lookup. Exactly one of Detail and Err is set.
type DetailResult struct {
	EventID string
	Detail  *event.Detail
	Err     error
}

type EventService struct {
	provider    EventProvider
	workers     int
	maxBatchIDs int
	logger      *logging.Logger
}

func NewEventService(provider EventProvider, cfg EventServiceConfig) *EventService {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultLookupWorkers
	}
	maxBatchIDs := cfg.MaxBatchIDs
	if maxBatchIDs <= 0 {
		maxBatchIDs = defaultLookupMaxIDs
	}

	return &EventService{
		provider:    provider,
		workers:     workers,
		maxBatchIDs: maxBatchIDs,
		logger:      logger,
	}
}

func (s *EventService) Sports(ctx context.Context) []event.Sport {
	_, span := startUsecaseSpan(ctx, "usecase.EventService.Sports", "")
	defer span.End()

	return s.provider.Sports()
}

func (s *EventService) ListEvents(ctx context.Context, sport, startDate, endDate string) ([]event.Summary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EventService.ListEvents", sport,
		attribute.String("statsfeed.start_date", startDate),
		attribute.String("statsfeed.end_date", endDate),
	)
	defer span.End()

	sport, err := normalizeSport(sport)
	if err != nil {
		return nil, err
	}
	dates, err := ParseDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	items, err := s.provider.ListEvents(ctx, sport, dates)
	if err != nil {
		recordSpanError(span, err)
		return nil, fmt.Errorf("list events sport=%s: %w", sport, err)
	}

	return items, nil
}

func (s *EventService) GetEventDetail(ctx context.Context, sport, eventID string) (event.Detail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EventService.GetEventDetail", sport,
		attribute.String("statsfeed.event_id", eventID),
	)
	defer span.End()

	sport, err := normalizeSport(sport)
	if err != nil {
		return event.Detail{}, err
	}
	eventID, err = normalizeEventID(eventID)
	if err != nil {
		return event.Detail{}, err
	}

	detail, err := s.provider.GetEventDetail(ctx, sport, eventID)
	if err != nil {
		recordSpanError(span, err)
		return event.Detail{}, fmt.Errorf("get event detail sport=%s: %w", sport, err)
	}

	return detail, nil
}

// GetEventDetails looks up several events in parallel. Results come back in the order
// of eventIDs and a failed lookup does not affect the others.
func (s *EventService) GetEventDetails(ctx context.Context, sport string, eventIDs []string) ([]DetailResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EventService.GetEventDetails", sport,
		attribute.Int("statsfeed.batch_size", len(eventIDs)),
	)
	defer span.End()

	sport, err := normalizeSport(sport)
	if err != nil {
		return nil, err
	}
	if len(eventIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one event id is required", ErrInvalidInput)
	}
	if len(eventIDs) > s.maxBatchIDs {
		return nil, fmt.Errorf("%w: at most %d event ids per request, got %d", ErrInvalidInput, s.maxBatchIDs, len(eventIDs))
	}

	ids := make([]string, 0, len(eventIDs))
	for _, raw := range eventIDs {
		id, err := normalizeEventID(raw)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	workerCount := s.workers
	if workerCount > len(ids) {
		workerCount = len(ids)
	}
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make([]DetailResult, len(ids))
	var workers sync.WaitGroup
	for i, id := range ids {
		results[i].EventID = id
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			detail, err := s.provider.GetEventDetail(ctx, sport, id)
			if err != nil {
				results[i].Err = fmt.Errorf("get event detail sport=%s: %w", sport, err)
				return
			}
			results[i].Detail = &detail
		}); err != nil {
			workers.Done()
			results[i].Err = fmt.Errorf("submit lookup to worker pool: %w", err)
		}
	}
	workers.Wait()

	failed := 0
	for _, item := range results {
		if item.Err != nil {
			failed++
		}
	}
	span.SetAttributes(attribute.Int("statsfeed.batch_failed", failed))
	if failed > 0 {
		s.logger.WarnContext(ctx, "event detail batch finished with failures",
			"sport", sport,
			"requested", len(ids),
			"failed", failed,
		)
	}

	return results, nil
}

func normalizeSport(sport string) (string, error) {
	sport = strings.ToLower(strings.TrimSpace(sport))
	if sport == "" {
		return "", fmt.Errorf("%w: sport is required", ErrInvalidInput)
	}
	return sport, nil
}

// normalizeEventID requires a numeric vendor id.
func normalizeEventID(eventID string) (string, error) {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return "", fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}
	for _, r := range eventID {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("%w: event id %q must be numeric", ErrInvalidInput, eventID)
		}
	}
	return eventID, nil
}
