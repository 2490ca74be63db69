package statscom

import (
	"context"
	"fmt"

	"github.com/riskibarqy/statsfeed/internal/domain/event"
	"github.com/riskibarqy/statsfeed/internal/usecase"
)

// Service combines the signed client with the sport registry and implements
// usecase.EventProvider.
type Service struct {
	client   *Client
	registry *Registry
}

func NewService(client *Client, registry *Registry) *Service {
	return &Service{client: client, registry: registry}
}

func (s *Service) Sports() []event.Sport {
	return s.registry.Sports()
}

func (s *Service) ListEvents(ctx context.Context, sport string, dates usecase.DateRange) ([]event.Summary, error) {
	adapter, err := s.registry.Get(sport)
	if err != nil {
		return nil, err
	}

	raw, err := s.client.FetchEventList(ctx, adapter, dates.Start, dates.End)
	if err != nil {
		return nil, fmt.Errorf("fetch %s events: %w", adapter.Key(), err)
	}
	items, err := ExtractEvents(adapter, raw)
	if err != nil {
		return nil, fmt.Errorf("extract %s events: %w", adapter.Key(), err)
	}
	return items, nil
}

func (s *Service) GetEventDetail(ctx context.Context, sport, eventID string) (event.Detail, error) {
	adapter, err := s.registry.Get(sport)
	if err != nil {
		return event.Detail{}, err
	}

	raw, err := s.client.FetchEventDetail(ctx, adapter, eventID)
	if err != nil {
		return event.Detail{}, fmt.Errorf("fetch %s event_id=%s: %w", adapter.Key(), eventID, err)
	}
	detail, err := ExtractDetail(adapter, raw, eventID)
	if err != nil {
		return event.Detail{}, fmt.Errorf("extract %s event_id=%s: %w", adapter.Key(), eventID, err)
	}
	return detail, nil
}
