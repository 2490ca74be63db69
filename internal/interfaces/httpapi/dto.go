package httpapi

import (
	"context"

	"github.com/riskibarqy/statsfeed/internal/domain/event"
	"github.com/riskibarqy/statsfeed/internal/usecase"
)

type sportDTO struct {
	Key        string `json:"key"`
	LeagueName string `json:"league_name"`
}

type eventSummaryDTO struct {
	EventID      string `json:"event_id"`
	StartTimeUTC string `json:"start_time_utc"`
	HomeTeamName string `json:"home_team_name"`
	AwayTeamName string `json:"away_team_name"`
}

type clockDTO struct {
	Display           string `json:"display"`
	Minutes           *int   `json:"minutes,omitempty"`
	Seconds           *int   `json:"seconds,omitempty"`
	AdditionalMinutes *int   `json:"additional_minutes,omitempty"`
}

type eventDetailDTO struct {
	LeagueName       string   `json:"league_name"`
	EventID          string   `json:"event_id"`
	EventStatus      string   `json:"event_status"`
	StartTimeUTC     string   `json:"start_time_utc"`
	CurrentPeriod    int      `json:"current_period"`
	CurrentTime      clockDTO `json:"current_time"`
	HomeTeamName     string   `json:"home_team_name"`
	AwayTeamName     string   `json:"away_team_name"`
	HomeScoreBefore  *int     `json:"home_score_before,omitempty"`
	HomeScoreAfter   int      `json:"home_score_after"`
	AwayScoreBefore  *int     `json:"away_score_before,omitempty"`
	AwayScoreAfter   int      `json:"away_score_after"`
	LastPBPEventName string   `json:"last_pbp_event_name"`
	LastPBPEventID   int64    `json:"last_pbp_event_id"`
	PlayerName       string   `json:"player_name"`
	Touchdown        bool     `json:"touchdown,omitempty"`
	VenueName        string   `json:"venue_name"`
	VenueCity        string   `json:"venue_city"`
}

type eventDetailResultDTO struct {
	EventID string           `json:"event_id"`
	Detail  *eventDetailDTO  `json:"detail,omitempty"`
	Error   *googleErrorItem `json:"error,omitempty"`
}

func sportToDTO(item event.Sport) sportDTO {
	return sportDTO{Key: item.Key, LeagueName: item.League}
}

func eventSummaryToDTO(item event.Summary) eventSummaryDTO {
	return eventSummaryDTO{
		EventID:      item.EventID,
		StartTimeUTC: item.StartTimeUTC,
		HomeTeamName: item.HomeTeamName,
		AwayTeamName: item.AwayTeamName,
	}
}

func eventDetailToDTO(item event.Detail) eventDetailDTO {
	return eventDetailDTO{
		LeagueName:    item.League,
		EventID:       item.EventID,
		EventStatus:   item.Status.String(),
		StartTimeUTC:  item.StartTimeUTC,
		CurrentPeriod: item.CurrentPeriod,
		CurrentTime: clockDTO{
			Display:           item.CurrentTime.String(),
			Minutes:           item.CurrentTime.Minutes,
			Seconds:           item.CurrentTime.Seconds,
			AdditionalMinutes: item.CurrentTime.AdditionalMinutes,
		},
		HomeTeamName:     item.HomeTeamName,
		AwayTeamName:     item.AwayTeamName,
		HomeScoreBefore:  item.HomeScoreBefore,
		HomeScoreAfter:   item.HomeScoreAfter,
		AwayScoreBefore:  item.AwayScoreBefore,
		AwayScoreAfter:   item.AwayScoreAfter,
		LastPBPEventName: item.LastPlayName,
		LastPBPEventID:   item.LastPlayID,
		PlayerName:       item.PlayerName,
		Touchdown:        item.Touchdown,
		VenueName:        item.VenueName,
		VenueCity:        item.VenueCity,
	}
}

func eventDetailResultToDTO(ctx context.Context, item usecase.DetailResult) eventDetailResultDTO {
	out := eventDetailResultDTO{EventID: item.EventID}
	if item.Err != nil {
		mapped := mapError(ctx, item.Err)
		message := mapped.Message
		if message == "" {
			message = item.Err.Error()
		}
		out.Error = &googleErrorItem{
			Domain:  errorDomain,
			Reason:  mapped.Reason,
			Message: message,
		}
		return out
	}
	if item.Detail != nil {
		detail := eventDetailToDTO(*item.Detail)
		out.Detail = &detail
	}
	return out
}
