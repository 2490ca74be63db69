package main

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/statsfeed/internal/domain/event"
)

var sortedJSON = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

func writeJSON(out io.Writer, payload any) error {
	raw, err := sortedJSON.MarshalIndent(payload, "", "    ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(out, string(raw))
	return err
}

func summariesOutput(items []event.Summary) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		out = append(out, map[string]any{
			"event_id":       item.EventID,
			"start_time_utc": item.StartTimeUTC,
			"home_team_name": item.HomeTeamName,
			"away_team_name": item.AwayTeamName,
		})
	}
	return out
}

func detailOutput(detail event.Detail) map[string]any {
	out := map[string]any{
		"league_name":         detail.League,
		"event_id":            detail.EventID,
		"event_status":        detail.Status.String(),
		"start_time_utc":      detail.StartTimeUTC,
		"current_period":      detail.CurrentPeriod,
		"current_time":        clockOutput(detail.CurrentTime),
		"home_team_name":      detail.HomeTeamName,
		"away_team_name":      detail.AwayTeamName,
		"home_score_after":    detail.HomeScoreAfter,
		"away_score_after":    detail.AwayScoreAfter,
		"last_pbp_event_name": detail.LastPlayName,
		"last_pbp_event_id":   detail.LastPlayID,
		"player_name":         detail.PlayerName,
		"venue_name":          detail.VenueName,
		"venue_city":          detail.VenueCity,
	}
	if detail.HomeScoreBefore != nil {
		out["home_score_before"] = *detail.HomeScoreBefore
	}
	if detail.AwayScoreBefore != nil {
		out["away_score_before"] = *detail.AwayScoreBefore
	}
	return out
}

// clockOutput keeps the soccer clock as an object and the football clock as the vendor string.
func clockOutput(clock event.Clock) any {
	if clock.Minutes == nil && clock.Seconds == nil && clock.AdditionalMinutes == nil {
		return clock.Remaining
	}
	out := map[string]any{}
	if clock.Minutes != nil {
		out["minutes"] = *clock.Minutes
	}
	if clock.Seconds != nil {
		out["seconds"] = *clock.Seconds
	}
	if clock.AdditionalMinutes != nil {
		out["additionalMinutes"] = *clock.AdditionalMinutes
	}
	return out
}
