package event

import (
	"fmt"
	"strings"
)

// Status is the normalized lifecycle state of an event.
type Status int

const (
	StatusNotStarted Status = iota
	StatusInProgress
	StatusPostGame
	StatusPostponedOrCancelled
)

const (
	vendorStatusInProgress = 2
	vendorStatusPostGame   = 4
)

func (s Status) String() string {
	switch s {
	case StatusInProgress:
		return "In Progress"
	case StatusPostGame:
		return "Post Game"
	case StatusPostponedOrCancelled:
		return "Postponed Or Cancelled"
	default:
		return "Not Started"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// StatusFromCode maps a vendor eventStatusId. The vendor does not tell "not started" apart
// from "postponed/cancelled", so every code other than 2 and 4 is rejected.
func StatusFromCode(code int) (Status, error) {
	switch code {
	case vendorStatusInProgress:
		return StatusInProgress, nil
	case vendorStatusPostGame:
		return StatusPostGame, nil
	default:
		return StatusNotStarted, InvalidStatus(code)
	}
}

// Sport identifies one supported vendor dialect.
type Sport struct {
	Key    string `json:"key"`
	League string `json:"league_name"`
}

// Summary is one row of an event listing.
type Summary struct {
	EventID      string `json:"event_id"`
	StartTimeUTC string `json:"start_time_utc"`
	HomeTeamName string `json:"home_team_name"`
	AwayTeamName string `json:"away_team_name"`
}

// Clock is the game clock of the selected play. Soccer fills the minute fields,
// football fills Remaining.
type Clock struct {
	Minutes           *int   `json:"minutes,omitempty"`
	Seconds           *int   `json:"seconds,omitempty"`
	AdditionalMinutes *int   `json:"additional_minutes,omitempty"`
	Remaining         string `json:"remaining,omitempty"`
}

func (c Clock) String() string {
	if strings.TrimSpace(c.Remaining) != "" {
		return c.Remaining
	}
	if c.Minutes == nil {
		return ""
	}
	seconds := 0
	if c.Seconds != nil {
		seconds = *c.Seconds
	}
	out := fmt.Sprintf("%d:%02d", *c.Minutes, seconds)
	if c.AdditionalMinutes != nil && *c.AdditionalMinutes > 0 {
		out += fmt.Sprintf("+%d", *c.AdditionalMinutes)
	}
	return out
}

// Detail is the normalized state of one event, derived from a single play-by-play entry.
type Detail struct {
	League          string `json:"league_name"`
	EventID         string `json:"event_id"`
	Status          Status `json:"event_status"`
	StartTimeUTC    string `json:"start_time_utc"`
	CurrentPeriod   int    `json:"current_period"`
	CurrentTime     Clock  `json:"current_time"`
	HomeTeamName    string `json:"home_team_name"`
	AwayTeamName    string `json:"away_team_name"`
	HomeScoreBefore *int   `json:"home_score_before,omitempty"`
	HomeScoreAfter  int    `json:"home_score_after"`
	AwayScoreBefore *int   `json:"away_score_before,omitempty"`
	AwayScoreAfter  int    `json:"away_score_after"`
	LastPlayName    string `json:"last_pbp_event_name"`
	LastPlayID      int64  `json:"last_pbp_event_id"`
	PlayerName      string `json:"player_name"`
	Touchdown       bool   `json:"touchdown,omitempty"`
	VenueName       string `json:"venue_name"`
	VenueCity       string `json:"venue_city"`
}
