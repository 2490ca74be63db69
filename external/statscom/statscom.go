package statscom

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
)

// envelope is the common wrapper around every stats.com events response.
type envelope struct {
	APIResults []apiResult `json:"apiResults"`
}

type apiResult struct {
	League *struct {
		Season *struct {
			EventType []map[string]json.RawMessage `json:"eventType"`
		} `json:"season"`
	} `json:"league"`
}

type eventCommon struct {
	EventID     vendorID       `json:"eventId"`
	StartDate   []startDateRef `json:"startDate"`
	Teams       []teamRef      `json:"teams"`
	EventStatus *struct {
		EventStatusID *int `json:"eventStatusId"`
	} `json:"eventStatus"`
	Venue *venueRef `json:"venue"`
}

type startDateRef struct {
	DateType string `json:"dateType"`
	Full     string `json:"full"`
}

type teamRef struct {
	Location         string `json:"location"`
	Nickname         string `json:"nickname"`
	TeamLocationType struct {
		Name string `json:"name"`
	} `json:"teamLocationType"`
}

type venueRef struct {
	Name string `json:"name"`
	City string `json:"city"`
}

type playerRef struct {
	DisplayName string `json:"displayName"`
}

type soccerMatch struct {
	eventCommon
	PBP []soccerPlay `json:"pbp"`
}

type soccerPlay struct {
	SequenceNumber *int64 `json:"sequenceNumber"`
	Period         *int   `json:"period"`
	Time           *struct {
		Minutes           *int `json:"minutes"`
		Seconds           *int `json:"seconds"`
		AdditionalMinutes *int `json:"additionalMinutes"`
	} `json:"time"`
	PlayEvent *struct {
		PlayEventID *int64 `json:"playEventId"`
		Name        string `json:"name"`
	} `json:"playEvent"`
	HomeScore       *int       `json:"homeScore"`
	AwayScore       *int       `json:"awayScore"`
	OffensivePlayer *playerRef `json:"offensivePlayer"`
	DefensivePlayer *playerRef `json:"defensivePlayer"`
	ReplacedPlayer  *playerRef `json:"replacedPlayer"`
	AssistingPlayer *playerRef `json:"assistingPlayer"`
}

type footballEvent struct {
	eventCommon
	LastPlay *footballPlay  `json:"lastPlay"`
	PBP      []footballPlay `json:"pbp"`
}

type footballPlay struct {
	PlayID          *int64    `json:"playId"`
	Period          *int      `json:"period"`
	Time            gameClock `json:"time"`
	HomeScoreBefore *int      `json:"homeScoreBefore"`
	HomeScoreAfter  *int      `json:"homeScoreAfter"`
	AwayScoreBefore *int      `json:"awayScoreBefore"`
	AwayScoreAfter  *int      `json:"awayScoreAfter"`
	PlayType        *struct {
		PlayTypeID *int64 `json:"playTypeId"`
		Name       string `json:"name"`
	} `json:"playType"`
	PlayersInvolved []playerInvolved `json:"playersInvolved"`
}

type playerInvolved struct {
	TypeSequence       int             `json:"typeSequence"`
	PlayerInvolvedType involvementType `json:"playerInvolvedType"`
	Player             *struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	} `json:"player"`
}

// vendorID accepts the event id as either a JSON number or a string.
type vendorID string

func (v *vendorID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*v = ""
		return nil
	}
	if trimmed[0] == '"' {
		var text string
		if err := sonic.Unmarshal(trimmed, &text); err != nil {
			return err
		}
		*v = vendorID(strings.TrimSpace(text))
		return nil
	}
	if _, err := strconv.ParseFloat(string(trimmed), 64); err != nil {
		return fmt.Errorf("decode event id %q: %w", trimmed, err)
	}
	*v = vendorID(trimmed)
	return nil
}

// gameClock is the football time remaining. The feed sends it as "12:34", as
// {"minutes":12,"seconds":34} or as a bare number depending on the endpoint.
type gameClock struct {
	Value string
	Set   bool
}

func (c *gameClock) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		c.Set = false
		return nil
	}

	switch trimmed[0] {
	case '"':
		var text string
		if err := sonic.Unmarshal(trimmed, &text); err != nil {
			return err
		}
		c.Value = strings.TrimSpace(text)
	case '{':
		var parts struct {
			Minutes int `json:"minutes"`
			Seconds int `json:"seconds"`
		}
		if err := sonic.Unmarshal(trimmed, &parts); err != nil {
			return err
		}
		c.Value = fmt.Sprintf("%d:%02d", parts.Minutes, parts.Seconds)
	default:
		if _, err := strconv.ParseFloat(string(trimmed), 64); err != nil {
			return fmt.Errorf("decode game clock %q: %w", trimmed, err)
		}
		c.Value = string(trimmed)
	}
	c.Set = true
	return nil
}

// involvementType is sent either as a bare string or as {"name": "..."}.
type involvementType string

func (t *involvementType) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*t = ""
		return nil
	}

	if trimmed[0] == '{' {
		var wrapped struct {
			Name string `json:"name"`
		}
		if err := sonic.Unmarshal(trimmed, &wrapped); err != nil {
			return err
		}
		*t = involvementType(strings.TrimSpace(wrapped.Name))
		return nil
	}

	var text string
	if err := sonic.Unmarshal(trimmed, &text); err != nil {
		return err
	}
	*t = involvementType(strings.TrimSpace(text))
	return nil
}

func (t involvementType) is(name string) bool {
	return string(t) == name
}
