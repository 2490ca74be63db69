package statscom

import (
	"github.com/riskibarqy/statsfeed/internal/domain/event"
)

const (
	SoccerKey    = "epl"
	SoccerLeague = "EPL"
)

type SoccerAdapter struct {
	eventsPath string
}

func NewSoccerAdapter(cfg AdapterConfig) *SoccerAdapter {
	return &SoccerAdapter{eventsPath: normalizeEventsPath(cfg.EventsPath)}
}

func (a *SoccerAdapter) Key() string        { return SoccerKey }
func (a *SoccerAdapter) League() string     { return SoccerLeague }
func (a *SoccerAdapter) EventsPath() string { return a.eventsPath }
func (a *SoccerAdapter) ListKey() string    { return "matches" }

func (a *SoccerAdapter) Summaries(list []byte) ([]event.Summary, error) {
	return summarize(list, func(m soccerMatch) eventCommon { return m.eventCommon })
}

func (a *SoccerAdapter) Detail(list []byte, eventID string) (event.Detail, error) {
	match, err := firstRecord[soccerMatch](list, a.ListKey())
	if err != nil {
		return event.Detail{}, err
	}

	out, err := match.detailBase(a.League(), eventID)
	if err != nil {
		return event.Detail{}, err
	}

	play, err := selectLatest(tail(match.PBP, tailWindow), "pbp.sequenceNumber", func(p soccerPlay) *int64 {
		return p.SequenceNumber
	})
	if err != nil {
		return event.Detail{}, err
	}
	if err := applySoccerPlay(&out, play); err != nil {
		return event.Detail{}, err
	}
	return out, nil
}

func applySoccerPlay(out *event.Detail, play soccerPlay) error {
	switch {
	case play.Period == nil:
		return event.MissingField("pbp.period")
	case play.Time == nil:
		return event.MissingField("pbp.time")
	case play.PlayEvent == nil || play.PlayEvent.PlayEventID == nil:
		return event.MissingField("pbp.playEvent.playEventId")
	case play.HomeScore == nil:
		return event.MissingField("pbp.homeScore")
	case play.AwayScore == nil:
		return event.MissingField("pbp.awayScore")
	}

	out.CurrentPeriod = *play.Period
	out.CurrentTime = event.Clock{
		Minutes:           play.Time.Minutes,
		Seconds:           play.Time.Seconds,
		AdditionalMinutes: play.Time.AdditionalMinutes,
	}
	out.HomeScoreAfter = *play.HomeScore
	out.AwayScoreAfter = *play.AwayScore
	out.LastPlayID = *play.PlayEvent.PlayEventID
	out.LastPlayName = play.PlayEvent.Name
	out.PlayerName = soccerPlayerName(play)
	return nil
}

// soccerPlayerName checks offensive, defensive, replaced and assisting roles in that
// order; each role present overrides the previous one.
func soccerPlayerName(play soccerPlay) string {
	name := ""
	for _, ref := range []*playerRef{
		play.OffensivePlayer,
		play.DefensivePlayer,
		play.ReplacedPlayer,
		play.AssistingPlayer,
	} {
		if ref != nil {
			name = ref.DisplayName
		}
	}
	return name
}
