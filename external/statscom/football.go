package statscom

import (
	"github.com/riskibarqy/statsfeed/internal/domain/event"
)

const (
	FootballKey    = "nfl"
	FootballLeague = "NFL"

	touchdownPoints = 6
	touchdownSuffix = " Touchdown"
)

type FootballAdapter struct {
	eventsPath string
}

func NewFootballAdapter(cfg AdapterConfig) *FootballAdapter {
	return &FootballAdapter{eventsPath: normalizeEventsPath(cfg.EventsPath)}
}

func (a *FootballAdapter) Key() string        { return FootballKey }
func (a *FootballAdapter) League() string     { return FootballLeague }
func (a *FootballAdapter) EventsPath() string { return a.eventsPath }
func (a *FootballAdapter) ListKey() string    { return "events" }

func (a *FootballAdapter) Summaries(list []byte) ([]event.Summary, error) {
	return summarize(list, func(e footballEvent) eventCommon { return e.eventCommon })
}

func (a *FootballAdapter) Detail(list []byte, eventID string) (event.Detail, error) {
	game, err := firstRecord[footballEvent](list, a.ListKey())
	if err != nil {
		return event.Detail{}, err
	}

	out, err := game.detailBase(a.League(), eventID)
	if err != nil {
		return event.Detail{}, err
	}

	play, err := currentFootballPlay(game, out.Status)
	if err != nil {
		return event.Detail{}, err
	}
	if err := applyFootballPlay(&out, play); err != nil {
		return event.Detail{}, err
	}
	return out, nil
}

// currentFootballPlay uses lastPlay while the game is live. Once it is over the feed
// stops updating lastPlay, so the latest entry of the play-by-play tail is used instead.
func currentFootballPlay(game footballEvent, status event.Status) (footballPlay, error) {
	if status == event.StatusInProgress {
		if game.LastPlay == nil {
			return footballPlay{}, event.MissingField("lastPlay")
		}
		return *game.LastPlay, nil
	}
	return selectLatest(tail(game.PBP, tailWindow), "pbp.playId", func(p footballPlay) *int64 {
		return p.PlayID
	})
}

func applyFootballPlay(out *event.Detail, play footballPlay) error {
	switch {
	case play.Period == nil:
		return event.MissingField("play.period")
	case !play.Time.Set:
		return event.MissingField("play.time")
	case play.HomeScoreBefore == nil:
		return event.MissingField("play.homeScoreBefore")
	case play.HomeScoreAfter == nil:
		return event.MissingField("play.homeScoreAfter")
	case play.AwayScoreBefore == nil:
		return event.MissingField("play.awayScoreBefore")
	case play.AwayScoreAfter == nil:
		return event.MissingField("play.awayScoreAfter")
	case play.PlayType == nil || play.PlayType.PlayTypeID == nil:
		return event.MissingField("play.playType.playTypeId")
	}

	homeBefore, awayBefore := *play.HomeScoreBefore, *play.AwayScoreBefore
	out.CurrentPeriod = *play.Period
	out.CurrentTime = event.Clock{Remaining: play.Time.Value}
	out.HomeScoreBefore = &homeBefore
	out.HomeScoreAfter = *play.HomeScoreAfter
	out.AwayScoreBefore = &awayBefore
	out.AwayScoreAfter = *play.AwayScoreAfter
	out.LastPlayID = *play.PlayType.PlayTypeID
	out.LastPlayName = play.PlayType.Name

	// A touchdown play reports no player.
	if out.HomeScoreAfter-homeBefore == touchdownPoints || out.AwayScoreAfter-awayBefore == touchdownPoints {
		out.LastPlayName += touchdownSuffix
		out.Touchdown = true
		return nil
	}

	out.PlayerName = footballPlayerName(play.PlayersInvolved)
	return nil
}

// footballPlayerName picks the primary player: typeSequence 1 with type "player".
func footballPlayerName(involved []playerInvolved) string {
	entry, ok := findLast(involved, func(item playerInvolved) bool {
		return item.TypeSequence == 1 && item.PlayerInvolvedType.is("player") && item.Player != nil
	})
	if !ok {
		return ""
	}
	return entry.Player.FirstName + " " + entry.Player.LastName
}
