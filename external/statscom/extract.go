package statscom

import (
	"bytes"
	"fmt"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/statsfeed/internal/domain/event"
)

// tailWindow is how many trailing play-by-play entries are searched for the current play.
const tailWindow = 10

// ExtractEvents turns a raw listing response into summaries, in feed order.
func ExtractEvents(adapter Adapter, raw []byte) ([]event.Summary, error) {
	list, err := eventList(raw, adapter.ListKey())
	if err != nil {
		return nil, err
	}
	return adapter.Summaries(list)
}

// ExtractDetail turns a raw single-event response into the normalized detail of its
// current play. It has no side effects: the same input always yields the same output.
func ExtractDetail(adapter Adapter, raw []byte, eventID string) (event.Detail, error) {
	list, err := eventList(raw, adapter.ListKey())
	if err != nil {
		return event.Detail{}, err
	}
	return adapter.Detail(list, eventID)
}

// eventList descends apiResults[0].league.season.eventType[0].<listKey> and returns the
// raw list so each adapter can decode its own record shape.
func eventList(raw []byte, listKey string) ([]byte, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, event.ErrNoData
	}

	var env envelope
	if err := sonic.Unmarshal(trimmed, &env); err != nil {
		return nil, event.MalformedPayload("decode provider payload", err)
	}
	if len(env.APIResults) == 0 {
		return nil, event.MissingField("apiResults[0]")
	}
	league := env.APIResults[0].League
	if league == nil {
		return nil, event.MissingField("apiResults[0].league")
	}
	if league.Season == nil {
		return nil, event.MissingField("apiResults[0].league.season")
	}
	if len(league.Season.EventType) == 0 {
		return nil, event.MissingField("apiResults[0].league.season.eventType[0]")
	}
	list, ok := league.Season.EventType[0][listKey]
	if !ok || len(bytes.TrimSpace(list)) == 0 || bytes.Equal(bytes.TrimSpace(list), []byte("null")) {
		return nil, event.MissingField("apiResults[0].league.season.eventType[0]." + listKey)
	}
	return list, nil
}

func decodeRecords[R any](list []byte) ([]R, error) {
	var out []R
	if err := sonic.Unmarshal(list, &out); err != nil {
		return nil, event.MalformedPayload("decode provider events", err)
	}
	return out, nil
}

// firstRecord decodes the list and returns its first element; a lookup by id is expected
// to return exactly one event.
func firstRecord[R any](list []byte, listKey string) (R, error) {
	var zero R
	records, err := decodeRecords[R](list)
	if err != nil {
		return zero, err
	}
	if len(records) == 0 {
		return zero, event.MissingField(listKey + "[0]")
	}
	return records[0], nil
}

func findLast[T any](items []T, match func(T) bool) (T, bool) {
	var (
		out   T
		found bool
	)
	for _, item := range items {
		if match(item) {
			out = item
			found = true
		}
	}
	return out, found
}

// requireLast is findLast that reports a missing field at path when nothing matches.
func requireLast[T any](items []T, path string, match func(T) bool) (T, error) {
	out, ok := findLast(items, match)
	if !ok {
		return out, event.MissingField(path)
	}
	return out, nil
}

func tail[T any](items []T, n int) []T {
	if len(items) <= n {
		return items
	}
	return items[len(items)-n:]
}

// selectLatest returns the entry with the highest id. Ids are not contiguous and not
// ordered by position; on a tie the later entry wins.
func selectLatest[T any](items []T, path string, id func(T) *int64) (T, error) {
	var (
		best   T
		bestID int64
		found  bool
	)
	for i, item := range items {
		value := id(item)
		if value == nil {
			return best, event.MissingField(fmt.Sprintf("%s[%d]", path, i))
		}
		if !found || *value >= bestID {
			best = item
			bestID = *value
			found = true
		}
	}
	if !found {
		return best, event.MissingField(path)
	}
	return best, nil
}

func (e eventCommon) id() (string, error) {
	if e.EventID == "" {
		return "", event.MissingField("eventId")
	}
	return string(e.EventID), nil
}

func (e eventCommon) startTimeUTC() (string, error) {
	date, err := requireLast(e.StartDate, "startDate[dateType=UTC]", func(item startDateRef) bool {
		return item.DateType == "UTC"
	})
	if err != nil {
		return "", err
	}
	if date.Full == "" {
		return "", event.MissingField("startDate[dateType=UTC].full")
	}
	return date.Full, nil
}

func (e eventCommon) teamName(side string) (string, error) {
	team, err := requireLast(e.Teams, "teams[teamLocationType="+side+"]", func(item teamRef) bool {
		return item.TeamLocationType.Name == side
	})
	if err != nil {
		return "", err
	}
	return team.Location + " " + team.Nickname, nil
}

func (e eventCommon) status() (event.Status, error) {
	if e.EventStatus == nil || e.EventStatus.EventStatusID == nil {
		return event.StatusNotStarted, event.MissingField("eventStatus.eventStatusId")
	}
	return event.StatusFromCode(*e.EventStatus.EventStatusID)
}

func (e eventCommon) summary() (event.Summary, error) {
	id, err := e.id()
	if err != nil {
		return event.Summary{}, err
	}
	start, err := e.startTimeUTC()
	if err != nil {
		return event.Summary{}, fmt.Errorf("event %s: %w", id, err)
	}
	home, err := e.teamName("home")
	if err != nil {
		return event.Summary{}, fmt.Errorf("event %s: %w", id, err)
	}
	away, err := e.teamName("away")
	if err != nil {
		return event.Summary{}, fmt.Errorf("event %s: %w", id, err)
	}

	return event.Summary{
		EventID:      id,
		StartTimeUTC: start,
		HomeTeamName: home,
		AwayTeamName: away,
	}, nil
}

// detailBase fills everything that does not come from the selected play. Status is
// checked first so events that have not started fail with ErrInvalidStatus.
func (e eventCommon) detailBase(league, eventID string) (event.Detail, error) {
	status, err := e.status()
	if err != nil {
		return event.Detail{}, err
	}
	start, err := e.startTimeUTC()
	if err != nil {
		return event.Detail{}, err
	}
	home, err := e.teamName("home")
	if err != nil {
		return event.Detail{}, err
	}
	away, err := e.teamName("away")
	if err != nil {
		return event.Detail{}, err
	}

	out := event.Detail{
		League:       league,
		EventID:      eventID,
		Status:       status,
		StartTimeUTC: start,
		HomeTeamName: home,
		AwayTeamName: away,
	}
	if e.Venue != nil {
		out.VenueName = e.Venue.Name
		out.VenueCity = e.Venue.City
	}
	return out, nil
}

func summarize[R any](list []byte, common func(R) eventCommon) ([]event.Summary, error) {
	records, err := decodeRecords[R](list)
	if err != nil {
		return nil, err
	}
	out := make([]event.Summary, 0, len(records))
	for _, record := range records {
		item, err := common(record).summary()
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}
