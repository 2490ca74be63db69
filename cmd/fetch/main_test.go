package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/riskibarqy/statsfeed/internal/domain/event"
	usecasemock "github.com/riskibarqy/statsfeed/internal/mocks/usecase"
	"github.com/riskibarqy/statsfeed/internal/platform/logging"
	"github.com/riskibarqy/statsfeed/internal/usecase"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*usecase.EventService, *usecasemock.EventProvider) {
	t.Helper()

	provider := usecasemock.NewEventProvider(t)
	return usecase.NewEventService(provider, usecase.EventServiceConfig{Logger: logging.NewNop()}), provider
}

func TestWriteJSON_SortsKeysWithFourSpaceIndent(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, summariesOutput([]event.Summary{{
		EventID:      "1913017",
		StartTimeUTC: "2017-08-21T19:00:00",
		HomeTeamName: "Manchester United",
		AwayTeamName: "West Ham United",
	}})))

	want := `[
    {
        "away_team_name": "West Ham United",
        "event_id": "1913017",
        "home_team_name": "Manchester United",
        "start_time_utc": "2017-08-21T19:00:00"
    }
]
`
	require.Equal(t, want, buf.String())
}

func TestDetailOutput_SoccerClockIsObject(t *testing.T) {
	minutes, seconds := 49, 12
	out := detailOutput(event.Detail{
		League:      "EPL",
		Status:      event.StatusInProgress,
		CurrentTime: event.Clock{Minutes: &minutes, Seconds: &seconds},
	})

	clock, ok := out["current_time"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, 49, clock["minutes"])
	require.NotContains(t, clock, "additionalMinutes")
	require.NotContains(t, out, "home_score_before")
	require.Equal(t, "In Progress", out["event_status"])
}

func TestDetailOutput_FootballClockIsString(t *testing.T) {
	before := 14
	out := detailOutput(event.Detail{
		League:          "NFL",
		Status:          event.StatusPostGame,
		CurrentTime:     event.Clock{Remaining: "02:12"},
		HomeScoreBefore: &before,
		HomeScoreAfter:  20,
	})

	require.Equal(t, "02:12", out["current_time"])
	require.Equal(t, 14, out["home_score_before"])
}

func TestRun_PrintsDescriptiveMessageForInvalidStatus(t *testing.T) {
	svc, provider := newTestService(t)
	provider.
		On("GetEventDetail", mock.Anything, "epl", "1913017").
		Return(event.Detail{}, event.InvalidStatus(1)).
		Once()

	var buf bytes.Buffer
	err := run(context.Background(), &buf, svc, "epl", "", "", "1913017")

	require.NoError(t, err)
	require.Equal(t, event.InvalidStatusMessage, strings.TrimSpace(buf.String()))
}

func TestRun_ListAndDetail(t *testing.T) {
	svc, provider := newTestService(t)
	provider.
		On("ListEvents", mock.Anything, "nfl", mock.AnythingOfType("usecase.DateRange")).
		Return([]event.Summary{{EventID: "1686066"}}, nil).
		Once()
	provider.
		On("GetEventDetail", mock.Anything, "nfl", "1686066").
		Return(event.Detail{League: "NFL", EventID: "1686066", Status: event.StatusPostGame}, nil).
		Once()

	var buf bytes.Buffer
	err := run(context.Background(), &buf, svc, "nfl", "2017-09-07", "2017-09-11", "1686066")

	require.NoError(t, err)
	require.Contains(t, buf.String(), `"event_id": "1686066"`)
	require.Contains(t, buf.String(), `"event_status": "Post Game"`)
}

func TestRun_ReturnsUnexpectedErrors(t *testing.T) {
	svc, provider := newTestService(t)
	provider.
		On("GetEventDetail", mock.Anything, "nfl", "1").
		Return(event.Detail{}, event.MissingField("lastPlay")).
		Once()

	err := run(context.Background(), &bytes.Buffer{}, svc, "nfl", "", "", "1")

	require.ErrorIs(t, err, event.ErrMissingField)
}
