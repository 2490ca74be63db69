package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/statsfeed/internal/domain/event"
	usecasemock "github.com/riskibarqy/statsfeed/internal/mocks/usecase"
	"github.com/riskibarqy/statsfeed/internal/platform/logging"
	"github.com/riskibarqy/statsfeed/internal/usecase"
	"github.com/stretchr/testify/mock"
)

type testEnvelope struct {
	APIVersion string `json:"apiVersion"`
	Data       any    `json:"data"`
	Error      *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
		Errors  []struct {
			Reason string `json:"reason"`
		} `json:"errors"`
	} `json:"error"`
}

func newTestRouter(t *testing.T) (http.Handler, *usecasemock.EventProvider) {
	t.Helper()

	provider := usecasemock.NewEventProvider(t)
	service := usecase.NewEventService(provider, usecase.EventServiceConfig{
		Workers:     2,
		MaxBatchIDs: 3,
		Logger:      logging.NewNop(),
	})
	handler := NewHandler(service, logging.NewNop())
	return NewRouter(handler, logging.NewNop(), []string{"*"}, staticIDGenerator{id: "req-1"}), provider
}

func serve(t *testing.T, router http.Handler, target string) (*httptest.ResponseRecorder, testEnvelope) {
	t.Helper()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	var body testEnvelope
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body %q: %v", rec.Body.String(), err)
	}
	if body.APIVersion != googleAPIVersion {
		t.Fatalf("unexpected apiVersion: %q", body.APIVersion)
	}
	return rec, body
}

func TestHandler_Healthz(t *testing.T) {
	router, _ := newTestRouter(t)

	rec, _ := serve(t, router, "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusOK)
	}
}

func TestHandler_ListSports(t *testing.T) {
	router, provider := newTestRouter(t)
	provider.On("Sports").Return([]event.Sport{{Key: "epl", League: "EPL"}, {Key: "nfl", League: "NFL"}}).Once()

	rec, body := serve(t, router, "/v1/sports")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusOK)
	}
	items, ok := body.Data.([]any)
	if !ok || len(items) != 2 {
		t.Fatalf("unexpected sports payload: %#v", body.Data)
	}
}

func TestHandler_ListEvents(t *testing.T) {
	router, provider := newTestRouter(t)
	dates := usecase.DateRange{
		Start: time.Date(2017, 8, 21, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2017, 8, 27, 0, 0, 0, 0, time.UTC),
	}
	provider.
		On("ListEvents", mock.Anything, "epl", dates).
		Return([]event.Summary{{EventID: "1913017", StartTimeUTC: "2017-08-21T19:00:00", HomeTeamName: "Everton FC", AwayTeamName: "Manchester City"}}, nil).
		Once()

	rec, body := serve(t, router, "/v1/sports/epl/events?startDate=2017-08-21&endDate=20170827")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d body=%s", rec.Code, http.StatusOK, rec.Body.String())
	}
	items, ok := body.Data.([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("unexpected events payload: %#v", body.Data)
	}
	first, _ := items[0].(map[string]any)
	if first["home_team_name"] != "Everton FC" {
		t.Fatalf("unexpected home team: %v", first["home_team_name"])
	}
	if got := rec.Header().Get(requestIDHeader); got != "req-1" {
		t.Fatalf("unexpected request id header: %q", got)
	}
}

func TestHandler_ListEvents_MissingDate(t *testing.T) {
	router, _ := newTestRouter(t)

	rec, body := serve(t, router, "/v1/sports/epl/events?startDate=2017-08-21")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusBadRequest)
	}
	if body.Error == nil || body.Error.Status != "INVALID_ARGUMENT" {
		t.Fatalf("unexpected error body: %+v", body.Error)
	}
}

func TestHandler_GetEventDetail_ErrorMapping(t *testing.T) {
	tests := []struct {
		name        string
		sport       string
		err         error
		wantStatus  int
		wantReason  string
		wantMessage string
	}{
		{
			name:        "not started",
			sport:       "epl",
			err:         event.InvalidStatus(1),
			wantStatus:  http.StatusConflict,
			wantReason:  "invalidStatus",
			wantMessage: event.InvalidStatusMessage,
		},
		{
			name:        "no data",
			sport:       "epl",
			err:         fmt.Errorf("%w: provider status=404", event.ErrNoData),
			wantStatus:  http.StatusNotFound,
			wantReason:  "noData",
			wantMessage: event.NoDataMessage,
		},
		{
			name:       "missing field",
			sport:      "nfl",
			err:        event.MissingField("lastPlay"),
			wantStatus: http.StatusBadGateway,
			wantReason: "missingField",
		},
		{
			name:       "transport",
			sport:      "nfl",
			err:        fmt.Errorf("%w: connection refused", event.ErrTransport),
			wantStatus: http.StatusBadGateway,
			wantReason: "transportError",
		},
		{
			name:       "unsupported sport",
			sport:      "nba",
			err:        fmt.Errorf("%w: %q", event.ErrUnsupportedSport, "nba"),
			wantStatus: http.StatusBadRequest,
			wantReason: "unsupportedSport",
		},
		{
			name:       "malformed payload",
			sport:      "epl",
			err:        event.MalformedPayload("decode provider events", fmt.Errorf("Mismatch type int64 with value string")),
			wantStatus: http.StatusBadGateway,
			wantReason: "malformedPayload",
		},
		{
			name:       "caller went away",
			sport:      "epl",
			err:        context.Canceled,
			wantStatus: statusClientClosedRequest,
			wantReason: "cancelled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, provider := newTestRouter(t)
			provider.
				On("GetEventDetail", mock.Anything, tt.sport, "1913017").
				Return(event.Detail{}, tt.err).
				Once()

			rec, body := serve(t, router, "/v1/sports/"+tt.sport+"/events/1913017")
			if rec.Code != tt.wantStatus {
				t.Fatalf("unexpected status: got=%d want=%d", rec.Code, tt.wantStatus)
			}
			if body.Error == nil || len(body.Error.Errors) != 1 || body.Error.Errors[0].Reason != tt.wantReason {
				t.Fatalf("unexpected error body: %+v", body.Error)
			}
			if tt.wantMessage != "" && body.Error.Message != tt.wantMessage {
				t.Fatalf("unexpected message: got=%q want=%q", body.Error.Message, tt.wantMessage)
			}
		})
	}
}

func TestHandler_GetEventDetail_Success(t *testing.T) {
	router, provider := newTestRouter(t)
	before, after := 21, 27
	provider.
		On("GetEventDetail", mock.Anything, "nfl", "1686066").
		Return(event.Detail{
			League:          "NFL",
			EventID:         "1686066",
			Status:          event.StatusPostGame,
			CurrentTime:     event.Clock{Remaining: "02:12"},
			AwayScoreBefore: &before,
			AwayScoreAfter:  after,
			LastPlayName:    "Rush Touchdown",
			Touchdown:       true,
		}, nil).
		Once()

	rec, body := serve(t, router, "/v1/sports/nfl/events/1686066")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusOK)
	}
	data, _ := body.Data.(map[string]any)
	if data["event_status"] != "Post Game" {
		t.Fatalf("unexpected event_status: %v", data["event_status"])
	}
	if data["last_pbp_event_name"] != "Rush Touchdown" || data["touchdown"] != true {
		t.Fatalf("unexpected play fields: %v", data)
	}
	clock, _ := data["current_time"].(map[string]any)
	if clock["display"] != "02:12" {
		t.Fatalf("unexpected clock: %v", clock)
	}
}

func TestHandler_GetEventDetails_Batch(t *testing.T) {
	router, provider := newTestRouter(t)
	provider.
		On("GetEventDetail", mock.Anything, "epl", "1").
		Return(event.Detail{EventID: "1", League: "EPL", Status: event.StatusInProgress}, nil).
		Once()
	provider.
		On("GetEventDetail", mock.Anything, "epl", "2").
		Return(event.Detail{}, event.InvalidStatus(1)).
		Once()

	rec, body := serve(t, router, "/v1/sports/epl/event-details?ids=1,2")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d body=%s", rec.Code, http.StatusOK, rec.Body.String())
	}
	items, ok := body.Data.([]any)
	if !ok || len(items) != 2 {
		t.Fatalf("unexpected batch payload: %#v", body.Data)
	}
	first, _ := items[0].(map[string]any)
	second, _ := items[1].(map[string]any)
	if first["event_id"] != "1" || first["detail"] == nil {
		t.Fatalf("unexpected first result: %v", first)
	}
	errBody, _ := second["error"].(map[string]any)
	if second["event_id"] != "2" || errBody["message"] != event.InvalidStatusMessage {
		t.Fatalf("unexpected second result: %v", second)
	}
}

func TestHandler_GetEventDetails_Validation(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, target := range []string{
		"/v1/sports/epl/event-details",
		"/v1/sports/epl/event-details?ids=1,abc",
		"/v1/sports/epl/event-details?ids=1,2,3,4",
	} {
		rec, _ := serve(t, router, target)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: unexpected status: got=%d want=%d", target, rec.Code, http.StatusBadRequest)
		}
	}
}

func TestHandler_RecoversFromPanic(t *testing.T) {
	router, provider := newTestRouter(t)
	provider.
		On("GetEventDetail", mock.Anything, "epl", "1").
		Run(func(mock.Arguments) { panic("boom") }).
		Return(event.Detail{}, nil).
		Once()

	rec, body := serve(t, router, "/v1/sports/epl/events/1")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusInternalServerError)
	}
	if body.Error == nil || body.Error.Status != "INTERNAL" {
		t.Fatalf("unexpected error body: %+v", body.Error)
	}
}

func TestHandler_Docs(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "/v1/sports/{sport}/events/{eventID}") {
		t.Fatalf("openapi document does not describe the detail route")
	}

	etag := rec.Header().Get("ETag")
	if etag == "" {
		t.Fatalf("expected an ETag on the openapi document")
	}

	cached := httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil)
	cached.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, cached)
	if rec.Code != http.StatusNotModified || rec.Body.Len() != 0 {
		t.Fatalf("expected 304 without body for a matching ETag, got status=%d len=%d", rec.Code, rec.Body.Len())
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/docs", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "swagger-ui") {
		t.Fatalf("unexpected docs response: status=%d", rec.Code)
	}
}
