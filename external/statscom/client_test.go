package statscom

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/statsfeed/internal/domain/event"
	"github.com/riskibarqy/statsfeed/internal/platform/logging"
)

var fixedNow = time.Unix(1500000000, 0)

func newTestClient(server *httptest.Server) *Client {
	return NewClient(ClientConfig{
		HTTPClient: server.Client(),
		APIHost:    server.URL + "/",
		APIKey:     "key-123",
		Secret:     "secret-456",
		Logger:     logging.NewNop(),
		Now:        func() time.Time { return fixedNow },
	})
}

func TestClientFetchEventList_SignsAndBuildsQuery(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/stats/soccer/epl/events/" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		query := r.URL.Query()
		if query.Get("startDate") != "2017-08-21" || query.Get("endDate") != "2017-08-27" {
			t.Errorf("unexpected date range: %s", r.URL.RawQuery)
		}
		if query.Get("api_key") != "key-123" {
			t.Errorf("unexpected api_key: %s", query.Get("api_key"))
		}
		if query.Get("sig") != Sign("key-123", "secret-456", fixedNow) {
			t.Errorf("unexpected sig: %s", query.Get("sig"))
		}
		_, _ = w.Write([]byte(`{"apiResults":[]}`))
	}))
	defer server.Close()

	client := newTestClient(server)
	adapter := NewSoccerAdapter(AdapterConfig{EventsPath: "/v1/stats/soccer/epl/events/"})

	raw, err := client.FetchEventList(context.Background(), adapter,
		time.Date(2017, 8, 21, 0, 0, 0, 0, time.UTC),
		time.Date(2017, 8, 27, 0, 0, 0, 0, time.UTC),
	)
	if err != nil {
		t.Fatalf("fetch event list: %v", err)
	}
	if string(raw) != `{"apiResults":[]}` {
		t.Fatalf("unexpected body: %s", raw)
	}
}

func TestClientFetchEventDetail_RequestsPlayByPlay(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/stats/football/nfl/events/1913017" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("pbp") != "true" {
			t.Errorf("expected pbp=true, got query %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(server)
	adapter := NewFootballAdapter(AdapterConfig{EventsPath: "v1/stats/football/nfl/events"})

	if _, err := client.FetchEventDetail(context.Background(), adapter, "1913017"); err != nil {
		t.Fatalf("fetch event detail: %v", err)
	}
}

func TestClientFetch_NonSuccessStatusIsNoData(t *testing.T) {
	t.Parallel()

	for _, status := range []int{http.StatusNotFound, http.StatusForbidden, http.StatusInternalServerError, http.StatusNoContent} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
			_, _ = w.Write([]byte("<html>not json</html>"))
		}))

		_, err := newTestClient(server).Fetch(context.Background(), "/events/", nil)
		server.Close()
		if !errors.Is(err, event.ErrNoData) {
			t.Fatalf("status=%d: expected ErrNoData, got %v", status, err)
		}
		if strings.Contains(err.Error(), "decode") {
			t.Fatalf("status=%d: body must not be parsed, got %v", status, err)
		}
	}
}

func TestClientFetch_NetworkFailureIsTransportError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	client := newTestClient(server)
	server.Close()

	_, err := client.Fetch(context.Background(), "/events/", nil)
	if !errors.Is(err, event.ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
	if strings.Contains(err.Error(), "key-123") {
		t.Fatalf("api key leaked in error: %v", err)
	}
}

func TestRedactAPIURL(t *testing.T) {
	t.Parallel()

	got := redactAPIURL("http://api.stats.com/v1/events/?api_key=key-123&pbp=true&sig=abcdef")
	if strings.Contains(got, "key-123") || strings.Contains(got, "abcdef") {
		t.Fatalf("credentials not redacted: %s", got)
	}
	if !strings.Contains(got, "pbp=true") {
		t.Fatalf("expected non-credential params to survive: %s", got)
	}
}

func TestClientFetch_SharesConcurrentIdenticalRequests(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		time.Sleep(100 * time.Millisecond)
		_, _ = w.Write([]byte(`{"apiResults":[]}`))
	}))
	defer server.Close()

	client := newTestClient(server)
	adapter := NewFootballAdapter(AdapterConfig{EventsPath: "/v1/stats/football/nfl/events/"})

	const callers = 5
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			if _, err := client.FetchEventDetail(context.Background(), adapter, "1686066"); err != nil {
				t.Errorf("fetch event detail: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := hits.Load(); got != 1 {
		t.Fatalf("expected one upstream request, got=%d", got)
	}
}

func TestClientFetch_CancelledCallerDoesNotFailSharedRequest(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	arrived := make(chan struct{}, 1)
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits.Add(1) == 1 {
			arrived <- struct{}{}
		}
		<-release
		_, _ = w.Write([]byte(`{"apiResults":[]}`))
	}))
	defer server.Close()
	var releaseOnce sync.Once
	releaseAll := func() { releaseOnce.Do(func() { close(release) }) }
	defer releaseAll()

	client := newTestClient(server)
	adapter := NewSoccerAdapter(AdapterConfig{EventsPath: "/v1/stats/soccer/epl/events/"})

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := client.FetchEventDetail(firstCtx, adapter, "1913017")
		firstErr <- err
	}()
	<-arrived

	secondRaw := make(chan []byte, 1)
	secondErr := make(chan error, 1)
	go func() {
		raw, err := client.FetchEventDetail(context.Background(), adapter, "1913017")
		secondRaw <- raw
		secondErr <- err
	}()
	time.Sleep(50 * time.Millisecond)

	cancelFirst()
	if err := <-firstErr; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected first caller to be cancelled, got %v", err)
	}

	releaseAll()
	if err := <-secondErr; err != nil {
		t.Fatalf("second caller failed after first caller cancelled: %v", err)
	}
	if raw := <-secondRaw; string(raw) != `{"apiResults":[]}` {
		t.Fatalf("unexpected body for second caller: %s", raw)
	}
}

func TestClientFetch_RejectsOversizedBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"apiResults":[{"league":{"name":"English Premier League"}}]}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		HTTPClient:   server.Client(),
		APIHost:      server.URL,
		APIKey:       "key-123",
		Secret:       "secret-456",
		Logger:       logging.NewNop(),
		MaxBodyBytes: 16,
	})

	_, err := client.Fetch(context.Background(), "/v1/stats/soccer/epl/events/", nil)
	if !errors.Is(err, event.ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if !strings.Contains(err.Error(), "response too large") {
		t.Fatalf("expected size limit in error, got %v", err)
	}
}
