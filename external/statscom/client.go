package statscom

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/riskibarqy/statsfeed/internal/domain/event"
	"github.com/riskibarqy/statsfeed/internal/platform/logging"
	"github.com/riskibarqy/statsfeed/internal/platform/resilience"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultTimeout      = 20 * time.Second
	defaultMaxBodyBytes = 6 << 20
	queryDateLayout     = "2006-01-02"
)

var credentialParamRegex = regexp.MustCompile(`(api_key|sig)=[^&\s"']+`)

type ClientConfig struct {
	HTTPClient *http.Client
	APIHost    string
	APIKey     string
	Secret     string
	Timeout    time.Duration
	Logger     *logging.Logger
	// MaxBodyBytes caps a response body. Defaults to 6 MiB.
	MaxBodyBytes int64
	// Now is the signing clock. Defaults to time.Now.
	Now func() time.Time
}

// Client issues signed GET requests against the stats.com API. It is safe for
// concurrent use; identical requests in flight at the same time share one round trip,
// bounded by the HTTP client timeout rather than by any single caller.
type Client struct {
	httpClient *http.Client
	apiHost    string
	apiKey     string
	secret     string
	logger     *logging.Logger
	now        func() time.Time
	timeout    time.Duration
	maxBody    int64
	inflight   resilience.Flight[[]byte]
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}

	return &Client{
		httpClient: httpClient,
		apiHost:    strings.TrimRight(strings.TrimSpace(cfg.APIHost), "/"),
		apiKey:     strings.TrimSpace(cfg.APIKey),
		secret:     strings.TrimSpace(cfg.Secret),
		logger:     logger,
		now:        now,
		timeout:    timeout,
		maxBody:    maxBody,
	}
}

// FetchEventList requests all events of the adapter's sport between start and end.
func (c *Client) FetchEventList(ctx context.Context, adapter Adapter, start, end time.Time) ([]byte, error) {
	query := url.Values{}
	query.Set("startDate", start.Format(queryDateLayout))
	query.Set("endDate", end.Format(queryDateLayout))
	return c.Fetch(ctx, adapter.EventsPath(), query)
}

// FetchEventDetail requests one event with its play-by-play log.
func (c *Client) FetchEventDetail(ctx context.Context, adapter Adapter, eventID string) ([]byte, error) {
	query := url.Values{}
	query.Set("pbp", "true")
	return c.Fetch(ctx, adapter.EventsPath()+url.PathEscape(eventID), query)
}

// Fetch signs and issues one GET. Any status other than 200 yields event.ErrNoData;
// the body is not parsed. Cancelling ctx abandons only this caller's wait when the
// round trip is shared with other callers.
func (c *Client) Fetch(ctx context.Context, path string, query url.Values) ([]byte, error) {
	key := path + "?" + query.Encode()
	raw, shared, err := c.inflight.Do(ctx, key, func(callCtx context.Context) ([]byte, error) {
		return c.fetch(callCtx, path, query)
	})
	if shared {
		c.logger.DebugContext(ctx, "stats.com request shared with in-flight call", "path", path)
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *Client) fetch(ctx context.Context, path string, query url.Values) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	values := url.Values{}
	for key, items := range query {
		values[key] = append([]string(nil), items...)
	}
	values.Set("api_key", c.apiKey)
	values.Set("sig", Sign(c.apiKey, c.secret, c.now()))

	fullURL := c.apiHost + path + "?" + values.Encode()
	c.logger.InfoContext(ctx, "querying stats.com", "url", redactAPIURL(fullURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		err = fmt.Errorf("%w: send request: %s", event.ErrTransport, c.sanitizeSensitiveText(err.Error()))
		c.logger.WarnContext(ctx, "stats.com request failed", "url", redactAPIURL(fullURL), "error", err)
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %v", event.ErrTransport, err)
	}
	if int64(len(raw)) > c.maxBody {
		err = fmt.Errorf("%w: response too large, limit %d bytes", event.ErrTransport, c.maxBody)
		c.logger.WarnContext(ctx, "stats.com response exceeded body limit", "url", redactAPIURL(fullURL), "error", err)
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf("%w: provider status=%d body=%s", event.ErrNoData, resp.StatusCode, abbreviateBody(raw))
		c.logger.WarnContext(ctx, "stats.com returned non-success status",
			"url", redactAPIURL(fullURL),
			"status", resp.StatusCode,
			"error", err,
		)
		return nil, err
	}

	return raw, nil
}

func (c *Client) sanitizeSensitiveText(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	for _, secret := range []string{c.apiKey, c.secret} {
		if secret != "" {
			value = strings.ReplaceAll(value, secret, "REDACTED")
		}
	}
	return credentialParamRegex.ReplaceAllString(value, "${1}=REDACTED")
}

func redactAPIURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return credentialParamRegex.ReplaceAllString(rawURL, "${1}=REDACTED")
	}
	query := parsed.Query()
	for _, key := range []string{"api_key", "sig"} {
		if query.Has(key) {
			query.Set(key, "REDACTED")
		}
	}
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
