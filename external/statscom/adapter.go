package statscom

import (
	"strings"

	"github.com/riskibarqy/statsfeed/internal/domain/event"
)

// Adapter maps one sport's stats.com dialect onto the normalized event records.
// Summaries and Detail receive the raw list found under ListKey.
type Adapter interface {
	Key() string
	League() string
	EventsPath() string
	ListKey() string
	Summaries(list []byte) ([]event.Summary, error)
	Detail(list []byte, eventID string) (event.Detail, error)
}

// AdapterConfig is passed to each adapter at construction.
type AdapterConfig struct {
	// EventsPath is the events endpoint path, e.g. /v1/stats/soccer/epl/events/.
	EventsPath string
}

func normalizeEventsPath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	return path
}
