package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/riskibarqy/statsfeed/internal/app"
	"github.com/riskibarqy/statsfeed/internal/config"
	"github.com/riskibarqy/statsfeed/internal/domain/event"
	"github.com/riskibarqy/statsfeed/internal/platform/logging"
	"github.com/riskibarqy/statsfeed/internal/usecase"
)

func main() {
	sport := flag.String("sport", "epl", "sport key (epl, nfl)")
	startDate := flag.String("start", "", "start date, YYYY-MM-DD or YYYYMMDD")
	endDate := flag.String("end", "", "end date, YYYY-MM-DD or YYYYMMDD")
	eventID := flag.String("event", "", "optional event id to extract in detail")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(2)
	}

	// stdout carries the JSON output, so logs go to stderr.
	logger := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Writer: os.Stderr,
		Name:   "fetch",
	})
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc := app.NewEventService(cfg, logger)
	if err := run(ctx, os.Stdout, svc, *sport, *startDate, *endDate, *eventID); err != nil {
		logger.Error("fetch failed", "sport", *sport, "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, out io.Writer, svc *usecase.EventService, sport, startDate, endDate, eventID string) error {
	if startDate != "" || endDate != "" {
		events, err := svc.ListEvents(ctx, sport, startDate, endDate)
		if err != nil {
			if message, ok := describe(err); ok {
				fmt.Fprintln(out, message)
			} else {
				return fmt.Errorf("list events: %w", err)
			}
		} else if err := writeJSON(out, summariesOutput(events)); err != nil {
			return err
		}
	}

	if eventID == "" {
		return nil
	}

	detail, err := svc.GetEventDetail(ctx, sport, eventID)
	if err != nil {
		if message, ok := describe(err); ok {
			fmt.Fprintln(out, message)
			return nil
		}
		return fmt.Errorf("get event detail: %w", err)
	}
	return writeJSON(out, detailOutput(detail))
}

// describe returns the user-facing text for outcomes that are answers rather than failures.
func describe(err error) (string, bool) {
	switch {
	case errors.Is(err, event.ErrInvalidStatus):
		return event.InvalidStatusMessage, true
	case errors.Is(err, event.ErrNoData):
		return event.NoDataMessage, true
	default:
		return "", false
	}
}
