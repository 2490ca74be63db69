package usecase

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	t.Parallel()

	want := time.Date(2017, 8, 21, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"2017-08-21", "20170821", " 2017-08-21 "} {
		got, err := ParseDate(in)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		if !got.Equal(want) {
			t.Fatalf("parse %q: got=%s want=%s", in, got, want)
		}
	}

	for _, in := range []string{"", "2017/08/21", "2017-13-01", "170821"} {
		if _, err := ParseDate(in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("parse %q: expected ErrInvalidInput, got %v", in, err)
		}
	}
}

func TestParseDateRange_SingleDay(t *testing.T) {
	t.Parallel()

	got, err := ParseDateRange("2017-08-21", "20170821")
	if err != nil {
		t.Fatalf("parse range: %v", err)
	}
	if !got.Start.Equal(got.End) {
		t.Fatalf("expected single-day range, got %s..%s", got.Start, got.End)
	}
}
