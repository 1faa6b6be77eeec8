package console_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-folio/internal/logging"
	"github.com/goliatone/go-folio/internal/logging/console"
)

func fixedClock() time.Time {
	return time.Date(2025, 2, 3, 10, 30, 0, 0, time.UTC)
}

func TestLoggerWritesSortedFields(t *testing.T) {
	var buf bytes.Buffer
	provider := console.NewProvider(console.Options{Writer: &buf, Clock: fixedClock})

	ctx := logging.ContextWithRequestID(context.Background(), "req-42")
	logger := logging.PostsLogger(provider).WithContext(ctx)
	logger.Error("posts.resolve.load_failed",
		"slug", "blog2",
		"error", errors.New("disk on fire"),
	)

	got := strings.TrimSpace(buf.String())
	want := `2025-02-03T10:30:00Z ERROR posts.resolve.load_failed error="disk on fire" logger=folio.posts module=folio.posts request_id=req-42 slug=blog2`
	if got != want {
		t.Fatalf("unexpected entry\nwant: %s\ngot:  %s", want, got)
	}
}

func TestLoggerFiltersBelowMinLevel(t *testing.T) {
	var buf bytes.Buffer
	provider := console.NewProvider(console.Options{Writer: &buf, Clock: fixedClock, MinLevel: console.LevelInfo})

	logger := provider.GetLogger("folio.http")
	logger.Debug("dropped")
	logger.Info("kept")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 || !strings.Contains(lines[0], "kept") {
		t.Fatalf("expected only the info entry, got %q", buf.String())
	}
}

func TestLoggerKeepsOddArguments(t *testing.T) {
	var buf bytes.Buffer
	provider := console.NewProvider(console.Options{Writer: &buf, Clock: fixedClock})

	provider.GetLogger("x").Info("odd", "key", 1, "dangling")

	if !strings.Contains(buf.String(), "arg_2=dangling") || !strings.Contains(buf.String(), "key=1") {
		t.Fatalf("unexpected entry %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]console.Level{
		"":        console.LevelDebug,
		"trace":   console.LevelTrace,
		"INFO":    console.LevelInfo,
		"warning": console.LevelWarn,
		"error":   console.LevelError,
	}
	for name, want := range tests {
		got, err := console.ParseLevel(name)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v; want %v", name, got, err, want)
		}
	}
	if _, err := console.ParseLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
