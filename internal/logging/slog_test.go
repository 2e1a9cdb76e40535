package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	log := NewTextLogger(&buf, "debug")
	ctx := context.Background()

	log.Debug(ctx, "dbg", "page", 1)
	log.Info(ctx, "inf", "rides", 2)
	log.Warn(ctx, "wrn", "month", 3)
	log.Error(ctx, "err", "code", 4)

	out := buf.String()
	for _, want := range []string{
		"level=DEBUG", "msg=dbg", "page=1",
		"level=INFO", "msg=inf", "rides=2",
		"level=WARN", "msg=wrn", "month=3",
		"level=ERROR", "msg=err", "code=4",
	} {
		assert.Contains(t, out, want)
	}
}

func TestTextLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewTextLogger(&buf, "warn")

	log.Info(context.Background(), "hidden")
	log.Warn(context.Background(), "shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestWith_AddsAttributes(t *testing.T) {
	var buf bytes.Buffer
	log := NewTextLogger(&buf, "info").With("company_id", 42)

	log.Info(context.Background(), "collecting")

	assert.Contains(t, buf.String(), "company_id=42")
	assert.Contains(t, buf.String(), "msg=collecting")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" INFO ":  slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestDiscard_DoesNotPanic(t *testing.T) {
	log := Discard()
	log.Info(context.TODO(), "nothing")
	log.With("a", 1).Error(context.TODO(), "nothing")
}
