// Gamegraph - Social Game Interest Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamegraph

package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestSlogHandler_Handle(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	slogger := slog.New(NewSlogHandler(zerolog.New(&buf)))

	slogger.Warn("service restarted",
		"service", "engine",
		"attempt", 2,
		"backoff", 250*time.Millisecond,
		"err", errors.New("snapshot missing"),
	)

	output := buf.String()
	for _, want := range []string{
		`"level":"warn"`,
		`"message":"service restarted"`,
		`"service":"engine"`,
		`"attempt":2`,
		`"err":"snapshot missing"`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %s in output: %s", want, output)
		}
	}
}

// Enabled also consults the global level, so this test must not run in
// parallel with tests that change it.
func TestSlogHandler_Enabled(t *testing.T) {
	prev := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	tests := []struct {
		name         string
		zerologLevel zerolog.Level
		slogLevel    slog.Level
		want         bool
	}{
		{"debug logger enables debug", zerolog.DebugLevel, slog.LevelDebug, true},
		{"info logger disables debug", zerolog.InfoLevel, slog.LevelDebug, false},
		{"info logger enables error", zerolog.InfoLevel, slog.LevelError, true},
		{"error logger disables warn", zerolog.ErrorLevel, slog.LevelWarn, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewSlogHandler(zerolog.New(&bytes.Buffer{}).Level(tt.zerologLevel))
			if got := h.Enabled(context.Background(), tt.slogLevel); got != tt.want {
				t.Errorf("Enabled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSlogHandler_EnabledRespectsGlobalLevel(t *testing.T) {
	prev := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	h := NewSlogHandler(zerolog.New(&bytes.Buffer{}).Level(zerolog.DebugLevel))
	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("Enabled(info) = true under a warn global level")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("Enabled(error) = false under a warn global level")
	}
}

func TestSlogHandler_AttrsAndGroups(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	slogger := slog.New(NewSlogHandler(zerolog.New(&buf))).
		With("tree", "gamegraph").
		WithGroup("suture")

	slogger.Info("event", slog.Group("service", slog.String("name", "http")))

	output := buf.String()
	// attrs added before WithGroup stay unqualified
	if !strings.Contains(output, `"tree":"gamegraph"`) || strings.Contains(output, "suture.tree") {
		t.Errorf("expected top-level tree attr, got: %s", output)
	}
	if !strings.Contains(output, `"suture.service.name":"http"`) {
		t.Errorf("expected grouped attr, got: %s", output)
	}
}

func TestSlogToZerologLevel(t *testing.T) {
	t.Parallel()

	tests := map[slog.Level]zerolog.Level{
		slog.LevelDebug - 4: zerolog.TraceLevel,
		slog.LevelDebug:     zerolog.DebugLevel,
		slog.LevelInfo:      zerolog.InfoLevel,
		slog.LevelWarn:      zerolog.WarnLevel,
		slog.LevelError:     zerolog.ErrorLevel,
		slog.LevelError + 4: zerolog.ErrorLevel,
	}
	for in, want := range tests {
		if got := slogToZerologLevel(in); got != want {
			t.Errorf("slogToZerologLevel(%v) = %v, want %v", in, got, want)
		}
	}
}
