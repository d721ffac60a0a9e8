package xslog

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestWithAttrsEnrichesContextLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := WithLogger(context.Background(), NewLogger(&buf, LevelInfo))
	ctx = WithAttrs(ctx, slog.String("component", "ingest"))

	FromContext(ctx).InfoContext(ctx, "refresh complete")

	if got := buf.String(); !strings.Contains(got, `"component":"ingest"`) {
		t.Errorf("log output = %s, want component attr carried from context", got)
	}
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	t.Parallel()

	if FromContext(context.Background()) == nil {
		t.Fatal("expected the default logger, got nil")
	}
}
