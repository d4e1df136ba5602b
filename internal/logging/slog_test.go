package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger() (*SlogLogger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return NewSlogLogger(slog.New(slog.NewJSONHandler(buf, nil))), buf
}

func lastRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	return rec
}

func TestSlogLogger_InfoWithArgs(t *testing.T) {
	log, buf := newBufferLogger()

	log.Info(context.Background(), "signed in", "email", "a@x.com")

	rec := lastRecord(t, buf)
	assert.Equal(t, "signed in", rec["msg"])
	assert.Equal(t, "INFO", rec["level"])
	assert.Equal(t, "a@x.com", rec["email"])
}

func TestSlogLogger_WithAddsFields(t *testing.T) {
	log, buf := newBufferLogger()

	child := log.With("module", "app")
	child.Error(context.Background(), "db down")

	rec := lastRecord(t, buf)
	assert.Equal(t, "app", rec["module"])
	assert.Equal(t, "ERROR", rec["level"])
}
