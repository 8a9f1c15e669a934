package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newBufferedLogger() (Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return NewSlogLogger(slog.New(h)), &buf
}

func TestSlogLogger_EmitsEveryLevel(t *testing.T) {
	log, buf := newBufferedLogger()
	ctx := context.Background()

	log.Debug(ctx, "dbg", "a", 1)
	log.Info(ctx, "inf", "b", 2)
	log.Warn(ctx, "wrn", "c", 3)
	log.Error(ctx, "err", "d", 4)

	out := buf.String()
	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, "msg=dbg")
	assert.Contains(t, out, "a=1")
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "msg=inf")
	assert.Contains(t, out, "b=2")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "c=3")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "d=4")
}

func TestSlogLogger_WithCarriesAttributes(t *testing.T) {
	log, buf := newBufferedLogger()

	child := log.With("entityType", "note", "scope", "alice")
	child.Info(context.Background(), "saved", "id", "n1")

	out := buf.String()
	assert.Contains(t, out, "entityType=note")
	assert.Contains(t, out, "scope=alice")
	assert.Contains(t, out, "id=n1")

	// The parent stays unannotated.
	buf.Reset()
	log.Info(context.Background(), "plain")
	assert.NotContains(t, buf.String(), "entityType=note")
}

func TestSlogLogger_ToleratesAnyContext(t *testing.T) {
	log, _ := newBufferedLogger()
	assert.NotPanics(t, func() {
		log.Debug(context.TODO(), "ok")
		log.Info(context.TODO(), "ok")
		log.Warn(context.TODO(), "ok")
		log.Error(context.TODO(), "ok")
	})
}
