package ws

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/dmitrijs2005/storykeeper/internal/api"
	"github.com/dmitrijs2005/storykeeper/internal/logging"
)

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (nopLogger) With(...any) logging.Logger            { return nopLogger{} }

func waitForConnections(t *testing.T, m *Manager, userID string, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for m.UserConnections(userID) != want {
		if time.Now().After(deadline) {
			t.Fatalf("user %s never reached %d connections", userID, want)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestNotifyChange_FansOutToUserConnections(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := NewManager(nopLogger{})
	go m.Run(ctx)

	c1 := NewClient("c1", "user-1", nil, m)
	c2 := NewClient("c2", "user-1", nil, m)
	other := NewClient("c3", "user-2", nil, m)

	m.Register <- c1
	m.Register <- c2
	m.Register <- other
	waitForConnections(t, m, "user-1", 2)
	waitForConnections(t, m, "user-2", 1)

	ev := api.ChangeEvent{Action: "saved", EntityType: "chapter", EntityID: "ch-1"}
	m.NotifyChange("user-1", ev)

	for _, c := range []*Client{c1, c2} {
		select {
		case payload := <-c.Send:
			var got api.ChangeEvent
			if err := json.Unmarshal(payload, &got); err != nil {
				t.Fatalf("payload not json: %v", err)
			}
			if got != ev {
				t.Fatalf("event mismatch: %+v", got)
			}
		case <-time.After(time.Second):
			t.Fatalf("client %s received nothing", c.ID)
		}
	}

	select {
	case payload := <-other.Send:
		t.Fatalf("event leaked to another user: %s", payload)
	default:
	}
}

func TestUnregister_ClosesSendChannel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := NewManager(nopLogger{})
	go m.Run(ctx)

	c := NewClient("c1", "user-1", nil, m)
	m.Register <- c
	waitForConnections(t, m, "user-1", 1)

	m.Unregister <- c
	waitForConnections(t, m, "user-1", 0)

	select {
	case _, open := <-c.Send:
		if open {
			t.Fatal("expected closed channel")
		}
	case <-time.After(time.Second):
		t.Fatal("send channel not closed")
	}
}

func TestNotifyChange_DropsWhenBufferFull(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := NewManager(nopLogger{})
	go m.Run(ctx)

	c := NewClient("c1", "user-1", nil, m)
	m.Register <- c
	waitForConnections(t, m, "user-1", 1)

	// Nothing drains Send; overflow past the buffer must not block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < cap(c.Send)+10; i++ {
			m.NotifyChange("user-1", api.ChangeEvent{Action: "saved", EntityID: "e"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("NotifyChange blocked on a full buffer")
	}
}
