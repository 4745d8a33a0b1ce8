package ws

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hfappmaker/worktime/internal/models"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)

	return l
}

func newTestClient(hub *Hub, userID string) *Client {
	return &Client{
		hub:    hub,
		send:   make(chan []byte, clientSendBuffer),
		log:    hub.log,
		UserID: userID,
	}
}

// waitForCount polls until the hub reports the expected client count.
func waitForCount(t *testing.T, hub *Hub, want int) {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for {
		if hub.ClientCount() == want {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for %d clients, have %d", want, hub.ClientCount())
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestHub_PublishReachesOnlyOwner(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(testLogger())
	go hub.Run(ctx)

	owner := newTestClient(hub, "u1")
	other := newTestClient(hub, "u2")
	hub.Register(owner)
	hub.Register(other)
	waitForCount(t, hub, 2)

	hub.Publish("u1", models.AuditEntry{ID: 1, TableName: "clients", Action: "UPDATE"})

	select {
	case msg := <-owner.send:
		var evt Event
		if err := json.Unmarshal(msg, &evt); err != nil {
			t.Fatalf("decoding event: %v", err)
		}
		if evt.Type != EventAudit {
			t.Errorf("expected audit event, got %q", evt.Type)
		}

		var entry models.AuditEntry
		if err := json.Unmarshal(evt.Data, &entry); err != nil {
			t.Fatalf("decoding entry: %v", err)
		}
		if entry.ID != 1 {
			t.Errorf("unexpected entry: %+v", entry)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("owner never received the event")
	}

	select {
	case msg := <-other.send:
		t.Fatalf("event leaked to another user: %s", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_UnregisterStopsDelivery(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(testLogger())
	go hub.Run(ctx)

	c := newTestClient(hub, "u1")
	hub.Register(c)
	waitForCount(t, hub, 1)

	hub.Unregister(c)
	waitForCount(t, hub, 0)
}

func TestHub_PerUserConnectionCap(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(testLogger())
	go hub.Run(ctx)

	for i := 0; i < maxClientsPerUser; i++ {
		hub.Register(newTestClient(hub, "u1"))
	}
	waitForCount(t, hub, maxClientsPerUser)

	extra := newTestClient(hub, "u1")
	hub.Register(extra)

	// The overflow client's send channel is closed instead of registering.
	select {
	case _, ok := <-extra.send:
		if ok {
			t.Fatal("expected closed send channel, got a message")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("overflow client was never rejected")
	}

	if hub.ClientCount() != maxClientsPerUser {
		t.Errorf("expected count to stay at the cap, got %d", hub.ClientCount())
	}
}

func TestHub_ShutdownDrains(t *testing.T) {
	hub := NewHub(testLogger())
	go hub.Run(context.Background())

	c := newTestClient(hub, "u1")
	hub.Register(c)
	waitForCount(t, hub, 1)

	done := make(chan struct{})
	go func() {
		hub.Shutdown()
		close(done)
	}()

	// Drain the shutdown notice so the hub can finish.
	for range c.send {
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("shutdown never completed")
	}

	if hub.ClientCount() != 0 {
		t.Errorf("expected all clients dropped, got %d", hub.ClientCount())
	}
}
