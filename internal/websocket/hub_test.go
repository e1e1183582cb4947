package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"
	"testing"
	"time"
)

// testClient creates a Client with a send channel but no connection.
func testClient(hub *Hub) *Client {
	return &Client{hub: hub, send: make(chan []byte, sendBufferSize)}
}

func TestRegisterUnregister(t *testing.T) {
	hub := NewHub(slog.Default())

	c1 := testClient(hub)
	c2 := testClient(hub)
	hub.Register(c1)
	hub.Register(c2)

	if got := hub.ClientCount(); got != 2 {
		t.Fatalf("ClientCount = %d, want 2", got)
	}

	hub.Unregister(c1)
	if got := hub.ClientCount(); got != 1 {
		t.Fatalf("ClientCount = %d, want 1", got)
	}

	// Double unregister must not panic.
	hub.Unregister(c1)
	hub.Unregister(c2)
	if got := hub.ClientCount(); got != 0 {
		t.Fatalf("ClientCount = %d, want 0", got)
	}
}

func TestBroadcastTravelCreated(t *testing.T) {
	hub := NewHub(slog.Default())

	c1 := testClient(hub)
	c2 := testClient(hub)
	hub.Register(c1)
	hub.Register(c2)

	hub.Broadcast(NewMessage("travel", "created", 42))

	for _, c := range []*Client{c1, c2} {
		select {
		case data := <-c.send:
			var got Message
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got.Type != "travel_created" {
				t.Errorf("Type = %q, want %q", got.Type, "travel_created")
			}
			if got.ID != 42 {
				t.Errorf("ID = %d, want 42", got.ID)
			}
		case <-time.After(100 * time.Millisecond):
			t.Fatal("timeout waiting for broadcast")
		}
	}
}

func TestBroadcastEmptyHub(t *testing.T) {
	hub := NewHub(slog.Default())
	// Must not panic with no clients.
	hub.Broadcast(NewMessage("comment", "deleted", 1))
}

func TestBroadcastFullBufferDrops(t *testing.T) {
	hub := NewHub(slog.Default())
	c := testClient(hub)
	hub.Register(c)

	for i := 0; i <= sendBufferSize; i++ {
		hub.Broadcast(NewMessage("travel", "created", int64(i)))
	}

	count := 0
	for {
		select {
		case <-c.send:
			count++
		default:
			if count != sendBufferSize {
				t.Errorf("delivered = %d, want %d (overflow dropped)", count, sendBufferSize)
			}
			return
		}
	}
}

func TestConcurrentRegisterBroadcast(t *testing.T) {
	hub := NewHub(slog.Default())
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := testClient(hub)
			hub.Register(c)
			hub.Broadcast(NewMessage("travel", "created", 0))
			for {
				select {
				case <-c.send:
				default:
					hub.Unregister(c)
					return
				}
			}
		}()
	}

	wg.Wait()
	if got := hub.ClientCount(); got != 0 {
		t.Errorf("ClientCount = %d, want 0", got)
	}
}
