package ws

import (
	"encoding/json"
	"testing"
	"time"
)

func TestPublishSendsEnvelope(t *testing.T) {
	hub := NewHub(nil)
	defer hub.Stop()

	hub.Publish(Event{Type: TypeStockUpdate, Action: "stock_entry_recorded", Data: map[string]interface{}{"barcode": "123"}})

	select {
	case raw := <-hub.Broadcast:
		var ev Event
		if err := json.Unmarshal(raw, &ev); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if ev.Type != TypeStockUpdate || ev.Action != "stock_entry_recorded" || ev.At == 0 {
			t.Fatalf("unexpected event %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("event not broadcast")
	}
}

func TestPublishOnNilHubIsNoop(t *testing.T) {
	var hub *Hub
	hub.Publish(Event{Type: TypeNotification})
}

func TestStopEndsRun(t *testing.T) {
	hub := NewHub(nil)
	finished := make(chan struct{})
	go func() {
		hub.Run()
		close(finished)
	}()

	hub.Stop()
	hub.Stop()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Stop")
	}
	if hub.ClientCount() != 0 {
		t.Fatal("clients left after stop")
	}
}

func TestRegisterAfterStopDoesNotBlock(t *testing.T) {
	hub := NewHub(nil)
	finished := make(chan struct{})
	go func() {
		hub.Run()
		close(finished)
	}()
	hub.Stop()
	<-finished

	done := make(chan bool)
	go func() {
		ok := hub.Register(nil)
		hub.Unregister(nil)
		done <- ok
	}()

	select {
	case ok := <-done:
		if ok {
			t.Fatal("register must be refused after stop")
		}
	case <-time.After(time.Second):
		t.Fatal("register blocked after stop")
	}
}
