package event

import (
	"sync"
	"testing"
	"time"
)

func TestEventBusBasicPublishSubscribe(t *testing.T) {
	bus := NewBus()

	var wg sync.WaitGroup
	wg.Add(1)

	var received Event
	unsub := bus.Subscribe(ArgsParsed, func(evt Event) {
		received = evt
		wg.Done()
	})
	defer unsub()

	bus.Publish(Event{Type: ArgsParsed, Data: "-FRIC"})

	if waitTimeout(&wg, 100*time.Millisecond) {
		t.Fatal("Event was not received")
	}
	if received.Type != ArgsParsed {
		t.Errorf("Expected event type %q, got %q", ArgsParsed, received.Type)
	}
	if data, ok := received.Data.(string); !ok || data != "-FRIC" {
		t.Errorf("Expected event data %q, got %v", "-FRIC", received.Data)
	}
}

func TestEventBusSameHandlerLiteralSubscribedTwice(t *testing.T) {
	bus := NewBus()

	var wg sync.WaitGroup
	wg.Add(2)

	var mu sync.Mutex
	count := 0
	for i := 0; i < 2; i++ {
		unsub := bus.Subscribe(ConfigUpdated, func(evt Event) {
			mu.Lock()
			count++
			mu.Unlock()
			wg.Done()
		})
		defer unsub()
	}

	bus.Publish(Event{Type: ConfigUpdated})

	if waitTimeout(&wg, 100*time.Millisecond) {
		t.Fatal("Timed out waiting for event handlers to execute")
	}

	mu.Lock()
	defer mu.Unlock()
	if count != 2 {
		t.Errorf("Expected 2 handler calls, got %d", count)
	}
}

func TestEventBusMultipleEventTypes(t *testing.T) {
	bus := NewBus()
	eventTypes := []string{ArgsParsed, ConfigUpdated, SIGHUPReceived}

	var wg sync.WaitGroup
	wg.Add(len(eventTypes))

	var mu sync.Mutex
	receivedEvents := make(map[string]any)

	unsubs := make([]func(), 0, len(eventTypes))
	for _, eventType := range eventTypes {
		unsubs = append(unsubs, bus.Subscribe(eventType, func(evt Event) {
			mu.Lock()
			receivedEvents[evt.Type] = evt.Data
			mu.Unlock()
			wg.Done()
		}))
	}
	defer func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}()

	for _, eventType := range eventTypes {
		bus.Publish(Event{Type: eventType, Data: eventType + "_data"})
	}

	if waitTimeout(&wg, 100*time.Millisecond) {
		t.Fatal("Timed out waiting for events")
	}

	mu.Lock()
	defer mu.Unlock()

	for _, eventType := range eventTypes {
		if data := receivedEvents[eventType]; data != eventType+"_data" {
			t.Errorf("Event %q: expected data %q, got %v", eventType, eventType+"_data", data)
		}
	}
}

func TestEventBusUnsubscribe(t *testing.T) {
	bus := NewBus()

	received := make(chan struct{}, 1)
	unsub := bus.Subscribe(TerminationSignal, func(evt Event) {
		received <- struct{}{}
	})

	unsub()

	bus.Publish(Event{Type: TerminationSignal})

	select {
	case <-received:
		t.Error("Event handler was called after unsubscribing")
	case <-time.After(10 * time.Millisecond):
	}
}

func TestEventBusClose(t *testing.T) {
	bus := NewBus()

	received := make(chan struct{}, 1)
	unsub := bus.Subscribe(ConfigUpdated, func(evt Event) {
		received <- struct{}{}
	})
	defer unsub()

	bus.Close()

	bus.Publish(Event{Type: ConfigUpdated})

	select {
	case <-received:
		t.Error("Event handler was called after bus was closed")
	case <-time.After(10 * time.Millisecond):
	}
}

func waitTimeout(wg *sync.WaitGroup, timeout time.Duration) bool {
	c := make(chan struct{})
	go func() {
		defer close(c)
		wg.Wait()
	}()

	select {
	case <-c:
		return false
	case <-time.After(timeout):
		return true
	}
}
