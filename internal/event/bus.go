package event

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/maniartech/signals"
)

type Handler func(Event)

type Bus struct {
	mu      sync.RWMutex
	signals map[string]signals.Signal[Event]
	nextKey atomic.Uint64
}

func NewBus() *Bus {
	return &Bus{
		signals: make(map[string]signals.Signal[Event]),
	}
}

// Subscribe registers handler for eventType and returns a function that
// removes it again.
func (b *Bus) Subscribe(eventType string, handler Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.signals[eventType]; !exists {
		b.signals[eventType] = signals.New[Event]()
	}

	key := eventType + "#" + strconv.FormatUint(b.nextKey.Add(1), 10)

	b.signals[eventType].AddListener(func(ctx context.Context, evt Event) {
		handler(evt)
	}, key)

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		if signal, exists := b.signals[eventType]; exists {
			signal.RemoveListener(key)
		}
	}
}

func (b *Bus) Publish(evt Event) {
	b.mu.RLock()
	signal, exists := b.signals[evt.Type]
	b.mu.RUnlock()

	if !exists {
		return
	}

	ctx := evt.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	signal.Emit(ctx, evt)
}

func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, signal := range b.signals {
		signal.Reset()
	}
	b.signals = make(map[string]signals.Signal[Event])
}
