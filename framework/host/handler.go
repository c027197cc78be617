package host

import (
	"reflect"
	"sync"

	"github.com/km-arc/go-inject/framework/container"
)

// Handler is a periodic callback channel. Subscribers are kept once each,
// in subscription order, and invoked on every Invoke.
type Handler[T any] struct {
	mu   sync.Mutex
	subs []T
	seen map[any]struct{}
	call func(T)
}

// NewHandler returns a channel that calls call for each subscriber.
func NewHandler[T any](call func(T)) *Handler[T] {
	return &Handler[T]{seen: make(map[any]struct{}), call: call}
}

// AddSubscriber implements container.Channel. Adding the same subscriber
// twice is a no-op for comparable subscribers.
func (h *Handler[T]) AddSubscriber(sub T) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var key any = sub
	if key == nil {
		return
	}
	// Comparable on the value also checks what interface fields hold.
	if reflect.ValueOf(key).Comparable() {
		if _, dup := h.seen[key]; dup {
			return
		}
		h.seen[key] = struct{}{}
	}
	h.subs = append(h.subs, sub)
}

// Len returns the number of subscribers.
func (h *Handler[T]) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Invoke calls every subscriber once. Subscribers added during the call
// are first invoked on the next one.
func (h *Handler[T]) Invoke() {
	h.mu.Lock()
	subs := make([]T, len(h.subs))
	copy(subs, h.subs)
	h.mu.Unlock()

	for _, sub := range subs {
		h.call(sub)
	}
}

type (
	TickHandler      = Handler[container.Tickable]
	LateTickHandler  = Handler[container.LateTickable]
	FixedTickHandler = Handler[container.FixedTickable]
)

func NewTickHandler() *TickHandler {
	return NewHandler(func(t container.Tickable) { t.Tick() })
}

func NewLateTickHandler() *LateTickHandler {
	return NewHandler(func(t container.LateTickable) { t.LateTick() })
}

func NewFixedTickHandler() *FixedTickHandler {
	return NewHandler(func(t container.FixedTickable) { t.FixedTick() })
}
