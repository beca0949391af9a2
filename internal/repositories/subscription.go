package repositories

import (
	"sync"

	"github.com/google/uuid"

	"inventorywidget/internal/models"
)

// Subscription is a live feed of values of type T. New subscribers receive the
// current value immediately and a fresh value after every committed mutation.
// Cancel must be called on teardown or the subscriber entry leaks.
type Subscription[T any] struct {
	// ID identifies this subscriber inside its hub.
	ID uuid.UUID
	// C delivers values. The channel conflates: it holds at most one pending
	// value and a newer value replaces an unconsumed older one, so a slow
	// reader always wakes up to a state at least as recent as the last commit.
	C <-chan T

	cancel func()
}

// Cancel removes the subscriber from its hub and closes C.
func (s *Subscription[T]) Cancel() {
	s.cancel()
}

// ProductListSubscription streams ordered product snapshots.
type ProductListSubscription = Subscription[[]models.Product]

// TotalValueSubscription streams the running inventory total.
type TotalValueSubscription = Subscription[float64]

// hub multicasts values to a set of subscribers. Publish is called from inside
// a store's mutation critical section, so subscribers observe notifications in
// commit order.
type hub[T any] struct {
	mu   sync.Mutex
	subs map[uuid.UUID]chan T
}

func newHub[T any]() *hub[T] {
	return &hub[T]{subs: make(map[uuid.UUID]chan T)}
}

// Subscribe registers a new subscriber and primes its channel with current.
func (h *hub[T]) Subscribe(current T) *Subscription[T] {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := uuid.New()
	ch := make(chan T, 1)
	ch <- current
	h.subs[id] = ch

	return &Subscription[T]{
		ID: id,
		C:  ch,
		cancel: func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if sub, ok := h.subs[id]; ok {
				delete(h.subs, id)
				close(sub)
			}
		},
	}
}

// Publish delivers value to every subscriber, replacing any value that a
// subscriber has not consumed yet.
func (h *hub[T]) Publish(value T) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ch := range h.subs {
		select {
		case ch <- value:
		default:
			// Drop the stale pending value and enqueue the fresh one.
			select {
			case <-ch:
			default:
			}
			ch <- value
		}
	}
}
