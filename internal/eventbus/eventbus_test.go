package eventbus

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishDeliversToSubscribers(t *testing.T) {
	b := New(nil)
	defer b.Close()

	got := make(chan IndexChangedEvent, 1)
	b.Subscribe(EventIndexChanged, func(e DomainEvent) {
		if ev, ok := e.(IndexChangedEvent); ok {
			got <- ev
		}
	})

	b.Publish(IndexChangedEvent{OldIndex: 0, NewIndex: 1})

	select {
	case ev := <-got:
		assert.Equal(t, 0, ev.OldIndex)
		assert.Equal(t, 1, ev.NewIndex)
	case <-time.After(time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestSubscribersOnlySeeTheirType(t *testing.T) {
	b := New(nil)
	defer b.Close()

	var mu sync.Mutex
	var seen []EventType
	done := make(chan struct{})
	b.Subscribe(EventDragEnded, func(e DomainEvent) {
		mu.Lock()
		seen = append(seen, e.Type())
		mu.Unlock()
		close(done)
	})

	b.Publish(IndexChangedEvent{})
	b.Publish(DragEndedEvent{Translation: 10})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("drag ended event was not delivered")
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, seen, 1)
	assert.Equal(t, EventDragEnded, seen[0])
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := New(nil)
	defer b.Close()

	calls := make(chan struct{}, 4)
	unsubscribe := b.Subscribe(EventIndexChanged, func(DomainEvent) {
		calls <- struct{}{}
	})
	marker := make(chan struct{}, 4)
	b.Subscribe(EventIndexChanged, func(DomainEvent) {
		marker <- struct{}{}
	})

	unsubscribe()
	b.Publish(IndexChangedEvent{})

	select {
	case <-marker:
	case <-time.After(time.Second):
		t.Fatal("remaining subscriber was not called")
	}
	assert.Len(t, calls, 0)
}

func TestHandlerPanicDoesNotStopBus(t *testing.T) {
	b := New(nil)
	defer b.Close()

	b.Subscribe(EventError, func(DomainEvent) {
		panic("boom")
	})
	ok := make(chan struct{})
	b.Subscribe(EventError, func(DomainEvent) {
		close(ok)
	})

	b.Publish(ErrorEvent{Message: "x"})

	select {
	case <-ok:
	case <-time.After(time.Second):
		t.Fatal("handler after panicking handler was not called")
	}
}

func TestPublishAfterCloseIsDropped(t *testing.T) {
	b := New(nil)
	b.Close()

	assert.NotPanics(t, func() {
		b.Publish(IndexChangedEvent{})
		b.Close()
	})
}
