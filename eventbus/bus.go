// Package eventbus is a synchronous in-process publish/subscribe registry
// keyed by event name.
package eventbus

import (
	"fmt"
	"slices"
	"sync"

	"github.com/kochabx/apikit/errors"
	"github.com/kochabx/apikit/log"
)

// Bus maps event names to ordered listener lists. The zero value is not
// usable; call New.
type Bus struct {
	mu        sync.RWMutex
	listeners map[string][]*Listener
	logger    *log.Logger
	observer  Observer
}

// New creates an empty Bus.
func New(opts ...Option) *Bus {
	b := &Bus{
		listeners: make(map[string][]*Listener),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// On appends l to the listeners of name. The same listener may be
// registered more than once and is then called once per registration.
// A nil listener is ignored.
func (b *Bus) On(name string, l *Listener) {
	if l == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners[name] = append(b.listeners[name], l)
}

// Off removes every registration of l under name. Unknown names and
// listeners are ignored.
func (b *Bus) Off(name string, l *Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ls, ok := b.listeners[name]
	if !ok {
		return
	}
	ls = slices.DeleteFunc(slices.Clone(ls), func(x *Listener) bool { return x == l })
	if len(ls) == 0 {
		delete(b.listeners, name)
		return
	}
	b.listeners[name] = ls
}

// OffAll removes all listeners of name.
func (b *Bus) OffAll(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.listeners, name)
}

// ListenerCount returns the number of registrations under name.
func (b *Bus) ListenerCount(name string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners[name])
}

// Events returns the names that have at least one listener, sorted.
func (b *Bus) Events() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	names := make([]string, 0, len(b.listeners))
	for name := range b.listeners {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Emit calls the listeners of name in registration order on the calling
// goroutine, passing args to each. The list is captured when Emit starts:
// On and Off made by a listener take effect from the next Emit.
//
// A listener that fails or panics does not stop delivery. Its failure is
// logged and returned, joined with the others.
func (b *Bus) Emit(name string, args ...any) error {
	b.mu.RLock()
	ls := slices.Clone(b.listeners[name])
	b.mu.RUnlock()

	if b.observer != nil {
		b.observer.ObserveEmit(name, len(ls))
	}

	var errs []error
	for i, l := range ls {
		if err := b.call(l, args); err != nil {
			err = fmt.Errorf("event %q listener %d: %w", name, i, err)
			b.log().Error().Err(err).Str("event", name).Int("listener", i).Msg("event listener failed")
			if b.observer != nil {
				b.observer.ObserveFailure(name, err)
			}
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (b *Bus) call(l *Listener, args []any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.New(errors.UnknownCode, "listener panic: %v", r)
		}
	}()
	return l.fn(args...)
}

func (b *Bus) log() *log.Logger {
	if b.logger != nil {
		return b.logger
	}
	return log.G
}
