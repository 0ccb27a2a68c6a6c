package eventbus

// Listener is a registered callback. Registrations are matched by pointer,
// so keep the value returned by NewListener or ListenerFunc to remove it.
type Listener struct {
	fn func(args ...any) error
}

// NewListener wraps fn. A non-nil error is reported to the emitter.
func NewListener(fn func(args ...any) error) *Listener {
	if fn == nil {
		return nil
	}
	return &Listener{fn: fn}
}

// ListenerFunc wraps a callback that cannot fail.
func ListenerFunc(fn func(args ...any)) *Listener {
	if fn == nil {
		return nil
	}
	return &Listener{fn: func(args ...any) error {
		fn(args...)
		return nil
	}}
}
