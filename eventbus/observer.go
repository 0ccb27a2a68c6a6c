package eventbus

// Observer is told about every emission and every failing listener.
type Observer interface {
	ObserveEmit(event string, listeners int)
	ObserveFailure(event string, err error)
}
