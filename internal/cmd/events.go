package cmd

import (
	"github.com/kochabx/apikit/eventbus"
	"github.com/kochabx/apikit/log"
)

// Events emitted on the CLI bus after calls complete.
const (
	EventUserCreated   = "user.created"
	EventUserUpdated   = "user.updated"
	EventUserDeleted   = "user.deleted"
	EventPostCreated   = "post.created"
	EventRequestFailed = "request.failed"
)

var allEvents = []string{
	EventUserCreated,
	EventUserUpdated,
	EventUserDeleted,
	EventPostCreated,
	EventRequestFailed,
}

// logListener writes every event it receives at info level.
func logListener(logger *log.Logger, event string) *eventbus.Listener {
	return eventbus.ListenerFunc(func(args ...any) {
		e := logger.Info().Str("event", event)
		if len(args) > 0 {
			e = e.Interface("payload", args[0])
		}
		e.Msg("event")
	})
}

func subscribeLogging(bus *eventbus.Bus, logger *log.Logger) {
	for _, name := range allEvents {
		bus.On(name, logListener(logger, name))
	}
}
