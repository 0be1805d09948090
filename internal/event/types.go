package event

import (
	"context"
)

const (
	// ArgsParsed carries the *args.Store after the command line is parsed.
	ArgsParsed = "args_parsed"
	// ConfigUpdated carries the config.Config merged into the store.
	ConfigUpdated     = "config_updated"
	SIGHUPReceived    = "sighup_received"
	TerminationSignal = "termination_signal"
)

type Event struct {
	Type string
	Data any
	Ctx  context.Context
}
