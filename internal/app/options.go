package app

import (
	"os"
	"time"

	"erlang-solutions.com/argstore/internal/event"
)

const DefaultShutdownTimeout = 5 * time.Second

type Options struct {
	Bus             *event.Bus
	Signals         <-chan os.Signal
	ShutdownTimeout time.Duration
}

type Option func(*Options)

func WithBus(bus *event.Bus) Option {
	return func(o *Options) {
		o.Bus = bus
	}
}

// WithSignals replaces the process signal channel, mainly for tests.
func WithSignals(ch <-chan os.Signal) Option {
	return func(o *Options) {
		o.Signals = ch
	}
}

func WithShutdownTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.ShutdownTimeout = timeout
	}
}

func DefaultOptions() Options {
	return Options{
		ShutdownTimeout: DefaultShutdownTimeout,
	}
}

func ApplyOptions(opts ...Option) Options {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	if options.Bus == nil {
		options.Bus = event.NewBus()
	}
	return options
}
