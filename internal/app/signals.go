package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"erlang-solutions.com/argstore/internal/event"
	"erlang-solutions.com/argstore/internal/i18n"
	"erlang-solutions.com/argstore/internal/util"
)

var errTerminated = errors.New("terminated by signal")

// Run blocks until ctx is done or a termination signal arrives. SIGHUP
// reloads the command line and config file in place.
func (a *App) Run(ctx context.Context) error {
	sigCh := a.options.Signals
	if sigCh == nil {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(ch)
		sigCh = ch
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.watchSignals(gCtx, sigCh)
	})

	<-gCtx.Done()

	finished, err := util.WaitGroupWithTimeout(g, a.options.ShutdownTimeout)
	if !finished {
		return context.DeadlineExceeded
	}
	if errors.Is(err, errTerminated) {
		return context.Canceled
	}
	return err
}

func (a *App) watchSignals(ctx context.Context, sigCh <-chan os.Signal) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sig := <-sigCh:
			switch sig {
			case syscall.SIGHUP:
				a.options.Bus.Publish(event.Event{Type: event.SIGHUPReceived, Ctx: ctx})
				a.log().Info(i18n.T("reload_started", nil), nil)
				if err := a.Load(); err != nil {
					a.log().LogError(i18n.T("reload_failed", map[string]any{"Error": err}), err, nil)
				}
			default:
				a.options.Bus.Publish(event.Event{Type: event.TerminationSignal, Data: sig, Ctx: ctx})
				a.log().Info(i18n.T("termination_signal", nil), map[string]any{"signal": sig.String()})
				return errTerminated
			}
		}
	}
}
