package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
)

// ShutdownSignals stop a running command.
var ShutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

// Interrupt is the cancellation cause of a context stopped by a signal.
type Interrupt struct {
	Signal os.Signal
}

func (i *Interrupt) Error() string {
	return "interrupted by " + i.Signal.String()
}

// NotifyContext behaves like signal.NotifyContext but records the received
// signal as the context's cause. With no sigs it listens for ShutdownSignals.
func NotifyContext(parent context.Context, sigs ...os.Signal) (context.Context, context.CancelFunc) {
	if len(sigs) == 0 {
		sigs = ShutdownSignals
	}
	ctx, cancel := context.WithCancelCause(parent)

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, sigs...)
	go func() {
		defer signal.Stop(ch)
		select {
		case sig := <-ch:
			cancel(&Interrupt{Signal: sig})
		case <-ctx.Done():
		}
	}()

	return ctx, func() { cancel(nil) }
}

// Interrupted returns the signal that stopped ctx, or nil.
func Interrupted(ctx context.Context) os.Signal {
	var in *Interrupt
	if errors.As(context.Cause(ctx), &in) {
		return in.Signal
	}
	return nil
}
