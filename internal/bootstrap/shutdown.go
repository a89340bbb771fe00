package bootstrap

import (
	"context"
	"log/slog"
)

// Shutdown stops the app in dependency order:
//  1. HTTP server, so no new commands arrive
//  2. event manager, which settles and tears down running rounds
//  3. tick loops and round timers
//  4. worker pool, after the rounds that used it are gone
//  5. relay, flushing what the rounds published
//  6. account store
//
// Errors are logged and do not stop the sequence.
func (a *App) Shutdown(ctx context.Context) {
	slog.Info(LogMsgShuttingDown)

	if a.Server != nil {
		if err := a.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if err := a.Manager.Shutdown(ctx); err != nil {
		slog.Error(LogMsgManagerShutdownFail, "error", err)
	}
	a.Scheduler.Stop()
	if err := a.Timers.Shutdown(ctx); err != nil {
		slog.Error(LogMsgTimersShutdownFail, "error", err)
	}
	a.Pool.Stop()

	if err := a.Events.Forwarder.Shutdown(ctx); err != nil {
		slog.Error(LogMsgRelayShutdownFailed, "error", err)
	}
	closeAndLog("relay sink", a.Events.Sink.Close)
	closeAndLog("dead letter", a.Events.DeadLetter.Close)
	closeAndLog("account store", a.Accounts.Close)

	slog.Info(LogMsgStopped)
}

func closeAndLog(name string, closeFn func() error) {
	if err := closeFn(); err != nil {
		slog.Error(LogMsgCloseFailed, "component", name, "error", err)
	}
}
