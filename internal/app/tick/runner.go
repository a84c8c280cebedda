package tick

import (
	"context"
	"errors"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"

	"wildcraft/internal/app/ports"
	"wildcraft/internal/domain/survival"
)

// Runner drives UseCase on a fixed real-time interval for every known
// session until ctx is cancelled.
type Runner struct {
	Ticker   UseCase
	Sessions func() []string
	Interval time.Duration
}

func (r Runner) Run(ctx context.Context) error {
	interval := r.Interval
	if interval <= 0 {
		interval = survival.TickInterval
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			r.TickAll(ctx)
		}
	}
}

// TickAll runs one passive step for each session. A conflict means a player
// action won the race for this version; the next interval catches up.
func (r Runner) TickAll(ctx context.Context) {
	if r.Sessions == nil {
		return
	}
	for _, id := range r.Sessions() {
		if ctx.Err() != nil {
			return
		}
		_, err := r.Ticker.Execute(ctx, Request{SessionID: id})
		switch {
		case err == nil:
		case errors.Is(err, ports.ErrConflict):
			hlog.CtxDebugf(ctx, "tick session %s: version conflict, retrying next interval", id)
		default:
			hlog.CtxErrorf(ctx, "tick session %s: %v", id, err)
		}
	}
}
