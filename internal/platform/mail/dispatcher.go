// Copyright (c) 2026 Fashion Fiesta. All rights reserved.
// Author: avi4306

package mail

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/ctxutil"
)

// Dispatcher sends messages without making the caller wait.
type Dispatcher struct {
	sender  Sender
	logger  *slog.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher; each send is bounded by timeout.
func NewDispatcher(sender Sender, logger *slog.Logger, timeout time.Duration) *Dispatcher {
	return &Dispatcher{sender: sender, logger: logger, timeout: timeout}
}

// Dispatch queues msg for delivery and returns immediately.
//
// The send runs on a context detached from ctx's cancellation (the request may
// finish first) but keeps its values, so logs still carry the request id.
func (d *Dispatcher) Dispatch(ctx context.Context, msg Message) {
	detached := context.WithoutCancel(ctx)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		sendCtx, cancel := context.WithTimeout(detached, d.timeout)
		defer cancel()

		if err := d.sender.Send(sendCtx, msg); err != nil {
			d.logger.WarnContext(sendCtx, "mail_delivery_failed",
				slog.String("sender", d.sender.Name()),
				slog.String("to", msg.To),
				slog.String("subject", msg.Subject),
				slog.String("request_id", ctxutil.GetRequestID(sendCtx)),
				slog.Any("error", err),
			)
			return
		}

		d.logger.DebugContext(sendCtx, "mail_delivered",
			slog.String("sender", d.sender.Name()),
			slog.String("to", msg.To),
		)
	}()
}

// Wait blocks until every dispatched message has finished, or ctx ends.
func (d *Dispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
