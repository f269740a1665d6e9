package proxy

import (
	"context"
	"time"

	"encore.dev/rlog"

	"encore.app/proxy/business/forward"
	"encore.app/proxy/model"
)

// scheduleTimeout bounds how long handing a write to temporal may take once
// it has left the request path.
const scheduleTimeout = 5 * time.Second

// detach runs schedule without the caller waiting on it. Tests swap it for an
// inline call.
var detach = func(schedule func()) { go schedule() }

// asyncDeferrer schedules deferred writes off the request path so a slow
// temporal frontend never delays the client.
type asyncDeferrer struct {
	next forward.Deferrer
}

func (d asyncDeferrer) Defer(_ context.Context, key string, payload model.Payload, requestHash string) error {
	detach(func() {
		ctx, cancel := context.WithTimeout(context.Background(), scheduleTimeout)
		defer cancel()

		if err := d.next.Defer(ctx, key, payload, requestHash); err != nil {
			rlog.Error("failed to schedule deferred record write", "key", key, "error", err)
			return
		}
		rlog.Debug("scheduled deferred record write", "key", key)
	})
	return nil
}
