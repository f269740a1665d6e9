package forward

import (
	"context"

	"encore.dev/rlog"

	"encore.app/proxy/codec"
	"encore.app/proxy/model"
	"encore.app/proxy/router"
	"encore.app/proxy/store"
)

// Forward resolves the route, then either replays the record stored under the
// request's idempotency key or forwards to the backend and records the result.
// Requests without a key are forwarded and never read from or written to the store.
func (b *business) Forward(ctx context.Context, req *model.InboundRequest) (*model.Outcome, error) {
	target, err := router.Resolve(req.Path, b.routes)
	if err != nil {
		rlog.Debug("no route found for path", "path", req.Path)
		return nil, err
	}

	// A client that hangs up must not leave a canceled call as the cached outcome.
	ctx = context.WithoutCancel(ctx)

	if req.IdempotencyKey == "" {
		return &model.Outcome{
			Payload:     b.forwardAndEncode(ctx, target, req),
			CacheStatus: model.CacheStatusBypass,
		}, nil
	}

	key := req.IdempotencyKey
	requestHash := fingerprint(req)

	if record, ok := b.lookup(ctx, key, requestHash); ok {
		rlog.Debug("returning cached response", "key", key)
		return &model.Outcome{Payload: record.Response, CacheStatus: model.CacheStatusHit}, nil
	}

	payload := b.forwardAndEncode(ctx, target, req)
	return b.record(ctx, key, payload, requestHash), nil
}

// lookup reads the record for key. A store failure counts as a miss.
func (b *business) lookup(ctx context.Context, key, requestHash string) (*model.CacheRecord, bool) {
	record, found, err := b.store.Get(ctx, key)
	if err != nil {
		rlog.Error("failed to read idempotency record, forwarding", "key", key, "error", err)
		return nil, false
	}
	if !found {
		return nil, false
	}

	if record.RequestHash != "" && record.RequestHash != requestHash {
		rlog.Warn("idempotency key reused with a different request", "key", key)
	}
	return record, true
}

// forwardAndEncode calls the backend and turns whatever comes back, including
// a failure to get a response at all, into a cacheable payload.
func (b *business) forwardAndEncode(ctx context.Context, target string, req *model.InboundRequest) model.Payload {
	upstream, err := b.callBackend(ctx, target, req)
	if err != nil {
		rlog.Error("error while forwarding request", "url", target, "error", err)
		return codec.ForwardFailure(err)
	}
	return codec.Encode(upstream.Body, upstream.ContentType)
}

// record writes payload under key. When another request committed the key
// first, its record wins and is returned instead.
func (b *business) record(ctx context.Context, key string, payload model.Payload, requestHash string) *model.Outcome {
	record, err := b.store.Put(ctx, key, payload, requestHash)
	if err == nil {
		rlog.Debug("successfully cached result", "key", key)
		return &model.Outcome{Payload: record.Response, CacheStatus: model.CacheStatusMiss}
	}

	if store.IsDuplicateKey(err) {
		winner, found, getErr := b.store.Get(ctx, key)
		if getErr == nil && found {
			rlog.Info("idempotency key committed concurrently, returning winning record", "key", key)
			return &model.Outcome{Payload: winner.Response, CacheStatus: model.CacheStatusHit}
		}
		rlog.Error("failed to read winning idempotency record", "key", key, "error", getErr)
		return &model.Outcome{Payload: payload, CacheStatus: model.CacheStatusMiss}
	}

	rlog.Error("failed to cache response", "key", key, "error", err)
	if store.IsUnavailable(err) && b.deferrer != nil {
		if deferErr := b.deferrer.Defer(ctx, key, payload, requestHash); deferErr != nil {
			rlog.Error("failed to defer idempotency record write", "key", key, "error", deferErr)
		}
	}
	return &model.Outcome{Payload: payload, CacheStatus: model.CacheStatusMiss}
}
