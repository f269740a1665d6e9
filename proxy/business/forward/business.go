package forward

import (
	"context"
	"net/http"

	"encore.app/proxy/model"
	"encore.app/proxy/store"
)

type Business interface {
	// Forward runs one request through route resolution, the idempotency
	// cache and the backend. The only error it returns is router.ErrRouteNotFound;
	// every other failure resolves to an Outcome.
	Forward(ctx context.Context, req *model.InboundRequest) (*model.Outcome, error)
}

// Deferrer takes over a cache write that failed because the store was
// unavailable.
type Deferrer interface {
	Defer(ctx context.Context, key string, payload model.Payload, requestHash string) error
}

// HTTPClient is satisfied by *http.Client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type business struct {
	routes   model.RouteTable
	store    store.Store
	client   HTTPClient
	deferrer Deferrer
}

// NewForwardBusiness creates the forwarding engine. deferrer may be nil, in
// which case failed cache writes are only logged.
func NewForwardBusiness(
	routes model.RouteTable,
	recordStore store.Store,
	client HTTPClient,
	deferrer Deferrer,
) Business {
	return &business{
		routes:   routes,
		store:    recordStore,
		client:   client,
		deferrer: deferrer,
	}
}
