package workflow

import (
	"context"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"encore.app/proxy/store"
)

// Activities holds the dependencies the persist activities need.
type Activities struct {
	Store store.Store
}

// PersistRecordActivity inserts the record. A duplicate key means another
// request committed first, which is the outcome the workflow wants anyway.
func (a *Activities) PersistRecordActivity(ctx context.Context, params PersistRecordParams) error {
	logger := activity.GetLogger(ctx)
	logger.Info("Processing persist record activity", "key", params.Key)

	if a == nil || a.Store == nil {
		logger.Error("Activity dependencies not set")
		return temporal.NewNonRetryableApplicationError("activity dependencies not initialized", "DependencyError", nil)
	}

	_, err := a.Store.Put(ctx, params.Key, params.Payload, params.RequestHash)
	if err != nil {
		if store.IsDuplicateKey(err) {
			logger.Info("Idempotency record already committed", "key", params.Key)
			return nil
		}
		if store.IsUnavailable(err) {
			logger.Warn("Store unavailable, will retry", "key", params.Key, "error", err)
			return err
		}
		logger.Error("Failed to persist idempotency record", "key", params.Key, "error", err)
		return temporal.NewNonRetryableApplicationError("failed to persist idempotency record", "RECORD_PERSIST_FAILED", err)
	}

	logger.Info("Successfully persisted idempotency record", "key", params.Key)
	return nil
}
