package workflow

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"encore.app/proxy/model"
)

// PersistRecordParams carries a response whose cache write failed while the
// request was being served.
type PersistRecordParams struct {
	Key         string        `json:"key"`
	Payload     model.Payload `json:"payload"`
	RequestHash string        `json:"request_hash"`
}

// PersistRecord retries the insert of one idempotency record until the store
// accepts it or reports that another writer already committed the key.
func PersistRecord(ctx workflow.Context, params PersistRecordParams) error {
	logger := workflow.GetLogger(ctx)
	logger.Info("Starting persist record workflow", "key", params.Key)

	activityOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    time.Minute,
			MaximumAttempts:    10,
		},
	}
	activityCtx := workflow.WithActivityOptions(ctx, activityOptions)

	var a *Activities
	err := workflow.ExecuteActivity(activityCtx, a.PersistRecordActivity, params).Get(ctx, nil)
	if err != nil {
		logger.Error("Giving up on idempotency record", "key", params.Key, "error", err)
		return err
	}

	logger.Info("Persist record workflow completed", "key", params.Key)
	return nil
}
