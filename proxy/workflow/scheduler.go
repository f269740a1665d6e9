package workflow

import (
	"context"
	"fmt"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	"encore.dev/rlog"

	"encore.app/proxy/model"
)

// Scheduler starts PersistRecord workflows. The workflow ID is derived from
// the idempotency key, so at most one retry loop runs per key.
type Scheduler struct {
	temporal  client.Client
	taskQueue string
}

// NewScheduler creates a Scheduler that starts workflows on taskQueue.
func NewScheduler(c client.Client, taskQueue string) *Scheduler {
	return &Scheduler{
		temporal:  c,
		taskQueue: taskQueue,
	}
}

// WorkflowID is the PersistRecord workflow ID for an idempotency key.
func WorkflowID(key string) string {
	return fmt.Sprintf("cache-record-%s", key)
}

// Defer hands a failed cache write over to temporal.
func (s *Scheduler) Defer(ctx context.Context, key string, payload model.Payload, requestHash string) error {
	workflowID := WorkflowID(key)

	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: s.taskQueue,
	}

	params := PersistRecordParams{
		Key:         key,
		Payload:     payload,
		RequestHash: requestHash,
	}

	_, err := s.temporal.ExecuteWorkflow(ctx, options, PersistRecord, params)
	if err != nil {
		if temporal.IsWorkflowExecutionAlreadyStartedError(err) {
			rlog.Info("persist workflow already started", "key", key, "workflow_id", workflowID)
			return nil
		}
		return fmt.Errorf("execute workflow %s: %w", workflowID, err)
	}

	rlog.Info("deferred idempotency record write", "key", key, "workflow_id", workflowID)
	return nil
}
