package invoice

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/wecare-vn/invoice-api/internal/lock"
)

// TaskRecompute is the task type for background invoice rebuilds.
const TaskRecompute = "invoice:recompute"

type recomputePayload struct {
	OrderID string `json:"order_id"`
}

// NewRecomputeTask builds the asynq task for one order.
func NewRecomputeTask(orderID string) (*asynq.Task, error) {
	payload, err := json.Marshal(recomputePayload{OrderID: orderID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskRecompute, payload, asynq.MaxRetry(3), asynq.Timeout(2*time.Minute)), nil
}

// Enqueuer submits recompute tasks through an asynq client.
type Enqueuer struct {
	Client *asynq.Client
}

// EnqueueRecompute queues a rebuild for the given order.
func (e *Enqueuer) EnqueueRecompute(ctx context.Context, orderID string) error {
	task, err := NewRecomputeTask(orderID)
	if err != nil {
		return err
	}
	if _, err := e.Client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("enqueue %s: %w", TaskRecompute, err)
	}
	return nil
}

// Worker consumes recompute tasks. A per-order Redis lock keeps concurrent
// workers from rebuilding the same order at once.
type Worker struct {
	Svc     *Service
	Lock    lock.Locker
	LockTTL time.Duration
	Log     zerolog.Logger
}

// HandleRecompute processes one recompute task.
func (w *Worker) HandleRecompute(ctx context.Context, t *asynq.Task) error {
	var payload recomputePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("decode %s payload: %w: %w", TaskRecompute, err, asynq.SkipRetry)
	}
	if payload.OrderID == "" {
		return fmt.Errorf("%s: empty order id: %w", TaskRecompute, asynq.SkipRetry)
	}

	return w.Lock.WithLock(ctx, "invoice:recompute:"+payload.OrderID, w.LockTTL, func(ctx context.Context) error {
		res, err := w.Svc.Rebuild(ctx, payload.OrderID)
		if err != nil {
			return err
		}
		w.Log.Info().
			Str("order_id", payload.OrderID).
			Str("status", string(res.Status)).
			Int("attempts", res.Attempts).
			Msg("invoice recompute finished")
		return nil
	})
}
