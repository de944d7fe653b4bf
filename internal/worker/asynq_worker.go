package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gearmart-next/internal/logger"
	"github.com/gearmart-next/internal/provider"
	"github.com/gearmart-next/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskWarrantySweep, c.handleWarrantySweep)
}

func (c *Consumer) handleWarrantySweep(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_warranty_sweep_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.WarrantySweepPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_warranty_sweep_unmarshal_failed", "error", err)
		return err
	}
	if c.WarrantyService == nil {
		logger.Warnw("worker_warranty_sweep_skip_warranty_service_nil")
		return nil
	}
	before := payload.Before
	if before.IsZero() {
		before = time.Now()
	}
	expired, err := c.WarrantyService.ExpireOverdue(before)
	if err != nil {
		logger.Warnw("worker_warranty_sweep_failed", "before", before, "error", err)
		return err
	}
	logger.Infow("worker_warranty_sweep_done", "before", before, "expired", expired)
	return nil
}
