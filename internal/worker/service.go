package worker

import (
	"context"
	"errors"
	"time"

	"github.com/gearmart-next/internal/config"
	"github.com/gearmart-next/internal/logger"
	"github.com/gearmart-next/internal/queue"

	"github.com/hibiken/asynq"
)

const (
	warrantySweepHour     = 1 // 每日 01:00 执行保修过期扫描
	warrantySweepInterval = 24 * time.Hour
)

// Service 异步队列服务
type Service struct {
	name     string
	server   *asynq.Server
	mux      *asynq.ServeMux
	consumer *Consumer
}

// NewService 创建异步队列服务
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		name:     "worker",
		server:   server,
		mux:      mux,
		consumer: consumer,
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.consumer != nil && s.consumer.WarrantyService != nil {
		go s.runWarrantySweepLoop(ctx)
	}
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

func (s *Service) runWarrantySweepLoop(ctx context.Context) {
	if s == nil || s.consumer == nil || s.consumer.WarrantyService == nil {
		return
	}
	runOnce := func(now time.Time) {
		if _, err := s.consumer.WarrantyService.ExpireOverdue(now); err != nil {
			logger.Warnw("worker_warranty_sweep_tick_failed", "error", err)
		}
	}
	runOnce(time.Now())

	timer := time.NewTimer(untilNextSweep(time.Now()))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return
	case <-timer.C:
		runOnce(time.Now())
	}

	ticker := time.NewTicker(warrantySweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce(time.Now())
		}
	}
}

// untilNextSweep 计算距离下一个每日扫描时刻的等待时长
func untilNextSweep(now time.Time) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), warrantySweepHour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next.Sub(now)
}
