package worker

import (
	"context"
	"errors"
	"time"

	"github.com/handmade-next/internal/config"
	"github.com/handmade-next/internal/constants"
	"github.com/handmade-next/internal/logger"
	"github.com/handmade-next/internal/queue"

	"github.com/hibiken/asynq"
)

const defaultExpiredScanInterval = time.Minute

// Service 异步队列服务
type Service struct {
	name         string
	server       *asynq.Server
	mux          *asynq.ServeMux
	consumer     *Consumer
	scanInterval time.Duration
}

// NewService 创建异步队列服务；队列未启用时仅运行超时订单扫描
func NewService(cfg *config.Config, consumer *Consumer) (*Service, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	interval := time.Duration(cfg.Order.ExpiredScanSeconds) * time.Second
	if interval <= 0 {
		interval = defaultExpiredScanInterval
	}
	svc := &Service{
		name:         "worker",
		consumer:     consumer,
		scanInterval: interval,
	}
	if !cfg.Queue.Enabled {
		svc.name = "order_scanner"
		return svc, nil
	}

	opt, serverCfg := queue.BuildServerConfig(&cfg.Queue)
	svc.server = asynq.NewServer(opt, serverCfg)
	svc.mux = asynq.NewServeMux()
	consumer.Register(svc.mux)
	return svc, nil
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
	if s == nil || s.consumer == nil {
		return errors.New("worker not initialized")
	}
	if s.server == nil {
		if s.consumer.OrderService != nil {
			s.runExpiredOrderLoop(ctx)
		}
		return nil
	}
	if s.consumer.OrderService != nil {
		go s.runExpiredOrderLoop(ctx)
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

// runExpiredOrderLoop 定期扫描超时未支付订单，补偿丢失的延时任务
func (s *Service) runExpiredOrderLoop(ctx context.Context) {
	runOnce := func() {
		canceled, err := s.consumer.OrderService.CancelExpiredOrders(constants.OrderExpiredScanBatchSize)
		if err != nil {
			logger.Warnw("worker_expired_order_scan_failed", "error", err)
			return
		}
		if canceled > 0 {
			logger.Infow("worker_expired_order_scan_canceled", "count", canceled)
		}
	}
	runOnce()

	ticker := time.NewTicker(s.scanInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}
