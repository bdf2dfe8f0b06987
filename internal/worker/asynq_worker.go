package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/pianao-store/internal/logger"
	"github.com/pianao-store/internal/provider"
	"github.com/pianao-store/internal/queue"
	"github.com/pianao-store/internal/service"

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
	mux.HandleFunc(queue.TaskOrderConfirmationEmail, c.handleOrderConfirmationEmail)
}

func (c *Consumer) handleOrderConfirmationEmail(ctx context.Context, task *asynq.Task) error {
	if c == nil || c.Container == nil || c.OrderService == nil || task == nil {
		logger.Debugw("worker_order_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseOrderConfirmationEmailPayload(task)
	if err != nil {
		logger.Warnw("worker_order_email_invalid_payload", "error", err)
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	err = c.OrderService.SendConfirmationEmail(ctx, payload.OrderID, payload.Locale)
	switch {
	case err == nil:
		logger.Infow("worker_order_email_sent", "order_id", payload.OrderID)
		return nil
	case isPermanentEmailError(err):
		// 配置缺失或收件人被拒，重试无意义
		logger.Warnw("worker_order_email_dropped", "order_id", payload.OrderID, "error", err)
		return nil
	default:
		logger.Warnw("worker_order_email_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
}

func isPermanentEmailError(err error) bool {
	return errors.Is(err, service.ErrOrderNotFound) ||
		errors.Is(err, service.ErrEmailServiceDisabled) ||
		errors.Is(err, service.ErrEmailServiceNotConfigured) ||
		errors.Is(err, service.ErrEmailRecipientRejected) ||
		errors.Is(err, service.ErrEmailRequestInvalid) ||
		errors.Is(err, service.ErrInvalidEmail)
}
