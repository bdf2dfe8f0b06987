package queue

import (
	"encoding/json"
	"fmt"

	"github.com/pianao-store/internal/constants"

	"github.com/hibiken/asynq"
)

// TaskOrderConfirmationEmail 下单确认邮件任务
const TaskOrderConfirmationEmail = constants.TaskOrderConfirmationEmail

// OrderConfirmationEmailPayload 下单确认邮件任务载荷
type OrderConfirmationEmailPayload struct {
	OrderID uint   `json:"order_id"`
	Locale  string `json:"locale,omitempty"`
}

// NewOrderConfirmationEmailTask 创建下单确认邮件任务
func NewOrderConfirmationEmailTask(payload OrderConfirmationEmailPayload) (*asynq.Task, error) {
	if payload.OrderID == 0 {
		return nil, fmt.Errorf("order id is required")
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderConfirmationEmail, body), nil
}

// ParseOrderConfirmationEmailPayload 解析任务载荷
func ParseOrderConfirmationEmailPayload(task *asynq.Task) (OrderConfirmationEmailPayload, error) {
	var payload OrderConfirmationEmailPayload
	if task == nil {
		return payload, fmt.Errorf("task is nil")
	}
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return payload, err
	}
	if payload.OrderID == 0 {
		return payload, fmt.Errorf("order id is required")
	}
	return payload, nil
}
