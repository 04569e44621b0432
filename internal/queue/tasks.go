package queue

import (
	"encoding/json"

	"github.com/mediantar/mediantar/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskDeliveryStatusNotify delivery status notification task
	TaskDeliveryStatusNotify = constants.TaskDeliveryStatusNotify
)

// DeliveryStatusNotifyPayload delivery status notification payload
type DeliveryStatusNotifyPayload struct {
	DeliveryID uint   `json:"delivery_id"`
	Status     string `json:"status"`
	ActorID    uint   `json:"actor_id"` // account that triggered the transition
}

// NewDeliveryStatusNotifyTask builds the notification task
func NewDeliveryStatusNotifyTask(payload DeliveryStatusNotifyPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDeliveryStatusNotify, data), nil
}
