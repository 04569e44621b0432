package worker

import (
	"context"
	"encoding/json"

	"github.com/mediantar/mediantar/internal/constants"
	"github.com/mediantar/mediantar/internal/logger"
	"github.com/mediantar/mediantar/internal/provider"
	"github.com/mediantar/mediantar/internal/queue"
	"github.com/mediantar/mediantar/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer asynchronous task consumer
type Consumer struct {
	*provider.Container
}

// NewConsumer creates a consumer
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register registers task handlers
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskDeliveryStatusNotify, c.handleDeliveryStatusNotify)
}

// handleDeliveryStatusNotify renders the actor's message template for a
// status change and hands it to the dispatch log. Message gateways (SMS,
// WhatsApp) hook in here; without one the rendered text is logged.
func (c *Consumer) handleDeliveryStatusNotify(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_status_notify_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.DeliveryStatusNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_status_notify_unmarshal_failed", "error", err)
		return err
	}
	if payload.DeliveryID == 0 {
		logger.Debugw("worker_status_notify_skip_invalid_payload", "delivery_id", payload.DeliveryID)
		return nil
	}

	delivery, err := c.DeliveryRepo.GetByIDWithRelations(payload.DeliveryID)
	if err != nil {
		logger.Warnw("worker_status_notify_fetch_failed", "delivery_id", payload.DeliveryID, "error", err)
		return err
	}
	if delivery == nil || delivery.Customer == nil {
		logger.Debugw("worker_status_notify_skip_delivery_gone", "delivery_id", payload.DeliveryID)
		return nil
	}

	body := c.resolveTemplateBody(payload.ActorID)
	if body == "" {
		logger.Debugw("worker_status_notify_skip_no_template",
			"delivery_id", delivery.ID,
			"actor_id", payload.ActorID,
		)
		return nil
	}

	courierName := ""
	if delivery.Courier != nil {
		courierName = delivery.Courier.Name
	}
	message := service.ResolvePlaceholders(body, map[string]string{
		"name":     delivery.Customer.Name,
		"address":  delivery.Customer.Address,
		"order_no": delivery.OrderNo,
		"status":   payload.Status,
		"courier":  courierName,
	})

	logger.Infow("delivery_status_notification",
		"delivery_id", delivery.ID,
		"order_no", delivery.OrderNo,
		"status", payload.Status,
		"recipient_phone", delivery.Customer.Phone,
		"message", message,
	)
	return nil
}

// resolveTemplateBody picks the actor's customer-facing template. Admin
// actors use admin_to_customer, courier actors courier_to_customer.
func (c *Consumer) resolveTemplateBody(actorID uint) string {
	if actorID == 0 {
		return ""
	}
	actor, err := c.UserRepo.GetByID(actorID)
	if err != nil || actor == nil {
		return ""
	}
	templateType := constants.TemplateAdminToCustomer
	if actor.Role == constants.RoleCourier {
		templateType = constants.TemplateCourierToCustomer
	}
	template, err := c.TemplateRepo.GetByUserAndType(actor.ID, templateType)
	if err != nil || template == nil {
		return ""
	}
	return template.Body
}
