package service

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/shift-roster/internal/config"
	"github.com/spec-kit/shift-roster/internal/events"
)

// Publisher fans a payload out on a named channel.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	publisher  Publisher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service. publisher may be nil, in which
// case broadcasts are only logged.
func NewNotificationService(dispatcher events.Dispatcher, publisher Publisher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		dispatcher: dispatcher,
		publisher:  publisher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventShiftCreated, n.handleShiftCreated)
	n.dispatcher.Subscribe(events.EventShiftStatusChanged, n.handleShiftStatusChanged)
	n.dispatcher.Subscribe(events.EventRequestCreated, n.handleRequestCreated)
	n.dispatcher.Subscribe(events.EventRequestResolved, n.handleRequestResolved)
	n.dispatcher.Subscribe(events.EventBroadcastSent, n.handleBroadcastSent)
}

func (n *NotificationService) handleShiftCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("ShiftCreated", zap.String("shift_id", event.ResourceID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleShiftStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("ShiftStatusChanged", zap.String("shift_id", event.ResourceID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleRequestCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("RequestCreated", zap.String("request_id", event.ResourceID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleRequestResolved(ctx context.Context, event events.Event) error {
	n.logger.Info("RequestResolved", zap.String("request_id", event.ResourceID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleBroadcastSent(ctx context.Context, event events.Event) error {
	n.logger.Info("BroadcastSent", zap.String("broadcast_id", event.ResourceID), zap.String("manager_id", event.Actor.UserID))
	if n.publisher == nil || strings.TrimSpace(n.cfg.BroadcastChannel) == "" {
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	// Fan-out is best effort; the broadcast row is already stored.
	if err := n.publisher.Publish(ctx, n.cfg.BroadcastChannel, payload); err != nil {
		n.logger.Warn("broadcast fan-out failed",
			zap.String("channel", n.cfg.BroadcastChannel),
			zap.String("broadcast_id", event.ResourceID),
			zap.Error(err))
	}
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("resource_id", event.ResourceID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("resource_id", event.ResourceID),
		zap.String("event_type", string(event.Type)))
}
