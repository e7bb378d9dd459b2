package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/spec-kit/shift-roster/internal/auth"
	"github.com/spec-kit/shift-roster/internal/domain"
	"github.com/spec-kit/shift-roster/internal/events"
	"github.com/spec-kit/shift-roster/internal/repository"
	apperrors "github.com/spec-kit/shift-roster/pkg/util/errorutil"
)

const (
	maxBroadcastLength  = 2000
	defaultMessageLimit = 50
	maxMessageLimit     = 200
)

// MessageService stores manager broadcasts.
type MessageService struct {
	messages   repository.MessageRepository
	dispatcher events.Dispatcher
}

// NewMessageService constructs the service.
func NewMessageService(messages repository.MessageRepository, dispatcher events.Dispatcher) *MessageService {
	return &MessageService{messages: messages, dispatcher: dispatcher}
}

// Broadcast records a message from a manager to every employee.
func (s *MessageService) Broadcast(ctx context.Context, actor auth.Actor, text string) (*domain.Broadcast, error) {
	if err := auth.Authorize(actor, auth.OpBroadcast, ""); err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.NewValidationError("message required", nil)
	}
	if utf8.RuneCountInString(text) > maxBroadcastLength {
		return nil, apperrors.NewValidationError("message too long", map[string]any{"max_length": maxBroadcastLength})
	}

	msg := &domain.Broadcast{ManagerID: actor.ID, Message: text}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, apperrors.MapError(err)
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:       events.EventBroadcastSent,
		ResourceID: msg.ID,
		Actor:      eventActor(actor),
		Payload:    events.BroadcastSentPayload{Message: msg.Message},
	})
	return msg, nil
}

// ListRecent returns the newest broadcasts first.
func (s *MessageService) ListRecent(ctx context.Context, limit int) ([]domain.Broadcast, error) {
	switch {
	case limit <= 0:
		limit = defaultMessageLimit
	case limit > maxMessageLimit:
		limit = maxMessageLimit
	}
	msgs, err := s.messages.ListRecent(ctx, limit)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return msgs, nil
}
