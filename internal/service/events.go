package service

import (
	"context"

	"github.com/spec-kit/shift-roster/internal/auth"
	"github.com/spec-kit/shift-roster/internal/events"
)

func publishEvent(ctx context.Context, dispatcher events.Dispatcher, event events.Event) {
	if dispatcher == nil {
		return
	}
	_ = dispatcher.Publish(ctx, event)
}

func eventActor(actor auth.Actor) events.Actor {
	return events.Actor{UserID: actor.ID, Role: actor.Role}
}
