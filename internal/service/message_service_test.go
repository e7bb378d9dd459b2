package service

import (
	"context"
	"strings"
	"testing"

	"github.com/spec-kit/shift-roster/internal/events"
	apperrors "github.com/spec-kit/shift-roster/pkg/util/errorutil"
)

func TestMessageService_Broadcast(t *testing.T) {
	repo := &mockMessageRepo{}
	dispatcher := &recordingDispatcher{}
	svc := NewMessageService(repo, dispatcher)
	ctx := context.Background()

	msg, err := svc.Broadcast(ctx, managerActor(), "  Staff meeting at 9  ")
	if err != nil {
		t.Fatalf("Broadcast: %v", err)
	}
	if msg.ID == "" || msg.ManagerID != "mgr-1" || msg.Message != "Staff meeting at 9" {
		t.Errorf("unexpected broadcast: %+v", msg)
	}
	if got := dispatcher.types(); len(got) != 1 || got[0] != events.EventBroadcastSent {
		t.Errorf("events = %v", got)
	}

	if _, err := svc.Broadcast(ctx, employeeActor(), "hi"); !apperrors.IsCode(err, "FORBIDDEN") {
		t.Errorf("employee broadcast: expected FORBIDDEN, got %v", err)
	}
	if _, err := svc.Broadcast(ctx, managerActor(), "   "); !apperrors.IsCode(err, "VALIDATION_FAILED") {
		t.Errorf("empty broadcast: expected VALIDATION_FAILED, got %v", err)
	}
	if _, err := svc.Broadcast(ctx, managerActor(), strings.Repeat("x", maxBroadcastLength+1)); !apperrors.IsCode(err, "VALIDATION_FAILED") {
		t.Errorf("long broadcast: expected VALIDATION_FAILED, got %v", err)
	}
	if len(repo.messages) != 1 {
		t.Errorf("stored messages = %d, want 1", len(repo.messages))
	}
}

func TestMessageService_ListRecentClampsLimit(t *testing.T) {
	repo := &mockMessageRepo{}
	svc := NewMessageService(repo, nil)
	ctx := context.Background()
	for _, text := range []string{"one", "two"} {
		if _, err := svc.Broadcast(ctx, managerActor(), text); err != nil {
			t.Fatalf("Broadcast: %v", err)
		}
	}

	list, err := svc.ListRecent(ctx, 0)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if repo.lastLimit != defaultMessageLimit || len(list) != 2 || list[0].Message != "two" {
		t.Errorf("limit=%d list=%+v", repo.lastLimit, list)
	}

	if _, err := svc.ListRecent(ctx, 10_000); err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if repo.lastLimit != maxMessageLimit {
		t.Errorf("limit = %d, want %d", repo.lastLimit, maxMessageLimit)
	}
}
