package service

import (
	"context"
	"math/rand"
	"testing"

	"github.com/spec-kit/shift-roster/internal/domain"
	apperrors "github.com/spec-kit/shift-roster/pkg/util/errorutil"
)

func TestRosterService_Generate(t *testing.T) {
	svc := NewRosterService(seedUsers(), rand.New(rand.NewSource(7)))

	draft, err := svc.Generate(context.Background(), managerActor(), RosterInput{
		StartDate:        "2024-03-01",
		EndDate:          "2024-03-03",
		MinStaffRequired: 2,
		Constraints:      map[string]any{"max_hours": 40, " ": "dropped"},
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if draft.ID == "" || draft.ManagerID != "mgr-1" || draft.Status != rosterStatusPending {
		t.Errorf("unexpected draft header: %+v", draft)
	}
	if len(draft.Shifts) != 6 {
		t.Fatalf("shifts = %d, want 6", len(draft.Shifts))
	}
	if _, ok := draft.Constraints[" "]; ok || draft.Constraints["max_hours"] != 40 {
		t.Errorf("constraints = %v", draft.Constraints)
	}

	perDay := map[string]map[string]bool{}
	for _, s := range draft.Shifts {
		day := s.Date.Format(domain.DateLayout)
		if perDay[day] == nil {
			perDay[day] = map[string]bool{}
		}
		if perDay[day][s.EmployeeID] {
			t.Errorf("employee %s drafted twice on %s", s.EmployeeID, day)
		}
		perDay[day][s.EmployeeID] = true
		if s.StartTime != draftStartTime || s.EndTime != draftEndTime || s.Type != domain.ShiftTypeMorning {
			t.Errorf("unexpected shift template: %+v", s)
		}
		if s.Location == nil || *s.Location != draftLocation {
			t.Errorf("location = %v", s.Location)
		}
		if s.Employee == nil || s.Employee.Role != domain.RoleEmployee {
			t.Errorf("drafted non-employee: %+v", s.Employee)
		}
	}
	if len(perDay) != 3 {
		t.Errorf("days covered = %d, want 3", len(perDay))
	}
}

func TestRosterService_GenerateRejections(t *testing.T) {
	svc := NewRosterService(seedUsers(), rand.New(rand.NewSource(1)))
	ctx := context.Background()
	valid := RosterInput{StartDate: "2024-03-01", EndDate: "2024-03-02", MinStaffRequired: 1}

	if _, err := svc.Generate(ctx, employeeActor(), valid); !apperrors.IsCode(err, "FORBIDDEN") {
		t.Errorf("employee generate: expected FORBIDDEN, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*RosterInput)
	}{
		{"end before start", func(in *RosterInput) { in.EndDate = "2024-02-01" }},
		{"zero staff", func(in *RosterInput) { in.MinStaffRequired = 0 }},
		{"not enough employees", func(in *RosterInput) { in.MinStaffRequired = 3 }},
		{"range too long", func(in *RosterInput) { in.EndDate = "2025-03-01" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := valid
			tc.mutate(&input)
			if _, err := svc.Generate(ctx, managerActor(), input); !apperrors.IsCode(err, "VALIDATION_FAILED") {
				t.Errorf("expected VALIDATION_FAILED, got %v", err)
			}
		})
	}
}
