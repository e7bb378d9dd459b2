package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/shift-roster/internal/domain"
)

// RequestFilter narrows request listings.
type RequestFilter struct {
	EmployeeID *string
	Status     *domain.RequestStatus
	Type       *domain.RequestType
}

// Resolution is the outcome written when a manager decides a request.
type Resolution struct {
	Status    domain.RequestStatus
	ManagerID string
	Notes     *string
}

// RequestRepository encapsulates swap/leave request persistence.
type RequestRepository interface {
	Create(ctx context.Context, req *domain.Request) error
	GetByID(ctx context.Context, id string) (*domain.Request, error)
	Resolve(ctx context.Context, id string, resolution Resolution) (*domain.Request, error)
	List(ctx context.Context, filter RequestFilter) ([]domain.Request, error)
	Count(ctx context.Context, filter RequestFilter) (int64, error)
}

const requestColumns = `id, employee_id, request_type, status, reason, manager_id, manager_notes,
               target_employee_id, my_shift_date, target_shift_date, start_date, end_date, leave_type,
               created_at, updated_at`

type requestRepository struct {
	pool *pgxpool.Pool
}

// NewRequestRepository instantiates repository.
func NewRequestRepository(pool *pgxpool.Pool) RequestRepository {
	return &requestRepository{pool: pool}
}

func (r *requestRepository) Create(ctx context.Context, req *domain.Request) error {
	const query = `
        INSERT INTO requests (employee_id, request_type, status, reason,
            target_employee_id, my_shift_date, target_shift_date, start_date, end_date, leave_type)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, created_at, updated_at`

	var (
		targetEmployee       *string
		myShift, targetShift *time.Time
		startDate, endDate   *time.Time
		leaveType            *string
	)
	if req.Swap != nil {
		targetEmployee = &req.Swap.TargetEmployeeID
		myShift = &req.Swap.MyShiftDate
		targetShift = &req.Swap.TargetShiftDate
	}
	if req.Leave != nil {
		startDate = &req.Leave.StartDate
		endDate = &req.Leave.EndDate
		leaveType = &req.Leave.LeaveType
	}

	return r.pool.QueryRow(ctx, query,
		req.EmployeeID,
		req.Type,
		req.Status,
		req.Reason,
		targetEmployee,
		myShift,
		targetShift,
		startDate,
		endDate,
		leaveType,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
}

func (r *requestRepository) GetByID(ctx context.Context, id string) (*domain.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE id=$1`
	return scanRequest(r.pool.QueryRow(ctx, query, id))
}

// Resolve overwrites status and resolver without checking the current state.
func (r *requestRepository) Resolve(ctx context.Context, id string, resolution Resolution) (*domain.Request, error) {
	query := `
        UPDATE requests SET status=$1, manager_id=$2, manager_notes=COALESCE($3, manager_notes), updated_at=NOW()
        WHERE id=$4
        RETURNING ` + requestColumns
	return scanRequest(r.pool.QueryRow(ctx, query,
		resolution.Status,
		resolution.ManagerID,
		resolution.Notes,
		id,
	))
}

func (r *requestRepository) List(ctx context.Context, filter RequestFilter) ([]domain.Request, error) {
	query, args := requestListQuery(filter)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *req)
	}
	return result, rows.Err()
}

func (r *requestRepository) Count(ctx context.Context, filter RequestFilter) (int64, error) {
	where, args := requestWhere(filter)
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM requests WHERE `+where, args...).Scan(&count)
	return count, err
}

// requestListQuery orders newest first.
func requestListQuery(filter RequestFilter) (string, []any) {
	where, args := requestWhere(filter)
	return fmt.Sprintf(`SELECT %s FROM requests WHERE %s ORDER BY created_at DESC`, requestColumns, where), args
}

func requestWhere(filter RequestFilter) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		clauses = append(clauses, fmt.Sprintf("employee_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Type != nil {
		args = append(args, *filter.Type)
		clauses = append(clauses, fmt.Sprintf("request_type = $%d", len(args)))
	}
	return strings.Join(clauses, " AND "), args
}

func scanRequest(row pgx.Row) (*domain.Request, error) {
	var (
		req                  domain.Request
		targetEmployee       *string
		myShift, targetShift *time.Time
		startDate, endDate   *time.Time
		leaveType            *string
	)
	if err := row.Scan(
		&req.ID,
		&req.EmployeeID,
		&req.Type,
		&req.Status,
		&req.Reason,
		&req.ManagerID,
		&req.ManagerNotes,
		&targetEmployee,
		&myShift,
		&targetShift,
		&startDate,
		&endDate,
		&leaveType,
		&req.CreatedAt,
		&req.UpdatedAt,
	); err != nil {
		return nil, err
	}

	switch req.Type {
	case domain.RequestTypeSwap:
		swap := &domain.SwapDetails{}
		if targetEmployee != nil {
			swap.TargetEmployeeID = *targetEmployee
		}
		if myShift != nil {
			swap.MyShiftDate = *myShift
		}
		if targetShift != nil {
			swap.TargetShiftDate = *targetShift
		}
		req.Swap = swap
	case domain.RequestTypeLeave:
		leave := &domain.LeaveDetails{}
		if startDate != nil {
			leave.StartDate = *startDate
		}
		if endDate != nil {
			leave.EndDate = *endDate
		}
		if leaveType != nil {
			leave.LeaveType = *leaveType
		}
		req.Leave = leave
	}
	return &req, nil
}
