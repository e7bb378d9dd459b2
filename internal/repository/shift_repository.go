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

// ShiftFilter captures listing parameters. Date bounds are inclusive and
// either may be omitted for an open-ended range.
type ShiftFilter struct {
	DateFrom   *time.Time
	DateTo     *time.Time
	EmployeeID *string
	Status     *domain.ShiftStatus
}

// ShiftRepository encapsulates shift persistence.
type ShiftRepository interface {
	Create(ctx context.Context, shift *domain.Shift) error
	GetByID(ctx context.Context, id string) (*domain.Shift, error)
	UpdateStatus(ctx context.Context, id string, status domain.ShiftStatus) (*domain.Shift, error)
	List(ctx context.Context, filter ShiftFilter) ([]domain.Shift, error)
	Count(ctx context.Context, filter ShiftFilter) (int64, error)
}

const shiftColumns = `id, employee_id, shift_date, to_char(start_time, 'HH24:MI:SS'), to_char(end_time, 'HH24:MI:SS'),
               shift_type, location, notes, status, created_at, updated_at`

type shiftRepository struct {
	pool *pgxpool.Pool
}

// NewShiftRepository instantiates repository.
func NewShiftRepository(pool *pgxpool.Pool) ShiftRepository {
	return &shiftRepository{pool: pool}
}

func (r *shiftRepository) Create(ctx context.Context, shift *domain.Shift) error {
	const query = `
        INSERT INTO shifts (employee_id, shift_date, start_time, end_time, shift_type, location, notes, status)
        VALUES ($1,$2,$3::time,$4::time,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		shift.EmployeeID,
		shift.Date,
		shift.StartTime,
		shift.EndTime,
		shift.Type,
		shift.Location,
		shift.Notes,
		shift.Status,
	).Scan(&shift.ID, &shift.CreatedAt, &shift.UpdatedAt)
}

func (r *shiftRepository) GetByID(ctx context.Context, id string) (*domain.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE id=$1`
	return scanShift(r.pool.QueryRow(ctx, query, id))
}

// UpdateStatus overwrites the status unconditionally; concurrent writers race
// with last-write-wins semantics.
func (r *shiftRepository) UpdateStatus(ctx context.Context, id string, status domain.ShiftStatus) (*domain.Shift, error) {
	query := `UPDATE shifts SET status=$1, updated_at=NOW() WHERE id=$2 RETURNING ` + shiftColumns
	return scanShift(r.pool.QueryRow(ctx, query, status, id))
}

func (r *shiftRepository) List(ctx context.Context, filter ShiftFilter) ([]domain.Shift, error) {
	query, args := shiftListQuery(filter)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Shift
	for rows.Next() {
		shift, err := scanShift(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *shift)
	}
	return result, rows.Err()
}

func (r *shiftRepository) Count(ctx context.Context, filter ShiftFilter) (int64, error) {
	where, args := shiftWhere(filter)
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM shifts WHERE `+where, args...).Scan(&count)
	return count, err
}

func shiftListQuery(filter ShiftFilter) (string, []any) {
	where, args := shiftWhere(filter)
	return fmt.Sprintf(`SELECT %s FROM shifts WHERE %s ORDER BY shift_date ASC, start_time ASC, created_at ASC`,
		shiftColumns, where), args
}

func shiftWhere(filter ShiftFilter) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		clauses = append(clauses, fmt.Sprintf("shift_date >= $%d", len(args)))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		clauses = append(clauses, fmt.Sprintf("shift_date <= $%d", len(args)))
	}
	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		clauses = append(clauses, fmt.Sprintf("employee_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status = $%d", len(args)))
	}
	return strings.Join(clauses, " AND "), args
}

func scanShift(row pgx.Row) (*domain.Shift, error) {
	var shift domain.Shift
	if err := row.Scan(
		&shift.ID,
		&shift.EmployeeID,
		&shift.Date,
		&shift.StartTime,
		&shift.EndTime,
		&shift.Type,
		&shift.Location,
		&shift.Notes,
		&shift.Status,
		&shift.CreatedAt,
		&shift.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &shift, nil
}
