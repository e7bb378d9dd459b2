package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/shift-roster/internal/domain"
)

// MessageRepository persists manager broadcasts.
type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Broadcast) error
	ListRecent(ctx context.Context, limit int) ([]domain.Broadcast, error)
}

type messageRepository struct {
	pool *pgxpool.Pool
}

// NewMessageRepository builds repository.
func NewMessageRepository(pool *pgxpool.Pool) MessageRepository {
	return &messageRepository{pool: pool}
}

func (r *messageRepository) Create(ctx context.Context, msg *domain.Broadcast) error {
	const query = `
        INSERT INTO broadcasts (manager_id, message)
        VALUES ($1,$2)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query, msg.ManagerID, msg.Message).Scan(&msg.ID, &msg.CreatedAt)
}

func (r *messageRepository) ListRecent(ctx context.Context, limit int) ([]domain.Broadcast, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `
        SELECT id, manager_id, message, created_at
        FROM broadcasts ORDER BY created_at DESC LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Broadcast
	for rows.Next() {
		var msg domain.Broadcast
		if err := rows.Scan(&msg.ID, &msg.ManagerID, &msg.Message, &msg.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, msg)
	}
	return result, rows.Err()
}
