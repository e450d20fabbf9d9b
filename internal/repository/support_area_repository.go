package repository

import (
	"context"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// SupportAreaRepository persists support analyst area registrations.
type SupportAreaRepository interface {
	Create(ctx context.Context, area *domain.SupportArea) error
	ListByUser(ctx context.Context, userID string) ([]domain.SupportArea, error)
}

type supportAreaRepository struct {
	db Querier
}

// NewSupportAreaRepository returns a Postgres-backed implementation.
func NewSupportAreaRepository(db Querier) SupportAreaRepository {
	return &supportAreaRepository{db: db}
}

func (r *supportAreaRepository) Create(ctx context.Context, area *domain.SupportArea) error {
	const query = `
        INSERT INTO support_areas (user_id, service_area)
        VALUES ($1, $2)
        RETURNING id, created_at`

	return r.db.QueryRow(ctx, query,
		area.UserID,
		area.ServiceArea,
	).Scan(&area.ID, &area.CreatedAt)
}

func (r *supportAreaRepository) ListByUser(ctx context.Context, userID string) ([]domain.SupportArea, error) {
	const query = `
        SELECT id, user_id, service_area, created_at
        FROM support_areas WHERE user_id=$1 ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.SupportArea
	for rows.Next() {
		var area domain.SupportArea
		if err := rows.Scan(&area.ID, &area.UserID, &area.ServiceArea, &area.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, area)
	}
	return result, rows.Err()
}
