package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

const serviceColumns = `id, requester_name, ticket_id, service_area, support_id, status, notes,
               created_at, updated_at, deleted_at`

// ServiceRepository encapsulates service persistence. Soft-deleted rows are
// invisible to every method except Restore and GetByIDIncludeDeleted.
type ServiceRepository interface {
	Create(ctx context.Context, service *domain.Service) error
	Update(ctx context.Context, service *domain.Service) error
	GetByID(ctx context.Context, id string) (*domain.Service, error)
	GetByIDIncludeDeleted(ctx context.Context, id string) (*domain.Service, error)
	List(ctx context.Context) ([]domain.Service, error)
	ListBySupport(ctx context.Context, supportID string) ([]domain.Service, error)
	ListByTicket(ctx context.Context, ticketID string) ([]domain.Service, error)
	ListUnassigned(ctx context.Context) ([]domain.Service, error)
	ListByStatus(ctx context.Context, complete bool) ([]domain.Service, error)
	ListAreas(ctx context.Context) ([]string, error)
	ListServiceTypes(ctx context.Context) ([]string, error)
	AssignSupport(ctx context.Context, serviceID, supportID string) error
	Complete(ctx context.Context, serviceID, supportID string, status bool, notes string) error
	SoftDelete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
}

type serviceRepository struct {
	db Querier
}

// NewServiceRepository instantiates repository.
func NewServiceRepository(db Querier) ServiceRepository {
	return &serviceRepository{db: db}
}

func (r *serviceRepository) Create(ctx context.Context, service *domain.Service) error {
	const query = `
        INSERT INTO services (requester_name, ticket_id, service_area, support_id, status, notes)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		service.RequesterName,
		service.TicketID,
		service.ServiceArea,
		service.SupportID,
		service.Status,
		service.Notes,
	).Scan(&service.ID, &service.CreatedAt, &service.UpdatedAt)
}

func (r *serviceRepository) Update(ctx context.Context, service *domain.Service) error {
	const query = `
        UPDATE services SET requester_name=$1, ticket_id=$2, service_area=$3, support_id=$4,
            updated_at=NOW()
        WHERE id=$5 AND deleted_at IS NULL`
	cmd, err := r.db.Exec(ctx, query,
		service.RequesterName,
		service.TicketID,
		service.ServiceArea,
		service.SupportID,
		service.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *serviceRepository) GetByID(ctx context.Context, id string) (*domain.Service, error) {
	const query = `
        SELECT ` + serviceColumns + `
        FROM services WHERE id=$1 AND deleted_at IS NULL`
	return r.fetchSingle(ctx, query, id)
}

func (r *serviceRepository) GetByIDIncludeDeleted(ctx context.Context, id string) (*domain.Service, error) {
	const query = `
        SELECT ` + serviceColumns + `
        FROM services WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *serviceRepository) List(ctx context.Context) ([]domain.Service, error) {
	return r.list(ctx, `SELECT `+serviceColumns+`
        FROM services WHERE deleted_at IS NULL ORDER BY created_at`)
}

func (r *serviceRepository) ListBySupport(ctx context.Context, supportID string) ([]domain.Service, error) {
	return r.list(ctx, `SELECT `+serviceColumns+`
        FROM services WHERE support_id=$1 AND deleted_at IS NULL ORDER BY created_at`, supportID)
}

func (r *serviceRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.Service, error) {
	return r.list(ctx, `SELECT `+serviceColumns+`
        FROM services WHERE ticket_id=$1 AND deleted_at IS NULL ORDER BY created_at`, ticketID)
}

func (r *serviceRepository) ListUnassigned(ctx context.Context) ([]domain.Service, error) {
	return r.list(ctx, `SELECT `+serviceColumns+`
        FROM services WHERE support_id IS NULL AND deleted_at IS NULL ORDER BY created_at`)
}

func (r *serviceRepository) ListByStatus(ctx context.Context, complete bool) ([]domain.Service, error) {
	return r.list(ctx, `SELECT `+serviceColumns+`
        FROM services WHERE status=$1 AND deleted_at IS NULL ORDER BY created_at`, complete)
}

// ListAreas projects the service_area column over all live rows. Duplicates
// are retained: the listing mirrors the rows, not the distinct label set.
func (r *serviceRepository) ListAreas(ctx context.Context) ([]string, error) {
	return r.listStrings(ctx, `SELECT service_area FROM services WHERE deleted_at IS NULL ORDER BY created_at`)
}

// ListServiceTypes projects the notes column over all live rows, duplicates
// retained.
func (r *serviceRepository) ListServiceTypes(ctx context.Context) ([]string, error) {
	return r.listStrings(ctx, `SELECT notes FROM services WHERE deleted_at IS NULL ORDER BY created_at`)
}

// AssignSupport sets the analyst on a service only while it is unassigned.
// The conditional update is the whole claim operation, so two racing analysts
// cannot both win; the loser sees zero rows and gets pgx.ErrNoRows.
func (r *serviceRepository) AssignSupport(ctx context.Context, serviceID, supportID string) error {
	const query = `
        UPDATE services SET support_id=$2, updated_at=NOW()
        WHERE id=$1 AND support_id IS NULL AND deleted_at IS NULL`
	cmd, err := r.db.Exec(ctx, query, serviceID, supportID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Complete records the outcome of a service. The update matches on the
// assigned analyst so only the current assignee can close it.
func (r *serviceRepository) Complete(ctx context.Context, serviceID, supportID string, status bool, notes string) error {
	const query = `
        UPDATE services SET status=$3, notes=$4, updated_at=NOW()
        WHERE id=$1 AND support_id=$2 AND deleted_at IS NULL`
	cmd, err := r.db.Exec(ctx, query, serviceID, supportID, status, notes)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *serviceRepository) SoftDelete(ctx context.Context, id string) error {
	const query = `
        UPDATE services SET deleted_at=NOW(), updated_at=NOW()
        WHERE id=$1 AND deleted_at IS NULL`
	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Restore clears the soft-delete marker regardless of current delete state.
func (r *serviceRepository) Restore(ctx context.Context, id string) error {
	const query = `
        UPDATE services SET deleted_at=NULL, updated_at=NOW()
        WHERE id=$1`
	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *serviceRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Service, error) {
	var service domain.Service
	if err := r.db.QueryRow(ctx, query, arg).Scan(
		&service.ID,
		&service.RequesterName,
		&service.TicketID,
		&service.ServiceArea,
		&service.SupportID,
		&service.Status,
		&service.Notes,
		&service.CreatedAt,
		&service.UpdatedAt,
		&service.DeletedAt,
	); err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *serviceRepository) list(ctx context.Context, query string, args ...any) ([]domain.Service, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanServices(rows)
}

func (r *serviceRepository) listStrings(ctx context.Context, query string) ([]string, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, err
		}
		result = append(result, value)
	}
	return result, rows.Err()
}

func scanServices(rows pgx.Rows) ([]domain.Service, error) {
	var result []domain.Service
	for rows.Next() {
		var service domain.Service
		if err := rows.Scan(
			&service.ID,
			&service.RequesterName,
			&service.TicketID,
			&service.ServiceArea,
			&service.SupportID,
			&service.Status,
			&service.Notes,
			&service.CreatedAt,
			&service.UpdatedAt,
			&service.DeletedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, service)
	}
	return result, rows.Err()
}
