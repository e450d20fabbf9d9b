package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// In-memory repository fakes. They mirror the SQL contracts: pgx.ErrNoRows
// for zero-row updates, soft-deleted rows invisible everywhere except
// Restore, and AssignSupport claiming only unassigned rows.

type fakeTicketRepo struct {
	seq     int
	tickets map[string]*domain.Ticket
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: make(map[string]*domain.Ticket)}
}

func (r *fakeTicketRepo) nextID() string {
	r.seq++
	return fmt.Sprintf("ticket-%d", r.seq)
}

func (r *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	ticket.ID = r.nextID()
	ticket.CreatedAt = time.Now()
	ticket.UpdatedAt = ticket.CreatedAt
	clone := *ticket
	r.tickets[ticket.ID] = &clone
	return nil
}

func (r *fakeTicketRepo) Update(_ context.Context, ticket *domain.Ticket) error {
	stored, ok := r.tickets[ticket.ID]
	if !ok || stored.Deleted() {
		return pgx.ErrNoRows
	}
	stored.Name = ticket.Name
	stored.Client = ticket.Client
	stored.OccupationArea = ticket.OccupationArea
	stored.UpdatedAt = time.Now()
	return nil
}

func (r *fakeTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	stored, ok := r.tickets[id]
	if !ok || stored.Deleted() {
		return nil, pgx.ErrNoRows
	}
	clone := *stored
	return &clone, nil
}

func (r *fakeTicketRepo) GetByIDIncludeDeleted(_ context.Context, id string) (*domain.Ticket, error) {
	stored, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *stored
	return &clone, nil
}

func (r *fakeTicketRepo) List(_ context.Context) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for _, id := range sortedKeys(r.tickets) {
		if r.tickets[id].Deleted() {
			continue
		}
		result = append(result, *r.tickets[id])
	}
	return result, nil
}

func (r *fakeTicketRepo) SoftDelete(_ context.Context, id string) error {
	stored, ok := r.tickets[id]
	if !ok || stored.Deleted() {
		return pgx.ErrNoRows
	}
	now := time.Now()
	stored.DeletedAt = &now
	return nil
}

func (r *fakeTicketRepo) Restore(_ context.Context, id string) error {
	stored, ok := r.tickets[id]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.DeletedAt = nil
	return nil
}

type fakeServiceRepo struct {
	seq      int
	services map[string]*domain.Service
}

func newFakeServiceRepo() *fakeServiceRepo {
	return &fakeServiceRepo{services: make(map[string]*domain.Service)}
}

func (r *fakeServiceRepo) nextID() string {
	r.seq++
	return fmt.Sprintf("service-%d", r.seq)
}

func (r *fakeServiceRepo) Create(_ context.Context, service *domain.Service) error {
	service.ID = r.nextID()
	service.CreatedAt = time.Now()
	service.UpdatedAt = service.CreatedAt
	clone := *service
	r.services[service.ID] = &clone
	return nil
}

func (r *fakeServiceRepo) Update(_ context.Context, service *domain.Service) error {
	stored, ok := r.services[service.ID]
	if !ok || stored.Deleted() {
		return pgx.ErrNoRows
	}
	stored.RequesterName = service.RequesterName
	stored.TicketID = service.TicketID
	stored.ServiceArea = service.ServiceArea
	stored.SupportID = service.SupportID
	stored.UpdatedAt = time.Now()
	return nil
}

func (r *fakeServiceRepo) GetByID(_ context.Context, id string) (*domain.Service, error) {
	stored, ok := r.services[id]
	if !ok || stored.Deleted() {
		return nil, pgx.ErrNoRows
	}
	clone := *stored
	return &clone, nil
}

func (r *fakeServiceRepo) GetByIDIncludeDeleted(_ context.Context, id string) (*domain.Service, error) {
	stored, ok := r.services[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *stored
	return &clone, nil
}

func (r *fakeServiceRepo) live() []*domain.Service {
	var result []*domain.Service
	for _, id := range sortedKeys(r.services) {
		if r.services[id].Deleted() {
			continue
		}
		result = append(result, r.services[id])
	}
	return result
}

func (r *fakeServiceRepo) List(_ context.Context) ([]domain.Service, error) {
	var result []domain.Service
	for _, service := range r.live() {
		result = append(result, *service)
	}
	return result, nil
}

func (r *fakeServiceRepo) ListBySupport(_ context.Context, supportID string) ([]domain.Service, error) {
	var result []domain.Service
	for _, service := range r.live() {
		if service.SupportID != nil && *service.SupportID == supportID {
			result = append(result, *service)
		}
	}
	return result, nil
}

func (r *fakeServiceRepo) ListByTicket(_ context.Context, ticketID string) ([]domain.Service, error) {
	var result []domain.Service
	for _, service := range r.live() {
		if service.TicketID == ticketID {
			result = append(result, *service)
		}
	}
	return result, nil
}

func (r *fakeServiceRepo) ListUnassigned(_ context.Context) ([]domain.Service, error) {
	var result []domain.Service
	for _, service := range r.live() {
		if service.SupportID == nil {
			result = append(result, *service)
		}
	}
	return result, nil
}

func (r *fakeServiceRepo) ListByStatus(_ context.Context, complete bool) ([]domain.Service, error) {
	var result []domain.Service
	for _, service := range r.live() {
		if service.Status == complete {
			result = append(result, *service)
		}
	}
	return result, nil
}

func (r *fakeServiceRepo) ListAreas(_ context.Context) ([]string, error) {
	var result []string
	for _, service := range r.live() {
		result = append(result, service.ServiceArea)
	}
	return result, nil
}

func (r *fakeServiceRepo) ListServiceTypes(_ context.Context) ([]string, error) {
	var result []string
	for _, service := range r.live() {
		result = append(result, service.Notes)
	}
	return result, nil
}

func (r *fakeServiceRepo) hasOpenAssigned(supportID string) bool {
	for _, service := range r.live() {
		if service.SupportID != nil && *service.SupportID == supportID && !service.Status {
			return true
		}
	}
	return false
}

func (r *fakeServiceRepo) AssignSupport(_ context.Context, serviceID, supportID string) error {
	stored, ok := r.services[serviceID]
	if !ok || stored.Deleted() || stored.SupportID != nil {
		return pgx.ErrNoRows
	}
	id := supportID
	stored.SupportID = &id
	stored.UpdatedAt = time.Now()
	return nil
}

func (r *fakeServiceRepo) Complete(_ context.Context, serviceID, supportID string, status bool, notes string) error {
	stored, ok := r.services[serviceID]
	if !ok || stored.Deleted() || stored.SupportID == nil || *stored.SupportID != supportID {
		return pgx.ErrNoRows
	}
	stored.Status = status
	stored.Notes = notes
	stored.UpdatedAt = time.Now()
	return nil
}

func (r *fakeServiceRepo) SoftDelete(_ context.Context, id string) error {
	stored, ok := r.services[id]
	if !ok || stored.Deleted() {
		return pgx.ErrNoRows
	}
	now := time.Now()
	stored.DeletedAt = &now
	return nil
}

func (r *fakeServiceRepo) Restore(_ context.Context, id string) error {
	stored, ok := r.services[id]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.DeletedAt = nil
	return nil
}

type fakeUserRepo struct {
	seq      int
	users    map[string]*domain.User
	services *fakeServiceRepo
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.seq++
	user.ID = fmt.Sprintf("user-%d", r.seq)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	stored, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *stored
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, id := range sortedKeys(r.users) {
		if r.users[id].Email == email {
			clone := *r.users[id]
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) ListByRole(_ context.Context, role domain.Role) ([]domain.User, error) {
	var result []domain.User
	for _, id := range sortedKeys(r.users) {
		if r.users[id].Role == role {
			result = append(result, *r.users[id])
		}
	}
	return result, nil
}

// ListAvailableSupport mirrors the NOT EXISTS predicate: support analysts
// with no live, incomplete assigned service.
func (r *fakeUserRepo) ListAvailableSupport(_ context.Context) ([]domain.User, error) {
	var result []domain.User
	for _, id := range sortedKeys(r.users) {
		user := r.users[id]
		if user.Role != domain.RoleSupport {
			continue
		}
		if r.services != nil && r.services.hasOpenAssigned(user.ID) {
			continue
		}
		result = append(result, *user)
	}
	return result, nil
}

type fakeAreaRepo struct {
	seq   int
	areas []domain.SupportArea
}

func (r *fakeAreaRepo) Create(_ context.Context, area *domain.SupportArea) error {
	r.seq++
	area.ID = fmt.Sprintf("area-%d", r.seq)
	area.CreatedAt = time.Now()
	r.areas = append(r.areas, *area)
	return nil
}

func (r *fakeAreaRepo) ListByUser(_ context.Context, userID string) ([]domain.SupportArea, error) {
	var result []domain.SupportArea
	for _, area := range r.areas {
		if area.UserID == userID {
			result = append(result, area)
		}
	}
	return result, nil
}

type fakeBlacklist struct {
	revoked map[string]time.Duration
}

func newFakeBlacklist() *fakeBlacklist {
	return &fakeBlacklist{revoked: make(map[string]time.Duration)}
}

func (b *fakeBlacklist) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if ttl > 0 {
		b.revoked[jti] = ttl
	}
	return nil
}

func (b *fakeBlacklist) IsRevoked(_ context.Context, jti string) (bool, error) {
	_, ok := b.revoked[jti]
	return ok, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func strPtr(v string) *string {
	return &v
}
