package service

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk/internal/domain"
)

type fakeUserRepo struct {
	mu      sync.Mutex
	users   map[string]*domain.User
	lookups map[string]string // email -> id
	failGet error
	creates int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:   make(map[string]*domain.User),
		lookups: make(map[string]string),
	}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user.CreatedAt = time.Now()
	copied := *user
	f.users[user.ID] = &copied
	f.lookups[user.Email] = user.ID
	f.creates++
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failGet != nil {
		return nil, f.failGet
	}
	user, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failGet != nil {
		return nil, f.failGet
	}
	id, ok := f.lookups[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *f.users[id]
	return &copied, nil
}

type fakeTicketRepo struct {
	mu       sync.Mutex
	tickets  map[int64]*domain.Ticket
	nextID   int64
	seq      int
	failList error
	failGet  error
	creates  int
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: make(map[int64]*domain.Ticket)}
}

func (f *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.seq++
	ticket.ID = f.nextID
	ticket.CreatedAt = time.Unix(1700000000, 0).Add(time.Duration(f.seq) * time.Second)
	copied := *ticket
	f.tickets[ticket.ID] = &copied
	f.creates++
	return nil
}

func (f *fakeTicketRepo) GetByID(_ context.Context, id int64) (*domain.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failGet != nil {
		return nil, f.failGet
	}
	ticket, ok := f.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *ticket
	return &copied, nil
}

func (f *fakeTicketRepo) ListByOwner(_ context.Context, userID string) ([]domain.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failList != nil {
		return nil, f.failList
	}
	var result []domain.Ticket
	for _, ticket := range f.tickets {
		if ticket.UserID == userID {
			result = append(result, *ticket)
		}
	}
	// newest first, matching the ORDER BY created_at DESC query
	for i := 0; i < len(result); i++ {
		for j := i + 1; j < len(result); j++ {
			if result[j].CreatedAt.After(result[i].CreatedAt) {
				result[i], result[j] = result[j], result[i]
			}
		}
	}
	return result, nil
}

func (f *fakeTicketRepo) UpdateStatus(_ context.Context, id int64, status domain.TicketStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	ticket, ok := f.tickets[id]
	if !ok {
		return pgx.ErrNoRows
	}
	ticket.Status = status
	return nil
}

type fakeListingCache struct {
	mu            sync.Mutex
	entries       map[string][]domain.Ticket
	invalidations map[string]int
}

func newFakeListingCache() *fakeListingCache {
	return &fakeListingCache{
		entries:       make(map[string][]domain.Ticket),
		invalidations: make(map[string]int),
	}
}

func (f *fakeListingCache) Get(_ context.Context, userID string) ([]domain.Ticket, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tickets, ok := f.entries[userID]
	return tickets, ok
}

func (f *fakeListingCache) Set(_ context.Context, userID string, tickets []domain.Ticket) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[userID] = tickets
}

func (f *fakeListingCache) Invalidate(_ context.Context, userID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, userID)
	f.invalidations[userID]++
}
