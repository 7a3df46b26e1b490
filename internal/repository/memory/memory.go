// Package memory provides in-memory implementations of the repository
// interfaces, used by tests and local development without a database.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Ru28/complaint-management-system/internal/domain"
	"github.com/Ru28/complaint-management-system/internal/repository"
)

// UserStore is an in-memory repository.UserRepository.
type UserStore struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

// NewUserStore builds an empty store.
func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]domain.User)}
}

func (s *UserStore) Create(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now
	s.users[user.ID] = *user
	return nil
}

func (s *UserStore) Update(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	user.UpdatedAt = time.Now()
	s.users[user.ID] = *user
	return nil
}

func (s *UserStore) GetByID(_ context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (s *UserStore) GetByEmailOrPhone(_ context.Context, email, phoneNumber string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if (email != "" && user.Email == email) || (phoneNumber != "" && user.PhoneNumber == phoneNumber) {
			u := user
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *UserStore) List(_ context.Context) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.User, 0, len(s.users))
	for _, user := range s.users {
		result = append(result, user)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (s *UserStore) UpdateRole(_ context.Context, id string, role domain.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.Role = role
	user.UpdatedAt = time.Now()
	s.users[id] = user
	return nil
}

// Count reports how many users are stored.
func (s *UserStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// ComplaintStore is an in-memory repository.ComplaintRepository backed
// by the same records a ResolutionStore reads for the admin join.
type ComplaintStore struct {
	mu         sync.RWMutex
	complaints map[string]domain.Complaint
	res        *ResolutionStore
}

// NewComplaintStore builds a store joined to the given resolution store.
func NewComplaintStore(res *ResolutionStore) *ComplaintStore {
	return &ComplaintStore{complaints: make(map[string]domain.Complaint), res: res}
}

func (s *ComplaintStore) Create(_ context.Context, complaint *domain.Complaint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	complaint.ID = uuid.NewString()
	complaint.CreatedAt = now
	complaint.UpdatedAt = now
	s.complaints[complaint.ID] = *complaint
	return nil
}

func (s *ComplaintStore) GetByID(_ context.Context, id string) (*domain.Complaint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	complaint, ok := s.complaints[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &complaint, nil
}

func (s *ComplaintStore) ListByUser(_ context.Context, userID string) ([]domain.Complaint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.Complaint
	for _, complaint := range s.complaints {
		if complaint.UserID == userID {
			result = append(result, complaint)
		}
	}
	sortComplaintsNewestFirst(result)
	return result, nil
}

func (s *ComplaintStore) ListWithLatestResolution(ctx context.Context) ([]domain.ComplaintWithResolution, error) {
	s.mu.RLock()
	complaints := make([]domain.Complaint, 0, len(s.complaints))
	for _, complaint := range s.complaints {
		complaints = append(complaints, complaint)
	}
	s.mu.RUnlock()

	sortComplaintsNewestFirst(complaints)

	result := make([]domain.ComplaintWithResolution, 0, len(complaints))
	for _, complaint := range complaints {
		item := domain.ComplaintWithResolution{Complaint: complaint}
		if s.res != nil {
			resolutions, err := s.res.ListByComplaint(ctx, complaint.ID)
			if err != nil {
				return nil, err
			}
			if len(resolutions) > 0 {
				latest := resolutions[0]
				item.Resolution = &latest
			}
		}
		result = append(result, item)
	}
	return result, nil
}

func (s *ComplaintStore) SetStatus(_ context.Context, id string, status domain.ComplaintStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	complaint, ok := s.complaints[id]
	if !ok {
		return pgx.ErrNoRows
	}
	complaint.Status = status
	complaint.UpdatedAt = time.Now()
	s.complaints[id] = complaint
	return nil
}

func sortComplaintsNewestFirst(complaints []domain.Complaint) {
	sort.Slice(complaints, func(i, j int) bool {
		return complaints[i].CreatedAt.After(complaints[j].CreatedAt)
	})
}

// ResolutionStore is an in-memory repository.ResolutionRepository.
type ResolutionStore struct {
	mu          sync.RWMutex
	resolutions []domain.Resolution
}

// NewResolutionStore builds an empty store.
func NewResolutionStore() *ResolutionStore {
	return &ResolutionStore{}
}

func (s *ResolutionStore) Create(_ context.Context, resolution *domain.Resolution) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	resolution.ID = uuid.NewString()
	resolution.CreatedAt = now
	resolution.UpdatedAt = now
	s.resolutions = append(s.resolutions, *resolution)
	return nil
}

func (s *ResolutionStore) ListByComplaint(_ context.Context, complaintID string) ([]domain.Resolution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.Resolution
	for _, resolution := range s.resolutions {
		if resolution.ComplaintID == complaintID {
			result = append(result, resolution)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].UpdatedAt.After(result[j].UpdatedAt)
	})
	return result, nil
}

// Count reports how many resolution records are stored.
func (s *ResolutionStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.resolutions)
}

// UnitOfWork runs the function directly; the in-memory stores have no
// transaction support.
type UnitOfWork struct{}

func (UnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// ResetTokenStore is an in-memory repository.ResetTokenStore.
type ResetTokenStore struct {
	mu     sync.Mutex
	tokens map[string]resetEntry
}

type resetEntry struct {
	userID    string
	expiresAt time.Time
}

// NewResetTokenStore builds an empty store.
func NewResetTokenStore() *ResetTokenStore {
	return &ResetTokenStore{tokens: make(map[string]resetEntry)}
}

func (s *ResetTokenStore) Save(_ context.Context, token, userID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = resetEntry{userID: userID, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *ResetTokenStore) Consume(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.tokens[token]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(s.tokens, token)
		return "", repository.ErrResetTokenNotFound
	}
	delete(s.tokens, token)
	return entry.userID, nil
}
