package store

import (
	"context"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"wayfarer/internal/catalog"
	"wayfarer/internal/utils"
	"wayfarer/pkg/types"
)

// MemoryDocuments keeps catalogs in process memory so the app runs
// without a database. Each user gets an isolated backend.
type MemoryDocuments struct {
	mu      sync.Mutex
	perUser map[string]*memoryBackend
}

func NewMemoryDocuments() *MemoryDocuments {
	return &MemoryDocuments{perUser: map[string]*memoryBackend{}}
}

func (m *MemoryDocuments) ForUser(userID string) catalog.Backend {
	m.mu.Lock()
	defer m.mu.Unlock()

	backend, ok := m.perUser[userID]
	if !ok {
		backend = &memoryBackend{}
		m.perUser[userID] = backend
	}
	return backend
}

// memoryBackend holds one user's records newest first. The mutex guards
// against concurrent requests for the same user; the catalog session on
// top is still the single writer in practice.
type memoryBackend struct {
	mu      sync.RWMutex
	records []*types.DocumentRecord
}

func (b *memoryBackend) Persist(_ context.Context, record *types.DocumentRecord) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.records = append([]*types.DocumentRecord{record}, b.records...)
	return nil
}

func (b *memoryBackend) FetchAll(_ context.Context) ([]*types.DocumentRecord, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]*types.DocumentRecord, len(b.records))
	copy(out, b.records)
	return out, nil
}

func (b *memoryBackend) Delete(_ context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, record := range b.records {
		if record.ID == id {
			b.records = append(b.records[:i], b.records[i+1:]...)
			return nil
		}
	}
	return nil
}

// MemoryUsers is the in-memory account store backing the
// persisted-credential check when no database is configured.
type MemoryUsers struct {
	mu    sync.RWMutex
	users map[string]*types.User
}

func NewMemoryUsers() *MemoryUsers {
	return &MemoryUsers{users: map[string]*types.User{}}
}

// NewMemoryUsersWithDefault seeds a development account so a fresh
// process can be logged into immediately.
func NewMemoryUsersWithDefault(email, password string) (*MemoryUsers, error) {
	m := NewMemoryUsers()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	m.users[email] = &types.User{
		ID:           utils.NanoID(),
		Email:        email,
		Name:         "Traveler",
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return m, nil
}

func (m *MemoryUsers) User(_ context.Context, userID string) (*types.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, user := range m.users {
		if user.ID == userID {
			copied := *user
			return &copied, nil
		}
	}
	return nil, types.ErrUserNotFound
}

func (m *MemoryUsers) UserByEmail(_ context.Context, email string) (*types.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[email]
	if !ok {
		return nil, types.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *MemoryUsers) Create(_ context.Context, user *types.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	copied := *user
	m.users[user.Email] = &copied
	return nil
}
