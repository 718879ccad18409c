package session

import (
	"context"
	"sync"
	"time"

	"nivesh/internal/domain"

	"github.com/google/uuid"
)

// Account pairs one session's state with its lock. Every request holds
// the lock for the whole mutation so no partial write is ever visible.
type Account struct {
	mu    sync.Mutex
	State *domain.AccountState
}

func (a *Account) WithLock(fn func(st *domain.AccountState) error) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return fn(a.State)
}

// Snapshot returns a deep copy for lock-free reads.
func (a *Account) Snapshot() *domain.AccountState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.State.DeepCopy()
}

// Store keeps per-session accounts in memory, keyed by the opaque
// session token carried in a cookie.
type Store struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]*Account
	ttl      time.Duration
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		accounts: map[uuid.UUID]*Account{},
		ttl:      ttl,
	}
}

func (s *Store) Get(id uuid.UUID) (*Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[id]
	return account, ok
}

// Create issues a fresh session with default-seeded state.
func (s *Store) Create() (uuid.UUID, *Account) {
	id := uuid.New()
	account := &Account{State: domain.NewAccountState()}
	s.mu.Lock()
	s.accounts[id] = account
	s.mu.Unlock()
	return id, account
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accounts)
}

// Sweep drops accounts idle past the TTL, returning how many went.
func (s *Store) Sweep(now time.Time) int {
	if s.ttl <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, account := range s.accounts {
		account.mu.Lock()
		idle := now.Sub(account.State.LastAction) > s.ttl
		account.mu.Unlock()
		if idle {
			delete(s.accounts, id)
			removed++
		}
	}
	return removed
}

// StartJanitor sweeps on the given interval until the context ends.
func (s *Store) StartJanitor(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				s.Sweep(now)
			}
		}
	}()
}
