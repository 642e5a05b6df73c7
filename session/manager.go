package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/junaidrashid-git/smartcart-api/cart"
	"github.com/junaidrashid-git/smartcart-api/catalog"
	"github.com/junaidrashid-git/smartcart-api/checkout"
	"github.com/junaidrashid-git/smartcart-api/payment"
	"github.com/junaidrashid-git/smartcart-api/recommend"
	"github.com/junaidrashid-git/smartcart-api/scanner"
	"go.uber.org/zap"
)

// Deps are the shared collaborators every session is built from.
type Deps struct {
	Catalog      *catalog.Snapshot
	Lookup       scanner.Lookup
	Selector     *recommend.Selector
	Payment      payment.Step
	Recorder     checkout.Recorder
	ScanCooldown time.Duration
	Currency     string
	OnComplete   func(checkout.Receipt)
}

// Manager keeps live sessions and expires idle ones.
type Manager struct {
	deps Deps
	ttl  time.Duration
	now  func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(deps Deps, ttl time.Duration) *Manager {
	return &Manager{
		deps:     deps,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Create starts a session with an empty cart.
func (m *Manager) Create() *Session {
	now := m.now()
	s := &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		lastSeen:  now,
		cart:      cart.New(),
		catalog:   m.deps.Catalog,
		selector:  m.deps.Selector,
		scanner:   scanner.New(m.deps.Lookup, scanner.WithCooldown(m.deps.ScanCooldown)),
	}
	opts := []checkout.Option{
		checkout.WithGuard(&s.mu),
		checkout.WithSessionID(s.ID),
		checkout.WithCurrency(m.deps.Currency),
	}
	if m.deps.Recorder != nil {
		opts = append(opts, checkout.WithRecorder(m.deps.Recorder))
	}
	if m.deps.OnComplete != nil {
		opts = append(opts, checkout.WithOnComplete(m.deps.OnComplete))
	}
	s.checkout = checkout.New(s.cart, m.deps.Payment, opts...)

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// Get returns a live session and marks it as used.
func (m *Manager) Get(id string) (*Session, error) {
	now := m.now()
	m.mu.Lock()
	s, ok := m.sessions[id]
	m.mu.Unlock()
	if !ok || m.expired(s, now) {
		return nil, ErrNotFound
	}
	s.touch(now)
	return s, nil
}

func (m *Manager) Delete(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *Manager) TTL() time.Duration {
	return m.ttl
}

func (m *Manager) expired(s *Session, now time.Time) bool {
	return m.ttl > 0 && now.Sub(s.LastSeen()) > m.ttl && !s.checkout.Processing()
}

// Purge drops sessions idle for longer than the TTL. Sessions with a payment running
// are kept.
func (m *Manager) Purge() int {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	purged := 0
	for id, s := range m.sessions {
		if m.expired(s, now) {
			delete(m.sessions, id)
			purged++
		}
	}
	if purged > 0 {
		zap.S().Infow("expired sessions purged", "namespace", "session", "count", purged, "live", len(m.sessions))
	}
	return purged
}
