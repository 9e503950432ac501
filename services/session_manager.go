package services

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sudipjangam/tasty-bite-pos/pos"
	"github.com/sudipjangam/tasty-bite-pos/utils"
)

// POSSession owns one cart and its settlement state machine. One session per
// terminal; no cross-session shared mutable state. The cart itself is
// unsynchronized, so every command against a session must hold its lock.
type POSSession struct {
	ID         string
	Cart       *pos.Cart
	Settlement *pos.Settlement
	Resolver   *pos.PromotionResolver
	TableID    *uint
	CreatedAt  time.Time
	LastActive time.Time

	mu sync.Mutex
}

// Lock serializes terminal commands against this session. Requests arrive on
// per-request goroutines; the cart relies on the caller holding this.
func (s *POSSession) Lock() {
	s.mu.Lock()
}

func (s *POSSession) Unlock() {
	s.mu.Unlock()
}

// Touch refreshes the idle clock.
func (s *POSSession) Touch() {
	s.LastActive = time.Now()
}

// SessionManager holds the live POS sessions and open order editors. Access
// is guarded by one mutex; the per-session state machines carry their own
// in-flight guards.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*POSSession
	editors  map[uint]*pos.OrderEditor
	ttl      time.Duration
	stop     chan struct{}
}

func NewSessionManager(ttl time.Duration) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*POSSession),
		editors:  make(map[uint]*pos.OrderEditor),
		ttl:      ttl,
		stop:     make(chan struct{}),
	}
}

// Create builds a session around a fresh cart wired to the given
// collaborators and registers it under a new uuid.
func (m *SessionManager) Create(store pos.OrderStore, lookup pos.PromotionLookup, notifier pos.Notifier, tableID *uint) *POSSession {
	cart := pos.NewCart()
	session := &POSSession{
		ID:         uuid.NewString(),
		Cart:       cart,
		Settlement: pos.NewSettlement(cart, store, notifier),
		Resolver:   pos.NewPromotionResolver(lookup, notifier),
		TableID:    tableID,
		CreatedAt:  time.Now(),
		LastActive: time.Now(),
	}
	session.Settlement.SetTable(tableID)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID] = session
	return session
}

func (m *SessionManager) Get(id string) (*POSSession, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if ok {
		s.Touch()
	}
	return s, ok
}

func (m *SessionManager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// PutEditor registers an open editor for an order; one editor per order.
func (m *SessionManager) PutEditor(editor *pos.OrderEditor) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.editors[editor.OrderID()] = editor
}

func (m *SessionManager) GetEditor(orderID uint) (*pos.OrderEditor, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.editors[orderID]
	return e, ok
}

func (m *SessionManager) DeleteEditor(orderID uint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.editors, orderID)
}

// StartSweeper launches the idle-session reaper goroutine.
func (m *SessionManager) StartSweeper(interval time.Duration) {
	go m.sweepLoop(interval)
	utils.InfoLogger.Println("POS session sweeper started")
}

func (m *SessionManager) StopSweeper() {
	close(m.stop)
}

func (m *SessionManager) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.sweep()
		case <-m.stop:
			return
		}
	}
}

// sweep drops sessions idle past the TTL. Settled sessions hold an empty
// cart already, so nothing of value is lost.
func (m *SessionManager) sweep() {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-m.ttl)
	for id, s := range m.sessions {
		if s.LastActive.Before(cutoff) {
			delete(m.sessions, id)
			utils.InfoLogger.Printf("Expired idle POS session %s", id)
		}
	}
}
