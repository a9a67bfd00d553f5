package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"kellybook/models"
)

// DraftSession holds a prepared bet between the initiate and finalize steps
// of the conversational flow. Sessions are keyed by a token handed back to
// the caller and expire if the draft is never confirmed.
type DraftSession struct {
	Token     string
	UserID    string
	ChannelID string
	Prepared  models.PreparedBet
	CreatedAt time.Time
}

// SessionManager tracks in-flight bet drafts
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*DraftSession
	ttl      time.Duration
	done     chan struct{}
}

// NewSessionManager creates a session manager whose drafts expire after ttl
func NewSessionManager(ttl time.Duration) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*DraftSession),
		ttl:      ttl,
		done:     make(chan struct{}),
	}
}

// Put stores a draft and returns its token
func (m *SessionManager) Put(userID, channelID string, prepared models.PreparedBet) string {
	token := uuid.NewString()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[token] = &DraftSession{
		Token:     token,
		UserID:    userID,
		ChannelID: channelID,
		Prepared:  prepared,
		CreatedAt: time.Now(),
	}
	return token
}

// Get retrieves a draft by token, or nil when absent or expired
func (m *SessionManager) Get(token string) *DraftSession {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[token]
	if !ok {
		return nil
	}
	if time.Since(session.CreatedAt) > m.ttl {
		return nil
	}
	return session
}

// Take retrieves and removes a draft by token, or nil when absent or expired
func (m *SessionManager) Take(token string) *DraftSession {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[token]
	if !ok {
		return nil
	}
	delete(m.sessions, token)
	if time.Since(session.CreatedAt) > m.ttl {
		return nil
	}
	return session
}

// Remove discards a draft
func (m *SessionManager) Remove(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
}

// StartCleanup runs periodic expiry of abandoned drafts until Stop is called
func (m *SessionManager) StartCleanup(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				m.cleanup()
			case <-m.done:
				return
			}
		}
	}()
}

// Stop terminates the cleanup goroutine
func (m *SessionManager) Stop() {
	close(m.done)
}

func (m *SessionManager) cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	removed := 0
	for token, session := range m.sessions {
		if now.Sub(session.CreatedAt) > m.ttl {
			delete(m.sessions, token)
			removed++
		}
	}
	if removed > 0 {
		log.WithField("removed", removed).Debug("Expired abandoned bet drafts")
	}
}
