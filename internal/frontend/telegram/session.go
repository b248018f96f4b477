package telegram

import (
	"sync"

	"golang.org/x/time/rate"
)

// chatSession is the per-chat state: the rate limiter and the open detail view.
type chatSession struct {
	limiter  *rate.Limiter
	gen      uint64 // bumped on every open and close
	modalIDs []int  // messages that make up the open detail view
}

// sessionManager manages per-chat sessions and access control.
type sessionManager struct {
	mu       sync.Mutex
	sessions map[int64]*chatSession
	allowed  map[int64]bool // nil or empty = allow all
	limit    rate.Limit
	burst    int
}

// newSessionManager creates a session manager.
// If allowedUserIDs is empty, all users are allowed.
func newSessionManager(allowedUserIDs []int64, rps float64, burst int) *sessionManager {
	allowed := make(map[int64]bool, len(allowedUserIDs))
	for _, id := range allowedUserIDs {
		allowed[id] = true
	}
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	if burst < 1 {
		burst = 1
	}
	return &sessionManager{
		sessions: make(map[int64]*chatSession),
		allowed:  allowed,
		limit:    limit,
		burst:    burst,
	}
}

// isAllowed checks if a user is authorized to use the bot.
func (sm *sessionManager) isAllowed(userID int64) bool {
	if len(sm.allowed) == 0 {
		return true
	}
	return sm.allowed[userID]
}

// get returns the chat session, creating it on first use. Callers hold sm.mu.
func (sm *sessionManager) get(chatID int64) *chatSession {
	s, ok := sm.sessions[chatID]
	if !ok {
		s = &chatSession{limiter: rate.NewLimiter(sm.limit, sm.burst)}
		sm.sessions[chatID] = s
	}
	return s
}

// allow reports whether the chat may issue another request now.
func (sm *sessionManager) allow(chatID int64) bool {
	sm.mu.Lock()
	s := sm.get(chatID)
	sm.mu.Unlock()
	return s.limiter.Allow()
}

// openModal starts a new detail view. It returns the generation the results
// must carry and the messages of the view it replaces.
func (sm *sessionManager) openModal(chatID int64) (uint64, []int) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	s := sm.get(chatID)
	s.gen++
	prev := s.modalIDs
	s.modalIDs = nil
	return s.gen, prev
}

// attachModal records the messages of the view opened as gen. It reports
// false when a newer open or close happened in the meantime.
func (sm *sessionManager) attachModal(chatID int64, gen uint64, ids []int) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	s := sm.get(chatID)
	if s.gen != gen {
		return false
	}
	s.modalIDs = ids
	return true
}

// accepts reports whether gen is still the chat's current view.
func (sm *sessionManager) accepts(chatID int64, gen uint64) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.get(chatID).gen == gen
}

// closeModal invalidates any in-flight view and returns the messages to delete.
func (sm *sessionManager) closeModal(chatID int64) []int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	s := sm.get(chatID)
	s.gen++
	ids := s.modalIDs
	s.modalIDs = nil
	return ids
}
