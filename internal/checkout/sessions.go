package checkout

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// machineTTL bounds how long an untouched checkout survives. Abandoned
// machines are evicted lazily on the next registry access.
const machineTTL = 2 * time.Hour

type sessionEntry struct {
	machine   *Machine
	lastTouch time.Time
}

// Sessions hands out one checkout machine per visitor session. Machines
// live in memory only; an abandoned checkout disappears with its session
// or after machineTTL without activity.
type Sessions struct {
	mu      sync.Mutex
	entries map[string]*sessionEntry
	gateway Gateway
	logger  *zap.Logger
	now     func() time.Time
}

func NewSessions(gw Gateway, logger *zap.Logger) *Sessions {
	return &Sessions{
		entries: make(map[string]*sessionEntry),
		gateway: gw,
		logger:  logger,
		now:     time.Now,
	}
}

// Get returns the session's machine, creating one in Review if absent.
// Each access refreshes the session's eviction clock.
func (s *Sessions) Get(sessionID string) *Machine {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.evictStale(now)

	if e, ok := s.entries[sessionID]; ok {
		e.lastTouch = now
		return e.machine
	}
	m := NewMachine(s.gateway, s.logger)
	s.entries[sessionID] = &sessionEntry{machine: m, lastTouch: now}
	return m
}

// Drop forgets a session's machine.
func (s *Sessions) Drop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sessionID)
}

func (s *Sessions) evictStale(now time.Time) {
	for id, e := range s.entries {
		if now.Sub(e.lastTouch) > machineTTL {
			delete(s.entries, id)
		}
	}
}
