// Package session keeps the in-progress intake-form state for each
// Telegram user. Sessions are ephemeral by contract: anything idle for
// an hour is gone, so the store lives purely in memory.
package session

import (
	"sync"
	"time"

	"github.com/Selaelo1/telemanBot/model"
)

const (
	// TTL is how long a session survives without activity.
	TTL = time.Hour
	// SweepInterval is how often the janitor scans for expired
	// sessions. Correctness only needs the lazy check in Get; the
	// sweep bounds memory.
	SweepInterval = 30 * time.Minute
)

// Store maps Telegram user ids to their in-progress sessions. A single
// mutex linearizes every per-user read-modify-write, and Advance adds
// a step check on top so redelivered or racing inputs cannot move a
// session more than one step.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*model.Session
	ttl      time.Duration
}

// NewStore returns an empty store with the default TTL. Callers that
// want the background sweep start it with StartJanitor.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*model.Session),
		ttl:      TTL,
	}
}

// Get returns a copy of the session for telegramID, or nil if none
// exists. A session idle past the TTL is deleted on read and reported
// as absent.
func (s *Store) Get(telegramID string) *model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[telegramID]
	if !ok {
		return nil
	}
	if time.Since(sess.LastActivity) >= s.ttl {
		delete(s.sessions, telegramID)
		return nil
	}
	c := *sess
	return &c
}

// Create starts a fresh session at the first step, replacing any
// existing session for that user.
func (s *Store) Create(telegramID string) *model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := &model.Session{
		TelegramID:   telegramID,
		Step:         model.StepName,
		LastActivity: time.Now(),
	}
	s.sessions[telegramID] = sess
	c := *sess
	return &c
}

// Update merges patch into the existing session and refreshes its
// activity timestamp. Returns nil when no session exists; the caller
// should treat that as "start over".
func (s *Store) Update(telegramID string, patch model.SessionPatch) *model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[telegramID]
	if !ok {
		return nil
	}
	if patch.Step != nil {
		sess.Step = *patch.Step
	}
	if patch.Data != nil {
		sess.Data = *patch.Data
	}
	sess.LastActivity = time.Now()
	c := *sess
	return &c
}

// Advance applies mutate to the collected fields and moves the session
// to next, but only while the session still sits at from. The step
// check is what keeps two racing inputs for one step from advancing a
// session twice: exactly one caller wins, the rest get ok == false.
func (s *Store) Advance(telegramID string, from, next model.Step, mutate func(*model.FormData)) (*model.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[telegramID]
	if !ok {
		return nil, false
	}
	if time.Since(sess.LastActivity) >= s.ttl {
		delete(s.sessions, telegramID)
		return nil, false
	}
	if sess.Step != from {
		return nil, false
	}
	if mutate != nil {
		mutate(&sess.Data)
	}
	sess.Step = next
	sess.LastActivity = time.Now()
	c := *sess
	return &c, true
}

// Delete removes the session for telegramID. Removing an absent
// session is a no-op.
func (s *Store) Delete(telegramID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, telegramID)
}

// Sweep removes every expired session and reports how many went.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if time.Since(sess.LastActivity) >= s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len reports the number of tracked sessions, expired ones included
// until the next sweep or read.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// StartJanitor sweeps on the given interval until the returned stop
// function is called.
func (s *Store) StartJanitor(interval time.Duration) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.C:
				s.Sweep()
			case <-done:
				return
			}
		}
	}()

	return func() {
		ticker.Stop()
		close(done)
	}
}
