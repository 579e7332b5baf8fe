package main

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Handoff is a finished download waiting for the browser to collect it.
type Handoff struct {
	Expire   time.Time
	Filename string
	Video    *bytes.Reader
}

// HandoffStore keeps fetched videos between the form submission that built
// them and the request that downloads them. Entries are handed out once.
type HandoffStore struct {
	mutex   sync.Mutex
	ttl     time.Duration
	entries map[string]*Handoff
	now     func() time.Time
}

func NewHandoffStore(ttl time.Duration) *HandoffStore {
	return &HandoffStore{
		ttl:     ttl,
		entries: make(map[string]*Handoff),
		now:     time.Now,
	}
}

// Store saves video under a fresh token and returns the token.
func (s *HandoffStore) Store(filename string, video *bytes.Reader) string {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := s.now()
	s.evictLocked(now)
	token := uuid.NewString()
	s.entries[token] = &Handoff{
		Expire:   now.Add(s.ttl),
		Filename: filename,
		Video:    video,
	}
	return token
}

// Take removes and returns the entry for token if it has not expired.
func (s *HandoffStore) Take(token string) (*Handoff, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	entry, ok := s.entries[token]
	if !ok {
		return nil, false
	}
	delete(s.entries, token)
	if s.now().Before(entry.Expire) {
		return entry, true
	}
	return nil, false
}

func (s *HandoffStore) Len() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return len(s.entries)
}

// Sweep drops expired entries and reports how many were dropped.
func (s *HandoffStore) Sweep() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.evictLocked(s.now())
}

// Run sweeps the store every interval until ctx is done.
func (s *HandoffStore) Run(ctx context.Context, interval time.Duration, logger echo.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				logger.Debugf("Dropped %d uncollected downloads, %d waiting", n, s.Len())
			}
		}
	}
}

func (s *HandoffStore) evictLocked(now time.Time) int {
	evicted := 0
	for token, entry := range s.entries {
		if !now.Before(entry.Expire) {
			delete(s.entries, token)
			evicted++
		}
	}
	return evicted
}
