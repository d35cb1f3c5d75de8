// pkg/memcache/pending_prefs.go
package mem

import (
	"sync"
	"time"

	"viajaia/internal/models/request_models"
)

// PendingPreferenceStore caches trip preferences submitted before login.
// A ticket is single-use: the first redemption after authentication consumes
// it, so a second login event can never trigger a duplicate generation.
type PendingPreferenceStore interface {
	Set(ticket string, prefs request_models.TravelPreferencesRequest, ttl time.Duration)

	// Consume returns the preferences for ticket if not expired, removing
	// the entry (single-use). The second return is false if missing/expired.
	Consume(ticket string) (request_models.TravelPreferencesRequest, bool)

	Peek(ticket string) (request_models.TravelPreferencesRequest, bool)
}

type pendingEntry struct {
	prefs     request_models.TravelPreferencesRequest
	expiresAt time.Time
}

type PendingPreferences struct {
	mu   sync.RWMutex
	data map[string]pendingEntry
}

func NewPendingPreferences() *PendingPreferences {
	return &PendingPreferences{
		data: make(map[string]pendingEntry),
	}
}

func (s *PendingPreferences) Set(ticket string, prefs request_models.TravelPreferencesRequest, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[ticket] = pendingEntry{
		prefs:     prefs,
		expiresAt: time.Now().Add(ttl),
	}
}

func (s *PendingPreferences) Consume(ticket string) (request_models.TravelPreferencesRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[ticket]
	if !ok {
		return request_models.TravelPreferencesRequest{}, false
	}
	if time.Now().After(e.expiresAt) {
		delete(s.data, ticket) // cleanup expired
		return request_models.TravelPreferencesRequest{}, false
	}
	delete(s.data, ticket) // single-use
	return e.prefs, true
}

func (s *PendingPreferences) Peek(ticket string) (request_models.TravelPreferencesRequest, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[ticket]
	if !ok || time.Now().After(e.expiresAt) {
		return request_models.TravelPreferencesRequest{}, false
	}
	return e.prefs, true
}
