package ratelimit

import (
	"sync"
	"time"
)

// Limiter enforces per-client sliding-window limits on the anonymous
// write endpoints (inquiry submission, favorite toggling). Clients are
// keyed by session token, falling back to remote address.
type Limiter struct {
	requestsPerMinute int
	requestsPerHour   int
	enabled           bool

	mu      sync.Mutex
	clients map[string]*window
}

type window struct {
	minute []time.Time
	hour   []time.Time
}

// NewLimiter creates a limiter with the given per-client limits
func NewLimiter(requestsPerMinute, requestsPerHour int, enabled bool) *Limiter {
	return &Limiter{
		requestsPerMinute: requestsPerMinute,
		requestsPerHour:   requestsPerHour,
		enabled:           enabled,
		clients:           make(map[string]*window),
	}
}

// Allow checks whether the client may make a request now, recording it
// when permitted.
func (l *Limiter) Allow(clientKey string) bool {
	if !l.enabled {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()

	w, ok := l.clients[clientKey]
	if !ok {
		w = &window{}
		l.clients[clientKey] = w
	}

	// Clean up old entries
	w.minute = filterTimes(w.minute, now.Add(-1*time.Minute))
	w.hour = filterTimes(w.hour, now.Add(-1*time.Hour))

	if l.requestsPerMinute > 0 && len(w.minute) >= l.requestsPerMinute {
		return false
	}
	if l.requestsPerHour > 0 && len(w.hour) >= l.requestsPerHour {
		return false
	}

	w.minute = append(w.minute, now)
	w.hour = append(w.hour, now)
	return true
}

// filterTimes keeps only times after the cutoff
func filterTimes(times []time.Time, cutoff time.Time) []time.Time {
	result := make([]time.Time, 0, len(times))
	for _, t := range times {
		if t.After(cutoff) {
			result = append(result, t)
		}
	}
	return result
}

// Prune drops clients with no activity in the last hour so the map does
// not grow unbounded.
func (l *Limiter) Prune() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := time.Now().Add(-1 * time.Hour)
	for key, w := range l.clients {
		w.hour = filterTimes(w.hour, cutoff)
		if len(w.hour) == 0 {
			delete(l.clients, key)
		}
	}
}

// Stats contains limiter statistics
type Stats struct {
	Enabled        bool `json:"enabled"`
	TrackedClients int  `json:"tracked_clients"`
	LimitPerMinute int  `json:"limit_per_minute"`
	LimitPerHour   int  `json:"limit_per_hour"`
}

// GetStats returns current limiter statistics
func (l *Limiter) GetStats() Stats {
	if !l.enabled {
		return Stats{Enabled: false}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	return Stats{
		Enabled:        true,
		TrackedClients: len(l.clients),
		LimitPerMinute: l.requestsPerMinute,
		LimitPerHour:   l.requestsPerHour,
	}
}
