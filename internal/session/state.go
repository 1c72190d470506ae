// Package session holds per-user dashboard state: the watchlist, the
// selected stock and the auto-refresh settings. Nothing here is persisted;
// a state lives until its Store drops it.
package session

import (
	"errors"
	"strings"
	"sync"
	"time"

	"StockTerminal/internal/model"
)

// Auto-refresh interval bounds.
const (
	MinRefreshInterval     = 10 * time.Second
	MaxRefreshInterval     = 300 * time.Second
	DefaultRefreshInterval = 60 * time.Second
)

// ErrInvalidInterval is returned for a refresh interval outside the bounds.
var ErrInvalidInterval = errors.New("refresh interval must be between 10s and 300s")

// RefreshDecision is the outcome of DueForRefresh.
type RefreshDecision int

const (
	NotDue RefreshDecision = iota
	Refresh
	Paused // due, but the market is closed
)

func (d RefreshDecision) String() string {
	switch d {
	case Refresh:
		return "refresh"
	case Paused:
		return "paused"
	default:
		return "not_due"
	}
}

// AutoRefresh configures periodic re-fetching of the selected stock.
type AutoRefresh struct {
	Enabled  bool          `json:"enabled"`
	Interval time.Duration `json:"interval"`
}

// State is one user's dashboard session.
type State struct {
	mu         sync.Mutex
	id         string
	watchlist  []string
	lastUpdate time.Time
	lastSeen   time.Time
	selected   *model.StockData
	refresh    AutoRefresh
}

// New returns a session with the given initial watchlist and LastUpdate = now.
func New(id string, now time.Time, watchlist []string) *State {
	s := &State{
		id:         id,
		lastUpdate: now,
		lastSeen:   now,
		refresh:    AutoRefresh{Interval: DefaultRefreshInterval},
	}
	for _, sym := range watchlist {
		s.add(sym)
	}
	return s
}

// ID returns the session id.
func (s *State) ID() string { return s.id }

// Watchlist returns a copy of the watchlist in insertion order.
func (s *State) Watchlist() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.watchlist))
	copy(out, s.watchlist)
	return out
}

// Add appends symbol to the watchlist. It returns false for a blank or duplicate symbol.
func (s *State) Add(symbol string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.add(symbol)
}

func (s *State) add(symbol string) bool {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return false
	}
	for _, w := range s.watchlist {
		if w == symbol {
			return false
		}
	}
	s.watchlist = append(s.watchlist, symbol)
	return true
}

// Remove deletes symbol from the watchlist. It returns false if absent.
func (s *State) Remove(symbol string) bool {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, w := range s.watchlist {
		if w == symbol {
			s.watchlist = append(s.watchlist[:i], s.watchlist[i+1:]...)
			return true
		}
	}
	return false
}

// Select makes data the current stock and stamps LastUpdate.
func (s *State) Select(data *model.StockData, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = data
	s.lastUpdate = now
}

// Replace swaps in data only while prev is still the selection, so a
// refresh that finishes after the user picked another stock is dropped.
// It reports whether the swap happened.
func (s *State) Replace(prev, data *model.StockData, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected != prev {
		return false
	}
	s.selected = data
	s.lastUpdate = now
	return true
}

// Selected returns the current stock, or nil.
func (s *State) Selected() *model.StockData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// LastUpdate returns when the selection was last (re)fetched.
func (s *State) LastUpdate() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUpdate
}

// SetAutoRefresh updates the auto-refresh settings.
func (s *State) SetAutoRefresh(enabled bool, interval time.Duration) error {
	if interval < MinRefreshInterval || interval > MaxRefreshInterval {
		return ErrInvalidInterval
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh = AutoRefresh{Enabled: enabled, Interval: interval}
	return nil
}

// AutoRefresh returns the current auto-refresh settings.
func (s *State) AutoRefresh() AutoRefresh {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refresh
}

// DueForRefresh decides whether the selection should be re-fetched at now.
// On Refresh, LastUpdate moves to now.
func (s *State) DueForRefresh(now time.Time, marketOpen bool) RefreshDecision {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.refresh.Enabled || now.Sub(s.lastUpdate) < s.refresh.Interval {
		return NotDue
	}
	if !marketOpen {
		return Paused
	}
	s.lastUpdate = now
	return Refresh
}

func (s *State) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *State) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}
