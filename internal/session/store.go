package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Store owns the live sessions, keyed by id.
type Store struct {
	mu        sync.Mutex
	sessions  map[string]*State
	watchlist []string
	refresh   AutoRefresh
	now       func() time.Time
}

// NewStore creates a store; new sessions start with a copy of watchlist.
func NewStore(watchlist []string) *Store {
	return &Store{
		sessions:  make(map[string]*State),
		watchlist: append([]string(nil), watchlist...),
		refresh:   AutoRefresh{Interval: DefaultRefreshInterval},
		now:       time.Now,
	}
}

// SetDefaults sets the auto-refresh settings applied to sessions created afterwards.
func (st *Store) SetDefaults(ar AutoRefresh) error {
	if ar.Interval < MinRefreshInterval || ar.Interval > MaxRefreshInterval {
		return ErrInvalidInterval
	}
	st.mu.Lock()
	st.refresh = ar
	st.mu.Unlock()
	return nil
}

// idLen is the length of an id from NewID: 16 random bytes, hex encoded.
const idLen = 32

// NewID returns a random session id.
func NewID() string {
	b := make([]byte, idLen/2)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%032x", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}

// ValidID reports whether id has the shape NewID produces.
func ValidID(id string) bool {
	if len(id) != idLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// Get returns the session for id, creating it if needed. An empty id gets a fresh one.
func (st *Store) Get(id string) (s *State, created bool) {
	if id == "" {
		id = NewID()
	}
	now := st.now()
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if !ok {
		s = New(id, now, st.watchlist)
		s.refresh = st.refresh
		st.sessions[id] = s
	}
	s.touch(now)
	return s, !ok
}

// Drop tears down the session for id.
func (st *Store) Drop(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	_, ok := st.sessions[id]
	delete(st.sessions, id)
	return ok
}

// Reap drops sessions not seen for longer than idle and returns how many went.
func (st *Store) Reap(now time.Time, idle time.Duration) int {
	st.mu.Lock()
	defer st.mu.Unlock()
	n := 0
	for id, s := range st.sessions {
		if now.Sub(s.idleSince()) > idle {
			delete(st.sessions, id)
			n++
		}
	}
	return n
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Each calls fn for every session in id order, outside the store lock.
func (st *Store) Each(fn func(*State)) {
	st.mu.Lock()
	list := make([]*State, 0, len(st.sessions))
	for _, s := range st.sessions {
		list = append(list, s)
	}
	st.mu.Unlock()
	sort.Slice(list, func(i, j int) bool { return list[i].id < list[j].id })
	for _, s := range list {
		fn(s)
	}
}
