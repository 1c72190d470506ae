package session

import (
	"testing"
	"time"
)

func TestStore_GetCreatesOnce(t *testing.T) {
	st := NewStore([]string{"AAPL"})
	st.now = func() time.Time { return t0 }

	a, created := st.Get("one")
	if !created {
		t.Error("expected first Get to create")
	}
	b, created := st.Get("one")
	if created || a != b {
		t.Error("expected second Get to return the same session")
	}
	if got := a.Watchlist(); len(got) != 1 || got[0] != "AAPL" {
		t.Errorf("expected configured watchlist, got %v", got)
	}

	fresh, created := st.Get("")
	if !created || fresh.ID() == "" {
		t.Error("expected a generated id for an empty id")
	}
	if st.Len() != 2 {
		t.Errorf("expected 2 sessions, got %d", st.Len())
	}
}

func TestStore_SessionsAreIndependent(t *testing.T) {
	st := NewStore(nil)
	a, _ := st.Get("a")
	b, _ := st.Get("b")
	a.Add("NVDA")
	if len(b.Watchlist()) != 0 {
		t.Error("watchlists leaked between sessions")
	}
}

func TestStore_DropAndReap(t *testing.T) {
	st := NewStore(nil)
	now := t0
	st.now = func() time.Time { return now }

	st.Get("old")
	now = t0.Add(2 * time.Hour)
	st.Get("new")

	if n := st.Reap(now, time.Hour); n != 1 {
		t.Errorf("expected 1 reaped session, got %d", n)
	}
	if st.Len() != 1 {
		t.Errorf("expected 1 session left, got %d", st.Len())
	}
	if !st.Drop("new") || st.Drop("new") {
		t.Error("Drop should succeed once")
	}
}

func TestStore_EachOrdered(t *testing.T) {
	st := NewStore(nil)
	for _, id := range []string{"c", "a", "b"} {
		st.Get(id)
	}
	var ids []string
	st.Each(func(s *State) { ids = append(ids, s.ID()) })
	if len(ids) != 3 || ids[0] != "a" || ids[1] != "b" || ids[2] != "c" {
		t.Errorf("unexpected order: %v", ids)
	}
}

func TestStore_SetDefaults(t *testing.T) {
	st := NewStore(nil)
	if err := st.SetDefaults(AutoRefresh{Enabled: true, Interval: 5 * time.Second}); err != ErrInvalidInterval {
		t.Fatalf("expected ErrInvalidInterval, got %v", err)
	}
	if err := st.SetDefaults(AutoRefresh{Enabled: true, Interval: 30 * time.Second}); err != nil {
		t.Fatalf("set defaults: %v", err)
	}
	s, _ := st.Get("abc")
	if ar := s.AutoRefresh(); !ar.Enabled || ar.Interval != 30*time.Second {
		t.Errorf("new session should inherit defaults, got %+v", ar)
	}
}

func TestValidID(t *testing.T) {
	for i := 0; i < 10; i++ {
		if id := NewID(); !ValidID(id) {
			t.Errorf("NewID produced an invalid id %q", id)
		}
	}
	for _, id := range []string{"", "s1", "bogus", "0123456789ABCDEF0123456789ABCDEF", "0123456789abcdef0123456789abcdeg", "0123456789abcdef0123456789abcdef0"} {
		if ValidID(id) {
			t.Errorf("expected %q to be rejected", id)
		}
	}
	if !ValidID("0123456789abcdef0123456789abcdef") {
		t.Error("expected a 32-char lowercase hex id to be accepted")
	}
}
