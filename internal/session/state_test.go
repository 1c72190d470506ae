package session

import (
	"testing"
	"time"

	"StockTerminal/internal/model"
)

var t0 = time.Date(2024, time.March, 13, 14, 0, 0, 0, time.UTC)

func TestNew_Defaults(t *testing.T) {
	s := New("abc", t0, nil)
	if len(s.Watchlist()) != 0 {
		t.Errorf("expected empty watchlist, got %v", s.Watchlist())
	}
	if !s.LastUpdate().Equal(t0) {
		t.Errorf("expected LastUpdate %s, got %s", t0, s.LastUpdate())
	}
	if s.Selected() != nil {
		t.Error("expected no selection")
	}
	ar := s.AutoRefresh()
	if ar.Enabled || ar.Interval != DefaultRefreshInterval {
		t.Errorf("unexpected auto-refresh defaults: %+v", ar)
	}
}

func TestWatchlist_AddRemove(t *testing.T) {
	s := New("w", t0, []string{"aapl", "MSFT", "AAPL"})
	if got := s.Watchlist(); len(got) != 2 || got[0] != "AAPL" || got[1] != "MSFT" {
		t.Fatalf("unexpected initial watchlist: %v", got)
	}
	if !s.Add(" tsla ") {
		t.Error("expected TSLA to be added")
	}
	if s.Add("TSLA") {
		t.Error("expected duplicate to be rejected")
	}
	if s.Add("  ") {
		t.Error("expected blank symbol to be rejected")
	}
	if !s.Remove("msft") {
		t.Error("expected MSFT to be removed")
	}
	if s.Remove("MSFT") {
		t.Error("expected second remove to fail")
	}
	if got := s.Watchlist(); len(got) != 2 || got[0] != "AAPL" || got[1] != "TSLA" {
		t.Errorf("unexpected watchlist: %v", got)
	}
}

func TestWatchlist_ReturnsCopy(t *testing.T) {
	s := New("c", t0, []string{"AAPL"})
	w := s.Watchlist()
	w[0] = "HACK"
	if s.Watchlist()[0] != "AAPL" {
		t.Error("watchlist mutated through returned slice")
	}
}

func TestSetAutoRefresh_Bounds(t *testing.T) {
	s := New("r", t0, nil)
	tests := []struct {
		interval time.Duration
		ok       bool
	}{
		{5 * time.Second, false},
		{10 * time.Second, true},
		{300 * time.Second, true},
		{301 * time.Second, false},
	}
	for _, tt := range tests {
		err := s.SetAutoRefresh(true, tt.interval)
		if (err == nil) != tt.ok {
			t.Errorf("interval %s: expected ok=%v, got err=%v", tt.interval, tt.ok, err)
		}
	}
}

func TestDueForRefresh(t *testing.T) {
	s := New("d", t0, nil)
	if got := s.DueForRefresh(t0.Add(time.Hour), true); got != NotDue {
		t.Errorf("disabled: expected NotDue, got %s", got)
	}

	if err := s.SetAutoRefresh(true, 30*time.Second); err != nil {
		t.Fatal(err)
	}
	if got := s.DueForRefresh(t0.Add(10*time.Second), true); got != NotDue {
		t.Errorf("early: expected NotDue, got %s", got)
	}
	if got := s.DueForRefresh(t0.Add(40*time.Second), false); got != Paused {
		t.Errorf("closed market: expected Paused, got %s", got)
	}
	if !s.LastUpdate().Equal(t0) {
		t.Error("Paused must not move LastUpdate")
	}
	later := t0.Add(45 * time.Second)
	if got := s.DueForRefresh(later, true); got != Refresh {
		t.Errorf("expected Refresh, got %s", got)
	}
	if !s.LastUpdate().Equal(later) {
		t.Errorf("expected LastUpdate %s, got %s", later, s.LastUpdate())
	}
	if got := s.DueForRefresh(later.Add(time.Second), true); got != NotDue {
		t.Errorf("just refreshed: expected NotDue, got %s", got)
	}
}

func TestSelect(t *testing.T) {
	s := New("s", t0, nil)
	data := &model.StockData{Symbol: "AAPL"}
	at := t0.Add(time.Minute)
	s.Select(data, at)
	if s.Selected() != data {
		t.Error("expected selection to be stored")
	}
	if !s.LastUpdate().Equal(at) {
		t.Error("Select should stamp LastUpdate")
	}
}

func TestReplace(t *testing.T) {
	s := New("s", t0, nil)
	first := &model.StockData{Symbol: "AAPL"}
	s.Select(first, t0)

	fresh := &model.StockData{Symbol: "AAPL", Price: 2}
	if !s.Replace(first, fresh, t0.Add(time.Minute)) || s.Selected() != fresh {
		t.Fatal("expected Replace to swap while the selection is unchanged")
	}

	other := &model.StockData{Symbol: "MSFT"}
	s.Select(other, t0.Add(2*time.Minute))
	if s.Replace(fresh, &model.StockData{Symbol: "AAPL"}, t0.Add(3*time.Minute)) {
		t.Error("Replace should refuse once another stock is selected")
	}
	if s.Selected() != other || !s.LastUpdate().Equal(t0.Add(2*time.Minute)) {
		t.Error("refused Replace must leave the selection and LastUpdate alone")
	}
}
