package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"StockTerminal/internal/collector"
	"StockTerminal/internal/markethours"
	"StockTerminal/internal/metrics"
	"StockTerminal/internal/model"
	"StockTerminal/internal/recorder"
	"StockTerminal/internal/session"

	"github.com/robfig/cron/v3"
)

// Scheduler manages the cron tasks: the auto-refresh tick and the idle-session reaper.
type Scheduler struct {
	Cron        *cron.Cron
	Collector   *collector.Collector
	Sessions    *session.Store
	Recorder    recorder.Recorder
	Metrics     *metrics.Metrics
	IdleTimeout time.Duration
	Ctx         context.Context

	// Overridable in tests.
	Now        func() time.Time
	MarketOpen func(time.Time) bool

	mu     sync.Mutex
	paused map[string]bool
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, store *session.Store, rec recorder.Recorder, idle time.Duration) *Scheduler {
	return &Scheduler{
		Cron:        cron.New(cron.WithSeconds()),
		Collector:   col,
		Sessions:    store,
		Recorder:    rec,
		IdleTimeout: idle,
		Ctx:         ctx,
		Now:         time.Now,
		MarketOpen:  markethours.IsOpen,
		paused:      make(map[string]bool),
	}
}

// RegisterAll registers the refresh tick and the session reaper.
func (s *Scheduler) RegisterAll(tickCron, reapCron string) error {
	if _, err := s.Cron.AddFunc(tickCron, s.tick); err != nil {
		return fmt.Errorf("register refresh tick: %w", err)
	}
	if _, err := s.Cron.AddFunc(reapCron, s.reap); err != nil {
		return fmt.Errorf("register session reaper: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunTickNow executes one refresh tick immediately and returns how many sessions were refreshed.
func (s *Scheduler) RunTickNow() int {
	return s.runTick()
}

func (s *Scheduler) tick() { s.runTick() }

func (s *Scheduler) runTick() int {
	now := s.Now()
	open := s.MarketOpen(now)
	refreshed := 0

	s.Sessions.Each(func(st *session.State) {
		sel := st.Selected()
		if sel == nil {
			return
		}
		decision := st.DueForRefresh(now, open)
		if decision != session.NotDue {
			s.Metrics.RecordDecision(decision.String())
		}
		switch decision {
		case session.Refresh:
			s.setPaused(st.ID(), false)
			if s.refresh(st, sel, now) {
				refreshed++
			}
		case session.Paused:
			if !s.setPaused(st.ID(), true) {
				log.Printf("[INFO] auto-refresh paused for session %s: market closed", st.ID())
			}
		}
	})
	return refreshed
}

// setPaused records the paused flag for id and returns the previous value.
func (s *Scheduler) setPaused(id string, paused bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.paused[id]
	if paused {
		s.paused[id] = true
	} else {
		delete(s.paused, id)
	}
	return prev
}

func (s *Scheduler) refresh(st *session.State, prev *model.StockData, now time.Time) bool {
	symbol := prev.Symbol
	data, series, err := s.Collector.Technical(s.Ctx, symbol)
	evt := &recorder.FetchEvent{
		Symbol:    symbol,
		SessionID: st.ID(),
		Source:    s.Collector.Fetcher.Name(),
		Trigger:   recorder.TriggerAuto,
	}
	if data != nil {
		evt.Bars = data.History.Len()
	}
	s.Metrics.RecordFetch(evt.Source, evt.Trigger, err)
	if err != nil {
		evt.Error = err.Error()
		s.recordFetch(evt)
		// data survives an indicator failure; keep the fresh prices.
		if data != nil {
			st.Replace(prev, data, now)
		}
		log.Printf("[ERROR] auto-refresh %s (session %s): %v", symbol, st.ID(), err)
		return false
	}
	s.recordFetch(evt)
	if !st.Replace(prev, data, now) {
		log.Printf("[INFO] auto-refresh %s (session %s): selection changed, result dropped", symbol, st.ID())
		return false
	}

	if snap, ok := recorder.SnapshotFrom(series, now); ok {
		if err := s.Recorder.RecordSnapshot(snap); err != nil {
			log.Printf("[ERROR] record snapshot %s: %v", symbol, err)
		}
	}
	return true
}

func (s *Scheduler) recordFetch(evt *recorder.FetchEvent) {
	if err := s.Recorder.RecordFetch(evt); err != nil {
		log.Printf("[ERROR] record fetch %s: %v", evt.Symbol, err)
	}
}

func (s *Scheduler) reap() {
	n := s.Sessions.Reap(s.Now(), s.IdleTimeout)

	live := make(map[string]bool)
	s.Sessions.Each(func(st *session.State) { live[st.ID()] = true })
	s.mu.Lock()
	for id := range s.paused {
		if !live[id] {
			delete(s.paused, id)
		}
	}
	s.mu.Unlock()
	s.Metrics.SetSessions(len(live))

	if n > 0 {
		log.Printf("[INFO] reaped %d idle sessions, %d live", n, s.Sessions.Len())
	}
}
