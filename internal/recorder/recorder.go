package recorder

import (
	"time"

	"StockTerminal/internal/model"
)

// Trigger values for FetchEvent.
const (
	TriggerManual = "MANUAL"
	TriggerAuto   = "AUTO_REFRESH"
)

// Snapshot is the latest enriched bar of a symbol at the time it was fetched.
type Snapshot struct {
	Symbol     string             `json:"symbol"`
	RecordedAt time.Time          `json:"recorded_at"`
	BarTime    time.Time          `json:"bar_time"`
	Close      float64            `json:"close"`
	Volume     int64              `json:"volume"`
	Indicators model.IndicatorSet `json:"indicators"`
}

// SnapshotFrom builds a Snapshot from the most recent bar of s. ok is false for an empty series.
func SnapshotFrom(s model.EnrichedSeries, at time.Time) (snap *Snapshot, ok bool) {
	bar, ok := s.Latest()
	if !ok {
		return nil, false
	}
	return &Snapshot{
		Symbol:     s.Symbol,
		RecordedAt: at,
		BarTime:    bar.Time,
		Close:      bar.Close,
		Volume:     bar.Volume,
		Indicators: bar.Indicators,
	}, true
}

// FetchEvent records one data fetch, successful or not.
type FetchEvent struct {
	Symbol    string
	SessionID string
	Source    string // fetcher name
	Trigger   string // TriggerManual or TriggerAuto
	Bars      int
	Error     string
}

// Recorder persists historical data for analysis.
type Recorder interface {
	RecordSnapshot(snap *Snapshot) error
	RecordFetch(evt *FetchEvent) error
	LatestSnapshots(symbol string, limit int) ([]Snapshot, error)
	Close() error
}
