package api

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"StockTerminal/internal/collector"
	"StockTerminal/internal/markethours"
	"StockTerminal/internal/metrics"
	"StockTerminal/internal/model"
	"StockTerminal/internal/recorder"
	"StockTerminal/internal/report"
	"StockTerminal/internal/session"

	"github.com/labstack/echo/v4"
)

// History query bounds.
const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

// Handler serves the terminal's JSON API.
type Handler struct {
	Collector *collector.Collector
	Sessions  *session.Store
	Recorder  recorder.Recorder
	Metrics   *metrics.Metrics

	// Overridable in tests.
	Now        func() time.Time
	MarketOpen func(time.Time) bool
}

// NewHandler creates a Handler. rec and m may be nil.
func NewHandler(col *collector.Collector, store *session.Store, rec recorder.Recorder, m *metrics.Metrics) *Handler {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Handler{
		Collector:  col,
		Sessions:   store,
		Recorder:   rec,
		Metrics:    m,
		Now:        time.Now,
		MarketOpen: markethours.IsOpen,
	}
}

// RefreshRequest sets the caller's auto-refresh settings. Interval is a
// pointer so an omitted value takes the default while an explicit 0 is rejected.
type RefreshRequest struct {
	Enabled  bool `json:"enabled"`
	Interval *int `json:"interval" default:"60" validate:"min=10,max=300"` // seconds
}

// WatchlistRequest adds a symbol to the watchlist.
type WatchlistRequest struct {
	Symbol string `json:"symbol" validate:"required,max=15,printascii"`
}

// SessionView is the caller's session as returned by the API.
type SessionView struct {
	ID          string    `json:"id"`
	Watchlist   []string  `json:"watchlist"`
	Selected    string    `json:"selected,omitempty"`
	LastUpdate  time.Time `json:"last_update"`
	AutoRefresh bool      `json:"auto_refresh"`
	Interval    int       `json:"interval"`
}

// MarketStatus reports whether US equities are trading.
type MarketStatus struct {
	Open   bool   `json:"open"`
	Status string `json:"status"`
}

// RegisterRoutes mounts every route on e.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.healthz)
	e.GET("/metrics", echo.WrapHandler(h.Metrics.Handler()))

	g := e.Group("/api", SessionContext(h.Sessions, h.Metrics))
	g.GET("/session", h.getSession)
	g.DELETE("/session", h.deleteSession)

	g.GET("/stocks/:symbol", h.getStock)
	g.GET("/stocks/:symbol/technical", h.getTechnical)
	g.GET("/stocks/:symbol/report", h.getReport)

	g.GET("/overview", h.getOverview)
	g.GET("/categories", h.getCategories)
	g.GET("/market/status", h.getMarketStatus)

	g.GET("/watchlist", h.getWatchlist)
	g.POST("/watchlist", h.addWatchlist)
	g.DELETE("/watchlist/:symbol", h.removeWatchlist)

	g.GET("/refresh", h.getRefresh)
	g.PUT("/refresh", h.putRefresh)

	g.GET("/history/:symbol", h.getHistory)
}

func (h *Handler) healthz(c echo.Context) error {
	return SuccessResponse(c, map[string]interface{}{
		"status":   "ok",
		"source":   h.Collector.Fetcher.Name(),
		"sessions": h.Sessions.Len(),
	})
}

func (h *Handler) view(st *session.State) SessionView {
	ar := st.AutoRefresh()
	v := SessionView{
		ID:          st.ID(),
		Watchlist:   st.Watchlist(),
		LastUpdate:  st.LastUpdate(),
		AutoRefresh: ar.Enabled,
		Interval:    int(ar.Interval / time.Second),
	}
	if sel := st.Selected(); sel != nil {
		v.Selected = sel.Symbol
	}
	return v
}

func (h *Handler) getSession(c echo.Context) error {
	return SuccessResponse(c, h.view(sessionFrom(c)))
}

func (h *Handler) deleteSession(c echo.Context) error {
	h.Sessions.Drop(sessionFrom(c).ID())
	h.Metrics.SetSessions(h.Sessions.Len())
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) recordFetch(st *session.State, symbol string, data *model.StockData, err error) {
	evt := &recorder.FetchEvent{
		Symbol:    collector.NormalizeSymbol(symbol),
		SessionID: st.ID(),
		Source:    h.Collector.Fetcher.Name(),
		Trigger:   recorder.TriggerManual,
	}
	if data != nil {
		evt.Bars = data.History.Len()
	}
	if err != nil {
		evt.Error = err.Error()
	}
	h.Metrics.RecordFetch(evt.Source, evt.Trigger, err)
	if rerr := h.Recorder.RecordFetch(evt); rerr != nil {
		logRecordErr("fetch", evt.Symbol, rerr)
	}
}

func logRecordErr(kind, symbol string, err error) {
	log.Printf("[ERROR] record %s %s: %v", kind, symbol, err)
}

func (h *Handler) getStock(c echo.Context) error {
	st := sessionFrom(c)
	symbol := c.Param("symbol")
	data, err := h.Collector.StockData(c.Request().Context(), symbol)
	h.recordFetch(st, symbol, data, err)
	if err != nil {
		return ErrorResponse(c, err)
	}
	st.Select(data, h.Now())
	return SuccessResponse(c, data)
}

func (h *Handler) getTechnical(c echo.Context) error {
	st := sessionFrom(c)
	symbol := c.Param("symbol")
	data, series, err := h.Collector.Technical(c.Request().Context(), symbol)
	h.recordFetch(st, symbol, data, err)
	if data != nil {
		st.Select(data, h.Now())
	}
	if err != nil {
		return ErrorResponse(c, err)
	}
	if snap, ok := recorder.SnapshotFrom(series, h.Now()); ok {
		if err := h.Recorder.RecordSnapshot(snap); err != nil {
			logRecordErr("snapshot", snap.Symbol, err)
		}
	}
	return SuccessResponse(c, series)
}

func (h *Handler) getReport(c echo.Context) error {
	st := sessionFrom(c)
	symbol := c.Param("symbol")
	data, series, err := h.Collector.Technical(c.Request().Context(), symbol)
	h.recordFetch(st, symbol, data, err)
	if data == nil {
		return c.String(StatusFor(err), err.Error()+"\n")
	}
	// Indicator failures still leave a usable report.
	st.Select(data, h.Now())
	return c.String(http.StatusOK, report.Stock(data, series))
}

func (h *Handler) getOverview(c echo.Context) error {
	return SuccessResponse(c, h.Collector.MarketOverview(c.Request().Context()))
}

func (h *Handler) getCategories(c echo.Context) error {
	return SuccessResponse(c, model.CommonStocks)
}

func (h *Handler) getMarketStatus(c echo.Context) error {
	now := h.Now()
	return SuccessResponse(c, MarketStatus{
		Open:   h.MarketOpen(now),
		Status: markethours.Status(now),
	})
}

func (h *Handler) getWatchlist(c echo.Context) error {
	symbols := sessionFrom(c).Watchlist()
	prices := h.Collector.Prices(c.Request().Context(), symbols)
	type entry struct {
		Symbol string      `json:"symbol"`
		Price  model.Value `json:"price"`
	}
	out := make([]entry, 0, len(symbols))
	for _, s := range symbols {
		e := entry{Symbol: s}
		if p, ok := prices[s]; ok {
			e.Price = model.Defined(p)
		}
		out = append(out, e)
	}
	return SuccessResponse(c, out)
}

func (h *Handler) addWatchlist(c echo.Context) error {
	req := &WatchlistRequest{}
	if errs := ReadAndValidateRequest(c, req); errs != nil {
		return BadRequestResponse(c, errs)
	}
	st := sessionFrom(c)
	if !st.Add(req.Symbol) {
		return SuccessResponse(c, st.Watchlist())
	}
	return CreatedResponse(c, st.Watchlist())
}

func (h *Handler) removeWatchlist(c echo.Context) error {
	st := sessionFrom(c)
	if !st.Remove(c.Param("symbol")) {
		return NotFoundResponse(c, "symbol not in watchlist")
	}
	return SuccessResponse(c, st.Watchlist())
}

func (h *Handler) getRefresh(c echo.Context) error {
	ar := sessionFrom(c).AutoRefresh()
	secs := int(ar.Interval / time.Second)
	return SuccessResponse(c, RefreshRequest{Enabled: ar.Enabled, Interval: &secs})
}

func (h *Handler) putRefresh(c echo.Context) error {
	req := &RefreshRequest{}
	if errs := ReadAndValidateRequest(c, req); errs != nil {
		return BadRequestResponse(c, errs)
	}
	st := sessionFrom(c)
	if err := st.SetAutoRefresh(req.Enabled, time.Duration(*req.Interval)*time.Second); err != nil {
		return BadRequestResponse(c, []ValidationError{{Code: "ERR_RANGE", Field: "Interval", Message: err.Error()}})
	}
	return SuccessResponse(c, req)
}

func (h *Handler) getHistory(c echo.Context) error {
	symbol := collector.NormalizeSymbol(c.Param("symbol"))
	limit := defaultHistoryLimit
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return BadRequestResponse(c, []ValidationError{{Code: "ERR_MIN", Field: "limit", Message: "limit must be a positive integer"}})
		}
		if n > maxHistoryLimit {
			n = maxHistoryLimit
		}
		limit = n
	}
	snaps, err := h.Recorder.LatestSnapshots(symbol, limit)
	if err != nil {
		return DataResponse(c, http.StatusInternalServerError, err.Error())
	}
	if snaps == nil {
		snaps = []recorder.Snapshot{}
	}
	return SuccessResponse(c, snaps)
}
