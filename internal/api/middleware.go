package api

import (
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
	"time"

	"StockTerminal/internal/metrics"
	"StockTerminal/internal/session"

	"github.com/labstack/echo/v4"
)

// HeaderSessionID carries the session id in both directions.
const HeaderSessionID = "X-Session-ID"

const sessionKey = "session"

// Recover turns handler panics into a 500 response.
func Recover() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				if r := recover(); r != nil {
					err, ok := r.(error)
					if !ok {
						err = fmt.Errorf("%v", r)
					}
					log.Printf("[ERROR] panic: %v\n%s", err, debug.Stack())
					_ = DataResponse(c, http.StatusInternalServerError, nil)
				}
			}()
			return next(c)
		}
	}
}

// RequestLogging logs every request with its status and latency.
func RequestLogging() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			start := time.Now()

			err := next(c)

			log.Printf("[INFO] %s %s - %d (%s)", req.Method, req.RequestURI, c.Response().Status, time.Since(start))
			return err
		}
	}
}

// RequestMetrics observes request latency by route template.
func RequestMetrics(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			m.ObserveRequest(c.Path(), c.Request().Method, c.Response().Status, time.Since(start).Seconds())
			return err
		}
	}
}

// SessionContext resolves the caller's session from HeaderSessionID, creating one
// when the header is missing or unknown, and echoes the id back. A malformed id
// is replaced by a fresh one.
func SessionContext(store *session.Store, m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(HeaderSessionID)
			if !session.ValidID(id) {
				id = ""
			}
			st, created := store.Get(id)
			if created {
				m.SetSessions(store.Len())
			}
			c.Response().Header().Set(HeaderSessionID, st.ID())
			c.Set(sessionKey, st)
			return next(c)
		}
	}
}

func sessionFrom(c echo.Context) *session.State {
	st, _ := c.Get(sessionKey).(*session.State)
	return st
}
