package spectate

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/patrickmn/go-cache"
	"github.com/tifye/haunted/assert"
	"github.com/tifye/haunted/house"
	"github.com/tifye/haunted/results"
	"golang.org/x/time/rate"
)

const (
	tallyCacheKey   = "tally"
	tallyCacheTime  = 30 * time.Second
	requestsPerSec  = 20
	writeWaitPerMsg = 5 * time.Second
)

var (
	upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
)

type Snapshotter interface {
	Snapshot() house.Snapshot
}

type TallySource interface {
	Tally(ctx context.Context) (results.Tally, error)
}

type ServerDependencies struct {
	House Snapshotter
	Hub   *Hub
	// Optional, /tally responds 404 without it.
	Tally TallySource
}

func NewServer(logger *log.Logger, deps *ServerDependencies) *http.Server {
	assert.AssertNotNil(logger)
	assert.AssertNotNil(deps)
	assert.AssertNotNil(deps.House)
	assert.AssertNotNil(deps.Hub)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(requestsPerSec))))

	server := &http.Server{
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       25 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		ErrorLog:          logger.StandardLog(),
		MaxHeaderBytes:    1024,
	}

	registerRoutes(e, logger, deps)

	return server
}

func registerRoutes(e *echo.Echo, logger *log.Logger, deps *ServerDependencies) {
	e.GET("/house", handleGetHouse(deps.House))
	e.GET("/events", handleEventsConn(logger, deps.Hub))
	e.GET("/tally", handleGetTally(logger, deps.Tally, cache.New(tallyCacheTime, 2*tallyCacheTime)))
}

func handleGetHouse(h Snapshotter) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, h.Snapshot())
	}
}

func handleGetTally(logger *log.Logger, source TallySource, tallyCache *cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		if source == nil {
			return c.NoContent(http.StatusNotFound)
		}

		if cached, ok := tallyCache.Get(tallyCacheKey); ok {
			return c.JSON(http.StatusOK, cached)
		}

		tally, err := source.Tally(c.Request().Context())
		if err != nil {
			logger.Error("tally", "err", err)
			return c.NoContent(http.StatusInternalServerError)
		}
		tallyCache.Set(tallyCacheKey, tally, cache.DefaultExpiration)

		return c.JSON(http.StatusOK, tally)
	}
}

func handleEventsConn(logger *log.Logger, hub *Hub) echo.HandlerFunc {
	return func(c echo.Context) error {
		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			logger.Error(err)
			return err
		}
		defer conn.Close()

		id, msgs := hub.Register()
		defer hub.Unregister(id)

		logger.Info("Spectator connected", "id", id)

		go func() {
			for msg := range msgs {
				_ = conn.SetWriteDeadline(time.Now().Add(writeWaitPerMsg))
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					logger.Debug("ws write", "err", err, "id", id)
					return
				}
			}
		}()

		// Spectators only listen; reading detects the close.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				logger.Debug("ws read", "err", err, "id", id)
				break
			}
		}

		return nil
	}
}
