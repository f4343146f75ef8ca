package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/line"
	"github.com/Zachkp/portfolio/internal/store"
)

// app owns the line state shared by every request.
type app struct {
	cfg      config.Config
	segments []line.Segment
	sessions *sessionManager
	store    *store.AnchorStore
}

const (
	sweepInterval = time.Minute
	// rebuildRetention bounds the rebuild history the sweep keeps.
	rebuildRetention = 24 * time.Hour
)

// newApp loads the segment configuration and opens the anchor store. An
// empty DBPath runs without persistence.
func newApp(cfg config.Config) (*app, error) {
	if cfg.Debug {
		line.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	segments, err := line.LoadSegments(cfg.SegmentsFile)
	if err != nil {
		return nil, fmt.Errorf("load segments: %w", err)
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = config.DefaultSessionTTL
	}

	a := &app{
		cfg:      cfg,
		segments: segments,
	}

	if cfg.DBPath != "" {
		a.store, err = store.Open(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		stats, err := a.store.Stats()
		if err != nil {
			a.store.Close()
			return nil, fmt.Errorf("read anchor store: %w", err)
		}
		log.Printf("Anchor store %s holds %d anchors across %d sessions", cfg.DBPath, stats.Anchors, stats.Sessions)
	}

	a.sessions = newSessionManager(segments, cfg.ViewportHeight, cfg.FrameInterval, cfg.SessionTTL, cfg.MaxSessions, a.store)
	return a, nil
}

// run closes idle sessions and prunes stored history until ctx is done.
// Path rebuilds run in each session's own frame loop.
func (a *app) run(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			a.sweep(now)
		}
	}
}

// sweep evicts sessions idle past the TTL, drops their stored anchors once
// the session cookie has expired too, and trims the rebuild history.
func (a *app) sweep(now time.Time) {
	if n := a.sessions.evict(now); n > 0 {
		log.Printf("Closed %d idle line sessions", n)
	}
	if a.store == nil {
		return
	}
	if _, err := a.store.PruneAnchors(a.cfg.SessionTTL); err != nil {
		log.Printf("Error pruning anchors: %v", err)
	}
	if _, err := a.store.PruneRebuilds(rebuildRetention); err != nil {
		log.Printf("Error pruning rebuilds: %v", err)
	}
}

func (a *app) close() {
	a.sessions.close()
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			log.Printf("Error closing store: %v", err)
		}
	}
}

// newRouter wires the page, the line API and the admin routes. An empty
// templateGlob skips HTML templates.
func newRouter(a *app, templateGlob string) *gin.Engine {
	r := gin.Default()
	if templateGlob != "" {
		r.LoadHTMLGlob(templateGlob)
	}
	r.Static("/static", "./static")

	// Home page route
	r.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", gin.H{
			"sections":     Sections,
			"zoneFraction": line.ZoneFraction,
			"segmentCount": len(a.segments),
		})
	})

	setupLineRoutes(r, a)
	setupAdminRoutes(r, a)
	return r
}
