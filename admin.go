// admin.go - line diagnostics behind a cookie login
package main

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"log"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/line"
	"github.com/Zachkp/portfolio/internal/store"
)

// LineStats is what the dashboard shows about one visitor's line.
type LineStats struct {
	Session       string        `json:"session,omitempty"`
	Sessions      []string      `json:"sessions"`
	Anchors       []line.Anchor `json:"anchors"`
	Segments      int           `json:"segments"`
	DrawnSegments int           `json:"drawn_segments"`
	TotalLength   float64       `json:"total_length"`
	MinY          float64       `json:"min_y"`
	MaxY          float64       `json:"max_y"`
	Missing       []string      `json:"missing_anchors"`
	Rebuilds      int64         `json:"rebuilds"`
	Store         *store.Stats  `json:"store,omitempty"`
}

var adminToken string
var hashingSalt string

func initAdminToken() {
	adminToken = generateAdminToken()
	hashingSalt = generateAdminToken() // Use for IP hashing

	log.Printf("Admin access available at: /admin/login")
	if gin.Mode() == gin.DebugMode {
		log.Printf("Admin token (dev only): %s", adminToken)
	}
}

func generateAdminToken() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		log.Fatal("Failed to generate admin token:", err)
	}
	return hex.EncodeToString(bytes)
}

// Hash IP address so login attempts can be logged without storing it
func hashIP(ip string) string {
	hash := sha256.New()
	hash.Write([]byte(ip + hashingSalt))
	return hex.EncodeToString(hash.Sum(nil))[:16]
}

// Middleware to check admin authentication
func adminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("admin_token")
		if err != nil || adminToken == "" || subtle.ConstantTimeCompare([]byte(token), []byte(adminToken)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// missingAnchors lists configured anchor ids nobody has registered yet.
func missingAnchors(segments []line.Segment, anchors map[string]line.Anchor) []string {
	seen := make(map[string]bool)
	var missing []string
	for _, s := range segments {
		for _, id := range []string{s.From, s.To} {
			if _, ok := anchors[id]; ok || seen[id] {
				continue
			}
			seen[id] = true
			missing = append(missing, id)
		}
	}
	return missing
}

// adminSession picks the session named by the "session" query parameter,
// or the most recently seen one. It never opens a session.
func adminSession(c *gin.Context, a *app) (*session, bool) {
	if id := c.Query("session"); id != "" {
		return a.sessions.lookup(id)
	}
	return a.sessions.latest()
}

func getLineStats(a *app, s *session) (*LineStats, error) {
	stats := &LineStats{
		Sessions: a.sessions.ids(),
		Segments: len(a.segments),
	}
	if s != nil {
		snapshot := s.registry.Snapshot()
		p := s.tracker.Current()

		stats.Session = s.id
		stats.DrawnSegments = len(p.Segments)
		stats.TotalLength = p.TotalLength
		stats.MinY = p.MinY
		stats.MaxY = p.MaxY
		stats.Missing = missingAnchors(a.segments, snapshot)
		stats.Rebuilds = s.tracker.Rebuilds()
		for _, anchor := range snapshot {
			stats.Anchors = append(stats.Anchors, anchor)
		}
		sort.Slice(stats.Anchors, func(i, j int) bool { return stats.Anchors[i].ID < stats.Anchors[j].ID })
	} else {
		stats.Missing = missingAnchors(a.segments, nil)
	}

	if a.store != nil {
		storeStats, err := a.store.Stats()
		if err != nil {
			return nil, err
		}
		stats.Store = storeStats
	}
	return stats, nil
}

// Setup all admin routes
func setupAdminRoutes(r *gin.Engine, a *app) {
	// Admin login page
	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{
			"title": "Admin Login",
		})
	})

	// Admin login handler
	r.POST("/admin/login", func(c *gin.Context) {
		username := c.PostForm("username")
		password := c.PostForm("password")

		adminUsername := a.cfg.AdminUsername
		adminPassword := a.cfg.AdminPassword

		// Default credentials for development (remove in production)
		if adminUsername == "" {
			adminUsername = "admin"
			if gin.Mode() == gin.DebugMode {
				log.Println("WARNING: Using default admin username. Set ADMIN_USERNAME environment variable.")
			}
		}
		if adminPassword == "" {
			adminPassword = "admin123"
			if gin.Mode() == gin.DebugMode {
				log.Println("WARNING: Using default admin password. Set ADMIN_PASSWORD environment variable.")
			}
		}

		if subtle.ConstantTimeCompare([]byte(username), []byte(adminUsername)) == 1 &&
			subtle.ConstantTimeCompare([]byte(password), []byte(adminPassword)) == 1 {
			// Set secure cookie (24 hours)
			c.SetCookie("admin_token", adminToken, 3600*24, "/admin", "", false, true)
			log.Printf("Admin login successful from %s", hashIP(c.ClientIP()))
			c.Redirect(http.StatusFound, "/admin/dashboard")
		} else {
			log.Printf("Failed admin login attempt from %s", hashIP(c.ClientIP()))
			c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
				"error": "Invalid credentials",
			})
		}
	})

	// Admin logout
	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie("admin_token", "", -1, "/admin", "", false, true)
		log.Printf("Admin logout from %s", hashIP(c.ClientIP()))
		c.Redirect(http.StatusFound, "/admin/login")
	})

	// Protected admin routes group
	adminGroup := r.Group("/admin")
	adminGroup.Use(adminAuthMiddleware())

	adminGroup.GET("/dashboard", func(c *gin.Context) {
		sess, _ := adminSession(c, a)
		stats, err := getLineStats(a, sess)
		if err != nil {
			log.Printf("Error loading line stats: %v", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load statistics",
			})
			return
		}

		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"stats": stats,
		})
	})

	adminGroup.GET("/api/stats", func(c *gin.Context) {
		sess, _ := adminSession(c, a)
		stats, err := getLineStats(a, sess)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	// Preview of the selected session's line
	adminGroup.GET("/line.svg", func(c *gin.Context) {
		sess, ok := adminSession(c, a)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}
		renderLine(c, sess, "svg")
	})

	// Drop an anchor whose element no longer exists on the page
	adminGroup.DELETE("/anchors/:id", func(c *gin.Context) {
		sess, ok := adminSession(c, a)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}
		id := c.Param("id")
		if err := sess.registry.Unregister(id); errors.Is(err, line.ErrUnknownAnchor) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Anchor not found"})
			return
		}
		log.Printf("Anchor %s removed by admin from %s", id, hashIP(c.ClientIP()))
		c.JSON(http.StatusOK, gin.H{"message": "Anchor removed"})
	})

	// Drop rebuild history older than an hour, ahead of the periodic sweep
	adminGroup.POST("/rebuilds/prune", func(c *gin.Context) {
		if a.store == nil {
			c.JSON(http.StatusOK, gin.H{"message": "No store configured", "deleted": 0})
			return
		}
		n, err := a.store.PruneRebuilds(time.Hour)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Rebuild history pruned", "deleted": n})
	})

	adminGroup.GET("/export/stats", func(c *gin.Context) {
		sess, _ := adminSession(c, a)
		stats, err := getLineStats(a, sess)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.Header("Content-Type", "application/json")
		c.Header("Content-Disposition", "attachment; filename=line-stats.json")

		log.Printf("Line stats exported by %s", hashIP(c.ClientIP()))
		c.JSON(http.StatusOK, stats)
	})
}
