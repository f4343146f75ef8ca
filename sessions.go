// sessions.go - one anchor registry and path tracker per visitor
package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/line"
	"github.com/Zachkp/portfolio/internal/store"
)

const sessionCookie = "line_session"

// session is one browser's view of the page. Its page elements are the only
// writers of its anchors.
type session struct {
	id       string
	registry *line.Registry
	tracker  *line.Tracker
	stop     func()
	lastSeen atomic.Int64
}

func (s *session) touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

func (s *session) seen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

func (s *session) close() {
	s.stop()
}

// sessionManager hands out sessions by cookie and closes idle ones.
type sessionManager struct {
	mu       sync.Mutex
	sessions map[string]*session

	segments       []line.Segment
	viewportHeight float64
	frameInterval  time.Duration
	ttl            time.Duration
	limit          int
	store          *store.AnchorStore

	// ctx bounds every session's frame loop.
	ctx    context.Context
	cancel context.CancelFunc
}

func newSessionManager(segments []line.Segment, viewportHeight float64, frameInterval, ttl time.Duration, limit int, st *store.AnchorStore) *sessionManager {
	ctx, cancel := context.WithCancel(context.Background())
	return &sessionManager{
		sessions:       make(map[string]*session),
		segments:       segments,
		viewportHeight: viewportHeight,
		frameInterval:  frameInterval,
		ttl:            ttl,
		limit:          limit,
		store:          st,
		ctx:            ctx,
		cancel:         cancel,
	}
}

func newSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		log.Fatal("Failed to generate session id:", err)
	}
	return hex.EncodeToString(b)
}

func validSessionID(id string) bool {
	if len(id) != 32 {
		return false
	}
	_, err := hex.DecodeString(id)
	return err == nil
}

// sessionFor returns the caller's session, starting one and setting the
// cookie when the request carries none.
func (m *sessionManager) sessionFor(c *gin.Context) *session {
	id, err := c.Cookie(sessionCookie)
	if err != nil || !validSessionID(id) {
		id = newSessionID()
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, id, int(m.ttl/time.Second), "/", "", false, true)
	return m.get(id)
}

// get returns the live session for id, opening it if needed. Opening
// restores anything the store still holds for id.
func (m *sessionManager) get(id string) *session {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		s.touch(now)
		return s
	}
	if m.limit > 0 && len(m.sessions) >= m.limit {
		m.evictOldestLocked()
	}
	s := m.open(id)
	s.touch(now)
	m.sessions[id] = s
	return s
}

func (m *sessionManager) open(id string) *session {
	reg := line.NewRegistry()
	var unfollow func()
	if m.store != nil {
		if n, err := m.store.Restore(id, reg); err != nil {
			log.Printf("Error restoring anchors for session: %v", err)
		} else if n > 0 {
			log.Printf("Restored %d line anchors for a returning session", n)
		}
		unfollow = m.store.Follow(id, reg, func(err error) {
			log.Printf("Error persisting anchor: %v", err)
		})
	}

	tracker := line.NewTracker(reg, m.segments, m.viewportHeight)
	if m.store != nil {
		tracker.OnRebuild(func(p line.Path) {
			if err := m.store.RecordRebuild(p); err != nil {
				log.Printf("Error recording rebuild: %v", err)
			}
		})
	}

	ctx, cancel := context.WithCancel(m.ctx)
	go tracker.Run(ctx, m.frameInterval)

	return &session{
		id:       id,
		registry: reg,
		tracker:  tracker,
		stop: func() {
			cancel()
			tracker.Close()
			if unfollow != nil {
				unfollow()
			}
		},
	}
}

func (m *sessionManager) evictOldestLocked() {
	var oldest *session
	for _, s := range m.sessions {
		if oldest == nil || s.seen().Before(oldest.seen()) {
			oldest = s
		}
	}
	if oldest != nil {
		delete(m.sessions, oldest.id)
		oldest.close()
	}
}

// lookup returns a live session without opening or touching it.
func (m *sessionManager) lookup(id string) (*session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

// latest returns the most recently seen session.
func (m *sessionManager) latest() (*session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var newest *session
	for _, s := range m.sessions {
		if newest == nil || s.seen().After(newest.seen()) {
			newest = s
		}
	}
	return newest, newest != nil
}

// ids lists live session ids, most recently seen first.
func (m *sessionManager) ids() []string {
	m.mu.Lock()
	list := make([]*session, 0, len(m.sessions))
	for _, s := range m.sessions {
		list = append(list, s)
	}
	m.mu.Unlock()

	sort.Slice(list, func(i, j int) bool { return list[i].seen().After(list[j].seen()) })
	ids := make([]string, len(list))
	for i, s := range list {
		ids[i] = s.id
	}
	return ids
}

func (m *sessionManager) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// evict closes sessions not seen within the TTL before now and returns how
// many it closed. Their stored anchors stay until pruned.
func (m *sessionManager) evict(now time.Time) int {
	cutoff := now.Add(-m.ttl)

	m.mu.Lock()
	var idle []*session
	for id, s := range m.sessions {
		if s.seen().Before(cutoff) {
			idle = append(idle, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range idle {
		s.close()
	}
	return len(idle)
}

func (m *sessionManager) close() {
	m.mu.Lock()
	all := m.sessions
	m.sessions = make(map[string]*session)
	m.mu.Unlock()

	for _, s := range all {
		s.close()
	}
	m.cancel()
}
