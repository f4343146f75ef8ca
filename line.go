package main

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/line"
	"github.com/Zachkp/portfolio/internal/render"
)

type anchorInput struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

type measureInput struct {
	ViewportWidth  float64            `json:"viewportWidth"`
	ViewportHeight float64            `json:"viewportHeight"`
	Measurements   []line.Measurement `json:"measurements"`
}

// queryFloat parses an optional float query parameter.
func queryFloat(c *gin.Context, key string, def float64) (float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	return strconv.ParseFloat(raw, 64)
}

// pathFor returns a path reflecting every change the session has made, or a
// fresh build when the caller asks for a different viewport height.
func (s *session) pathFor(vh float64) line.Path {
	if vh <= 0 || vh == s.tracker.ViewportHeight() {
		return s.tracker.Current()
	}
	return line.Build(s.registry.Snapshot(), s.tracker.Segments(), vh)
}

func (in anchorInput) validate() error {
	if strings.TrimSpace(in.ID) == "" {
		return errors.New("anchor id must not be empty")
	}
	if err := line.CheckCoordinate("x", in.X); err != nil {
		return fmt.Errorf("anchor %q: %w", in.ID, err)
	}
	if err := line.CheckCoordinate("y", in.Y); err != nil {
		return fmt.Errorf("anchor %q: %w", in.ID, err)
	}
	return nil
}

func setupLineRoutes(r *gin.Engine, a *app) {
	api := r.Group("/api/line")

	api.GET("/anchors", func(c *gin.Context) {
		c.JSON(http.StatusOK, a.sessions.sessionFor(c).registry.Snapshot())
	})

	// Raw coordinates from elements that measure themselves
	api.POST("/anchors", func(c *gin.Context) {
		var in []anchorInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		for _, ai := range in {
			if err := ai.validate(); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}
		s := a.sessions.sessionFor(c)
		registered := make([]line.Anchor, 0, len(in))
		for _, ai := range in {
			registered = append(registered, s.registry.Register(ai.ID, ai.X, ai.Y))
		}
		c.JSON(http.StatusOK, gin.H{"registered": registered})
	})

	// Element measurements, resolved to viewport X and document Y. The
	// response carries the path built from them.
	api.POST("/measure", func(c *gin.Context) {
		var in measureInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		for i := range in.Measurements {
			if in.Measurements[i].ViewportWidth == 0 {
				in.Measurements[i].ViewportWidth = in.ViewportWidth
			}
			if err := in.Measurements[i].Validate(); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}
		if in.ViewportHeight != 0 {
			if err := line.CheckCoordinate("viewportHeight", in.ViewportHeight); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}
		s := a.sessions.sessionFor(c)
		registered := make([]line.Anchor, 0, len(in.Measurements))
		for _, m := range in.Measurements {
			anchor, err := s.registry.Measure(m)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			registered = append(registered, anchor)
		}
		s.tracker.SetViewportHeight(in.ViewportHeight)
		c.JSON(http.StatusOK, gin.H{
			"registered": registered,
			"path":       s.tracker.Current(),
		})
	})

	api.DELETE("/anchors/:id", func(c *gin.Context) {
		err := a.sessions.sessionFor(c).registry.Unregister(c.Param("id"))
		if errors.Is(err, line.ErrUnknownAnchor) {
			c.JSON(http.StatusNotFound, gin.H{"error": "anchor not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "anchor removed"})
	})

	api.GET("/segments", func(c *gin.Context) {
		c.JSON(http.StatusOK, a.segments)
	})

	api.GET("/path", func(c *gin.Context) {
		vh, err := queryFloat(c, "vh", 0)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vh"})
			return
		}
		c.JSON(http.StatusOK, a.sessions.sessionFor(c).pathFor(vh))
	})

	api.GET("/progress", func(c *gin.Context) {
		var s line.ScrollState
		var err error
		if s.ScrollY, err = queryFloat(c, "scrollY", 0); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid scrollY"})
			return
		}
		if s.DocumentHeight, err = queryFloat(c, "documentHeight", 0); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid documentHeight"})
			return
		}
		if s.ViewportHeight, err = queryFloat(c, "viewportHeight", 0); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid viewportHeight"})
			return
		}

		progress := line.MapScroll(s)
		c.JSON(http.StatusOK, gin.H{
			"progress": progress,
			"reveal":   line.Reveal(progress.Progress, a.sessions.sessionFor(c).pathFor(s.ViewportHeight)),
		})
	})

	r.GET("/line.svg", func(c *gin.Context) { renderLine(c, a.sessions.sessionFor(c), "svg") })
	r.GET("/line.png", func(c *gin.Context) { renderLine(c, a.sessions.sessionFor(c), "png") })
}

func renderLine(c *gin.Context, s *session, format string) {
	progress, err := queryFloat(c, "progress", 1)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid progress"})
		return
	}
	vh, err := queryFloat(c, "vh", 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vh"})
		return
	}

	p := s.pathFor(vh)
	rv := line.Reveal(progress, p)
	opts := render.Options{Background: c.Query("bg")}

	switch format {
	case "png":
		c.Header("Content-Type", "image/png")
		err = render.PNG(c.Writer, p, rv, opts)
	default:
		c.Header("Content-Type", "image/svg+xml")
		err = render.SVG(c.Writer, p, rv, opts)
	}
	if err != nil {
		c.Error(err)
		c.Status(http.StatusInternalServerError)
	}
}

// renderFile picks the renderer from the output file's extension.
func renderFile(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".png") {
		return "png"
	}
	return "svg"
}
