package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/line"
	"github.com/Zachkp/portfolio/internal/render"
)

var (
	cfg          = config.Load()
	templateGlob string

	anchorsFile    string
	viewportHeight float64
	outputFile     string
	progressValue  float64
	scrollY        float64
	documentHeight float64
)

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Portfolio site and its scroll-drawn progress line",
	Long: `portfolio serves the personal portfolio site, including the API that
keeps the decorative progress line in step with the page.

The line subcommands run the same path builder and scroll mapper offline.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cfg)
		if err != nil {
			return err
		}
		defer a.close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		go a.run(ctx)

		initAdminToken()
		r := newRouter(a, templateGlob)

		errc := make(chan error, 1)
		go func() { errc <- r.Run(":" + cfg.Port) }()
		select {
		case err := <-errc:
			return err
		case <-ctx.Done():
			log.Println("Shutting down")
			return nil
		}
	},
}

var lineCmd = &cobra.Command{
	Use:   "line",
	Short: "Build, map and render the progress line offline",
}

var lineBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Print the built path for a set of anchors as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := buildFromFiles()
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), p)
	},
}

var lineProgressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Print draw progress and tip position for a scroll offset",
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeJSON(cmd.OutOrStdout(), line.MapScroll(line.ScrollState{
			ScrollY:        scrollY,
			DocumentHeight: documentHeight,
			ViewportHeight: viewportHeight,
		}))
	},
}

var lineRenderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the path at a draw progress to SVG or PNG",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := buildFromFiles()
		if err != nil {
			return err
		}
		rv := line.Reveal(progressValue, p)

		var w io.Writer = cmd.OutOrStdout()
		format := "svg"
		if outputFile != "" {
			f, err := os.Create(outputFile)
			if err != nil {
				return fmt.Errorf("create output file %q: %w", outputFile, err)
			}
			defer f.Close()
			w = f
			format = renderFile(outputFile)
		}

		if format == "png" {
			err = render.PNG(w, p, rv, render.Options{Background: "#ffffff"})
		} else {
			err = render.SVG(w, p, rv, render.Options{})
		}
		if err != nil {
			return err
		}
		if outputFile != "" {
			log.Printf("Line rendered to %s", outputFile)
		}
		return nil
	},
}

// readAnchors accepts either a list of anchors or an id keyed object.
func readAnchors(path string) (map[string]line.Anchor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read anchors file %q: %w", path, err)
	}

	var list []anchorInput
	if err := json.Unmarshal(data, &list); err != nil {
		var byID map[string]anchorInput
		if err := json.Unmarshal(data, &byID); err != nil {
			return nil, fmt.Errorf("parse anchors file %q: %w", path, err)
		}
		list = list[:0]
		for id, a := range byID {
			a.ID = id
			list = append(list, a)
		}
	}

	reg := line.NewRegistry()
	for _, a := range list {
		if err := a.validate(); err != nil {
			return nil, fmt.Errorf("anchors file %q: %w", path, err)
		}
		reg.Register(a.ID, a.X, a.Y)
	}
	return reg.Snapshot(), nil
}

func buildFromFiles() (line.Path, error) {
	if anchorsFile == "" {
		return line.Path{}, fmt.Errorf("--anchors is required")
	}
	anchors, err := readAnchors(anchorsFile)
	if err != nil {
		return line.Path{}, err
	}
	segments, err := line.LoadSegments(cfg.SegmentsFile)
	if err != nil {
		return line.Path{}, err
	}
	return line.Build(anchors, segments, viewportHeight), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfg.SegmentsFile, "segments", cfg.SegmentsFile, "segment configuration JSON (default: built-in page layout)")
	rootCmd.PersistentFlags().BoolVar(&cfg.Debug, "debug", cfg.Debug, "log line diagnostics")

	serveCmd.Flags().StringVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	serveCmd.Flags().StringVar(&cfg.DBPath, "db", cfg.DBPath, "anchor database path (empty disables persistence)")
	serveCmd.Flags().Float64Var(&cfg.ViewportHeight, "vh", cfg.ViewportHeight, "viewport height until a visitor reports one")
	serveCmd.Flags().DurationVar(&cfg.FrameInterval, "frame", cfg.FrameInterval, "minimum time between path rebuilds")
	serveCmd.Flags().DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "idle time before a visitor's line state is dropped")
	serveCmd.Flags().IntVar(&cfg.MaxSessions, "max-sessions", cfg.MaxSessions, "most visitor sessions kept in memory")
	serveCmd.Flags().StringVar(&templateGlob, "templates", "templates/*", "HTML template glob")

	lineCmd.PersistentFlags().Float64Var(&viewportHeight, "vh", config.DefaultViewportHeight, "viewport height")
	for _, c := range []*cobra.Command{lineBuildCmd, lineRenderCmd} {
		c.Flags().StringVarP(&anchorsFile, "anchors", "a", "", "anchors JSON file")
	}
	lineRenderCmd.Flags().Float64Var(&progressValue, "progress", 1, "draw progress in [0,1]")
	lineRenderCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file, .svg or .png (default: SVG on stdout)")
	lineProgressCmd.Flags().Float64Var(&scrollY, "scroll", 0, "scroll offset")
	lineProgressCmd.Flags().Float64Var(&documentHeight, "doc", 0, "natural document height")

	lineCmd.AddCommand(lineBuildCmd, lineProgressCmd, lineRenderCmd)
	rootCmd.AddCommand(serveCmd, lineCmd)
}
