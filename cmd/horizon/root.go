// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tomtom215/horizon/internal/canvas"
	"github.com/tomtom215/horizon/internal/client"
	"github.com/tomtom215/horizon/internal/config"
	"github.com/tomtom215/horizon/internal/graph"
	"github.com/tomtom215/horizon/internal/layout"
	"github.com/tomtom215/horizon/internal/logging"
	"github.com/tomtom215/horizon/internal/resolve"
	"github.com/tomtom215/horizon/internal/store"
	"github.com/tomtom215/horizon/internal/world"
)

// Default screen the CLI pretends to draw on.
const (
	defaultWidth  = 1280
	defaultHeight = 800
)

type rootOptions struct {
	configPath string
	storePath  string
	memory     bool
	apiURL     string
	offline    bool
	noEdges    bool
	verbose    bool
	width      float64
	height     float64
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "horizon",
		Short: "Horizon: a canvas of your interests",
		Long: brand.Sprint("horizon") + " keeps a map of interests and the links between them\n" +
			subtle.Sprint("Add interests, let the API connect them, and explore recommendations"),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate("horizon {{ .Version }}\n")

	f := root.PersistentFlags()
	f.StringVar(&opts.configPath, "config", "", "config file (default $CONFIG_PATH or ./config.yaml)")
	f.StringVar(&opts.storePath, "store", "", "world directory (default <user config dir>/horizon/world)")
	f.BoolVar(&opts.memory, "memory", false, "keep the world in memory only")
	f.StringVar(&opts.apiURL, "api", "", "Horizon API base URL (overrides client.base_url)")
	f.BoolVar(&opts.offline, "offline", false, "never call the API; use local fallbacks")
	f.BoolVar(&opts.noEdges, "no-edges", false, "skip edge resolution after changes")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging to stderr")
	f.Float64Var(&opts.width, "width", defaultWidth, "screen width used for placement and rendering")
	f.Float64Var(&opts.height, "height", defaultHeight, "screen height used for placement and rendering")

	root.AddCommand(
		addCmd(opts),
		removeCmd(opts),
		listCmd(opts),
		moveCmd(opts),
		selectCmd(opts),
		layoutCmd(opts),
		edgesCmd(opts),
		renderCmd(opts),
		recommendCmd(opts),
		videosCmd(opts),
		profileCmd(opts),
		themeCmd(opts),
		viewCmd(opts),
	)
	return root
}

// session is one command's view of the persisted world.
type session struct {
	cfg   *config.Config
	kv    store.KV
	world *world.World
	api   *client.Client
	opts  *rootOptions
	out   io.Writer
}

// withSession opens the world, runs fn and closes everything again.
func withSession(cmd *cobra.Command, opts *rootOptions, fn func(ctx context.Context, s *session) error) error {
	s, err := openSession(cmd.Context(), opts, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer s.close()
	return fn(cmd.Context(), s)
}

func openSession(ctx context.Context, opts *rootOptions, out io.Writer) (*session, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	logCfg := cfg.Logging.Logger()
	logCfg.Format = "console"
	logCfg.Level = "warn"
	if opts.verbose {
		logCfg.Level = "debug"
	}
	logging.Init(logCfg)

	storeCfg := cfg.Store.Store()
	switch {
	case opts.memory:
		storeCfg = store.Config{InMemory: true}
	case opts.storePath != "":
		storeCfg.Path = opts.storePath
	case storeCfg.Path == "" && !storeCfg.InMemory:
		if storeCfg.Path, err = defaultStorePath(); err != nil {
			return nil, err
		}
	}
	kv, err := store.Open(storeCfg)
	if err != nil {
		return nil, fmt.Errorf("open world store: %w", err)
	}

	s := &session{cfg: cfg, kv: kv, opts: opts, out: out}

	wopts := world.Options{
		Store:         kv,
		Layout:        layout.NewEngine(cfg.Layout.Engine(), nil),
		Viewport:      cfg.Canvas.Viewport(),
		DragThreshold: cfg.Canvas.DragThreshold,
		Geometry:      cfg.Canvas.Geometry(),
		Resolve:       cfg.Edges.Resolver(),
		ViewportOptions: []canvas.Option{
			canvas.WithSize(opts.width, opts.height),
		},
	}
	if !opts.offline {
		baseURL := cfg.Client.BaseURL
		if opts.apiURL != "" {
			baseURL = opts.apiURL
		}
		s.api = client.New(baseURL, cfg.Client.Timeout)
		wopts.Edges = s.api
		wopts.Recommender = s.api
	}

	w, err := world.Load(ctx, wopts)
	if err != nil {
		_ = kv.Close()
		return nil, fmt.Errorf("load world: %w", err)
	}
	s.world = w
	return s, nil
}

func (s *session) close() {
	s.world.Close()
	if gc, ok := s.kv.(store.GCRunner); ok {
		if err := gc.RunGC(); err != nil {
			logging.Debug().Err(err).Msg("World store GC failed")
		}
	}
	if err := s.kv.Close(); err != nil {
		logging.Warn().Err(err).Msg("Failed to close world store")
	}
}

// resolveEdges re-links the graph after a change unless --no-edges is set.
func (s *session) resolveEdges(ctx context.Context) {
	if s.opts.noEdges {
		return
	}
	res := s.world.ResolveEdges(ctx)
	s.printResolution(res)
}

func (s *session) printResolution(res resolve.Result) {
	switch {
	case res.Stale:
		_, _ = warn.Fprintln(s.out, "  edges: superseded")
	case res.Fallback:
		_, _ = fmt.Fprintf(s.out, "  %s %d edges %s\n", info.Sprint("↔"), len(res.Edges), subtle.Sprint("(local fallback)"))
	default:
		_, _ = fmt.Fprintf(s.out, "  %s %d edges\n", info.Sprint("↔"), len(res.Edges))
	}
}

func defaultStorePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "horizon", "world"), nil
}

// lookupNode accepts a node id or a label (case-insensitive).
func (s *session) lookupNode(ref string) (string, bool) {
	if n, ok := s.world.Node(ref); ok {
		return n.ID, true
	}
	for _, n := range s.world.Nodes() {
		if graph.FoldLabel(n.Label) == graph.FoldLabel(ref) {
			return n.ID, true
		}
	}
	return "", false
}
