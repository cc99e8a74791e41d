package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/segmentio/encoding/json"
	"github.com/spf13/cobra"

	"rrt-planner/planner"
)

const (
	formatText    = "text"
	formatGeoJSON = "geojson"
)

// The rrt-planner version number. Set at build.
var version = "v0.1.0"

var (
	conf Config

	configFile    string
	obstaclesFile string
	outFile       string
	format        string
	seed          uint64
	nearest       string
	maxIterations int

	rootCmd = &cobra.Command{
		Use:   "rrt-planner",
		Short: "Find collision-free paths on a grid with a Rapidly-exploring Random Tree",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(cmd)
		},
		SilenceUsage: true,
	}

	planCmd = &cobra.Command{
		Use:   "plan",
		Short: "Search a path once and print it",
		RunE:  runPlan,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve route searches over HTTP",
		RunE:  runServe,
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Show version",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "YAML config file")

	planCmd.Flags().StringVar(&obstaclesFile, "obstacles", "", "GeoJSON file with extra obstacles")
	planCmd.Flags().StringVarP(&outFile, "out", "o", "", "write the path to a file instead of stdout")
	planCmd.Flags().StringVarP(&format, "format", "f", formatText, "output format (text|geojson)")

	for _, cmd := range []*cobra.Command{planCmd, serveCmd} {
		cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for reproducible sampling")
		cmd.Flags().StringVar(&nearest, "nearest", "", "nearest-neighbor strategy (linear|rtree)")
		cmd.Flags().IntVar(&maxIterations, "max-iterations", 0, "samples drawn before giving up")
	}

	rootCmd.AddCommand(planCmd, serveCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) error {
	c, err := LoadConfig(configFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		c.Search.Seed = &seed
	}
	if flags.Changed("nearest") {
		c.Search.Nearest = nearest
	}
	if flags.Changed("max-iterations") {
		c.Search.MaxIterations = maxIterations
	}
	if err := c.Validate(); err != nil {
		return err
	}

	logs.SetLevel(logs.ParseLevel(c.LogLevel))
	logs.Encoder = json.Marshal
	if c.LogIndent {
		logs.Encoder = func(v any) ([]byte, error) {
			return json.MarshalIndent(v, "", "  ")
		}
	}

	conf = c
	return nil
}

func runPlan(cmd *cobra.Command, args []string) error {
	var extra []planner.Obstacle
	if obstaclesFile != "" {
		obstacles, err := LoadObstaclesGeoJSON(obstaclesFile)
		if err != nil {
			return err
		}
		extra = obstacles
	}

	w := cmd.OutOrStdout()
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return errors.New("creating output file failed").
				WithTag("file", outFile).
				Wrap(err)
		}
		defer f.Close()
		w = f
	}

	return plan(cmd.Context(), w, conf, format, extra...)
}

// plan runs one search and writes the path in the given format.
func plan(ctx context.Context, w io.Writer, conf Config, format string, extra ...planner.Obstacle) error {
	if format != formatText && format != formatGeoJSON {
		return errors.New("unknown output format").WithTag("format", format)
	}

	p, err := conf.NewPlanner(extra...)
	if err != nil {
		return err
	}

	path, err := searchWithMetrics(ctx, p)
	if err != nil {
		return err
	}

	stats := p.Stats()
	logs.WithTag("waypoints", len(path)).
		WithTag("iterations", stats.Iterations).
		WithTag("tree_nodes", stats.TreeNodes).
		Info("path found")

	if format == formatGeoJSON {
		return WritePathGeoJSON(w, path, p.Grid().Obstacles())
	}
	return writePathText(w, path)
}

func writePathText(w io.Writer, path []planner.Point) error {
	if _, err := fmt.Fprintln(w, "Path from start to goal"); err != nil {
		return err
	}
	for _, p := range path {
		if _, err := fmt.Fprintf(w, "%d, %d\n", p.X, p.Y); err != nil {
			return err
		}
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var admin http.ServeMux
	admin.Handle("/metrics", promhttp.Handler())
	admin.HandleFunc("/health", handleHealth)

	logs.WithTag("version", version).
		WithTag("log_level", conf.LogLevel).
		WithTag("addr", conf.Server.Addr).
		WithTag("admin_addr", conf.Server.AdminAddr).
		Info("starting rrt-planner server")

	return serve(ctx,
		&http.Server{
			Addr:    conf.Server.Addr,
			Handler: newRouteServer(conf).Handler(),
		},
		&http.Server{
			Addr:    conf.Server.AdminAddr,
			Handler: &admin,
		},
	)
}
