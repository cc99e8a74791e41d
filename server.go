package main

import (
	"context"
	"net/http"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/google/uuid"
	"github.com/segmentio/encoding/json"

	"rrt-planner/planner"
)

// RouteRequest asks for a path on a grid. Fields left out take their value
// from the server configuration.
type RouteRequest struct {
	Height        *int             `json:"height,omitempty"`
	Width         *int             `json:"width,omitempty"`
	Obstacles     []ObstacleConfig `json:"obstacles,omitempty"`
	Start         *planner.Point   `json:"start,omitempty"`
	Goal          *planner.Point   `json:"goal,omitempty"`
	StepSize      *int             `json:"stepSize,omitempty"`
	GoalRadius    *int             `json:"goalRadius,omitempty"`
	MaxIterations *int             `json:"maxIterations,omitempty"`
	Seed          *uint64          `json:"seed,omitempty"`
	Nearest       string           `json:"nearest,omitempty"`
}

// RouteResponse carries the path from start to goal, both inclusive.
type RouteResponse struct {
	SearchID   string          `json:"searchId"`
	Path       []planner.Point `json:"path"`
	Success    bool            `json:"success"`
	Message    string          `json:"message,omitempty"`
	Waypoints  int             `json:"waypoints"`
	Iterations int             `json:"iterations"`
	TreeNodes  int             `json:"treeNodes"`
	Distance   float64         `json:"distance,omitempty"`

	// Obstacles are the de-duplicated obstacles the search ran against.
	Obstacles []ObstacleConfig `json:"obstacles,omitempty"`
}

// apply overlays the request on a copy of the configuration.
func (req RouteRequest) apply(conf Config) Config {
	if req.Height != nil {
		conf.Grid.Height = *req.Height
	}
	if req.Width != nil {
		conf.Grid.Width = *req.Width
	}
	if req.Obstacles != nil {
		conf.Grid.Obstacles = req.Obstacles
	}
	if req.Start != nil {
		conf.Search.Start = *req.Start
	}
	if req.Goal != nil {
		conf.Search.Goal = *req.Goal
	}
	if req.StepSize != nil {
		conf.Search.StepSize = *req.StepSize
	}
	if req.GoalRadius != nil {
		conf.Search.GoalRadius = *req.GoalRadius
	}
	if req.MaxIterations != nil {
		conf.Search.MaxIterations = *req.MaxIterations
	}
	if req.Seed != nil {
		conf.Search.Seed = req.Seed
	}
	if req.Nearest != "" {
		conf.Search.Nearest = req.Nearest
	}
	return conf
}

// routeServer answers route requests. Every request gets its own planner, so
// requests run independently.
type routeServer struct {
	conf Config
}

func newRouteServer(conf Config) *routeServer {
	return &routeServer{conf: conf}
}

// Handler returns the public routes.
func (s *routeServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/route", corsMiddleware(s.handleRoute))
	mux.HandleFunc("/health", corsMiddleware(handleHealth))
	return mux
}

// corsMiddleware adds CORS headers to allow frontend requests
func corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

// POST /route - Search a path with the RRT planner
func (s *routeServer) handleRoute(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	searchID := uuid.NewString()

	var req RouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logs.WithTag("search_id", searchID).Warn(errors.New("invalid route request").Wrap(err))
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	conf := req.apply(s.conf)
	p, err := conf.NewPlanner()
	if err != nil {
		logs.WithTag("search_id", searchID).Warn(err)
		writeJSON(w, http.StatusBadRequest, RouteResponse{
			SearchID: searchID,
			Message:  err.Error(),
		})
		return
	}

	logs.WithTag("search_id", searchID).
		WithTag("start", conf.Search.Start).
		WithTag("goal", conf.Search.Goal).
		WithTag("obstacles", len(p.Grid().Obstacles())).
		Info("route request received")

	ctx, cancel := context.WithTimeout(r.Context(), s.conf.Server.SearchTimeout)
	defer cancel()

	path, err := searchWithMetrics(ctx, p)
	stats := p.Stats()

	res := RouteResponse{
		SearchID:   searchID,
		Path:       path,
		Success:    err == nil,
		Waypoints:  len(path),
		Iterations: stats.Iterations,
		TreeNodes:  stats.TreeNodes,
		Distance:   planner.PathLength(path),
		Obstacles:  obstacleConfigs(p.Grid().Obstacles()),
	}
	if res.Path == nil {
		res.Path = []planner.Point{}
	}

	if err != nil {
		logs.WithTag("search_id", searchID).Warn(err)
		res.Message = "No path found"
	} else {
		logs.WithTag("search_id", searchID).
			WithTag("waypoints", res.Waypoints).
			WithTag("iterations", res.Iterations).
			WithTag("tree_nodes", res.TreeNodes).
			Info("path found")
	}

	writeJSON(w, http.StatusOK, res)
}

// GET /health - Health check endpoint
func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logs.Warn(errors.New("encoding response failed").Wrap(err))
	}
}
