package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"github.com/zyedidia/generic/mapset"

	"github.com/Tim4270/ProceduralGenerationTools/pkg/config"
	"github.com/Tim4270/ProceduralGenerationTools/pkg/engine/world"
	"github.com/Tim4270/ProceduralGenerationTools/pkg/generator"
)

// MaxServeSize caps the width and height a request may ask for
const MaxServeSize = 200

const shutdownTimeout = 5 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve dungeon generation over HTTP",
		Long: `Serve runs an HTTP server with two endpoints:

  GET /dungeon?seed=&width=&height=&strategy=&format=text|json
  GET /healthz

Missing parameters fall back to the settings file.`,
		Example: `  procgen serve --addr :8080
  curl 'localhost:8080/dungeon?seed=7&format=json'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), addr, a.cfg)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}

func runServe(ctx context.Context, addr string, cfg config.File) error {
	logger := loggerFromContext(ctx)
	srv := &http.Server{
		Addr:              addr,
		Handler:           newRouter(logger, cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// newRouter builds the HTTP API. cfg supplies the defaults for missing
// query parameters.
func newRouter(logger *log.Logger, cfg config.File) http.Handler {
	h := &dungeonHandler{logger: logger, cfg: cfg, formats: mapset.New[string]()}
	h.formats.Put("text")
	h.formats.Put("json")

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprint(w, "ok")
	})
	r.Get("/dungeon", h.serveDungeon)
	return r
}

type dungeonHandler struct {
	logger  *log.Logger
	cfg     config.File
	formats mapset.Set[string]
}

// dungeonRequest is a parsed /dungeon query
type dungeonRequest struct {
	seed   int64
	width  int
	height int
	format string
	gen    generator.Config
}

type dungeonResponse struct {
	RunID       string           `json:"run_id"`
	Seed        int64            `json:"seed"`
	Width       int              `json:"width"`
	Height      int              `json:"height"`
	Strategy    string           `json:"strategy"`
	Leaves      int              `json:"leaves"`
	RoomsPlaced int              `json:"rooms_placed"`
	Corridors   int              `json:"corridors"`
	Rooms       []generator.Room `json:"rooms"`
	Rows        []string         `json:"rows"`
}

func (h *dungeonHandler) parse(r *http.Request) (dungeonRequest, error) {
	q := r.URL.Query()
	req := dungeonRequest{
		seed:   h.cfg.Seed,
		width:  h.cfg.Grid.Width,
		height: h.cfg.Grid.Height,
		format: "text",
		gen:    h.cfg.Generation,
	}

	var err error
	if v := q.Get("seed"); v != "" {
		if req.seed, err = strconv.ParseInt(v, 10, 64); err != nil {
			return req, fmt.Errorf("seed must be an integer")
		}
	}
	if v := q.Get("width"); v != "" {
		if req.width, err = strconv.Atoi(v); err != nil {
			return req, fmt.Errorf("width must be an integer")
		}
	}
	if v := q.Get("height"); v != "" {
		if req.height, err = strconv.Atoi(v); err != nil {
			return req, fmt.Errorf("height must be an integer")
		}
	}
	if req.width < 1 || req.width > MaxServeSize || req.height < 1 || req.height > MaxServeSize {
		return req, fmt.Errorf("width and height must be between 1 and %d", MaxServeSize)
	}
	if v := q.Get("strategy"); v != "" {
		if req.gen.Strategy, err = generator.ParseStrategy(v); err != nil {
			return req, err
		}
	}
	if v := q.Get("format"); v != "" {
		req.format = strings.ToLower(v)
		if !h.formats.Has(req.format) {
			return req, fmt.Errorf("format must be text or json")
		}
	}
	return req, nil
}

func (h *dungeonHandler) serveDungeon(w http.ResponseWriter, r *http.Request) {
	req, err := h.parse(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rng := newSource(req.seed)
	logger := h.logger.With("request_id", middleware.GetReqID(r.Context()))
	grid := world.NewGrid(req.width, req.height)

	res, err := generator.NewBSP(req.gen, rng, generator.WithLogger(logger)).Generate(r.Context(), grid, grid)
	if err != nil {
		if res.Cancelled {
			logger.Warn("request cancelled", "err", err)
			return
		}
		logger.Error("generation failed", "err", err)
		http.Error(w, "generation failed", http.StatusInternalServerError)
		return
	}

	if req.format == "json" {
		w.Header().Set("Content-Type", "application/json")
		err := json.NewEncoder(w).Encode(dungeonResponse{
			RunID:       res.RunID,
			Seed:        rng.Seed(),
			Width:       req.width,
			Height:      req.height,
			Strategy:    req.gen.Strategy.String(),
			Leaves:      res.Leaves,
			RoomsPlaced: res.RoomsPlaced,
			Corridors:   res.Corridors,
			Rooms:       res.Rooms,
			Rows:        grid.Rows(),
		})
		if err != nil {
			logger.Warn("failed to write response", "err", err)
		}
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Run-Id", res.RunID)
	w.Header().Set("X-Seed", strconv.FormatInt(rng.Seed(), 10))
	for _, row := range grid.Rows() {
		if _, err := fmt.Fprintln(w, row); err != nil {
			logger.Warn("failed to write response", "err", err)
			return
		}
	}
}
