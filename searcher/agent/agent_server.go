package agent

import (
	"encoding/json"
	"net/http"
	"sync"

	"twenty48/game"

	"github.com/rs/zerolog/log"
)

type Server struct {
	agent Agent
	mu    sync.Mutex // Guards rng, one search at a time
	rng   game.Rand
}

type bestMoveRequest struct {
	Cells []int `json:"cells"`
}

type bestMoveResponse struct {
	Direction  string `json:"direction,omitempty"`
	Legal      bool   `json:"legal"`
	Playouts   int    `json:"playouts"`
	DurationMs int64  `json:"durationMs"`
}

// NewServer returns an HTTP front end that answers best-move queries with a.
func NewServer(a Agent, r game.Rand) *Server {
	return &Server{agent: a, rng: r}
}

func (s *Server) Handler() http.Handler {
	// Create a local mux rather than using the global DefaultServeMux
	mux := http.NewServeMux()
	mux.HandleFunc("POST /bestmove", s.handleBestMove)
	return mux
}

// ListenAndServe starts the agent server on addr.
func (s *Server) ListenAndServe(addr string) error {
	log.Info().Msgf("starting %s agent server on %s...", s.agent.Name(), addr)
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) handleBestMove(w http.ResponseWriter, r *http.Request) {
	var payload bestMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(payload.Cells) != game.Cells {
		http.Error(w, "bad request: cells must hold 16 values", http.StatusBadRequest)
		return
	}
	var cells [game.Cells]int
	copy(cells[:], payload.Cells)
	grid := game.NewGrid(cells)
	if !grid.Valid() {
		http.Error(w, "bad request: cells must be 0 or powers of two up to 131072", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	d, legal, metric := s.agent.FindMove(grid, s.rng)
	s.mu.Unlock()

	resp := bestMoveResponse{
		Legal:      legal,
		Playouts:   metric.Playouts,
		DurationMs: metric.Duration.Milliseconds(),
	}
	if legal {
		resp.Direction = d.String()
	}
	log.Debug().Msgf("best move for %v: %+v", cells, resp)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, "failed to encode move: "+err.Error(), http.StatusInternalServerError)
	}
}
