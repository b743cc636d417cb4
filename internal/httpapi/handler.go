package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/xtding233/switch-game/internal/switchgame"
)

type resolveResp struct {
	RoundID     string                  `json:"round_id,omitempty"`
	P1          string                  `json:"p1,omitempty"`
	P2          string                  `json:"p2,omitempty"`
	Outcome     *switchgame.Outcome     `json:"outcome,omitempty"`
	Obligations []switchgame.Obligation `json:"obligations,omitempty"`
	Err         string                  `json:"err,omitempty"`
}

type simulateResp struct {
	*switchgame.SimStats
	Fair bool   `json:"fair"`
	Err  string `json:"err,omitempty"`
}

// Handler serves resolution and simulation over HTTP.
type Handler struct {
	Resolver      *switchgame.Resolver
	Log           zerolog.Logger
	DefaultTrials int
	MaxTrials     int

	mux *http.ServeMux
}

// New wires the routes. A nil resolver uses the crypto source.
func New(res *switchgame.Resolver, log zerolog.Logger, defaultTrials, maxTrials int) *Handler {
	if res == nil {
		res = switchgame.NewResolver(nil)
	}
	h := &Handler{
		Resolver:      res,
		Log:           log,
		DefaultTrials: defaultTrials,
		MaxTrials:     maxTrials,
		mux:           http.NewServeMux(),
	}
	h.mux.HandleFunc("GET /resolve", h.handleResolve)
	h.mux.HandleFunc("GET /simulate", h.handleSimulate)
	h.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
	h.mux.ServeHTTP(sw, r)
	h.Log.Info().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", sw.status).
		Dur("duration", time.Since(start)).
		Msg("request")
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// parseMoves reads p1/p2; msg is non-empty on failure.
func parseMoves(r *http.Request) (m1, m2 switchgame.Move, msg string) {
	q := r.URL.Query()
	s1, s2 := q.Get("p1"), q.Get("p2")
	if s1 == "" || s2 == "" {
		return 0, 0, "missing param p1/p2"
	}
	m1, err := switchgame.ParseMove(s1)
	if err != nil {
		return 0, 0, "p1: " + err.Error()
	}
	m2, err = switchgame.ParseMove(s2)
	if err != nil {
		return 0, 0, "p2: " + err.Error()
	}
	return m1, m2, ""
}

func (h *Handler) handleResolve(w http.ResponseWriter, r *http.Request) {
	m1, m2, msg := parseMoves(r)
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, resolveResp{Err: msg})
		return
	}

	round := switchgame.NewRound()
	if err := round.Submit(switchgame.Player1, m1); err != nil {
		writeJSON(w, http.StatusBadRequest, resolveResp{Err: err.Error()})
		return
	}
	if err := round.Submit(switchgame.Player2, m2); err != nil {
		writeJSON(w, http.StatusBadRequest, resolveResp{Err: err.Error()})
		return
	}
	out, err := round.Resolve(h.Resolver)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, switchgame.ErrInvalidMove) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, resolveResp{Err: err.Error()})
		return
	}

	h.Log.Debug().
		Str("round_id", round.ID).
		Stringer("p1", m1).
		Stringer("p2", m2).
		Str("kind", string(out.Kind)).
		Str("winner", string(out.Winner)).
		Msg("round resolved")

	writeJSON(w, http.StatusOK, resolveResp{
		RoundID:     round.ID,
		P1:          m1.String(),
		P2:          m2.String(),
		Outcome:     &out,
		Obligations: out.Obligations(),
	})
}

func (h *Handler) handleSimulate(w http.ResponseWriter, r *http.Request) {
	m1, m2, msg := parseMoves(r)
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, simulateResp{Err: msg})
		return
	}
	trials := h.DefaultTrials
	if s := r.URL.Query().Get("trials"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, simulateResp{Err: "invalid trials"})
			return
		}
		trials = v
	}
	if trials <= 0 || (h.MaxTrials > 0 && trials > h.MaxTrials) {
		writeJSON(w, http.StatusBadRequest, simulateResp{
			Err: "trials must be in 1.." + strconv.Itoa(h.MaxTrials),
		})
		return
	}

	stats, err := switchgame.Simulate(m1, m2, trials, h.Resolver.RNG)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, simulateResp{Err: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, simulateResp{SimStats: &stats, Fair: stats.Fair(switchgame.Z99)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
