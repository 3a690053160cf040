package exchange

import (
	"encoding/json"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"waypoint/internal/engine"
)

// Server exposes a Memory catalog over HTTP plus a websocket event feed.
// It is what `wp serve` runs.
type Server struct {
	store *Memory
	log   *zap.Logger
}

func NewServer(store *Memory, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{store: store, log: log}
}

// Router builds the HTTP surface. Paths mirror the client in this
// package; changing one side means changing the other.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/blueprints", s.handleList)
	r.Post("/blueprints", s.handlePublish)
	r.Delete("/blueprints/{id}", s.handleUnpublish)
	r.Post("/blueprints/{id}/vote", s.handleVote)
	r.Get("/subscribe", s.handleSubscribe)
	return r
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.List())
}

func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request) {
	var bp engine.Blueprint
	if err := json.NewDecoder(r.Body).Decode(&bp); err != nil {
		writeError(w, http.StatusBadRequest, "invalid blueprint payload")
		return
	}
	if err := s.store.Publish(r.Context(), bp); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.log.Info("blueprint published",
		zap.String("id", bp.ID),
		zap.String("role", bp.Role),
		zap.String("author", bp.AuthorID))
	writeJSON(w, http.StatusCreated, bp)
}

func (s *Server) handleUnpublish(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.Unpublish(r.Context(), id); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	s.log.Info("blueprint unpublished", zap.String("id", id))
	w.WriteHeader(http.StatusNoContent)
}

type voteRequest struct {
	Direction engine.VoteDirection `json:"direction"`
}

func (s *Server) handleVote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid vote payload")
		return
	}
	if !req.Direction.IsValid() {
		writeError(w, http.StatusBadRequest, "direction must be up or down")
		return
	}
	if err := s.store.Vote(r.Context(), id, req.Direction); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	bp, _ := s.store.Get(id)
	writeJSON(w, http.StatusOK, bp)
}

// handleSubscribe upgrades to a websocket and streams catalog events
// until the client goes away.
func (s *Server) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		s.log.Warn("websocket accept failed", zap.Error(err))
		return
	}
	defer ws.Close(websocket.StatusNormalClosure, "")

	events, cancel := s.store.Watch()
	defer cancel()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := wsjson.Write(ctx, ws, ev); err != nil {
				s.log.Debug("subscriber write failed", zap.Error(err))
				return
			}
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
