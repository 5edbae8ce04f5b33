// Package web serves the board JSON API and the websocket watch feed.
package web

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"pinboard-cli/internal/store"
)

type ServerConfig struct {
	Addr string
	Dir  string
	// ReadOnly rejects every mutating route with 403.
	ReadOnly bool
}

type Server struct {
	cfg ServerConfig
	st  store.Store
	bc  *boardBroadcaster
}

func NewServer(cfg ServerConfig) (*Server, error) {
	cfg.Addr = strings.TrimSpace(cfg.Addr)
	cfg.Dir = strings.TrimSpace(cfg.Dir)
	if cfg.Addr == "" {
		return nil, errors.New("web: addr is empty")
	}
	if cfg.Dir == "" {
		return nil, errors.New("web: dir is empty")
	}
	return &Server{
		cfg: cfg,
		st:  store.Store{Dir: cfg.Dir},
		bc:  newBoardBroadcaster(),
	}, nil
}

func (s *Server) Addr() string { return s.cfg.Addr }

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/boards", s.handleBoardList)
	mux.HandleFunc("POST /api/boards", s.guard(s.handleBoardCreate))
	mux.HandleFunc("GET /api/boards/{boardId}", s.handleBoardGet)
	mux.HandleFunc("PATCH /api/boards/{boardId}", s.guard(s.handleBoardPatch))
	mux.HandleFunc("DELETE /api/boards/{boardId}", s.guard(s.handleBoardDelete))
	mux.HandleFunc("GET /api/boards/{boardId}/watch", s.handleBoardWatch)
	mux.HandleFunc("GET /api/boards/{boardId}/snapshots", s.handleSnapshotList)
	mux.HandleFunc("POST /api/boards/{boardId}/snapshots", s.guard(s.handleSnapshotCreate))
	mux.HandleFunc("DELETE /api/boards/{boardId}/snapshots/{snapshotId}", s.guard(s.handleSnapshotDelete))
	mux.HandleFunc("POST /api/boards/{boardId}/snapshots/{snapshotId}/restore", s.guard(s.handleSnapshotRestore))
	mux.HandleFunc("GET /api/boards/{boardId}/labels", s.handleLabelList)
	mux.HandleFunc("POST /api/boards/{boardId}/labels", s.guard(s.handleLabelCreate))
	mux.HandleFunc("GET /api/boards/{boardId}/groups", s.handleGroupList)
	mux.HandleFunc("POST /api/boards/{boardId}/groups", s.guard(s.handleGroupCreate))
	mux.HandleFunc("GET /api/categories", s.handleCategoryList)
	mux.HandleFunc("POST /api/categories", s.guard(s.handleCategoryCreate))
	mux.HandleFunc("GET /api/tags", s.handleTagList)
	mux.HandleFunc("POST /api/tags", s.guard(s.handleTagCreate))
	return mux
}

func (s *Server) ListenAndServe() error {
	log.Printf("pinboard web listening on %s (dir=%s)", s.cfg.Addr, s.cfg.Dir)
	return http.ListenAndServe(s.cfg.Addr, s.Handler())
}

func (s *Server) guard(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.ReadOnly {
			writeError(w, http.StatusForbidden, errors.New("read-only mode"))
			return
		}
		h(w, r)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("web: encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

// writeStoreError maps store errors onto HTTP statuses.
func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeError(w, http.StatusInternalServerError, err)
}

func readJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 8<<20))
	return dec.Decode(v)
}
