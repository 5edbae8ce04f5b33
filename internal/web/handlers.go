package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pinboard-cli/internal/board"
	"pinboard-cli/internal/model"
	"pinboard-cli/internal/store"
)

func formatTime(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) }

// boardSummary is the listing shape: everything but the state document.
type boardSummary struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	TagIDs      []string `json:"tag_ids"`
	CategoryIDs []string `json:"category_ids"`
	IsPrimary   bool     `json:"is_primary"`
	PinCount    int      `json:"pin_count"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

func summarize(b model.Board) boardSummary {
	return boardSummary{
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
		TagIDs:      b.TagIDs,
		CategoryIDs: b.CategoryIDs,
		IsPrimary:   b.IsPrimary,
		PinCount:    len(b.State.Pins),
		CreatedAt:   formatTime(b.CreatedAt),
		UpdatedAt:   formatTime(b.UpdatedAt),
	}
}

func (s *Server) handleBoardList(w http.ResponseWriter, r *http.Request) {
	boards, err := s.st.ListBoards(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	out := make([]boardSummary, 0, len(boards))
	for _, b := range boards {
		out = append(out, summarize(b))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleBoardCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	b, err := s.st.CreateBoard(r.Context(), strings.TrimSpace(req.Title), strings.TrimSpace(req.Description))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (s *Server) handleBoardGet(w http.ResponseWriter, r *http.Request) {
	b, err := s.st.GetBoard(r.Context(), r.PathValue("boardId"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// boardPatchReq distinguishes absent fields from empty ones; State is raw
// so any shape the client sends goes through the sanitizer rather than
// strict decoding.
type boardPatchReq struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	TagIDs      *[]string       `json:"tag_ids"`
	CategoryIDs *[]string       `json:"category_ids"`
	State       json.RawMessage `json:"state"`
}

func (s *Server) handleBoardPatch(w http.ResponseWriter, r *http.Request) {
	var req boardPatchReq
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	patch := store.BoardPatch{
		Title:       req.Title,
		Description: req.Description,
		TagIDs:      req.TagIDs,
		CategoryIDs: req.CategoryIDs,
	}
	if len(req.State) > 0 && string(req.State) != "null" {
		state := board.SanitizeJSON(req.State)
		patch.State = &state
	}
	b, err := s.st.UpdateBoard(r.Context(), r.PathValue("boardId"), patch)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if patch.State != nil {
		s.bc.broadcast(b.ID, b.State)
	}
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleBoardDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("boardId")
	if err := s.st.DeleteBoard(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}
	s.bc.closeBoard(id)
	writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
}

func (s *Server) handleSnapshotList(w http.ResponseWriter, r *http.Request) {
	boardID := r.PathValue("boardId")
	if _, err := s.st.GetBoard(r.Context(), boardID); err != nil {
		writeStoreError(w, err)
		return
	}
	snaps, err := s.st.ListSnapshots(r.Context(), boardID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if snaps == nil {
		snaps = []model.SnapshotSummary{}
	}
	writeJSON(w, http.StatusOK, snaps)
}

func (s *Server) handleSnapshotCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
		Note string `json:"note"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	snap, err := s.st.CreateSnapshot(r.Context(), r.PathValue("boardId"), strings.TrimSpace(req.Name), req.Note)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, snap)
}

func (s *Server) handleSnapshotDelete(w http.ResponseWriter, r *http.Request) {
	snap, err := s.st.GetSnapshot(r.Context(), r.PathValue("snapshotId"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if snap.BoardID != r.PathValue("boardId") {
		writeError(w, http.StatusNotFound, errors.New("snapshot does not belong to board"))
		return
	}
	if err := s.st.DeleteSnapshot(r.Context(), snap.ID); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deleted": snap.ID})
}

func (s *Server) handleSnapshotRestore(w http.ResponseWriter, r *http.Request) {
	snap, err := s.st.GetSnapshot(r.Context(), r.PathValue("snapshotId"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if snap.BoardID != r.PathValue("boardId") {
		writeError(w, http.StatusNotFound, errors.New("snapshot does not belong to board"))
		return
	}
	b, err := s.st.RestoreSnapshot(r.Context(), snap.ID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	s.bc.broadcast(b.ID, b.State)
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleLabelList(w http.ResponseWriter, r *http.Request) {
	boardID := r.PathValue("boardId")
	if _, err := s.st.GetBoard(r.Context(), boardID); err != nil {
		writeStoreError(w, err)
		return
	}
	labels, err := s.st.ListLabels(r.Context(), boardID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if labels == nil {
		labels = []model.Label{}
	}
	writeJSON(w, http.StatusOK, labels)
}

func (s *Server) handleLabelCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, errors.New("name is required"))
		return
	}
	l, err := s.st.CreateLabel(r.Context(), r.PathValue("boardId"), req.Name, req.Color)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, l)
}

func (s *Server) handleGroupList(w http.ResponseWriter, r *http.Request) {
	boardID := r.PathValue("boardId")
	if _, err := s.st.GetBoard(r.Context(), boardID); err != nil {
		writeStoreError(w, err)
		return
	}
	groups, err := s.st.ListGroups(r.Context(), boardID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if groups == nil {
		groups = []model.Group{}
	}
	writeJSON(w, http.StatusOK, groups)
}

func (s *Server) handleGroupCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, errors.New("name is required"))
		return
	}
	g, err := s.st.CreateGroup(r.Context(), r.PathValue("boardId"), req.Name, req.Color)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, g)
}

func (s *Server) handleCategoryList(w http.ResponseWriter, r *http.Request) {
	cats, err := s.st.ListCategories(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if cats == nil {
		cats = []model.Category{}
	}
	writeJSON(w, http.StatusOK, cats)
}

func (s *Server) handleCategoryCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Color       string `json:"color"`
		Description string `json:"description"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, errors.New("name is required"))
		return
	}
	c, err := s.st.CreateCategory(r.Context(), req.Name, req.Color, req.Description)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) handleTagList(w http.ResponseWriter, r *http.Request) {
	tags, err := s.st.ListTags(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if tags == nil {
		tags = []model.Tag{}
	}
	writeJSON(w, http.StatusOK, tags)
}

func (s *Server) handleTagCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Color       string `json:"color"`
		Description string `json:"description"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, errors.New("name is required"))
		return
	}
	t, err := s.st.CreateTag(r.Context(), req.Name, req.Color, req.Description)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}
