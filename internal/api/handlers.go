package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/azure/newsroom-desk/internal/models"
	"github.com/azure/newsroom-desk/internal/newsroom"
	"github.com/azure/newsroom-desk/internal/storage"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type selectionRequest struct {
	ID string `json:"id"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.board.Snapshot())
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	switch scope := r.URL.Query().Get("scope"); scope {
	case "", "filtered":
		writeJSON(w, http.StatusOK, s.board.FilteredEvents())
	case "all":
		writeJSON(w, http.StatusOK, s.board.Events())
	default:
		writeError(w, http.StatusBadRequest, "invalid_scope", "scope must be \"all\" or \"filtered\"")
	}
}

func (s *Server) handleGetFilters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.board.Filters())
}

func (s *Server) handlePatchFilters(w http.ResponseWriter, r *http.Request) {
	var patch models.FilterPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}
	if err := patch.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_filters", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, s.board.OnFiltersChange(patch))
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, s.board.OnSelectEvent(req.ID))
}

func (s *Server) handleFactCheck(w http.ResponseWriter, r *http.Request) {
	if !s.limiter.Allow() {
		writeError(w, http.StatusTooManyRequests, "rate_limited", "too many fact checks, try again shortly")
		return
	}

	id := mux.Vars(r)["id"]
	session, err := s.board.OnFactCheck(id)
	if errors.Is(err, newsroom.ErrEventNotFound) {
		writeError(w, http.StatusNotFound, "event_not_found", "no event with id "+id)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}

	writeJSON(w, http.StatusAccepted, session)
}

func (s *Server) handleGetFactCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.board.FactCheck())
}

func (s *Server) handleDismiss(w http.ResponseWriter, r *http.Request) {
	s.board.OnDismiss()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSidebar(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sidebar)
}

func (s *Server) handleDigestTrigger(w http.ResponseWriter, r *http.Request) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), manualDigestTimeout)
		defer cancel()
		if err := s.digest.RunDigest(ctx); err != nil {
			logrus.Errorf("Manual digest trigger failed: %v", err)
		}
	}()

	writeJSON(w, http.StatusAccepted, map[string]string{"message": "Digest triggered successfully"})
}

func (s *Server) handleDigestStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(s.digest.GetMetrics()))
}

func (s *Server) handleArchiveList(w http.ResponseWriter, r *http.Request) {
	names, err := s.archive.List(r.Context(), r.URL.Query().Get("prefix"))
	if err != nil {
		writeError(w, http.StatusBadGateway, "archive_unavailable", err.Error())
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, names)
}

func (s *Server) handleArchiveGet(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	data, err := s.archive.Retrieve(r.Context(), name)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "archive_not_found", "no archived item named "+name)
		return
	}
	if err != nil {
		writeError(w, http.StatusBadGateway, "archive_unavailable", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) handleArchiveDelete(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	err := s.archive.Delete(r.Context(), name)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "archive_not_found", "no archived item named "+name)
		return
	}
	if err != nil {
		writeError(w, http.StatusBadGateway, "archive_unavailable", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeJSON(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}
