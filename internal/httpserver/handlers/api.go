package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/ytdown/internal/domain"
	"github.com/MrSnakeDoc/ytdown/internal/httpserver/deps"
	"github.com/MrSnakeDoc/ytdown/internal/lookup"
)

type lookupResponse struct {
	State    string                `json:"state"`
	Query    string                `json:"query"`
	Result   *domain.VideoResult   `json:"result,omitempty"`
	Variants []domain.MediaVariant `json:"variants,omitempty"`
	Error    string                `json:"error,omitempty"`
}

type historyResponse struct {
	Entries []domain.HistoryEntry `json:"entries"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// APILookup runs the same lookup as the form and returns the session state
// as JSON. The result is recorded in the history like any other lookup.
func APILookup(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := currentSession(w, r, d)
		if !ok {
			return
		}

		query := strings.TrimSpace(r.URL.Query().Get("url"))
		if query == "" {
			writeJSON(w, http.StatusBadRequest, lookupResponse{
				State: lookup.Idle.String(),
				Error: "missing url parameter",
			})
			return
		}

		err := runSearch(d, r, s, query)
		snap := s.Search.Snapshot()

		status := http.StatusOK
		switch {
		case errors.Is(err, lookup.ErrStale):
			status = http.StatusConflict
		case err != nil:
			status = http.StatusBadGateway
		}

		writeJSON(w, status, lookupResponse{
			State:    snap.State.String(),
			Query:    snap.Query,
			Result:   snap.Result,
			Variants: snap.Variants,
			Error:    snap.Error,
		})
	}
}

// APIHistory returns the persisted history, most recent first.
func APIHistory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := currentSession(w, r, d)
		if !ok {
			return
		}

		entries := s.Search.History(r.Context())
		if entries == nil {
			entries = []domain.HistoryEntry{}
		}
		writeJSON(w, http.StatusOK, historyResponse{Entries: entries})
	}
}
