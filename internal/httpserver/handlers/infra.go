package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/ytdown/internal/httpserver/deps"
)

type componentStatus struct {
	OK        bool   `json:"ok"`
	Kind      string `json:"kind,omitempty"`
	Live      *int   `json:"live,omitempty"`
	Persisted *int   `json:"persisted,omitempty"`
	Mode      string `json:"mode,omitempty"`
	Impact    string `json:"impact,omitempty"`
	Error     string `json:"error,omitempty"`
}

type infraResponse struct {
	ServiceMode string                     `json:"service_mode"`
	Components  map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		components := map[string]componentStatus{
			"store":     checkStore(ctx, d),
			"sessions":  countSessions(ctx, d),
			"assistant": assistantStatus(d),
			"download": {
				OK:   true,
				Mode: d.DownloadMode,
			},
		}

		writeJSON(w, http.StatusOK, infraResponse{
			ServiceMode: determineServiceMode(components),
			Components:  components,
		})
	}
}

func determineServiceMode(components map[string]componentStatus) string {
	// Without the store nothing persists: history and language reset on every request.
	if store, exists := components["store"]; exists && !store.OK {
		return "critical"
	}

	// Chat down does not block downloads.
	if chat, exists := components["assistant"]; exists && !chat.OK {
		return "degraded"
	}

	return "optimal"
}

func checkStore(ctx context.Context, d deps.Deps) componentStatus {
	if d.Store == nil {
		return componentStatus{
			OK:     false,
			Impact: "history-and-language-disabled",
			Error:  "store not initialized",
		}
	}

	if err := d.Store.Ping(ctx); err != nil {
		return componentStatus{
			OK:     false,
			Kind:   d.Store.Kind(),
			Impact: "history-and-language-disabled",
			Error:  "timeout",
		}
	}

	return componentStatus{
		OK:   true,
		Kind: d.Store.Kind(),
	}
}

func countSessions(ctx context.Context, d deps.Deps) componentStatus {
	live := d.Sessions.Count()
	status := componentStatus{OK: true, Live: &live}

	if d.SessionCounter == nil {
		return status
	}
	persisted, err := d.SessionCounter.CountSessions(ctx)
	if err != nil {
		status.Error = "persisted count unavailable"
		return status
	}
	status.Persisted = &persisted
	return status
}

func assistantStatus(d deps.Deps) componentStatus {
	if !d.ChatEnabled {
		return componentStatus{
			OK:     false,
			Mode:   "disabled",
			Impact: "chat-replies-service-error",
			Error:  "no api key",
		}
	}
	return componentStatus{OK: true, Mode: "enabled"}
}
