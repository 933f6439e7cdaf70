package handlers

import (
	"log/slog"
	"net/http"
	"os/exec"
)

// ==========================
// Webhook Handler (deploy hook: pull the repo, restart the service)
// ==========================
type WebhookHandler struct {
	RepoPath string
	Service  string
}

// Deploy updates the checked-out repo and restarts the API service unit.
// Disabled (503) until DEPLOY_REPO_PATH is configured.
func (h *WebhookHandler) Deploy(w http.ResponseWriter, r *http.Request) {
	if h.RepoPath == "" {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	pull := exec.CommandContext(r.Context(), "git", "-C", h.RepoPath, "pull")
	if out, err := pull.CombinedOutput(); err != nil {
		slog.Error("webhook: git pull failed", "error", err, "output", string(out))
		QueryFailure(w)
		return
	}

	restart := exec.CommandContext(r.Context(), "systemctl", "restart", h.Service)
	if out, err := restart.CombinedOutput(); err != nil {
		slog.Error("webhook: service restart failed", "error", err, "output", string(out))
		QueryFailure(w)
		return
	}

	slog.Info("webhook: deploy completed", "repo", h.RepoPath, "service", h.Service)
	w.WriteHeader(http.StatusOK)
}
