// Package transport exposes engine snapshots over HTTP.
package transport

import (
	"net/http"
	"strconv"

	gojson "github.com/goccy/go-json"
	"github.com/goodnatureofminers/blockinsight7000-nodewatch/internal/mempool"
	"github.com/goodnatureofminers/blockinsight7000-nodewatch/internal/model"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// SnapshotHandler serves the engine's published state.
type SnapshotHandler struct {
	engine Engine
	logger *zap.Logger
}

// NewSnapshotHandler returns the routed, CORS-wrapped handler.
func NewSnapshotHandler(e Engine, logger *zap.Logger) http.Handler {
	h := &SnapshotHandler{engine: e, logger: logger.Named("http")}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /snapshot", h.Snapshot)
	mux.HandleFunc("POST /forks/ack", h.AcknowledgeFork)
	mux.HandleFunc("GET /healthz", h.Health)
	return cors.Default().Handler(mux)
}

// Snapshot writes the current snapshot. The lens and dust query parameters
// replace the published mempool distribution with a recomputed view.
func (h *SnapshotHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lens, err := mempool.ParseLens(q.Get("lens"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	includeDust := false
	if raw := q.Get("dust"); raw != "" {
		if includeDust, err = strconv.ParseBool(raw); err != nil {
			h.writeError(w, http.StatusBadRequest, "dust must be a boolean")
			return
		}
	}

	snap := h.engine.Snapshot()
	if q.Has("lens") || q.Has("dust") {
		view := h.engine.View(lens, includeDust)
		snap.Distribution = &view
	}
	h.writeJSON(w, http.StatusOK, snap)
}

// AcknowledgeFork acknowledges the alert of the branch diverging at ?id=.
func (h *SnapshotHandler) AcknowledgeFork(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "id must be a block height")
		return
	}
	if !h.engine.AcknowledgeFork(model.BranchID(id)) {
		h.writeError(w, http.StatusNotFound, "no unacknowledged alert for branch")
		return
	}
	h.logger.Info("fork alert acknowledged over http", zap.Uint64("fork_height", id))
	h.writeJSON(w, http.StatusOK, map[string]any{"acknowledged": true, "id": id})
}

// Health answers 200 once the chain summary has been fetched.
func (h *SnapshotHandler) Health(w http.ResponseWriter, _ *http.Request) {
	if !h.engine.Ready() {
		h.writeError(w, http.StatusServiceUnavailable, "waiting for first chain summary")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *SnapshotHandler) writeError(w http.ResponseWriter, code int, msg string) {
	h.writeJSON(w, code, map[string]string{"error": msg})
}

func (h *SnapshotHandler) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := gojson.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("write response failed", zap.Error(err))
	}
}
