// Package system serves the root banner, backend diagnostics and liveness.
package system

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fkhayef/blog/internal/docstore"
	"github.com/fkhayef/blog/pkg/response"
)

const (
	maxCollections = 10
	probeTimeout   = 5 * time.Second
)

// Diagnostics reports what the service knows about its backend
type Diagnostics struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      string   `json:"database_url"`
	DatabaseName     *string  `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

// Handler serves the operational endpoints
type Handler struct {
	store       docstore.Store
	databaseURL string
}

// NewHandler creates a system handler; databaseURL only feeds the Set/Not Set flag
func NewHandler(store docstore.Store, databaseURL string) *Handler {
	return &Handler{store: store, databaseURL: databaseURL}
}

// Root handles GET /
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"message": "Blog API running"})
}

// Health handles GET /api/health
// @Summary  Liveness probe
// @Tags     system
// @Produce  json
// @Success  200 {object} response.OK
// @Router   /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.OK{OK: true})
}

// Test handles GET /test. It always answers 200; an unreachable backend is
// reported in the body.
func (h *Handler) Test(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
	defer cancel()

	response.JSON(w, http.StatusOK, h.diagnose(ctx))
}

func (h *Handler) diagnose(ctx context.Context) Diagnostics {
	d := Diagnostics{
		Backend:          "Running",
		Database:         "Not Available",
		DatabaseURL:      "Not Set",
		ConnectionStatus: "Not Connected",
		Collections:      []string{},
	}
	if h.databaseURL != "" {
		d.DatabaseURL = "Set"
	}

	if err := h.store.Ping(ctx); err != nil {
		offline, isOffline := h.store.(*docstore.Offline)
		switch {
		case isOffline && offline.Reason != nil && h.databaseURL != "":
			// the configured backend failed at startup
			d.Database = "Error: " + docstore.Detail(offline.Reason)
		case !errors.Is(err, docstore.ErrUnavailable):
			d.Database = "Error: " + docstore.Detail(err)
		}
		return d
	}

	name := h.store.Name()
	d.DatabaseName = &name
	d.ConnectionStatus = "Connected"
	d.Database = "Available"

	collections, err := h.store.Collections(ctx)
	if err != nil {
		d.Database = "Connected but Error: " + docstore.Detail(err)
		return d
	}
	if len(collections) > maxCollections {
		collections = collections[:maxCollections]
	}
	d.Collections = collections
	d.Database = "Connected & Working"
	return d
}
