// Package httpapi builds the plain-HTTP surface this runtime exposes
// alongside its hand-rolled WebSocket framing: the static-file
// responder's catch-all route, and the supplemented
// GET /api/stats/{tenant} endpoint. Routed with gorilla/mux, the way
// the teacher's main.go registered its own handlers, generalized off
// http.ServeMux onto mux.Router so path variables (tenant name) are
// available.
package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/EtomicBomb/ethan-ws/internal/staticfile"
	"github.com/EtomicBomb/ethan-ws/internal/statslog"
)

// StatsLogPaths maps a tenant name (as it appears in the URL) to the
// append-only log file statslog should summarize for it.
type StatsLogPaths map[string]string

// NewRouter builds the mux.Router serving static files out of
// staticRoot and per-tenant stats out of logPaths.
func NewRouter(staticRoot string, logPaths StatsLogPaths, log zerolog.Logger) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/stats/{tenant}", func(w http.ResponseWriter, req *http.Request) {
		tenant := mux.Vars(req)["tenant"]
		path, ok := logPaths[tenant]
		if !ok {
			http.NotFound(w, req)
			return
		}
		stats, err := statslog.Read(path)
		if err != nil {
			log.Error().Err(err).Str("tenant", tenant).Msg("failed to read stats log")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(stats)
	}).Methods(http.MethodGet)

	r.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		data, err := staticfile.Get(staticRoot, req.URL.Path)
		switch {
		case err == nil:
			w.Write(data)
		case err == staticfile.ErrNotFound:
			http.NotFound(w, req)
		default:
			log.Error().Err(err).Str("target", req.URL.Path).Msg("static file error")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
	}).Methods(http.MethodGet, http.MethodHead)

	return r
}
