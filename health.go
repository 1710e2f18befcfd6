package fleettrack

import (
	"context"
	"net/http"
	"time"
)

type healthResponse struct {
	Status        string `json:"status"`
	TrackedTrucks int    `json:"tracked_trucks"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	Store         string `json:"store"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:        "ok",
		TrackedTrucks: len(s.engine.TrackedIDs()),
		UptimeSeconds: int64(s.engine.Now().Sub(s.startedAt) / time.Second),
		Store:         "disabled",
	}
	code := http.StatusOK
	if s.store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.store.PingContext(ctx); err != nil {
			resp.Status = "degraded"
			resp.Store = err.Error()
			code = http.StatusServiceUnavailable
		} else {
			resp.Store = "ok"
		}
	}
	writeJSON(w, code, resp)
}
