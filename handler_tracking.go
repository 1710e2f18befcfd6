package fleettrack

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/TradeStacksInc/sleek-purchase-order-genius-sub001/tracking"
	"github.com/TradeStacksInc/sleek-purchase-order-genius-sub001/utils"
)

const maxRequestBytes = 1 << 20

type coordinateBody struct {
	Lat *float64 `json:"lat" validate:"required,gte=-90,lte=90"`
	Lng *float64 `json:"lng" validate:"required,gte=-180,lte=180"`
}

func (c *coordinateBody) coordinate() utils.Coordinate {
	return utils.Coordinate{Lat: *c.Lat, Lng: *c.Lng}
}

type startTrackingRequest struct {
	Origin           *coordinateBody `json:"origin" validate:"required"`
	Destination      *coordinateBody `json:"destination" validate:"omitempty"`
	DistanceKM       float64         `json:"distanceKM" validate:"gte=0,lte=40075"`
	OriginLabel      string          `json:"originLabel" validate:"max=200"`
	DestinationLabel string          `json:"destinationLabel" validate:"max=200"`
}

func (s *Server) validTruckID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("id")
	if err := s.validate.Var(id, "required,max=64,printascii"); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid truck id %q", id))
		return "", false
	}
	return id, true
}

func (s *Server) handleStartTracking(w http.ResponseWriter, r *http.Request) {
	id, ok := s.validTruckID(w, r)
	if !ok {
		return
	}
	var req startTrackingRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	opts := tracking.StartOptions{OriginLabel: req.OriginLabel, DestinationLabel: req.DestinationLabel}
	if req.Destination != nil {
		dest := req.Destination.coordinate()
		opts.Destination = &dest
	}
	rec, err := s.engine.StartTracking(id, req.Origin.coordinate(), req.DistanceKM, opts)
	if errors.Is(err, tracking.ErrEngineClosed) {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusAccepted, rec)
}

func (s *Server) handleStopTracking(w http.ResponseWriter, r *http.Request) {
	id, ok := s.validTruckID(w, r)
	if !ok {
		return
	}
	s.engine.StopTracking(id)
	// stopping publishes no sample, so the cached feeds would still list id
	s.cache.clear()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetTracking(w http.ResponseWriter, r *http.Request) {
	id, ok := s.validTruckID(w, r)
	if !ok {
		return
	}
	rec, found := s.engine.GetTrackingInfo(id)
	if !found {
		writeError(w, http.StatusNotFound, "truck "+id+" is not being tracked")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// handlePath answers [] for unknown trucks, like GetPathHistory.
func (s *Server) handlePath(w http.ResponseWriter, r *http.Request) {
	id, ok := s.validTruckID(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.engine.GetPathHistory(id))
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	id, ok := s.validTruckID(w, r)
	if !ok {
		return
	}
	p, found := s.engine.Progress(id)
	if !found {
		writeError(w, http.StatusNotFound, "truck "+id+" is not being tracked")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleListTrucks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Snapshot())
}

func (s *Server) handleFleetStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Stats())
}
