package fleettrack

import (
	"net/http"

	"github.com/TradeStacksInc/sleek-purchase-order-genius-sub001/store"
)

type deliveriesResponse struct {
	TruckID         string           `json:"truckId"`
	TotalDistanceKM float64          `json:"totalDistanceKm"`
	Deliveries      []store.Delivery `json:"deliveries"`
}

func (s *Server) handleDeliveries(w http.ResponseWriter, r *http.Request) {
	id, ok := s.validTruckID(w, r)
	if !ok {
		return
	}
	if s.store == nil {
		writeError(w, http.StatusNotFound, store.ErrNoStore.Error())
		return
	}
	ds, err := s.store.ListDeliveries(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	total, err := s.store.TotalDistance(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, deliveriesResponse{TruckID: id, TotalDistanceKM: total, Deliveries: ds})
}
