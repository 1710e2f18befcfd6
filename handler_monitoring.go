package fleettrack

import (
	"net/http"

	"google.golang.org/protobuf/encoding/protojson"

	"github.com/TradeStacksInc/sleek-purchase-order-genius-sub001/formatter"
	"github.com/TradeStacksInc/sleek-purchase-order-genius-sub001/gtfsrt"
)

const (
	contentTypeProtobuf = "application/x-protobuf"
	contentTypeJSON     = "application/json"
	contentTypeXML      = "application/xml"
)

func (s *Server) handleVehiclePositionsPB(w http.ResponseWriter, r *http.Request) {
	s.serveVehiclePositions(w, "pb", contentTypeProtobuf)
}

func (s *Server) handleVehiclePositionsJSON(w http.ResponseWriter, r *http.Request) {
	s.serveVehiclePositions(w, "json", contentTypeJSON)
}

func (s *Server) serveVehiclePositions(w http.ResponseWriter, format, contentType string) {
	now := s.engine.Now()
	key := "vp|" + format
	buf, ok := s.cache.get(key, now)
	if !ok {
		gen := s.cache.generation()
		fm := gtfsrt.BuildVehiclePositionsFeed(s.engine.Snapshot(), s.cfg.Feed.AgencyID, now)
		var err error
		if format == "json" {
			buf, err = protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(fm)
		} else {
			buf, err = gtfsrt.MarshalFeed(fm)
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		s.cache.put(key, buf, now, gen)
	}
	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(buf)
}

func (s *Server) handleVehicleMonitoringJSON(w http.ResponseWriter, r *http.Request) {
	s.serveVehicleMonitoring(w, r, "json", contentTypeJSON)
}

func (s *Server) handleVehicleMonitoringXML(w http.ResponseWriter, r *http.Request) {
	s.serveVehicleMonitoring(w, r, "xml", contentTypeXML)
}

func (s *Server) serveVehicleMonitoring(w http.ResponseWriter, r *http.Request, format, contentType string) {
	w.Header().Set("Content-Type", contentType)
	q, err := parseAndValidateVehicleMonitoring(queryParams(r))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write(buildErrorPayload(format, err.Error()))
		return
	}

	now := s.engine.Now()
	key := q.key(format)
	if buf, ok := s.cache.get(key, now); ok {
		_, _ = w.Write(buf)
		return
	}

	gen := s.cache.generation()
	vm := s.conv.BuildVehicleMonitoring(s.engine.Snapshot(), now)
	vm = formatter.FilterVehicleMonitoring(vm, q.VehicleRef, q.VehicleStatus)
	if q.MaxVehicles >= 0 && len(vm.VehicleActivity) > q.MaxVehicles {
		vm.VehicleActivity = vm.VehicleActivity[:q.MaxVehicles]
	}
	res := formatter.WrapVehicleMonitoringResponse(vm, s.conv.Codespace())

	rb := &formatter.ResponseBuilder{Pretty: q.Pretty}
	var buf []byte
	if format == "xml" {
		buf = rb.BuildXML(res)
	} else {
		buf = rb.BuildJSON(res)
	}
	s.cache.put(key, buf, now, gen)
	_, _ = w.Write(buf)
}
