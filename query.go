package fleettrack

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/TradeStacksInc/sleek-purchase-order-genius-sub001/converter"
)

type QueryError struct{ Msg string }

func (e *QueryError) Error() string { return e.Msg }

// vmQuery is a validated VehicleMonitoring request.
type vmQuery struct {
	VehicleRef    string
	VehicleStatus string
	MaxVehicles   int // -1 for no limit
	Pretty        bool
}

func (q vmQuery) key(format string) string {
	return strings.Join([]string{"vm", format, q.VehicleRef, q.VehicleStatus, strconv.Itoa(q.MaxVehicles), strconv.FormatBool(q.Pretty)}, "|")
}

// queryParams flattens r's query string with lower-cased keys; the first value
// of a repeated key wins.
func queryParams(r *http.Request) map[string]string {
	m := map[string]string{}
	for k, v := range r.URL.Query() {
		if len(v) == 0 {
			continue
		}
		k = strings.ToLower(k)
		if _, seen := m[k]; !seen {
			m[k] = strings.TrimSpace(v[0])
		}
	}
	return m
}

func normalizeVehicleStatus(s string) (string, error) {
	switch strings.ToLower(s) {
	case "":
		return "", nil
	case strings.ToLower(converter.VehicleStatusInProgress):
		return converter.VehicleStatusInProgress, nil
	case converter.VehicleStatusCompleted:
		return converter.VehicleStatusCompleted, nil
	}
	return "", &QueryError{Msg: "Unsupported VehicleStatus: " + s}
}

func parseNonNegativeInt(s string) (int, error) {
	if s == "" {
		return -1, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return -1, &QueryError{Msg: "Numeric parameter must be a non-negative integer."}
	}
	return v, nil
}

func parseAndValidateVehicleMonitoring(params map[string]string) (vmQuery, error) {
	q := vmQuery{VehicleRef: params["vehicleref"]}
	status, err := normalizeVehicleStatus(params["vehiclestatus"])
	if err != nil {
		return vmQuery{}, err
	}
	q.VehicleStatus = status
	if q.MaxVehicles, err = parseNonNegativeInt(params["maximumvehicles"]); err != nil {
		return vmQuery{}, err
	}
	if p := params["pretty"]; p != "" {
		if q.Pretty, err = strconv.ParseBool(p); err != nil {
			return vmQuery{}, &QueryError{Msg: "pretty must be a boolean."}
		}
	}
	return q, nil
}

func buildErrorPayload(format, msg string) []byte {
	if format == "xml" {
		return []byte(`<?xml version="1.0" encoding="UTF-8"?><Siri xmlns="http://www.siri.org.uk/siri" version="2.0">` +
			`<ServiceDelivery><ErrorCondition><Description>` + xmlEscape(msg) +
			`</Description></ErrorCondition></ServiceDelivery></Siri>`)
	}
	type siriErr struct {
		Siri struct {
			ServiceDelivery struct {
				ErrorCondition struct {
					Description string `json:"Description"`
				} `json:"ErrorCondition"`
			} `json:"ServiceDelivery"`
		} `json:"Siri"`
	}
	var e siriErr
	e.Siri.ServiceDelivery.ErrorCondition.Description = msg
	b, _ := json.Marshal(e)
	return b
}

var xmlReplacer = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "\"", "&quot;", "'", "&apos;")

func xmlEscape(s string) string { return xmlReplacer.Replace(s) }

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, errorResponse{Error: msg})
}
