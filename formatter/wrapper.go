package formatter

import (
	"strings"
	"time"

	"github.com/TradeStacksInc/sleek-purchase-order-genius-sub001/siri"
	"github.com/TradeStacksInc/sleek-purchase-order-genius-sub001/utils"
)

// BuildServiceDelivery creates a standardized ServiceDelivery wrapper
// with ResponseTimestamp and ProducerRef (codespace)
func BuildServiceDelivery(timestamp time.Time, codespace string) siri.ServiceDelivery {
	if codespace == "" {
		codespace = "UNKNOWN"
	}

	return siri.ServiceDelivery{
		ResponseTimestamp: utils.Iso8601FromTime(timestamp),
		ProducerRef:       codespace,
	}
}

// WrapVehicleMonitoringResponse wraps a VM delivery in a complete SIRI response
func WrapVehicleMonitoringResponse(vm siri.VehicleMonitoring, codespace string) *siri.SiriResponse {
	timestamp := extractTimestampFromISO8601(vm.ResponseTimestamp)

	sd := BuildServiceDelivery(timestamp, codespace)
	sd.VehicleMonitoringDelivery = []siri.VehicleMonitoring{vm}

	return &siri.SiriResponse{
		Siri: siri.SiriServiceDelivery{
			ServiceDelivery: sd,
		},
	}
}

// FilterVehicleMonitoring keeps the activities whose VehicleRef contains
// vehicleRef and whose VehicleStatus equals vehicleStatus. Empty filters match
// everything; both comparisons ignore case.
func FilterVehicleMonitoring(vm siri.VehicleMonitoring, vehicleRef, vehicleStatus string) siri.VehicleMonitoring {
	vehicleRef = strings.ToLower(strings.TrimSpace(vehicleRef))
	vehicleStatus = strings.ToLower(strings.TrimSpace(vehicleStatus))

	filtered := siri.VehicleMonitoring{
		ResponseTimestamp: vm.ResponseTimestamp,
		ValidUntil:        vm.ValidUntil,
		VehicleActivity:   []siri.VehicleActivityEntry{},
	}
	for _, va := range vm.VehicleActivity {
		mvj := va.MonitoredVehicleJourney
		if vehicleRef != "" && !strings.Contains(strings.ToLower(mvj.VehicleRef), vehicleRef) {
			continue
		}
		if vehicleStatus != "" && strings.ToLower(mvj.VehicleStatus) != vehicleStatus {
			continue
		}
		filtered.VehicleActivity = append(filtered.VehicleActivity, va)
	}
	return filtered
}

// extractTimestampFromISO8601 attempts to parse an ISO8601 timestamp.
// If parsing fails, returns current time
func extractTimestampFromISO8601(iso string) time.Time {
	if iso == "" {
		return time.Now()
	}
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
	}
	for _, format := range formats {
		if t, err := time.Parse(format, iso); err == nil {
			return t
		}
	}
	return time.Now()
}
