package converter

import (
	"time"

	"github.com/TradeStacksInc/sleek-purchase-order-genius-sub001/siri"
	"github.com/TradeStacksInc/sleek-purchase-order-genius-sub001/tracking"
	"github.com/TradeStacksInc/sleek-purchase-order-genius-sub001/utils"
)

const unknownCodespace = "UNKNOWN"

// Converter produces SIRI responses from tracking records
type Converter struct {
	opts ConverterOptions
}

// NewConverter creates a new converter instance
func NewConverter(opts ConverterOptions) *Converter {
	if opts.AgencyID == "" {
		opts.AgencyID = unknownCodespace
	}
	return &Converter{opts: opts}
}

// Codespace returns the codespace used in references.
func (c *Converter) Codespace() string { return c.opts.AgencyID }

// GetCompleteVehicleMonitoringResponse builds a complete VM SIRI response with
// one VehicleActivity per record, in record order.
func (c *Converter) GetCompleteVehicleMonitoringResponse(records []tracking.Record, now time.Time) *siri.SiriResponse {
	vm := c.BuildVehicleMonitoring(records, now)
	return &siri.SiriResponse{Siri: siri.SiriServiceDelivery{ServiceDelivery: siri.ServiceDelivery{
		ResponseTimestamp:         utils.Iso8601FromTime(now),
		ProducerRef:               c.opts.AgencyID,
		VehicleMonitoringDelivery: []siri.VehicleMonitoring{vm},
	}}}
}

// BuildVehicleMonitoring builds the VM delivery alone.
func (c *Converter) BuildVehicleMonitoring(records []tracking.Record, now time.Time) siri.VehicleMonitoring {
	warnings := NewWarningAggregator()
	vm := siri.VehicleMonitoring{
		ResponseTimestamp: utils.Iso8601FromTime(now),
		ValidUntil:        utils.ValidUntilFrom(now, c.opts.ValidUntilMS),
		VehicleActivity:   make([]siri.VehicleActivityEntry, 0, len(records)),
	}
	for _, r := range records {
		vm.VehicleActivity = append(vm.VehicleActivity, c.buildActivity(r, now, warnings))
	}
	warnings.LogAll("VM", c.opts.AgencyID)
	return vm
}
