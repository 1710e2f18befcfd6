package formatter

import (
	"strconv"
	"strings"

	"github.com/TradeStacksInc/sleek-purchase-order-genius-sub001/siri"
)

var xmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\"", "&quot;",
	"'", "&apos;",
)

// BuildXML serializes a SIRI response to XML
func (rb *ResponseBuilder) BuildXML(res *siri.SiriResponse) []byte {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>")
	b.WriteString("<Siri xmlns=\"http://www.siri.org.uk/siri\" version=\"2.0\">")
	sd := res.Siri.ServiceDelivery
	b.WriteString("<ServiceDelivery>")
	writeElem(&b, "ResponseTimestamp", sd.ResponseTimestamp)
	writeElem(&b, "ProducerRef", sd.ProducerRef)
	for _, vm := range sd.VehicleMonitoringDelivery {
		writeVehicleMonitoringXML(&b, vm)
	}
	b.WriteString("</ServiceDelivery>")
	b.WriteString("</Siri>")
	return []byte(b.String())
}

func writeVehicleMonitoringXML(b *strings.Builder, vm siri.VehicleMonitoring) {
	b.WriteString("<VehicleMonitoringDelivery version=\"2.0\">")
	writeElem(b, "ResponseTimestamp", vm.ResponseTimestamp)
	writeElem(b, "ValidUntil", vm.ValidUntil)
	for _, va := range vm.VehicleActivity {
		b.WriteString("<VehicleActivity>")
		writeElem(b, "RecordedAtTime", va.RecordedAtTime)
		writeElem(b, "ValidUntilTime", va.ValidUntilTime)
		writeMVJXML(b, va.MonitoredVehicleJourney)
		if va.Extensions != nil {
			writeExtensionsXML(b, *va.Extensions)
		}
		b.WriteString("</VehicleActivity>")
	}
	b.WriteString("</VehicleMonitoringDelivery>")
}

func writeMVJXML(b *strings.Builder, mvj siri.MonitoredVehicleJourney) {
	b.WriteString("<MonitoredVehicleJourney>")
	writeElem(b, "OperatorRef", mvj.OperatorRef)
	writeElem(b, "OriginName", mvj.OriginName)
	writeElem(b, "DestinationName", mvj.DestinationName)
	writeElem(b, "OriginAimedDepartureTime", mvj.OriginAimedDepartureTime)
	writeBool(b, "Monitored", mvj.Monitored)
	// DataSource (SIRI-VM: required)
	writeElem(b, "DataSource", mvj.DataSource)
	if mvj.VehicleLocation != nil {
		writeLocationXML(b, "VehicleLocation", *mvj.VehicleLocation)
	}
	if mvj.Bearing != nil {
		writeRaw(b, "Bearing", strconv.FormatFloat(*mvj.Bearing, 'f', 2, 64))
	}
	if mvj.Velocity != nil {
		writeRaw(b, "Velocity", strconv.Itoa(*mvj.Velocity))
	}
	writeElem(b, "VehicleStatus", mvj.VehicleStatus)
	writeElem(b, "ProgressStatus", mvj.ProgressStatus)
	writeElem(b, "VehicleRef", mvj.VehicleRef)
	if mc := mvj.MonitoredCall; mc != nil {
		b.WriteString("<MonitoredCall>")
		writeElem(b, "StopPointName", mc.StopPointName)
		if mc.VehicleAtStop != nil {
			writeBool(b, "VehicleAtStop", *mc.VehicleAtStop)
		}
		if mc.VehicleLocationAtStop != nil {
			writeLocationXML(b, "VehicleLocationAtStop", *mc.VehicleLocationAtStop)
		}
		writeElem(b, "ExpectedArrivalTime", mc.ExpectedArrivalTime)
		writeElem(b, "DestinationDisplay", mc.DestinationDisplay)
		b.WriteString("</MonitoredCall>")
	}
	writeBool(b, "IsCompleteStopSequence", mvj.IsCompleteStopSequence)
	b.WriteString("</MonitoredVehicleJourney>")
}

func writeExtensionsXML(b *strings.Builder, ext siri.ActivityExtensions) {
	b.WriteString("<Extensions>")
	b.WriteString("<Distances>")
	writeElem(b, "PresentableDistance", ext.Distances.PresentableDistance)
	writeRaw(b, "DistanceCovered", strconv.FormatFloat(ext.Distances.DistanceCovered, 'f', -1, 64))
	writeRaw(b, "DistanceRemaining", strconv.FormatFloat(ext.Distances.DistanceRemaining, 'f', -1, 64))
	writeRaw(b, "PercentComplete", strconv.FormatFloat(ext.Distances.PercentComplete, 'f', 1, 64))
	b.WriteString("</Distances>")
	writeRaw(b, "FuelLevel", strconv.FormatFloat(ext.FuelLevel, 'f', 1, 64))
	b.WriteString("</Extensions>")
}

func writeLocationXML(b *strings.Builder, name string, loc siri.VehicleLocation) {
	if loc.Latitude == nil && loc.Longitude == nil {
		return
	}
	b.WriteString("<" + name + ">")
	if loc.Longitude != nil {
		writeRaw(b, "Longitude", strconv.FormatFloat(*loc.Longitude, 'f', 6, 64))
	}
	if loc.Latitude != nil {
		writeRaw(b, "Latitude", strconv.FormatFloat(*loc.Latitude, 'f', 6, 64))
	}
	b.WriteString("</" + name + ">")
}

// writeElem writes an escaped element, skipping empty values.
func writeElem(b *strings.Builder, name, value string) {
	if value == "" {
		return
	}
	writeRaw(b, name, xmlEscape(value))
}

func writeRaw(b *strings.Builder, name, value string) {
	b.WriteString("<")
	b.WriteString(name)
	b.WriteString(">")
	b.WriteString(value)
	b.WriteString("</")
	b.WriteString(name)
	b.WriteString(">")
}

func writeBool(b *strings.Builder, name string, v bool) {
	writeRaw(b, name, strconv.FormatBool(v))
}

func xmlEscape(s string) string {
	return xmlReplacer.Replace(s)
}
