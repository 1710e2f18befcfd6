// Package converter turns tracking records into SIRI Vehicle Monitoring
// responses.
//
// # Usage
//
//	conv := converter.NewConverter(converter.ConverterOptions{
//	    AgencyID:     "LFD",
//	    ValidUntilMS: 30000,
//	})
//	res := conv.GetCompleteVehicleMonitoringResponse(engine.Snapshot(), time.Now())
//	body := formatter.NewResponseBuilder().BuildXML(res)
//
// # References
//
// VehicleRef is formatted as {codespace}:VehicleRef:{truck_id} and OperatorRef as
// {codespace}:Operator:{codespace}. FieldMutators may rename truck ids and depot
// labels before they are formatted.
//
// # Warnings
//
// Records missing optional display data (labels, a positive planned distance)
// still produce an entry. Each conversion collects such gaps in a
// WarningAggregator and logs one consolidated line per gap type.
package converter
