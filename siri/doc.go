// Package siri defines SIRI (Service Interface for Real-time Information) data types.
//
// SIRI is a European standard (CEN/TS 15531) for real-time public transport information.
// Only the VehicleMonitoring (VM) module is modelled, trimmed to what a delivery
// truck reports, plus an Extensions block with distance and fuel figures.
//
// All types include JSON struct tags; XML is written by the formatter package.
package siri
