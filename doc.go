// Package fleettrack exposes a tracking engine over HTTP: the truck tracking
// API, GTFS-Realtime VehiclePositions feeds, SIRI Vehicle Monitoring in JSON and
// XML, and the delivery log when a store is configured.
package fleettrack
