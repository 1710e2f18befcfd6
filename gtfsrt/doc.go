// Package gtfsrt publishes tracked trucks as a GTFS-Realtime VehiclePositions
// feed and reads such feeds back.
//
// BuildVehiclePositionsFeed turns engine records into a FeedMessage; MarshalFeed
// encodes it for the wire. Wrapper decodes a feed and indexes its vehicles by id,
// and Client fetches raw feed bytes over HTTP.
package gtfsrt
