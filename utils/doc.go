// Package utils provides the geometry and formatting helpers shared by the fleet tracker.
//
// It contains:
//   - Great-circle distance and initial bearing between coordinates
//   - Unit conversions (km, miles, km/h, m/s, degrees, radians)
//   - Presentable distance and ETA text for progress widgets
//   - Time formatting for feed and SIRI output
//
// Every function here is pure and safe for concurrent use.
package utils
