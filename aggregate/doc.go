// Package aggregate reduces the cycle's GTFS-Realtime payloads to one
// occupancy state per station.
//
// Each payload is decoded as a FeedMessage and its VehiclePosition entities
// are folded into per-station state: the set of routes with a vehicle at or
// near the station, and the strictest display mode seen this cycle
// (STOPPED_AT beats INCOMING_AT beats IN_TRANSIT_TO). State is rebuilt from
// scratch every cycle; nothing carries over except through the feed cache.
//
// A malformed payload is counted and skipped, never fatal. Stop ids that
// resolve to no known station are counted, logged once per id within a
// window, and still folded in under their suffix-stripped id so an
// incomplete lookup table degrades to raw keys instead of dark LEDs.
package aggregate
