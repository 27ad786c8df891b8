// Package stations builds and serves the static lookup tables the pipeline
// depends on: GTFS stop id to station key, station key to display name, and
// station key to LED index on the board.
//
// NYCT publishes individual directional stops ("F15N", "F15S") while a single
// station complex may serve both. The index collapses stops onto one station
// key per physical location in two steps: first the GTFS parent_station when
// present, otherwise the base stop id with its directional suffix stripped;
// then, when the MTA complexes CSV groups that station, the key is remapped
// to "CPLX_<id>" so every directional stop of a complex lands on one key.
//
// Building the index from the source CSVs is done once at startup; a gob
// snapshot keyed by the source-file modification times avoids re-parsing on
// subsequent runs.
package stations
