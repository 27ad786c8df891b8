package stations

import "strings"

// Index stores the stop and station lookup tables in memory. Fields are
// exported for gob serialization; treat the maps as read-only once built.
type Index struct {
	StopToStation map[string]string // stop_id -> station key
	Names         map[string]string // station key -> display name
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{
		StopToStation: map[string]string{},
		Names:         map[string]string{},
	}
}

// BaseStopID strips a single trailing directional suffix (N or S) from a
// GTFS stop id: "F15N" -> "F15", "F15" -> "F15".
func BaseStopID(id string) string {
	id = strings.ToUpper(strings.TrimSpace(id))
	if len(id) > 1 {
		switch id[len(id)-1] {
		case 'N', 'S':
			return id[:len(id)-1]
		}
	}
	return id
}

// StationForStop resolves a raw feed stop id to its station key. It tries
// the id as-is first, then with the directional suffix stripped. The second
// return reports whether the lookup succeeded.
func (ix *Index) StationForStop(stopID string) (string, bool) {
	raw := strings.ToUpper(strings.TrimSpace(stopID))
	if sk, ok := ix.StopToStation[raw]; ok {
		return sk, true
	}
	if sk, ok := ix.StopToStation[BaseStopID(raw)]; ok {
		return sk, true
	}
	return "", false
}

// Name returns the display name for a station key, falling back to the key
// itself when unknown.
func (ix *Index) Name(key string) string {
	if n, ok := ix.Names[key]; ok && n != "" {
		return n
	}
	return key
}

// StationCount returns the number of distinct station keys.
func (ix *Index) StationCount() int {
	return len(ix.Names)
}
