package ledboard

import (
	"sort"
	"sync"
	"time"

	"github.com/theoremus-urban-solutions/gtfsrt-led-board/aggregate"
	"github.com/theoremus-urban-solutions/gtfsrt-led-board/ledframe"
	"github.com/theoremus-urban-solutions/gtfsrt-led-board/stations"
)

// StationStatus is the externally visible state of one station.
type StationStatus struct {
	Key      string        `json:"key"`
	Name     string        `json:"name"`
	Routes   []string      `json:"routes"`
	Mode     ledframe.Mode `json:"mode"`
	ModeName string        `json:"mode_name"`
}

// CycleStats summarizes one poll cycle for logging and the status API.
type CycleStats struct {
	Payloads    int           `json:"payloads"`
	Vehicles    int           `json:"vehicles"`
	ParseErrors int           `json:"parse_errors"`
	Unmapped    int           `json:"unmapped_stops"`
	Entries     int           `json:"led_entries"`
	FrameBytes  int           `json:"frame_bytes"`
	Transmitted bool          `json:"transmitted"`
	Strategy    string        `json:"fetch_strategy"`
	Elapsed     time.Duration `json:"-"`
	ElapsedMS   float64       `json:"elapsed_ms"`
}

// Snapshot holds the latest cycle's aggregated state for the status API.
// The driver replaces it after every cycle; readers take the lock briefly.
type Snapshot struct {
	mu        sync.RWMutex
	updatedAt time.Time
	stations  map[string]StationStatus
	stats     CycleStats
}

// NewSnapshot creates an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{stations: map[string]StationStatus{}}
}

// Update replaces the snapshot contents with this cycle's outcome.
func (s *Snapshot) Update(res *aggregate.Result, index *stations.Index, stats CycleStats, now time.Time) {
	fresh := make(map[string]StationStatus, len(res.Stations))
	for key, st := range res.Stations {
		routes := st.RouteList()
		sort.Strings(routes)
		fresh[key] = StationStatus{
			Key:      key,
			Name:     index.Name(key),
			Routes:   routes,
			Mode:     st.Mode,
			ModeName: st.Mode.String(),
		}
	}

	s.mu.Lock()
	s.stations = fresh
	s.stats = stats
	s.updatedAt = now
	s.mu.Unlock()
}

// Stations returns all station statuses sorted by display name.
func (s *Snapshot) Stations() []StationStatus {
	s.mu.RLock()
	out := make([]StationStatus, 0, len(s.stations))
	for _, st := range s.stations {
		out = append(out, st)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// Station returns one station's status by key.
func (s *Snapshot) Station(key string) (StationStatus, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.stations[key]
	return st, ok
}

// Stats returns the latest cycle statistics and update time.
func (s *Snapshot) Stats() (CycleStats, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats, s.updatedAt
}
