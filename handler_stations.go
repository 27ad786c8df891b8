package ledboard

import (
	"encoding/json"
	"net/http"
	"strings"
)

type stationsResponse struct {
	Stations []StationStatus `json:"stations"`
	Cycle    CycleStats      `json:"cycle"`
}

func handleStations(snap *Snapshot) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		stats, _ := snap.Stats()
		resp := stationsResponse{
			Stations: snap.Stations(),
			Cycle:    stats,
		}
		if resp.Stations == nil {
			resp.Stations = []StationStatus{}
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func handleStation(snap *Snapshot) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		key := strings.TrimPrefix(r.URL.Path, "/api/stations/")
		if key == "" {
			w.WriteHeader(400)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "missing station key"})
			return
		}
		st, ok := snap.Station(key)
		if !ok {
			w.WriteHeader(404)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "no vehicles at station " + key})
			return
		}
		_ = json.NewEncoder(w).Encode(st)
	}
}
