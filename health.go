package ledboard

import (
	"encoding/json"
	"net/http"
)

type healthResponse struct {
	Status         string  `json:"status"`
	LastCycleEpoch int64   `json:"last_cycle_epoch"`
	LastCycleMS    float64 `json:"last_cycle_ms"`
	Strategy       string  `json:"strategy"`
}

func handleHealth(snap *Snapshot) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		stats, at := snap.Stats()
		resp := healthResponse{
			Status:   "ok",
			Strategy: stats.Strategy,
		}
		if !at.IsZero() {
			resp.LastCycleEpoch = at.Unix()
			resp.LastCycleMS = stats.ElapsedMS
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}
