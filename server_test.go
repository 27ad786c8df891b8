package ledboard

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/theoremus-urban-solutions/gtfsrt-led-board/aggregate"
	"github.com/theoremus-urban-solutions/gtfsrt-led-board/ledframe"
)

func populatedSnapshot() *Snapshot {
	snap := NewSnapshot()
	res := &aggregate.Result{
		Stations: map[string]*aggregate.State{
			"F15": {
				Routes: map[string]struct{}{"F": {}, "Q": {}},
				Mode:   ledframe.ModeBlink,
			},
		},
		Vehicles: 2,
	}
	stats := CycleStats{Payloads: 3, Vehicles: 2, Strategy: "h2", ElapsedMS: 12.5}
	snap.Update(res, driverIndex(), stats, time.Unix(1700000000, 0))
	return snap
}

func TestHandleStations(t *testing.T) {
	snap := populatedSnapshot()
	rec := httptest.NewRecorder()
	handleStations(snap)(rec, httptest.NewRequest("GET", "/api/stations", nil))

	if rec.Code != 200 {
		t.Fatalf("got status %d, want 200", rec.Code)
	}
	var resp stationsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if len(resp.Stations) != 1 {
		t.Fatalf("got %d stations, want 1", len(resp.Stations))
	}
	st := resp.Stations[0]
	if st.Key != "F15" || st.Name != "Delancey St-Essex St" {
		t.Errorf("got station %q/%q, want F15/Delancey St-Essex St", st.Key, st.Name)
	}
	if st.ModeName != "blink" {
		t.Errorf("got mode name %q, want blink", st.ModeName)
	}
	if resp.Cycle.Strategy != "h2" {
		t.Errorf("got strategy %q, want h2", resp.Cycle.Strategy)
	}
}

func TestHandleStationsEmptySnapshot(t *testing.T) {
	rec := httptest.NewRecorder()
	handleStations(NewSnapshot())(rec, httptest.NewRequest("GET", "/api/stations", nil))

	var resp struct {
		Stations []StationStatus `json:"stations"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if resp.Stations == nil {
		t.Error("stations field serialized as null, want an empty array")
	}
}

func TestHandleStationByKey(t *testing.T) {
	snap := populatedSnapshot()

	rec := httptest.NewRecorder()
	handleStation(snap)(rec, httptest.NewRequest("GET", "/api/stations/F15", nil))
	if rec.Code != 200 {
		t.Fatalf("got status %d, want 200", rec.Code)
	}
	var st StationStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if st.Key != "F15" {
		t.Errorf("got key %q, want F15", st.Key)
	}

	rec = httptest.NewRecorder()
	handleStation(snap)(rec, httptest.NewRequest("GET", "/api/stations/ZZZ", nil))
	if rec.Code != 404 {
		t.Errorf("got status %d for unknown station, want 404", rec.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	snap := populatedSnapshot()
	rec := httptest.NewRecorder()
	handleHealth(snap)(rec, httptest.NewRequest("GET", "/api/health", nil))

	var resp healthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("got status %q, want ok", resp.Status)
	}
	if resp.LastCycleEpoch != 1700000000 {
		t.Errorf("got epoch %d, want 1700000000", resp.LastCycleEpoch)
	}
}
