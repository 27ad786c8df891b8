package aggregate

import (
	"log"
	"strings"
	"time"

	gtfsrt "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/bluele/gcache"
	"google.golang.org/protobuf/proto"

	"github.com/theoremus-urban-solutions/gtfsrt-led-board/ledframe"
	"github.com/theoremus-urban-solutions/gtfsrt-led-board/stations"
)

const (
	unknownStopCacheSize = 4096
	unknownStopLogWindow = time.Hour
)

// State is the occupancy of one station for the current cycle.
type State struct {
	Routes map[string]struct{}
	Mode   ledframe.Mode
}

// RouteList returns the route set as a slice, order unspecified.
func (s *State) RouteList() []string {
	out := make([]string, 0, len(s.Routes))
	for r := range s.Routes {
		out = append(out, r)
	}
	return out
}

// Result is the aggregation outcome for one cycle.
type Result struct {
	Stations    map[string]*State
	Vehicles    int
	ParseErrors int
	Unmapped    int
}

// Aggregator folds feed payloads into station state. It keeps a small TTL
// cache of already-reported unknown stop ids so the log is not flooded with
// the same id every cycle.
type Aggregator struct {
	index  *stations.Index
	warned gcache.Cache
}

// New creates an Aggregator bound to the given station index.
func New(index *stations.Index) *Aggregator {
	return &Aggregator{
		index: index,
		warned: gcache.New(unknownStopCacheSize).
			LRU().
			Expiration(unknownStopLogWindow).
			Build(),
	}
}

// Aggregate parses every payload and merges all vehicle positions into
// per-station state. Payloads are independent: a parse failure skips that
// payload only.
func (a *Aggregator) Aggregate(payloads [][]byte) *Result {
	res := &Result{Stations: map[string]*State{}}

	for _, blob := range payloads {
		var fm gtfsrt.FeedMessage
		if err := proto.Unmarshal(blob, &fm); err != nil {
			res.ParseErrors++
			log.Printf("aggregate: failed to parse feed payload: %v", err)
			continue
		}

		for _, entity := range fm.GetEntity() {
			v := entity.GetVehicle()
			if v == nil || v.CurrentStatus == nil || v.GetStopId() == "" {
				continue
			}
			res.Vehicles++

			mode := modeForStatus(v.GetCurrentStatus())
			if mode == ledframe.ModeOff {
				continue
			}

			raw := strings.ToUpper(strings.TrimSpace(v.GetStopId()))
			key, ok := a.index.StationForStop(raw)
			if !ok {
				// Last resort: the stripped id itself becomes the key, so
				// an incomplete lookup table still lights mapped LEDs.
				key = stations.BaseStopID(raw)
				res.Unmapped++
				a.warnOnce(raw)
			}

			route := strings.ToUpper(strings.TrimSpace(v.GetTrip().GetRouteId()))
			res.add(key, route, mode)
		}
	}
	return res
}

func (r *Result) add(key, route string, mode ledframe.Mode) {
	st := r.Stations[key]
	if st == nil {
		st = &State{Routes: map[string]struct{}{}}
		r.Stations[key] = st
	}
	if route != "" {
		st.Routes[route] = struct{}{}
	}
	st.Mode = st.Mode.Max(mode)
}

func modeForStatus(status gtfsrt.VehiclePosition_VehicleStopStatus) ledframe.Mode {
	switch status {
	case gtfsrt.VehiclePosition_STOPPED_AT:
		return ledframe.ModeSolid
	case gtfsrt.VehiclePosition_INCOMING_AT:
		return ledframe.ModeBlink
	case gtfsrt.VehiclePosition_IN_TRANSIT_TO:
		return ledframe.ModePulse
	}
	return ledframe.ModeOff
}

func (a *Aggregator) warnOnce(stopID string) {
	if _, err := a.warned.Get(stopID); err == nil {
		return
	}
	log.Printf("aggregate: unknown stop id %q", stopID)
	_ = a.warned.Set(stopID, struct{}{})
}
