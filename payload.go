package ledboard

import (
	"sort"

	"github.com/theoremus-urban-solutions/gtfsrt-led-board/aggregate"
	"github.com/theoremus-urban-solutions/gtfsrt-led-board/ledframe"
	"github.com/theoremus-urban-solutions/gtfsrt-led-board/routecolors"
)

// BuildEntries turns the cycle's station state into LED entries for every
// occupied station present in the board layout, sorted by LED index so
// frames are byte-for-byte reproducible for identical state. Stations absent
// from the layout are excluded from the frame but stay visible in the status
// snapshot.
func BuildEntries(state map[string]*aggregate.State, layout map[string]uint16) []ledframe.Entry {
	entries := make([]ledframe.Entry, 0, len(state))
	for key, st := range state {
		idx, ok := layout[key]
		if !ok {
			continue
		}
		c := routecolors.Choose(st.RouteList())
		entries = append(entries, ledframe.Entry{
			Index: idx,
			Mode:  st.Mode,
			R:     c.R,
			G:     c.G,
			B:     c.B,
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Index < entries[j].Index })
	return entries
}
