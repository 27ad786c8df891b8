package ledboard

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/theoremus-urban-solutions/gtfsrt-led-board/ledframe"
)

var previewOrder = []ledframe.Mode{ledframe.ModeSolid, ledframe.ModeBlink, ledframe.ModePulse}

// WritePreview prints the current station states grouped by mode, one
// station per line. Used by the -test flag instead of a serial board.
func WritePreview(w io.Writer, snap *Snapshot) {
	all := snap.Stations()
	stats, at := snap.Stats()

	fmt.Fprintf(w, "=== cycle at %s (%d vehicles, %d stations, strategy %s) ===\n",
		at.Format("15:04:05"), stats.Vehicles, len(all), stats.Strategy)

	for _, mode := range previewOrder {
		var group []StationStatus
		for _, st := range all {
			if st.Mode == mode {
				group = append(group, st)
			}
		}
		if len(group) == 0 {
			continue
		}
		sort.Slice(group, func(i, j int) bool { return group[i].Name < group[j].Name })
		fmt.Fprintf(w, "%s (%d):\n", mode.String(), len(group))
		for _, st := range group {
			fmt.Fprintf(w, "  %-32s [%s]\n", st.Name, strings.Join(st.Routes, " "))
		}
	}
}
