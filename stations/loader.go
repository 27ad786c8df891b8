package stations

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
)

// complexEntry is one row of the MTA station complexes CSV, keyed by base
// stop id.
type complexEntry struct {
	complexID string
	name      string
}

// LoadIndex builds the stop and name lookup tables from a GTFS stops.txt and
// the MTA station complexes CSV.
func LoadIndex(stopsPath, complexesPath string) (*Index, error) {
	stopRows, err := readCSV(stopsPath)
	if err != nil {
		return nil, fmt.Errorf("stops: %w", err)
	}
	complexRows, err := readCSV(complexesPath)
	if err != nil {
		return nil, fmt.Errorf("complexes: %w", err)
	}

	complexes := map[string]complexEntry{}
	ccol := headerIndex(complexRows[0])
	for _, row := range complexRows[1:] {
		sid := BaseStopID(field(row, ccol, "GTFS Stop ID"))
		if sid == "" {
			continue
		}
		if _, seen := complexes[sid]; seen {
			continue
		}
		complexes[sid] = complexEntry{
			complexID: field(row, ccol, "Complex ID"),
			name:      field(row, ccol, "Stop Name"),
		}
	}

	ix := NewIndex()
	scol := headerIndex(stopRows[0])
	for _, row := range stopRows[1:] {
		stopID := strings.ToUpper(field(row, scol, "stop_id"))
		if stopID == "" {
			continue
		}
		parent := strings.ToUpper(field(row, scol, "parent_station"))
		base := BaseStopID(stopID)

		// Parent station wins, else the base stop id. The complex remap is
		// applied after that choice so every directional stop of one station
		// lands on the same key.
		key := base
		if parent != "" {
			key = parent
		}
		name := complexes[BaseStopID(key)].name
		if id := complexes[BaseStopID(key)].complexID; id != "" {
			key = "CPLX_" + id
		}
		ix.StopToStation[stopID] = key

		if name == "" {
			name = field(row, scol, "stop_name")
		}
		if existing := ix.Names[key]; existing == "" || (name != "" && name < existing) {
			if name != "" {
				ix.Names[key] = name
			} else if existing == "" {
				ix.Names[key] = key
			}
		}
	}

	log.Printf("stations: built %d stop mappings across %d stations", len(ix.StopToStation), len(ix.Names))
	return ix, nil
}

// LoadLayout reads the board layout CSV (station_key,led_index) and returns
// the station key to LED index mapping. Invalid rows are skipped with a
// warning, not treated as fatal.
func LoadLayout(path string) (map[string]uint16, error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}

	col := headerIndex(rows[0])
	layout := map[string]uint16{}
	skipped := 0
	for i, row := range rows[1:] {
		key := strings.TrimSpace(field(row, col, "station_key"))
		if key == "" {
			continue
		}
		raw := strings.TrimSpace(field(row, col, "led_index"))
		idx, err := strconv.ParseUint(raw, 10, 16)
		if err != nil {
			log.Printf("stations: skipping layout row %d: bad led_index %q", i+2, raw)
			skipped++
			continue
		}
		layout[key] = uint16(idx)
	}

	log.Printf("stations: loaded %d LED mappings (%d rows skipped)", len(layout), skipped)
	return layout, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, rec)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: empty file", path)
	}
	return rows, nil
}

func headerIndex(head []string) map[string]int {
	col := map[string]int{}
	for i, h := range head {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return col
}

func field(row []string, col map[string]int, name string) string {
	i, ok := col[strings.ToLower(name)]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
