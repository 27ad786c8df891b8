package routecolors

import (
	"sort"
	"strings"
)

// RGB is a display color triple.
type RGB struct {
	R uint8
	G uint8
	B uint8
}

// Neutral is returned when no route determines a color.
var Neutral = RGB{R: 80, G: 80, B: 80}

// routeRGB maps route ids to NYCT line colors.
var routeRGB = map[string]RGB{
	"A": {0, 57, 166}, "C": {0, 57, 166}, "E": {0, 57, 166},
	"B": {255, 99, 25}, "D": {255, 99, 25}, "F": {255, 99, 25}, "M": {255, 99, 25},
	"G": {108, 190, 69},
	"J": {163, 130, 78}, "Z": {163, 130, 78},
	"L": {167, 169, 172},
	"N": {252, 204, 10}, "Q": {252, 204, 10}, "R": {252, 204, 10}, "W": {252, 204, 10},
	"1": {238, 53, 46}, "2": {238, 53, 46}, "3": {238, 53, 46},
	"4": {0, 147, 60}, "5": {0, 147, 60}, "6": {0, 147, 60},
	"7": {185, 51, 173},
	"S": {155, 155, 155}, "FS": {155, 155, 155},
	"H":  {0, 57, 166},
	"SI": {0, 57, 166},
}

// Priority order applied under multi-route conflict.
var (
	letterPriority = []string{"A", "B", "C", "D", "E", "F", "G", "J", "L", "M", "N", "Q", "R", "W", "Z"}
	digitPriority  = []string{"1", "2", "3", "4", "5", "6", "7"}
	tailPriority   = []string{"S", "FS", "H", "SI"}
)

// Choose resolves the active route set at one station to a single color.
// Routes are trimmed, upper-cased and deduplicated first. The first entry of
// the priority order present in the set wins; routes with a registered color
// but no priority slot fall back to the lexicographically first match, and
// anything else yields Neutral. Choose never fails.
func Choose(routes []string) RGB {
	uniq := map[string]struct{}{}
	for _, r := range routes {
		r = strings.ToUpper(strings.TrimSpace(r))
		if r != "" {
			uniq[r] = struct{}{}
		}
	}
	if len(uniq) == 0 {
		return Neutral
	}

	for _, order := range [][]string{letterPriority, digitPriority, tailPriority} {
		for _, code := range order {
			if _, ok := uniq[code]; ok {
				if c, known := routeRGB[code]; known {
					return c
				}
				return Neutral
			}
		}
	}

	// Registered but unprioritized routes: deterministic lexicographic pick.
	rest := make([]string, 0, len(uniq))
	for r := range uniq {
		if _, known := routeRGB[r]; known {
			rest = append(rest, r)
		}
	}
	if len(rest) > 0 {
		sort.Strings(rest)
		return routeRGB[rest[0]]
	}
	return Neutral
}

// Lookup returns the registered color for a single route id, if any.
func Lookup(route string) (RGB, bool) {
	c, ok := routeRGB[strings.ToUpper(strings.TrimSpace(route))]
	return c, ok
}
