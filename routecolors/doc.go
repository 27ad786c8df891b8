// Package routecolors resolves the set of routes active at a station to a
// single display color.
//
// Colors follow the official NYCT line colors. When several routes serve one
// station at the same time a fixed priority order decides which line's color
// is shown: lettered trunk lines first, then the numbered lines 1-7, then
// shuttle codes. Resolution is a pure function and is total over arbitrary
// input strings.
package routecolors
