package engine

import (
	"regexp"
	"strings"
)

var zipRe = regexp.MustCompile(`\b\d{5}\b`)

// StaticGeocoder resolves zips without a network call: an explicit zip in
// the text wins, otherwise a neighborhood table is consulted. Deployments
// with a real geocoding service swap in their own Geocoder.
type StaticGeocoder struct {
	Neighborhoods map[string]string
}

// ResolveZip implements Geocoder
func (g *StaticGeocoder) ResolveZip(partial string) (string, bool) {
	if zip := zipRe.FindString(partial); zip != "" {
		return zip, true
	}
	lower := strings.ToLower(partial)
	for name, zip := range g.Neighborhoods {
		if strings.Contains(lower, name) {
			return zip, true
		}
	}
	return "", false
}
