package models

import (
	"sort"
	"strings"
)

// Guide is the read-only projection of a tour guide profile.
type Guide struct {
	ID         string   `bson:"_id" json:"_id" yaml:"id"`
	Name       string   `bson:"name" json:"name" yaml:"name"`
	Bio        string   `bson:"bio" json:"bio" yaml:"bio"`
	Languages  []string `bson:"languages" json:"languages" yaml:"languages"`
	Activities []string `bson:"activities" json:"activities" yaml:"activities"`
	Active     bool     `bson:"active" json:"active" yaml:"active"`
	// Cities is only used by the sandbox catalog to answer guides-by-city searches.
	Cities []string `bson:"cities,omitempty" json:"cities,omitempty" yaml:"cities,omitempty"`
}

// ActiveGuidesByName keeps active guides, sorted ascending by lower-cased name.
// A missing name sorts as the empty string.
func ActiveGuidesByName(guides []Guide) []Guide {
	out := make([]Guide, 0, len(guides))
	for _, g := range guides {
		if g.Active {
			out = append(out, g)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}
