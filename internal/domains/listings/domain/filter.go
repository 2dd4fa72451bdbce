package domain

import "strings"

// Filter returns the pets matching the query, preserving the relative order
// of the input. An empty query matches every pet; otherwise the query is a
// case-insensitive substring match against name, breed, type, or location.
// The function is pure: the input slice is never mutated and filtering twice
// with the same query yields the same result as filtering once.
func Filter(pets []*Pet, query string) []*Pet {
	needle := strings.ToLower(strings.TrimSpace(query))
	matched := make([]*Pet, 0, len(pets))
	for _, pet := range pets {
		if pet == nil {
			continue
		}
		if needle == "" || pet.matchesQuery(needle) {
			matched = append(matched, pet)
		}
	}
	return matched
}

func (p *Pet) matchesQuery(needle string) bool {
	return strings.Contains(strings.ToLower(p.Name), needle) ||
		strings.Contains(strings.ToLower(p.Breed), needle) ||
		strings.Contains(strings.ToLower(p.Type), needle) ||
		strings.Contains(strings.ToLower(p.Location), needle)
}
