package models

import (
	"fmt"
	"strings"
)

// Destination is a single travel target on the bucket list.
//
// The JSON form is the persisted layout: exactly the three fields below.
type Destination struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Visited bool   `json:"visited"`
}

// StatusLabel returns the label shown next to the destination name.
func (d Destination) StatusLabel() string {
	if d.Visited {
		return "Visited"
	}
	return "Not Visited"
}

// NormalizeName trims surrounding whitespace from a user-supplied name and
// rejects names that end up empty.
func NormalizeName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", fmt.Errorf("%w: name required", ErrValidation)
	}
	return name, nil
}

// Clone returns a copy of list that does not share its backing array.
// A nil list becomes an empty, non-nil slice.
func Clone(list []Destination) []Destination {
	out := make([]Destination, len(list))
	copy(out, list)
	return out
}
