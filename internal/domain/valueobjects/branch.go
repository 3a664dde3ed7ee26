// Package valueobjects contains immutable value objects that represent ledger
// concepts without identity. They are compared by their values, not by identity.
package valueobjects

import (
	"errors"
	"strings"
)

// Branch is a bank branch from the fixed catalog. Each branch carries a
// 3-digit code used in account identifiers, a zip code and the county used
// when reports are ordered by location.
//
// Value Object Pattern: No identity, compared by value, immutable.
type Branch struct {
	name   string // Upper-case city name, e.g. "EDISON"
	code   string
	zip    string
	county string
}

// Branch catalog.
var (
	Edison      = Branch{name: "EDISON", code: "100", zip: "08817", county: "Middlesex"}
	Bridgewater = Branch{name: "BRIDGEWATER", code: "200", zip: "08807", county: "Somerset"}
	Princeton   = Branch{name: "PRINCETON", code: "300", zip: "08542", county: "Mercer"}
	Piscataway  = Branch{name: "PISCATAWAY", code: "400", zip: "08854", county: "Middlesex"}
	Warren      = Branch{name: "WARREN", code: "500", zip: "07057", county: "Somerset"}
)

// branches keeps declaration order; lookups scan it.
var branches = []Branch{Edison, Bridgewater, Princeton, Piscataway, Warren}

// ErrUnknownBranch is returned when a branch name or code is not in the catalog.
var ErrUnknownBranch = errors.New("unknown branch")

// ParseBranch finds a branch by its city name, ignoring case and surrounding spaces.
func ParseBranch(city string) (Branch, error) {
	city = strings.TrimSpace(city)
	for _, b := range branches {
		if strings.EqualFold(b.name, city) {
			return b, nil
		}
	}
	return Branch{}, ErrUnknownBranch
}

// BranchByCode finds a branch by its 3-digit code.
func BranchByCode(code string) (Branch, error) {
	for _, b := range branches {
		if b.code == code {
			return b, nil
		}
	}
	return Branch{}, ErrUnknownBranch
}

// Branches returns the catalog in declaration order.
func Branches() []Branch {
	out := make([]Branch, len(branches))
	copy(out, branches)
	return out
}

// Name returns the upper-case branch name, e.g. "EDISON".
func (b Branch) Name() string {
	return b.name
}

// City returns the branch name with only the first letter capitalized.
func (b Branch) City() string {
	if b.name == "" {
		return ""
	}
	return b.name[:1] + strings.ToLower(b.name[1:])
}

func (b Branch) Code() string {
	return b.code
}

func (b Branch) Zip() string {
	return b.zip
}

func (b Branch) County() string {
	return b.county
}

// Equals checks if two branches are the same.
func (b Branch) Equals(other Branch) bool {
	return b.code == other.code
}

// IsZero checks if this is an uninitialized branch.
func (b Branch) IsZero() bool {
	return b.code == ""
}

// String implements fmt.Stringer.
func (b Branch) String() string {
	return b.name
}
