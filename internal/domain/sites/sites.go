package sites

import "strings"

// Type categorizes a snorkel/dive site.
type Type string

const (
	TypeBay    Type = "bay"
	TypeBeach  Type = "beach"
	TypeCove   Type = "cove"
	TypeReef   Type = "reef"
	TypeLagoon Type = "lagoon"
	TypeHarbor Type = "harbor"
)

// Difficulty is the entry skill level a site demands.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
	DifficultyAllLevels    Difficulty = "all_levels"
)

// Coordinates locates a site in decimal degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Site is the immutable metadata for a monitored location. The catalog is
// loaded at process start and never mutated.
type Site struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Coordinates    Coordinates `json:"coordinates"`
	Type           Type        `json:"type"`
	Description    string      `json:"description"`
	Facilities     []string    `json:"facilities"`
	BestConditions string      `json:"bestConditions"`
	Difficulty     Difficulty  `json:"difficulty"`
}

// ParseType maps untrusted input onto a known site type. Unknown values
// yield the empty type so callers can treat them as "no filter".
func ParseType(v string) Type {
	switch Type(strings.ToLower(strings.TrimSpace(v))) {
	case TypeBay, TypeBeach, TypeCove, TypeReef, TypeLagoon, TypeHarbor:
		return Type(strings.ToLower(strings.TrimSpace(v)))
	default:
		return ""
	}
}

// ParseDifficulty maps untrusted input onto a known difficulty tier.
func ParseDifficulty(v string) Difficulty {
	switch Difficulty(strings.ToLower(strings.TrimSpace(v))) {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced, DifficultyAllLevels:
		return Difficulty(strings.ToLower(strings.TrimSpace(v)))
	default:
		return ""
	}
}

// All returns every catalog site in declaration order.
func All() []Site {
	out := make([]Site, len(catalog))
	copy(out, catalog)
	return out
}

// ByID looks up a site by its identifier.
func ByID(id string) (Site, bool) {
	for _, s := range catalog {
		if s.ID == id {
			return s, true
		}
	}
	return Site{}, false
}

// ByName looks up a site by display name, case-insensitively.
func ByName(name string) (Site, bool) {
	for _, s := range catalog {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return Site{}, false
}

// Filter returns catalog sites matching the optional type and difficulty.
// Empty filter values match everything.
func Filter(siteType Type, difficulty Difficulty) []Site {
	out := make([]Site, 0, len(catalog))
	for _, s := range catalog {
		if siteType != "" && s.Type != siteType {
			continue
		}
		if difficulty != "" && s.Difficulty != difficulty {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Count reports the catalog size.
func Count() int {
	return len(catalog)
}
