package risk

import "strings"

// Level is the ordinal bleaching risk tier.
type Level string

const (
	LevelLow      Level = "Low"
	LevelModerate Level = "Moderate"
	LevelHigh     Level = "High"
	LevelSevere   Level = "Severe"
	LevelUnknown  Level = "Unknown"
)

// Color is the visualization tag paired with each level.
type Color string

const (
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
	ColorOrange Color = "orange"
	ColorRed    Color = "red"
	ColorGray   Color = "gray"
)

// DHW thresholds separating the risk tiers, in degree-heating-weeks.
const (
	dhwModerate = 4.0
	dhwHigh     = 8.0
	dhwSevere   = 12.0
)

// Anomaly above this many degrees escalates the tier by one.
const anomalyEscalation = 1.0

// Assessment is the derived risk view for a site. It is never persisted.
type Assessment struct {
	Level       Level  `json:"level"`
	Color       Color  `json:"color"`
	Score       int    `json:"score"`
	Description string `json:"description"`
}

var descriptions = map[Level]string{
	LevelLow:      "Conditions are normal. Safe for coral viewing and snorkeling.",
	LevelModerate: "Slightly elevated temperatures. Monitor conditions and avoid disturbing coral.",
	LevelHigh:     "Significant thermal stress detected. Coral bleaching may be occurring.",
	LevelSevere:   "Extreme stress conditions. Active coral bleaching likely in progress.",
	LevelUnknown:  "Insufficient data to assess current risk level.",
}

var colors = map[Level]Color{
	LevelLow:      ColorGreen,
	LevelModerate: ColorYellow,
	LevelHigh:     ColorOrange,
	LevelSevere:   ColorRed,
	LevelUnknown:  ColorGray,
}

var scores = map[Level]int{
	LevelLow:      0,
	LevelModerate: 1,
	LevelHigh:     2,
	LevelSevere:   3,
	LevelUnknown:  -1,
}

var ordered = []Level{LevelLow, LevelModerate, LevelHigh, LevelSevere}

// Classify maps raw heat-stress signals to an assessment. A nil dhw means
// no data and yields Unknown; an anomaly above 1.0 degrees escalates one
// tier, capped at Severe. Never fails.
func Classify(dhw, anomaly *float64) Assessment {
	if dhw == nil {
		return FromLevel(LevelUnknown)
	}

	var level Level
	switch {
	case *dhw < dhwModerate:
		level = LevelLow
	case *dhw < dhwHigh:
		level = LevelModerate
	case *dhw < dhwSevere:
		level = LevelHigh
	default:
		level = LevelSevere
	}

	if anomaly != nil && *anomaly > anomalyEscalation {
		level = escalate(level)
	}

	return FromLevel(level)
}

// FromDHW classifies on heat stress alone. Used at forecast time where no
// anomaly signal exists.
func FromDHW(dhw float64) Assessment {
	return Classify(&dhw, nil)
}

// FromLevel rebuilds the full assessment for a pre-classified level.
// Warehouse rows that already carry a risk level are treated as
// authoritative and are not re-escalated here.
func FromLevel(level Level) Assessment {
	if _, ok := scores[level]; !ok {
		level = LevelUnknown
	}
	return Assessment{
		Level:       level,
		Color:       colors[level],
		Score:       scores[level],
		Description: descriptions[level],
	}
}

// ParseLevel degrades unknown input to Unknown rather than failing.
func ParseLevel(v string) Level {
	candidate := Level(strings.TrimSpace(v))
	if _, ok := scores[candidate]; ok {
		return candidate
	}
	return LevelUnknown
}

// ParseColor degrades unknown input to gray rather than failing.
func ParseColor(v string) Color {
	candidate := Color(strings.ToLower(strings.TrimSpace(v)))
	switch candidate {
	case ColorGreen, ColorYellow, ColorOrange, ColorRed, ColorGray:
		return candidate
	}
	return ColorGray
}

// Rank orders levels for sorting: Low first, Unknown last.
func Rank(level Level) int {
	for i, l := range ordered {
		if l == level {
			return i
		}
	}
	return len(ordered)
}

func escalate(level Level) Level {
	for i, l := range ordered {
		if l == level {
			if i+1 < len(ordered) {
				return ordered[i+1]
			}
			return LevelSevere
		}
	}
	return level
}
