package analysis

import (
	"strings"
)

// Sex selects the formula variant
type Sex int

const (
	Male Sex = iota + 1
	Female
)

func (s Sex) String() string {
	switch s {
	case Male:
		return "male"
	case Female:
		return "female"
	default:
		return "unknown"
	}
}

// Valid reports whether s is Male or Female
func (s Sex) Valid() bool {
	return s == Male || s == Female
}

// ParseSex resolves a user-supplied value. Dutch forms ("man", "vrouw") are accepted.
func ParseSex(s string) (Sex, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "man", "m":
		return Male, nil
	case "female", "vrouw", "v", "f":
		return Female, nil
	default:
		return 0, ErrUnknownSex
	}
}

// Mifflin-St Jeor sex offsets
const (
	maleBMROffset   = 5.0
	femaleBMROffset = -161.0
)

// BMRMifflin computes basal metabolic rate in kcal/day.
// Inputs are not validated; zero or negative values yield a numeric result.
func BMRMifflin(sex Sex, weightKG, heightCM, ageYears float64) float64 {
	base := 10*weightKG + 6.25*heightCM - 5*ageYears
	if sex == Male {
		return base + maleBMROffset
	}
	return base + femaleBMROffset
}

// TDEE scales a BMR by an activity multiplier
func TDEE(bmr, factor float64) float64 {
	return bmr * factor
}

// ActivityLevel is one of the five fixed activity tiers
type ActivityLevel int

const (
	ActivitySedentary ActivityLevel = iota
	ActivityLight
	ActivityModerate
	ActivityVeryActive
	ActivityExtreme
)

type activityInfo struct {
	key        string
	label      string
	multiplier float64
}

// activityTable is indexed by ActivityLevel and never written after init
var activityTable = [...]activityInfo{
	ActivitySedentary:  {"sedentary", "Little or no exercise", 1.2},
	ActivityLight:      {"light", "Light activity (1–3x/week)", 1.375},
	ActivityModerate:   {"moderate", "Moderate activity (3–5x/week)", 1.55},
	ActivityVeryActive: {"very_active", "Very active (6–7x/week)", 1.725},
	ActivityExtreme:    {"extreme", "Extremely active (2x/day)", 1.9},
}

// ActivityLevels returns all tiers from least to most active
func ActivityLevels() []ActivityLevel {
	levels := make([]ActivityLevel, len(activityTable))
	for i := range activityTable {
		levels[i] = ActivityLevel(i)
	}
	return levels
}

// Valid reports whether a is one of the five tiers
func (a ActivityLevel) Valid() bool {
	return a >= 0 && int(a) < len(activityTable)
}

// Multiplier returns the TDEE factor, or 0 for an invalid level
func (a ActivityLevel) Multiplier() float64 {
	if !a.Valid() {
		return 0
	}
	return activityTable[a].multiplier
}

// Key returns the stable identifier used by the CLI and API
func (a ActivityLevel) Key() string {
	if !a.Valid() {
		return ""
	}
	return activityTable[a].key
}

// Label returns the English display label
func (a ActivityLevel) Label() string {
	if !a.Valid() {
		return ""
	}
	return activityTable[a].label
}

func (a ActivityLevel) String() string {
	if !a.Valid() {
		return "unknown"
	}
	return a.Key()
}

// ParseActivityLevel resolves a key such as "moderate"
func ParseActivityLevel(key string) (ActivityLevel, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	for i, info := range activityTable {
		if info.key == key {
			return ActivityLevel(i), nil
		}
	}
	return 0, ErrUnknownActivity
}
