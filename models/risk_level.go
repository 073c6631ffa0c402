package models

import "fmt"

// RiskLevel is an immutable value object representing the risk classification of a score.
type RiskLevel struct {
	value string
}

var (
	RiskLevelMinimal = RiskLevel{value: "MINIMAL"}
	RiskLevelLow     = RiskLevel{value: "LOW"}
	RiskLevelMedium  = RiskLevel{value: "MEDIUM"}
	RiskLevelHigh    = RiskLevel{value: "HIGH"}
)

// RiskLevelFromString reconstructs a RiskLevel from its string representation.
func RiskLevelFromString(s string) (RiskLevel, error) {
	switch s {
	case "MINIMAL":
		return RiskLevelMinimal, nil
	case "LOW":
		return RiskLevelLow, nil
	case "MEDIUM":
		return RiskLevelMedium, nil
	case "HIGH":
		return RiskLevelHigh, nil
	default:
		return RiskLevel{}, fmt.Errorf("invalid risk level: %s", s)
	}
}

// RiskLevelFromScore derives the RiskLevel from a clamped score (0-100).
func RiskLevelFromScore(score float64) RiskLevel {
	switch {
	case score >= 70:
		return RiskLevelHigh
	case score >= 40:
		return RiskLevelMedium
	case score >= 20:
		return RiskLevelLow
	default:
		return RiskLevelMinimal
	}
}

func (r RiskLevel) String() string {
	return r.value
}

func (r RiskLevel) Equal(other RiskLevel) bool {
	return r.value == other.value
}

func (r RiskLevel) MarshalText() ([]byte, error) {
	return []byte(r.value), nil
}

func (r *RiskLevel) UnmarshalText(text []byte) error {
	level, err := RiskLevelFromString(string(text))
	if err != nil {
		return err
	}
	*r = level
	return nil
}
