package enums

import "fmt"

// FreezingType classifies how a delivery line is stored, frozen or chilled.
// The wire values keep the localized labels the upstream spreadsheets and
// clients use.
type FreezingType string

const (
	FreezingTypeFrozen  FreezingType = "冷凍"
	FreezingTypeChilled FreezingType = "冷藏"
)

var validFreezingTypes = []FreezingType{
	FreezingTypeFrozen,
	FreezingTypeChilled,
}

// String implements fmt.Stringer.
func (f FreezingType) String() string {
	return string(f)
}

// IsValid reports whether the freezing type is recognized.
func (f FreezingType) IsValid() bool {
	for _, candidate := range validFreezingTypes {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseFreezingType converts a raw string into a FreezingType.
func ParseFreezingType(value string) (FreezingType, error) {
	for _, candidate := range validFreezingTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid freezing type %q", value)
}
