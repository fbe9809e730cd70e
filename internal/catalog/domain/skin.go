package domain

import "strings"

// SkinType is one of the five canonical skin types.
type SkinType string

const (
	Combination SkinType = "Combination"
	Dry         SkinType = "Dry"
	Normal      SkinType = "Normal"
	Oily        SkinType = "Oily"
	Sensitive   SkinType = "Sensitive"
)

// DefaultSkinType is substituted for missing or unknown values.
const DefaultSkinType = Normal

// SkinTypes lists the skin types in canonical order. Arg-max ties resolve
// to the earliest entry.
var SkinTypes = []SkinType{Combination, Dry, Normal, Oily, Sensitive}

// DisplaySkinTypes is the order offered to users in forms.
var DisplaySkinTypes = []SkinType{Oily, Dry, Combination, Normal, Sensitive}

// ParseSkinType matches s case-insensitively against the canonical names.
func ParseSkinType(s string) (SkinType, bool) {
	s = strings.TrimSpace(s)
	for _, st := range SkinTypes {
		if strings.EqualFold(string(st), s) {
			return st, true
		}
	}
	return "", false
}

func (s SkinType) String() string { return string(s) }
