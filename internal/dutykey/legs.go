package dutykey

import (
	"strings"

	"fleetops/internal/domain"
	"fleetops/internal/domain/models"
)

const (
	legTypeSep = " + "
	legDropSep = " | "
)

// SplitLegs zips the joined duty type and drop location strings by index.
// Drop entries missing past the shorter list come back as "".
func SplitLegs(dutyType, dropLocation string) []models.DutyLeg {
	if strings.TrimSpace(dutyType) == "" {
		return []models.DutyLeg{}
	}
	types := strings.Split(dutyType, legTypeSep)
	var drops []string
	if dropLocation != "" {
		drops = strings.Split(dropLocation, legDropSep)
	}

	legs := make([]models.DutyLeg, len(types))
	for i, t := range types {
		legs[i].Type = t
		if i < len(drops) {
			legs[i].DropLocation = drops[i]
		}
	}
	return legs
}

// JoinLegs is the inverse of SplitLegs. Trailing empty drop entries are
// dropped so a single-leg duty without a drop yields "".
func JoinLegs(legs []models.DutyLeg) (dutyType, dropLocation string) {
	types := make([]string, 0, len(legs))
	drops := make([]string, 0, len(legs))
	for _, l := range legs {
		types = append(types, strings.TrimSpace(l.Type))
		drops = append(drops, strings.TrimSpace(l.DropLocation))
	}
	for len(drops) > 0 && drops[len(drops)-1] == "" {
		drops = drops[:len(drops)-1]
	}
	return strings.Join(types, legTypeSep), strings.Join(drops, legDropSep)
}

// ValidateLegs rejects leg text containing the join separators.
func ValidateLegs(legs []models.DutyLeg) error {
	if len(legs) == 0 {
		return domain.Invalid("legs", "at least one duty is required")
	}
	for _, l := range legs {
		if strings.TrimSpace(l.Type) == "" {
			return domain.Invalid("legs", "duty type is required")
		}
		if containsSep(l.Type, legTypeSep) {
			return domain.Invalid("legs", "duty type must not contain ' + '")
		}
		if containsSep(l.DropLocation, legDropSep) {
			return domain.Invalid("legs", "drop location must not contain ' | '")
		}
	}
	return nil
}

// containsSep also catches a separator half-formed at either edge, which
// would merge with the join separator.
func containsSep(s, sep string) bool {
	return strings.Contains(" "+strings.TrimSpace(s)+" ", sep)
}
