package dutykey

import (
	"math/rand/v2"
	"strings"
	"time"

	"fleetops/internal/domain"
)

const (
	sep            = "#"
	SuffixLen      = 5
	suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	dateLayout     = "2006-01-02"
)

// Key is the decoded form of a plate#date#suffix identifier.
type Key struct {
	Plate  string `json:"plate"`
	Date   string `json:"date"`
	Suffix string `json:"suffix"`
}

func (k Key) String() string {
	return k.Plate + sep + k.Date + sep + k.Suffix
}

// NormalizePlate trims and uppercases a licence plate.
func NormalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}

// NewSuffix returns SuffixLen random lowercase alphanumerics. It
// disambiguates duties of one plate on one day and is not a primary key.
func NewSuffix() string {
	b := make([]byte, SuffixLen)
	for i := range b {
		b[i] = suffixAlphabet[rand.IntN(len(suffixAlphabet))]
	}
	return string(b)
}

// Encode builds plate#date#suffix, reusing existingSuffix when given.
func Encode(plate, date, existingSuffix string) string {
	suffix := existingSuffix
	if suffix == "" {
		suffix = NewSuffix()
	}
	return Key{Plate: NormalizePlate(plate), Date: date, Suffix: suffix}.String()
}

// Decode splits key on '#'. Missing parts decode to "".
func Decode(key string) Key {
	parts := strings.Split(key, sep)
	part := func(i int) string {
		if i < len(parts) {
			return parts[i]
		}
		return ""
	}
	return Key{Plate: part(0), Date: part(1), Suffix: part(2)}
}

// RekeyForEdit keeps the original suffix only when plate and date are both
// unchanged. rotated reports whether a fresh suffix was generated.
func RekeyForEdit(originalKey, plate, date string) (key string, rotated bool) {
	old := Decode(originalKey)
	if NormalizePlate(plate) == old.Plate && date == old.Date && old.Suffix != "" {
		return Encode(plate, date, old.Suffix), false
	}
	return Encode(plate, date, ""), true
}

// ValidateParts rejects values that would corrupt the encoded key: a plate
// holding the separator, or a date outside the exact YYYY-MM-DD form that
// keeps lexicographic and chronological order equal.
func ValidateParts(plate, date string) error {
	p := NormalizePlate(plate)
	if p == "" {
		return domain.Invalid("carNumber", "plate is required")
	}
	if strings.Contains(p, sep) {
		return domain.Invalid("carNumber", "plate must not contain '#'")
	}
	if len(date) != len(dateLayout) {
		return domain.Invalid("date", "date must be YYYY-MM-DD")
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return domain.ValidationError{Field: "date", Msg: "date must be YYYY-MM-DD", Err: err}
	}
	return nil
}
