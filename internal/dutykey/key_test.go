package dutykey

import (
	"regexp"
	"testing"

	"fleetops/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var suffixPattern = regexp.MustCompile(`^[a-z0-9]{5}$`)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	key := Encode("dl01ab1234", "2024-03-05", "")
	k := Decode(key)

	assert.Equal(t, "DL01AB1234", k.Plate)
	assert.Equal(t, "2024-03-05", k.Date)
	assert.Len(t, k.Suffix, SuffixLen)
	assert.Regexp(t, suffixPattern, k.Suffix)
	assert.Equal(t, key, k.String())
}

func TestEncodeTrimsPlateAndReusesSuffix(t *testing.T) {
	assert.Equal(t, "MH12XY0001#2024-01-01#ab12c", Encode("  mh12xy0001 ", "2024-01-01", "ab12c"))
}

func TestNewSuffixIsIndependentPerCall(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		s := NewSuffix()
		require.Regexp(t, suffixPattern, s)
		seen[s] = true
	}
	// 36^5 possibilities; 50 draws colliding down to one value means no randomness
	assert.Greater(t, len(seen), 1)
}

func TestDecodeMalformed(t *testing.T) {
	assert.Equal(t, Key{Plate: "JUSTPLATE"}, Decode("JUSTPLATE"))
	assert.Equal(t, Key{Plate: "P", Date: "2024-01-01"}, Decode("P#2024-01-01"))
	assert.Equal(t, Key{}, Decode(""))
	assert.Equal(t, Key{Plate: "P", Date: "D", Suffix: "S"}, Decode("P#D#S#extra"))
}

func TestRekeyForEditPreservesSuffixWhenUnchanged(t *testing.T) {
	original := "DL01AB1234#2024-03-05#x9y8z"

	key, rotated := RekeyForEdit(original, "dl01ab1234 ", "2024-03-05")
	assert.False(t, rotated)
	assert.Equal(t, original, key)
}

func TestRekeyForEditRotatesOnDateChange(t *testing.T) {
	original := "DL01AB1234#2024-03-05#x9y8z"

	key, rotated := RekeyForEdit(original, "DL01AB1234", "2024-03-06")
	require.True(t, rotated)
	k := Decode(key)
	assert.Equal(t, "2024-03-06", k.Date)
	assert.NotEqual(t, "x9y8z", k.Suffix)
	assert.Regexp(t, suffixPattern, k.Suffix)
}

func TestRekeyForEditRotatesOnPlateChange(t *testing.T) {
	key, rotated := RekeyForEdit("DL01AB1234#2024-03-05#x9y8z", "DL01AB9999", "2024-03-05")
	assert.True(t, rotated)
	assert.Equal(t, "DL01AB9999", Decode(key).Plate)
}

func TestRekeyForEditMalformedOriginalGetsSuffix(t *testing.T) {
	key, rotated := RekeyForEdit("DL01AB1234", "DL01AB1234", "")
	assert.True(t, rotated)
	assert.Regexp(t, suffixPattern, Decode(key).Suffix)
}

func TestValidateParts(t *testing.T) {
	assert.NoError(t, ValidateParts("dl01ab1234", "2024-03-05"))

	for _, tc := range []struct{ plate, date string }{
		{"", "2024-03-05"},
		{"DL#01", "2024-03-05"},
		{"DL01", "2024-3-5"},
		{"DL01", "05-03-2024"},
		{"DL01", "2024-13-01"},
		{"DL01", ""},
	} {
		err := ValidateParts(tc.plate, tc.date)
		assert.True(t, domain.IsValidation(err), "%q %q", tc.plate, tc.date)
	}
}
