package codepattern

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat_ZeroPadding(t *testing.T) {
	p := Pattern{Prefix: "ACQ", Separator: "-", MinDigits: 3}

	assert.Equal(t, "ACQ-042", Format(42, p))
	assert.Equal(t, "ACQ-001", Format(1, p))
}

func TestFormat_WideNumberNeverTruncated(t *testing.T) {
	p := Pattern{Prefix: "ACQ", Separator: "", MinDigits: 3}

	assert.Equal(t, "ACQ1000", Format(1000, p))
}

func TestFormat_LowercasePrefixNormalized(t *testing.T) {
	p := Pattern{Prefix: "acq", Separator: "-", MinDigits: 3}

	assert.Equal(t, "ACQ-007", Format(7, p))
}

func TestExtractNumber(t *testing.T) {
	p := Pattern{Prefix: "ACQ", Separator: "-", MinDigits: 3}

	assert.Equal(t, int64(42), ExtractNumber("ACQ-042", p))
	assert.Equal(t, int64(42), ExtractNumber("acq-042", p))
	assert.Equal(t, int64(0), ExtractNumber("XYZ-042", p))
	assert.Equal(t, int64(0), ExtractNumber("ACQ-", p))
	assert.Equal(t, int64(0), ExtractNumber("ACQ-12x", p))
}

func TestNextCode(t *testing.T) {
	p := Pattern{Prefix: "ACQ", Separator: "-", MinDigits: 3}

	next := NextCode([]string{"ACQ-001", "ACQ-005", "ACQ-003"}, p)
	assert.Equal(t, "ACQ-006", next)
}

func TestNextCode_EmptySet(t *testing.T) {
	p := Pattern{Prefix: "ACQ", Separator: "-", MinDigits: 3}

	assert.Equal(t, Format(1, p), NextCode(nil, p))
}

func TestNextCode_IgnoresOtherPrefixFamilies(t *testing.T) {
	// Ganti prefix berarti penomoran mulai lagi dari keluarga baru.
	p := Pattern{Prefix: "HRX", Separator: "-", MinDigits: 3}

	next := NextCode([]string{"ACQ-099", "HRX-002", "acq-500"}, p)
	assert.Equal(t, "HRX-003", next)
}

func TestExtractNumber_RoundTrip(t *testing.T) {
	patterns := []Pattern{
		{Prefix: "ACQ", Separator: "-", MinDigits: 3},
		{Prefix: "EMP", Separator: "", MinDigits: 4},
		{Prefix: "x", Separator: "/", MinDigits: 1},
		{Prefix: "LONG", Separator: "--", MinDigits: 10},
	}
	numbers := []int64{0, 1, 7, 42, 999, 1000, 123456789}

	for _, p := range patterns {
		for _, n := range numbers {
			code := Format(n, p)
			assert.Equal(t, n, ExtractNumber(code, p), fmt.Sprintf("pattern=%+v n=%d code=%s", p, n, code))
		}
	}
}

func TestValidate_AcceptsFormattedCodes(t *testing.T) {
	patterns := []Pattern{
		{Prefix: "ACQ", Separator: "-", MinDigits: 3},
		{Prefix: "EMP", Separator: "", MinDigits: 4},
	}
	numbers := []int64{0, 1, 42, 1000, 99999999}

	for _, p := range patterns {
		for _, n := range numbers {
			code := Format(n, p)
			assert.True(t, Validate(code, p), code)
		}
	}
}

func TestValidate_RejectsMalformedCodes(t *testing.T) {
	p := Pattern{Prefix: "ACQ", Separator: "-", MinDigits: 3}

	assert.False(t, Validate("ACQ-42", p)) // kurang dari min digits
	assert.False(t, Validate("XYZ-042", p))
	assert.False(t, Validate("ACQ-042x", p))
	assert.False(t, Validate("", p))
	assert.True(t, Validate("acq-042", p)) // case-insensitive
}

func TestNormalize_ClampsMinDigits(t *testing.T) {
	p := Pattern{Prefix: "A", Separator: "", MinDigits: 99}.Normalize()
	assert.Equal(t, 10, p.MinDigits)

	p = Pattern{Prefix: "A", Separator: "", MinDigits: 0}.Normalize()
	assert.Equal(t, 1, p.MinDigits)
}
