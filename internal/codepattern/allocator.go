package codepattern

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	DefaultPrefix    = "EMP"
	DefaultSeparator = "-"
	DefaultMinDigits = 4

	minDigitsFloor = 1
	minDigitsCeil  = 10
)

// Pattern adalah konfigurasi format kode karyawan: prefix + separator + digit.
type Pattern struct {
	Prefix    string
	Separator string
	MinDigits int
}

func DefaultPattern() Pattern {
	return Pattern{Prefix: DefaultPrefix, Separator: DefaultSeparator, MinDigits: DefaultMinDigits}
}

// Normalize meng-uppercase prefix dan menjepit min digits ke 1..10.
func (p Pattern) Normalize() Pattern {
	p.Prefix = strings.ToUpper(strings.TrimSpace(p.Prefix))
	if p.Prefix == "" {
		p.Prefix = DefaultPrefix
	}
	if p.MinDigits < minDigitsFloor {
		p.MinDigits = minDigitsFloor
	}
	if p.MinDigits > minDigitsCeil {
		p.MinDigits = minDigitsCeil
	}
	return p
}

// Format membentuk kode dari nomor urut. Nomor yang lebih lebar dari
// min digits tidak pernah dipotong.
func Format(number int64, p Pattern) string {
	p = p.Normalize()
	return fmt.Sprintf("%s%s%0*d", p.Prefix, p.Separator, p.MinDigits, number)
}

// ExtractNumber mengambil nomor urut dari sebuah kode. Kode yang tidak
// cocok dengan pattern mengembalikan 0 (tidak memberi constraint apapun).
func ExtractNumber(code string, p Pattern) int64 {
	p = p.Normalize()
	re := regexp.MustCompile(
		"(?i)^" + regexp.QuoteMeta(p.Prefix) + regexp.QuoteMeta(p.Separator) + `(\d+)$`,
	)
	m := re.FindStringSubmatch(code)
	if m == nil {
		return 0
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// NextCode mencari nomor tertinggi di antara kode yang memakai prefix
// family saat ini, lalu memformat max+1. Ganti prefix berarti penomoran
// efektif mulai lagi dari keluarga prefix yang baru.
func NextCode(existingCodes []string, p Pattern) string {
	p = p.Normalize()
	family := strings.ToUpper(p.Prefix + p.Separator)

	var max int64
	for _, code := range existingCodes {
		if !strings.HasPrefix(strings.ToUpper(code), family) {
			continue
		}
		if n := ExtractNumber(code, p); n > max {
			max = n
		}
	}
	return Format(max+1, p)
}

// Validate memeriksa apakah kode cocok dengan ^prefix sep \d{min,}$ (case-insensitive).
func Validate(code string, p Pattern) bool {
	p = p.Normalize()
	re := regexp.MustCompile(fmt.Sprintf(
		"(?i)^%s%s\\d{%d,}$",
		regexp.QuoteMeta(p.Prefix), regexp.QuoteMeta(p.Separator), p.MinDigits,
	))
	return re.MatchString(code)
}
