package cipher

import (
	"strings"

	"github.com/doeshing/ciphervault/internal/domain"
	"github.com/doeshing/ciphervault/internal/ports"
)

// Caesar shifts every letter by a fixed amount taken from the key.
type Caesar struct{}

func (Caesar) Algorithm() domain.Algorithm { return domain.AlgorithmCaesar }

// Apply never fails; an unusable key falls back to DefaultCaesarShift.
func (Caesar) Apply(text, key string, direction domain.Direction) (string, error) {
	shift := ParseShift(key)
	if direction == domain.DirectionDecrypt {
		shift = -shift
	}
	return strings.Map(func(r rune) rune {
		return ShiftRune(r, shift)
	}, text), nil
}

// ParseShift reads a leading integer from key: optional whitespace, optional
// sign, then digits; anything after the digits is ignored. A 0x or 0X prefix
// switches to hexadecimal. Empty, non-numeric and zero keys yield
// DefaultCaesarShift. The result is reduced modulo 26 so arbitrarily long
// digit strings cannot overflow.
func ParseShift(key string) int {
	s := strings.TrimLeft(key, " \t\r\n\v\f")
	negative := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}
	base := 10
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base, s = 16, s[2:]
	}

	value, digits, nonZero := 0, 0, false
	for ; digits < len(s); digits++ {
		d := digitValue(s[digits])
		if d < 0 || d >= base {
			break
		}
		if d != 0 {
			nonZero = true
		}
		value = (value*base + d) % 26
	}
	if digits == 0 || !nonZero {
		return domain.DefaultCaesarShift
	}
	if negative {
		return -value
	}
	return value
}

func digitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	default:
		return -1
	}
}

var _ ports.Cipher = Caesar{}
