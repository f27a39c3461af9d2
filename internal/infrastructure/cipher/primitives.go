// Package cipher implements the text transformation strategies behind the
// engine: caesar, vigenere, xor, aes, base64 and rot13.
package cipher

import "unicode/utf16"

// ShiftRune moves an ASCII letter by amount positions within its own case,
// wrapping modulo 26. Any other rune is returned unchanged.
func ShiftRune(r rune, amount int) rune {
	var base rune
	switch {
	case r >= 'A' && r <= 'Z':
		base = 'A'
	case r >= 'a' && r <= 'z':
		base = 'a'
	default:
		return r
	}
	// double modulo keeps the result non-negative for any amount
	return rune(((int(r-base)+amount)%26+26)%26) + base
}

// ExpandKey repeats the UTF-16 code units of key until they cover n
// positions: index i holds unit i mod len. Positions are code units so a
// character outside the BMP occupies two of them. key must not be empty.
func ExpandKey(key string, n int) []uint16 {
	units := utf16.Encode([]rune(key))
	stream := make([]uint16, n)
	for i := range stream {
		stream[i] = units[i%len(units)]
	}
	return stream
}

// loneSurrogate returns the index of the first unpaired surrogate in units, or -1.
func loneSurrogate(units []uint16) int {
	for i := 0; i < len(units); i++ {
		switch u := units[i]; {
		case u >= 0xD800 && u < 0xDC00:
			if i+1 == len(units) || units[i+1] < 0xDC00 || units[i+1] >= 0xE000 {
				return i
			}
			i++
		case u >= 0xDC00 && u < 0xE000:
			return i
		}
	}
	return -1
}

func isASCIILetter(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}
