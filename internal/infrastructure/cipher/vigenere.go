package cipher

import (
	"unicode"
	"unicode/utf16"

	"github.com/doeshing/ciphervault/internal/domain"
	"github.com/doeshing/ciphervault/internal/ports"
)

// Vigenere shifts each letter by the matching key character.
//
// The key stream is aligned with UTF-16 text positions, not letter
// positions: a space, a punctuation mark or each half of an emoji passes
// through unchanged but still consumes one key unit.
type Vigenere struct{}

func (Vigenere) Algorithm() domain.Algorithm { return domain.AlgorithmVigenere }

// Apply returns text unchanged when key is empty.
func (Vigenere) Apply(text, key string, direction domain.Direction) (string, error) {
	if key == "" {
		return text, nil
	}
	units := utf16.Encode([]rune(text))
	stream := ExpandKey(key, len(units))
	for i, u := range units {
		r := rune(u)
		if !isASCIILetter(r) {
			continue
		}
		shift := int(unicode.ToLower(rune(stream[i])) - 'a')
		if direction == domain.DirectionDecrypt {
			shift = -shift
		}
		units[i] = uint16(ShiftRune(r, shift))
	}
	return string(utf16.Decode(units)), nil
}

var _ ports.Cipher = Vigenere{}
