package cipher

import (
	"fmt"
	"unicode/utf16"

	"github.com/doeshing/ciphervault/internal/domain"
	"github.com/doeshing/ciphervault/internal/ports"
)

// XOR combines each UTF-16 code unit of text with the repeating key. It is
// its own inverse, so direction is ignored.
type XOR struct{}

func (XOR) Algorithm() domain.Algorithm { return domain.AlgorithmXOR }

func (XOR) Apply(text, key string, _ domain.Direction) (string, error) {
	if key == "" {
		return "", domain.NewError(domain.ErrInvalidKey, "XOR error: key is required")
	}
	units := utf16.Encode([]rune(text))
	stream := ExpandKey(key, len(units))
	for i := range units {
		units[i] ^= stream[i]
	}
	// Go strings cannot hold unpaired surrogates; refusing here keeps every
	// successful result reversible.
	if i := loneSurrogate(units); i >= 0 {
		return "", domain.NewError(domain.ErrCorruptInput,
			fmt.Sprintf("XOR error: position %d produces unpaired surrogate U+%04X", i, units[i]))
	}
	return string(utf16.Decode(units)), nil
}

var _ ports.Cipher = XOR{}
