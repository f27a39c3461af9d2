package cipher

import (
	"strings"

	"github.com/doeshing/ciphervault/internal/domain"
	"github.com/doeshing/ciphervault/internal/ports"
)

// ROT13 rotates letters by 13; applying it twice restores the input.
type ROT13 struct{}

func (ROT13) Algorithm() domain.Algorithm { return domain.AlgorithmROT13 }

func (ROT13) Apply(text, _ string, _ domain.Direction) (string, error) {
	return strings.Map(rot13, text), nil
}

func rot13(r rune) rune {
	return ShiftRune(r, domain.ROT13Shift)
}

var _ ports.Cipher = ROT13{}
