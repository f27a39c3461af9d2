package cipher

import (
	"encoding/base64"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/doeshing/ciphervault/internal/domain"
	"github.com/doeshing/ciphervault/internal/ports"
)

const base64ErrorMessage = "Base64 error: invalid text"

// Base64 is an encoding, not a cipher: encrypt encodes the UTF-8 bytes of the
// text with the RFC 4648 standard alphabet, decrypt decodes them. Decoded
// bytes that are not UTF-8 are read as Latin-1.
type Base64 struct{}

func (Base64) Algorithm() domain.Algorithm { return domain.AlgorithmBase64 }

func (Base64) Apply(text, _ string, direction domain.Direction) (string, error) {
	if direction != domain.DirectionDecrypt {
		return base64.StdEncoding.EncodeToString([]byte(text)), nil
	}

	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)

	raw, err := base64.StdEncoding.DecodeString(compact)
	if err != nil && !strings.Contains(compact, "=") {
		// unpadded input is accepted, like atob
		raw, err = base64.RawStdEncoding.DecodeString(compact)
	}
	if err != nil {
		return "", domain.WrapError(domain.ErrCorruptInput, base64ErrorMessage, err)
	}
	if utf8.Valid(raw) {
		return string(raw), nil
	}
	// bytes that are not UTF-8 decode one rune per byte, like atob
	runes := make([]rune, len(raw))
	for i, b := range raw {
		runes[i] = rune(b)
	}
	return string(runes), nil
}

var _ ports.Cipher = Base64{}
