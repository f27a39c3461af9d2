package domain

import (
	"fmt"
	"strings"
)

// Algorithm identifies one of the supported text ciphers.
type Algorithm string

const (
	AlgorithmCaesar   Algorithm = "caesar"
	AlgorithmVigenere Algorithm = "vigenere"
	AlgorithmXOR      Algorithm = "xor"
	AlgorithmAES      Algorithm = "aes"
	AlgorithmBase64   Algorithm = "base64"
	AlgorithmROT13    Algorithm = "rot13"
)

// Algorithms lists every supported algorithm in display order.
func Algorithms() []Algorithm {
	return []Algorithm{
		AlgorithmCaesar,
		AlgorithmVigenere,
		AlgorithmXOR,
		AlgorithmAES,
		AlgorithmBase64,
		AlgorithmROT13,
	}
}

// ParseAlgorithm resolves a case-insensitive algorithm id.
func ParseAlgorithm(raw string) (Algorithm, error) {
	algo := Algorithm(strings.ToLower(strings.TrimSpace(raw)))
	if !algo.Valid() {
		return "", NewError(ErrUnsupportedAlgorithm, fmt.Sprintf("unsupported algorithm: %q", raw))
	}
	return algo, nil
}

// Valid reports whether a is one of the six known algorithms.
func (a Algorithm) Valid() bool {
	switch a {
	case AlgorithmCaesar, AlgorithmVigenere, AlgorithmXOR, AlgorithmAES, AlgorithmBase64, AlgorithmROT13:
		return true
	default:
		return false
	}
}

// NeedsKey reports whether the algorithm requires a caller-supplied key.
func (a Algorithm) NeedsKey() bool {
	return a != AlgorithmBase64 && a != AlgorithmROT13
}

// Label is the upper-case name stored in operation records.
func (a Algorithm) Label() string {
	return strings.ToUpper(string(a))
}

func (a Algorithm) String() string {
	return string(a)
}

// Direction selects the forward or inverse transformation.
type Direction string

const (
	DirectionEncrypt Direction = "encrypt"
	DirectionDecrypt Direction = "decrypt"
)

// ParseDirection accepts encrypt/decrypt and the enc/dec shorthands.
func ParseDirection(raw string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "encrypt", "enc", "e":
		return DirectionEncrypt, nil
	case "decrypt", "dec", "d":
		return DirectionDecrypt, nil
	default:
		return "", fmt.Errorf("unknown direction %q (want encrypt|decrypt)", raw)
	}
}

// Valid reports whether d is encrypt or decrypt.
func (d Direction) Valid() bool {
	return d == DirectionEncrypt || d == DirectionDecrypt
}

func (d Direction) String() string {
	return string(d)
}

// SecurityLevel is a presentation hint describing cipher strength.
type SecurityLevel string

const (
	SecurityNone       SecurityLevel = "None"
	SecurityWeak       SecurityLevel = "Weak"
	SecurityMedium     SecurityLevel = "Medium"
	SecurityStrong     SecurityLevel = "Strong"
	SecurityVeryStrong SecurityLevel = "VeryStrong"
	SecurityVariable   SecurityLevel = "Variable"
)

// KeyKind describes what the key field means for an algorithm.
type KeyKind string

const (
	KeyKindNumber KeyKind = "Number"
	KeyKindText   KeyKind = "Text"
	KeyKindNone   KeyKind = "None"
)

// AlgorithmInfo is the static metadata shown next to an algorithm.
type AlgorithmInfo struct {
	Algorithm     Algorithm     `json:"id" yaml:"id"`
	DisplayName   string        `json:"display_name" yaml:"display_name"`
	Description   string        `json:"description" yaml:"description"`
	SecurityLevel SecurityLevel `json:"security_level" yaml:"security_level"`
	KeyKind       KeyKind       `json:"key_kind" yaml:"key_kind"`
}

var algorithmInfo = map[Algorithm]AlgorithmInfo{
	AlgorithmCaesar:   {AlgorithmCaesar, "Caesar", "Simple alphabetic shift", SecurityWeak, KeyKindNumber},
	AlgorithmVigenere: {AlgorithmVigenere, "Vigenère", "Polyalphabetic substitution", SecurityMedium, KeyKindText},
	AlgorithmXOR:      {AlgorithmXOR, "XOR", "Bitwise operation", SecurityVariable, KeyKindText},
	AlgorithmAES:      {AlgorithmAES, "AES", "Advanced Encryption Standard", SecurityVeryStrong, KeyKindText},
	AlgorithmBase64:   {AlgorithmBase64, "Base64", "Encoding (not encryption)", SecurityNone, KeyKindNone},
	AlgorithmROT13:    {AlgorithmROT13, "ROT13", "Rotate by 13 characters", SecurityNone, KeyKindNone},
}

// LookupAlgorithmInfo returns the English metadata for a.
func LookupAlgorithmInfo(a Algorithm) (AlgorithmInfo, error) {
	info, ok := algorithmInfo[a]
	if !ok {
		return AlgorithmInfo{}, NewError(ErrUnsupportedAlgorithm, fmt.Sprintf("unsupported algorithm: %q", string(a)))
	}
	return info, nil
}
