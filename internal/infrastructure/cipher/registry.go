package cipher

import (
	"fmt"

	"github.com/doeshing/ciphervault/internal/domain"
	"github.com/doeshing/ciphervault/internal/ports"
)

// Registry maps algorithm ids to their strategies.
type Registry struct {
	aes *AES
}

// NewRegistry builds the strategy table; settings select the AES key derivation.
func NewRegistry(settings domain.AESSettings) (*Registry, error) {
	kdf, err := NewKDF(settings)
	if err != nil {
		return nil, err
	}
	return &Registry{aes: NewAES(kdf)}, nil
}

// ForAlgorithm implements ports.CipherFactory.
func (r *Registry) ForAlgorithm(algo domain.Algorithm) (ports.Cipher, error) {
	switch algo {
	case domain.AlgorithmCaesar:
		return Caesar{}, nil
	case domain.AlgorithmVigenere:
		return Vigenere{}, nil
	case domain.AlgorithmXOR:
		return XOR{}, nil
	case domain.AlgorithmAES:
		return r.aes, nil
	case domain.AlgorithmBase64:
		return Base64{}, nil
	case domain.AlgorithmROT13:
		return ROT13{}, nil
	default:
		return nil, domain.NewError(domain.ErrUnsupportedAlgorithm, fmt.Sprintf("unsupported algorithm: %q", string(algo)))
	}
}

var _ ports.CipherFactory = (*Registry)(nil)
