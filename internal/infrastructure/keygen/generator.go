package keygen

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/doeshing/ciphervault/internal/domain"
	"github.com/doeshing/ciphervault/internal/ports"
)

// Generator draws keys uniformly from domain.KeyAlphabet using crypto/rand.
type Generator struct {
	length int
	source io.Reader
}

// NewGenerator creates a generator producing keys of the given length;
// non-positive lengths use domain.DefaultKeyLength.
func NewGenerator(length int) *Generator {
	if length <= 0 {
		length = domain.DefaultKeyLength
	}
	return &Generator{length: length, source: rand.Reader}
}

// Length returns the number of characters per key.
func (g *Generator) Length() int {
	return g.length
}

// Generate implements ports.KeyGenerator.
func (g *Generator) Generate() (string, error) {
	alphabet := []byte(domain.KeyAlphabet)
	limit := big.NewInt(int64(len(alphabet)))
	key := make([]byte, g.length)
	for i := range key {
		n, err := rand.Int(g.source, limit)
		if err != nil {
			return "", fmt.Errorf("read random source: %w", err)
		}
		key[i] = alphabet[n.Int64()]
	}
	return string(key), nil
}

var _ ports.KeyGenerator = (*Generator)(nil)
