package cipher

import (
	"bytes"
	"crypto/aes"
	gocipher "crypto/cipher"
	"crypto/md5"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/pbkdf2"

	"github.com/doeshing/ciphervault/internal/domain"
	"github.com/doeshing/ciphervault/internal/ports"
)

// Envelope layout shared with `openssl enc -aes-256-cbc -a` and CryptoJS
// passphrase mode: base64("Salted__" || salt || AES-256-CBC(PKCS#7(plaintext))).
const (
	saltMagic  = "Salted__"
	saltSize   = 8
	aesKeySize = 32
)

const aesErrorMessage = "AES error: invalid key or corrupted text"

var (
	errEnvelopeTooShort = errors.New("envelope too short")
	errEnvelopeMagic    = errors.New("missing Salted__ header")
	errBlockAlignment   = errors.New("ciphertext is not a multiple of the block size")
	errPadding          = errors.New("invalid PKCS#7 padding")
	errPlaintextUTF8    = errors.New("plaintext is not valid UTF-8")
)

// KDF derives the AES key and IV from a passphrase and salt.
type KDF interface {
	Name() string
	Derive(passphrase, salt []byte, keyLen, ivLen int) (key, iv []byte)
}

// EVPBytesToKey is OpenSSL's legacy derivation with MD5 and one iteration.
type EVPBytesToKey struct{}

func (EVPBytesToKey) Name() string { return domain.KDFEVPMD5 }

func (EVPBytesToKey) Derive(passphrase, salt []byte, keyLen, ivLen int) ([]byte, []byte) {
	var derived, block []byte
	for len(derived) < keyLen+ivLen {
		h := md5.New()
		h.Write(block)
		h.Write(passphrase)
		h.Write(salt)
		block = h.Sum(nil)
		derived = append(derived, block...)
	}
	return derived[:keyLen], derived[keyLen : keyLen+ivLen]
}

// PBKDF2 matches `openssl enc -pbkdf2 -md sha256`.
type PBKDF2 struct {
	Iterations int
}

func (PBKDF2) Name() string { return domain.KDFPBKDF2SHA256 }

func (p PBKDF2) Derive(passphrase, salt []byte, keyLen, ivLen int) ([]byte, []byte) {
	iter := p.Iterations
	if iter <= 0 {
		iter = domain.DefaultPBKDF2Iterations
	}
	derived := pbkdf2.Key(passphrase, salt, iter, keyLen+ivLen, sha256.New)
	return derived[:keyLen], derived[keyLen:]
}

// NewKDF resolves a configured KDF name; empty selects EVPBytesToKey.
func NewKDF(settings domain.AESSettings) (KDF, error) {
	switch strings.ToLower(settings.KDF) {
	case "", domain.KDFEVPMD5:
		return EVPBytesToKey{}, nil
	case domain.KDFPBKDF2SHA256:
		return PBKDF2{Iterations: settings.PBKDF2Iterations}, nil
	default:
		return nil, fmt.Errorf("unsupported aes kdf %q", settings.KDF)
	}
}

// AES delegates to crypto/aes in CBC mode inside a salted passphrase envelope.
type AES struct {
	kdf  KDF
	rand io.Reader
}

// NewAES builds the AES strategy. A nil kdf selects EVPBytesToKey.
func NewAES(kdf KDF) *AES {
	if kdf == nil {
		kdf = EVPBytesToKey{}
	}
	return &AES{kdf: kdf, rand: rand.Reader}
}

func (a *AES) Algorithm() domain.Algorithm { return domain.AlgorithmAES }

func (a *AES) Apply(text, key string, direction domain.Direction) (string, error) {
	if direction == domain.DirectionDecrypt {
		plain, err := a.open(text, key)
		if err != nil {
			return "", domain.WrapError(domain.ErrInvalidKey, aesErrorMessage, err)
		}
		return plain, nil
	}
	sealed, err := a.seal(text, key)
	if err != nil {
		return "", fmt.Errorf("aes encrypt: %w", err)
	}
	return sealed, nil
}

func (a *AES) seal(plaintext, passphrase string) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(a.rand, salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	key, iv := a.kdf.Derive([]byte(passphrase), salt, aesKeySize, aes.BlockSize)
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}

	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	out := make([]byte, len(saltMagic)+saltSize+len(padded))
	copy(out, saltMagic)
	copy(out[len(saltMagic):], salt)
	gocipher.NewCBCEncrypter(block, iv).CryptBlocks(out[len(saltMagic)+saltSize:], padded)
	return base64.StdEncoding.EncodeToString(out), nil
}

func (a *AES) open(envelope, passphrase string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(envelope))
	if err != nil {
		return "", err
	}
	header := len(saltMagic) + saltSize
	if len(raw) <= header {
		return "", errEnvelopeTooShort
	}
	if !bytes.Equal(raw[:len(saltMagic)], []byte(saltMagic)) {
		return "", errEnvelopeMagic
	}
	salt, body := raw[len(saltMagic):header], raw[header:]
	if len(body)%aes.BlockSize != 0 {
		return "", errBlockAlignment
	}

	key, iv := a.kdf.Derive([]byte(passphrase), salt, aesKeySize, aes.BlockSize)
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}
	plain := make([]byte, len(body))
	gocipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, body)

	plain, err = pkcs7Unpad(plain, aes.BlockSize)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(plain) {
		return "", errPlaintextUTF8
	}
	return string(plain), nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, errPadding
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize {
		return nil, errPadding
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, errPadding
		}
	}
	return data[:len(data)-n], nil
}

var _ ports.Cipher = (*AES)(nil)
