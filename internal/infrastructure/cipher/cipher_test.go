package cipher

import (
	"bytes"
	"strconv"
	"strings"
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/ciphervault/internal/domain"
)

var roundTripTexts = []string{
	"Hello, World!",
	"The quick brown fox jumps over the lazy dog 0123456789",
	"  leading and trailing spaces  ",
	"mixed CASE with punctuation: ;'[]{}",
	"unicode passes through: café, 日本語, 🙂",
	"a",
}

func TestShiftRune(t *testing.T) {
	tests := []struct {
		in     rune
		amount int
		want   rune
	}{
		{'A', 3, 'D'},
		{'Z', 1, 'A'},
		{'a', -1, 'z'},
		{'m', 13, 'z'},
		{'c', -55, 'z'},
		{'B', 26 * 1000, 'B'},
		{'x', -26*7 - 1, 'w'},
		{'!', 5, '!'},
		{'é', 5, 'é'},
		{'5', -3, '5'},
	}
	for _, tt := range tests {
		assert.Equalf(t, tt.want, ShiftRune(tt.in, tt.amount), "ShiftRune(%q, %d)", tt.in, tt.amount)
	}
}

func TestExpandKey(t *testing.T) {
	assert.Equal(t, utf16.Encode([]rune("KEYKEYK")), ExpandKey("KEY", 7))
	assert.Equal(t, []uint16{}, ExpandKey("KEY", 0))
	assert.Equal(t, utf16.Encode([]rune("ééé")), ExpandKey("é", 3))
	// a character outside the BMP contributes two units
	assert.Equal(t, []uint16{0xD83D, 0xDE42, 0xD83D}, ExpandKey("🙂", 3))
}

func TestLoneSurrogate(t *testing.T) {
	assert.Equal(t, -1, loneSurrogate(utf16.Encode([]rune("a🙂b"))))
	assert.Equal(t, 1, loneSurrogate([]uint16{'a', 0xD83D}))
	assert.Equal(t, 0, loneSurrogate([]uint16{0xDE42, 'a'}))
	assert.Equal(t, 0, loneSurrogate([]uint16{0xD83D, 'a'}))
}

func TestParseShift(t *testing.T) {
	tests := []struct {
		key  string
		want int
	}{
		{"3", 3},
		{"  7", 7},
		{"+5", 5},
		{"-4", -4},
		{"12abc", 12},
		{"29", 3},
		{"26", 0},
		{"0", domain.DefaultCaesarShift},
		{"000", domain.DefaultCaesarShift},
		{"", domain.DefaultCaesarShift},
		{"abc", domain.DefaultCaesarShift},
		{"-", domain.DefaultCaesarShift},
		{"0x1", 1},
		{"-0X1f", -5},
		{"0x1A", 0},
		{"0x", domain.DefaultCaesarShift},
		{"0xg", domain.DefaultCaesarShift},
		{"0x0", domain.DefaultCaesarShift},
	}
	for _, tt := range tests {
		assert.Equalf(t, tt.want, ParseShift(tt.key), "ParseShift(%q)", tt.key)
	}
}

func TestParseShiftLongDigitStringDoesNotOverflow(t *testing.T) {
	// (10^29 - 1) mod 26 == 3
	assert.Equal(t, 3, ParseShift(strings.Repeat("9", 29)))
	assert.Equal(t, -3, ParseShift("-"+strings.Repeat("9", 29)))
}

func TestCaesarScenarios(t *testing.T) {
	c := Caesar{}

	got, err := c.Apply("HELLO", "3", domain.DirectionEncrypt)
	require.NoError(t, err)
	assert.Equal(t, "KHOOR", got)

	got, err = c.Apply("KHOOR", "3", domain.DirectionDecrypt)
	require.NoError(t, err)
	assert.Equal(t, "HELLO", got)

	got, err = c.Apply("abc", "abc", domain.DirectionEncrypt)
	require.NoError(t, err)
	assert.Equal(t, "def", got, "non-numeric key falls back to shift 3")

	got, err = c.Apply("abc", "0", domain.DirectionEncrypt)
	require.NoError(t, err)
	assert.Equal(t, "def", got, "zero key falls back to shift 3")

	got, err = c.Apply("abc", "-3", domain.DirectionEncrypt)
	require.NoError(t, err)
	assert.Equal(t, "xyz", got)

	got, err = c.Apply("abc", "0x1", domain.DirectionEncrypt)
	require.NoError(t, err)
	assert.Equal(t, "bcd", got, "hexadecimal keys are parsed")
}

func TestVigenereScenarios(t *testing.T) {
	v := Vigenere{}

	got, err := v.Apply("ATTACKATDAWN", "LEMON", domain.DirectionEncrypt)
	require.NoError(t, err)
	assert.Equal(t, "LXFOPVEFRNHR", got)

	got, err = v.Apply("LXFOPVEFRNHR", "LEMON", domain.DirectionDecrypt)
	require.NoError(t, err)
	assert.Equal(t, "ATTACKATDAWN", got)

	// punctuation and spaces consume key characters
	got, err = v.Apply("Hello, World!", "key", domain.DirectionEncrypt)
	require.NoError(t, err)
	assert.Equal(t, "Rijvs, Ambpb!", got)
}

func TestVigenereKeyStreamCountsUTF16Units(t *testing.T) {
	// the emoji is two code units, so "a" and "b" take key units "d" and "b"
	got, err := Vigenere{}.Apply("🙂ab", "bcd", domain.DirectionEncrypt)
	require.NoError(t, err)
	assert.Equal(t, "🙂dc", got)

	got, err = Vigenere{}.Apply("🙂dc", "bcd", domain.DirectionDecrypt)
	require.NoError(t, err)
	assert.Equal(t, "🙂ab", got)

	// an astral key character contributes both of its units: D83D shifts by
	// 55260 (10 mod 26) and DE42 by 56801 (17 mod 26)
	got, err = Vigenere{}.Apply("ab", "🙂", domain.DirectionEncrypt)
	require.NoError(t, err)
	assert.Equal(t, "ks", got)
}

func TestVigenerePreservesNonLetters(t *testing.T) {
	in := "a1 b2, c3!"
	got, err := Vigenere{}.Apply(in, "SECRET", domain.DirectionEncrypt)
	require.NoError(t, err)

	inRunes, gotRunes := []rune(in), []rune(got)
	require.Len(t, gotRunes, len(inRunes))
	for i, r := range inRunes {
		if !isASCIILetter(r) {
			assert.Equalf(t, r, gotRunes[i], "position %d", i)
		}
	}
}

func TestROT13(t *testing.T) {
	got, err := ROT13{}.Apply("Hello", "", domain.DirectionEncrypt)
	require.NoError(t, err)
	assert.Equal(t, "Uryyb", got)

	got, err = ROT13{}.Apply("Uryyb", "ignored", domain.DirectionDecrypt)
	require.NoError(t, err)
	assert.Equal(t, "Hello", got)
}

func TestXOR(t *testing.T) {
	x := XOR{}

	got, err := x.Apply("Hi!", "k", domain.DirectionEncrypt)
	require.NoError(t, err)
	assert.Equal(t, "#\x02J", got)

	_, err = x.Apply("Hi!", "", domain.DirectionEncrypt)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidKey)
}

func TestXOROperatesOnUTF16Units(t *testing.T) {
	// U+1F642 is D83D DE42; with key "ab" the units become D85C DE20 and the
	// trailing "a" lines up with key unit "a"
	got, err := XOR{}.Apply("🙂a", "ab", domain.DirectionEncrypt)
	require.NoError(t, err)
	assert.Equal(t, "\U00027220\x00", got)

	back, err := XOR{}.Apply(got, "ab", domain.DirectionDecrypt)
	require.NoError(t, err)
	assert.Equal(t, "🙂a", back)
}

func TestXORRejectsSurrogateResult(t *testing.T) {
	// U+D7FF ^ U+0F00 lands on U+D8FF, a surrogate that no Go string can carry
	_, err := XOR{}.Apply("퟿", "ༀ", domain.DirectionEncrypt)
	require.Error(t, err)
	assert.Equal(t, domain.KindCorruptInput, domain.KindOf(err))
}

func TestBase64(t *testing.T) {
	b := Base64{}

	got, err := b.Apply("Hello", "", domain.DirectionEncrypt)
	require.NoError(t, err)
	assert.Equal(t, "SGVsbG8=", got)

	got, err = b.Apply("SGVs\nbG8=", "", domain.DirectionDecrypt)
	require.NoError(t, err)
	assert.Equal(t, "Hello", got, "whitespace is ignored")

	got, err = b.Apply("SGVsbG8", "", domain.DirectionDecrypt)
	require.NoError(t, err)
	assert.Equal(t, "Hello", got, "missing padding is accepted")

	got, err = b.Apply("Y2Fmw6k=", "", domain.DirectionDecrypt)
	require.NoError(t, err)
	assert.Equal(t, "café", got)
}

func TestBase64DecodesNonUTF8AsLatin1(t *testing.T) {
	got, err := Base64{}.Apply("/w==", "", domain.DirectionDecrypt)
	require.NoError(t, err)
	assert.Equal(t, "\u00ff", got)

	got, err = Base64{}.Apply("////", "", domain.DirectionDecrypt)
	require.NoError(t, err)
	assert.Equal(t, "ÿÿÿ", got)

	// Latin-1 with a UTF-8 lead byte but no continuation
	got, err = Base64{}.Apply("Y2Fm6Q==", "", domain.DirectionDecrypt)
	require.NoError(t, err)
	assert.Equal(t, "caf\u00e9", got)
}

func TestBase64RejectsInvalidInput(t *testing.T) {
	for _, in := range []string{"not-valid-base64!@#", "SGVsbG8==", "S"} {
		_, err := Base64{}.Apply(in, "", domain.DirectionDecrypt)
		require.Errorf(t, err, "input %q", in)
		assert.ErrorIs(t, err, domain.ErrCorruptInput)
		assert.Equal(t, base64ErrorMessage, err.Error())
	}
}

func TestAESDecryptsOpenSSLEnvelope(t *testing.T) {
	// printf 'Hello, World!' | openssl enc -aes-256-cbc -md md5 -S 0102030405060708 -pass pass:secret
	got, err := NewAES(EVPBytesToKey{}).Apply("U2FsdGVkX18BAgMEBQYHCD/D6BgyIgRAnRZosFKUgkc=", "secret", domain.DirectionDecrypt)
	require.NoError(t, err)
	assert.Equal(t, "Hello, World!", got)

	// same with -pbkdf2 -iter 10000 -md sha256
	got, err = NewAES(PBKDF2{Iterations: 10000}).Apply("U2FsdGVkX18BAgMEBQYHCEnGolqwf7oF93pXuKDslG0=", "secret", domain.DirectionDecrypt)
	require.NoError(t, err)
	assert.Equal(t, "Hello, World!", got)
}

func TestAESEncryptIsDeterministicForFixedSalt(t *testing.T) {
	a := NewAES(nil)
	a.rand = bytes.NewReader([]byte{1, 2, 3, 4, 5, 6, 7, 8})

	got, err := a.Apply("Hello, World!", "secret", domain.DirectionEncrypt)
	require.NoError(t, err)
	assert.Equal(t, "U2FsdGVkX18BAgMEBQYHCD/D6BgyIgRAnRZosFKUgkc=", got)
}

func TestAESEnvelopeIsSaltedAndRandomised(t *testing.T) {
	a := NewAES(nil)
	first, err := a.Apply("same input", "key", domain.DirectionEncrypt)
	require.NoError(t, err)
	second, err := a.Apply("same input", "key", domain.DirectionEncrypt)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(first, "U2FsdGVkX1"), "envelope starts with base64 of Salted__")
	assert.NotEqual(t, first, second)
}

func TestAESWrongKeyIsInvalidKey(t *testing.T) {
	a := NewAES(nil)
	plain := strings.Repeat("attack at dawn, bring the maps. ", 4)
	sealed, err := a.Apply(plain, "correct horse", domain.DirectionEncrypt)
	require.NoError(t, err)

	_, err = a.Apply(sealed, "battery staple", domain.DirectionDecrypt)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidKey)
	assert.Equal(t, aesErrorMessage, err.Error())
}

func TestAESCorruptEnvelopeIsInvalidKey(t *testing.T) {
	for _, in := range []string{"", "not base64 at all", "U2FsdGVkX18=", "SGVsbG8gV29ybGQhIQ=="} {
		_, err := NewAES(nil).Apply(in, "secret", domain.DirectionDecrypt)
		require.Errorf(t, err, "input %q", in)
		assert.Equal(t, domain.KindInvalidKey, domain.KindOf(err))
	}
}

func TestPKCS7(t *testing.T) {
	padded := pkcs7Pad([]byte("YELLOW SUBMARINE"), 16)
	assert.Len(t, padded, 32)
	assert.Equal(t, byte(16), padded[31])

	out, err := pkcs7Unpad(padded, 16)
	require.NoError(t, err)
	assert.Equal(t, "YELLOW SUBMARINE", string(out))

	_, err = pkcs7Unpad(append([]byte("ICE ICE BABY"), 4, 4, 4, 5), 16)
	assert.ErrorIs(t, err, errPadding)
}

func TestRoundTripAllAlgorithms(t *testing.T) {
	registry, err := NewRegistry(domain.AESSettings{})
	require.NoError(t, err)

	for _, algo := range domain.Algorithms() {
		c, err := registry.ForAlgorithm(algo)
		require.NoError(t, err)
		require.Equal(t, algo, c.Algorithm())

		for _, text := range roundTripTexts {
			sealed, err := c.Apply(text, "K3y!", domain.DirectionEncrypt)
			require.NoErrorf(t, err, "%s encrypt %q", algo, text)
			opened, err := c.Apply(sealed, "K3y!", domain.DirectionDecrypt)
			require.NoErrorf(t, err, "%s decrypt %q", algo, text)
			assert.Equalf(t, text, opened, "%s round trip", algo)
		}
	}
}

func TestCaesarRoundTripAnyShift(t *testing.T) {
	text := "Printable ASCII ~!@#$%^&*()_+ 0123456789 AZaz"
	for shift := -60; shift <= 60; shift++ {
		key := strconv.Itoa(shift)
		sealed, _ := Caesar{}.Apply(text, key, domain.DirectionEncrypt)
		opened, _ := Caesar{}.Apply(sealed, key, domain.DirectionDecrypt)
		require.Equalf(t, text, opened, "shift %d", shift)
	}
}

func TestRegistryRejectsUnknownAlgorithm(t *testing.T) {
	registry, err := NewRegistry(domain.AESSettings{})
	require.NoError(t, err)

	_, err = registry.ForAlgorithm(domain.Algorithm("enigma"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedAlgorithm)
}

func TestNewKDF(t *testing.T) {
	kdf, err := NewKDF(domain.AESSettings{})
	require.NoError(t, err)
	assert.Equal(t, domain.KDFEVPMD5, kdf.Name())

	kdf, err = NewKDF(domain.AESSettings{KDF: "PBKDF2-SHA256", PBKDF2Iterations: 5})
	require.NoError(t, err)
	assert.Equal(t, PBKDF2{Iterations: 5}, kdf)

	_, err = NewKDF(domain.AESSettings{KDF: "scrypt"})
	assert.Error(t, err)
}
