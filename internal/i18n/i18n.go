// Package i18n localises algorithm metadata and CLI messages.
// Translations are YAML files embedded from the locales directory and loaded
// with go-i18n; English is the fallback language.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/ciphervault/internal/ports"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// Translator resolves message ids for one language.
type Translator struct {
	localizer *goi18n.Localizer
	lang      string
}

// New loads every embedded locale and builds a translator for lang.
// Unknown languages fall back to English.
func New(lang string) (*Translator, error) {
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	files, err := fs.ReadDir(localeFS, "locales")
	if err != nil {
		return nil, fmt.Errorf("read locales: %w", err)
	}
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		data, err := localeFS.ReadFile(path.Join("locales", f.Name()))
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", f.Name(), err)
		}
		if _, err := bundle.ParseMessageFileBytes(data, f.Name()); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", f.Name(), err)
		}
	}

	if lang == "" {
		lang = language.English.String()
	}
	return &Translator{
		localizer: goi18n.NewLocalizer(bundle, lang, language.English.String()),
		lang:      lang,
	}, nil
}

// MustNew is New for the embedded locales, which are known to parse.
func MustNew(lang string) *Translator {
	t, err := New(lang)
	if err != nil {
		panic(err)
	}
	return t
}

// T translates messageID, returning the id itself when no translation exists.
func (t *Translator) T(messageID string) string {
	msg, err := t.localizer.Localize(&goi18n.LocalizeConfig{MessageID: messageID})
	if err != nil {
		return messageID
	}
	return msg
}

// Language returns the requested language tag.
func (t *Translator) Language() string {
	return t.lang
}

// Supported lists the languages shipped in locales.
func Supported() []string {
	return []string{"en", "fr"}
}

var _ ports.Translator = (*Translator)(nil)
