package locale

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Bundle maps language code -> message key -> template string. Loaded
// once at startup; the core never hardcodes user-facing text.
type Bundle struct {
	defaultLang string
	messages    map[string]map[string]string
}

// Load reads every <lang>.yaml file from dir.
func Load(dir, defaultLang string) (*Bundle, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	b := &Bundle{
		defaultLang: defaultLang,
		messages:    make(map[string]map[string]string),
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".yaml") {
			continue
		}
		lang := strings.TrimSuffix(name, ".yaml")

		v := viper.New()
		v.SetConfigFile(filepath.Join(dir, name))
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("locale %s: %w", lang, err)
		}

		msgs := make(map[string]string)
		for _, key := range v.AllKeys() {
			msgs[key] = v.GetString(key)
		}
		b.messages[lang] = msgs
	}

	if _, ok := b.messages[defaultLang]; !ok {
		return nil, fmt.Errorf("default language %q has no locale file in %s", defaultLang, dir)
	}

	return b, nil
}

// T renders the template for the key in the given language, falling
// back to the default language and finally to the key itself.
func (b *Bundle) T(lang, key string, args ...interface{}) string {
	msgs, ok := b.messages[lang]
	if !ok {
		msgs = b.messages[b.defaultLang]
	}

	tpl, ok := msgs[key]
	if !ok {
		tpl, ok = b.messages[b.defaultLang][key]
		if !ok {
			return key
		}
	}

	if len(args) == 0 {
		return tpl
	}
	return fmt.Sprintf(tpl, args...)
}

// Languages lists the loaded language codes.
func (b *Bundle) Languages() []string {
	langs := make([]string, 0, len(b.messages))
	for lang := range b.messages {
		langs = append(langs, lang)
	}
	return langs
}

// Has reports whether the language has its own locale file.
func (b *Bundle) Has(lang string) bool {
	_, ok := b.messages[lang]
	return ok
}
