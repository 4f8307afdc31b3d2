package i18n

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

var (
	bundle        *i18n.Bundle
	defaultLocale = "en"
	supported     = []language.Tag{language.English}
	initOnce      sync.Once
	mu            sync.RWMutex
)

type ctxKey struct{}

// Init loads all locale files and sets the default locale. It is safe to
// call more than once; locale files are only parsed the first time.
func Init(defLocale string) {
	initOnce.Do(load)
	if defLocale != "" {
		mu.Lock()
		defaultLocale = defLocale
		mu.Unlock()
	}
}

func load() {
	b := i18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		panic(fmt.Sprintf("i18n: read locales dir: %v", err))
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data, err := localeFS.ReadFile("locales/" + e.Name())
		if err != nil {
			panic(fmt.Sprintf("i18n: read %s: %v", e.Name(), err))
		}
		b.MustParseMessageFileBytes(data, e.Name())
	}
	bundle = b
	supported = b.LanguageTags()
	slog.Debug("i18n: locale files loaded", "count", len(entries))
}

// Supported returns the language tags that have a locale file.
func Supported() []language.Tag {
	initOnce.Do(load)
	return supported
}

// DefaultLocale returns the configured fallback locale.
func DefaultLocale() string {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLocale
}

// WithLocale returns a new context carrying the given locale string (e.g. "id", "en").
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, ctxKey{}, locale)
}

// LocaleFromContext extracts the locale from the context, falling back to the default.
func LocaleFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKey{}).(string); ok && v != "" {
		return v
	}
	return DefaultLocale()
}

// T translates a message ID using the locale from the context.
func T(ctx context.Context, messageID string, templateData ...map[string]any) string {
	return TL(LocaleFromContext(ctx), messageID, templateData...)
}

// TL translates a message ID for an explicit locale. Unknown IDs are returned unchanged.
func TL(locale, messageID string, templateData ...map[string]any) string {
	initOnce.Do(load)
	l := i18n.NewLocalizer(bundle, locale, DefaultLocale())

	cfg := &i18n.LocalizeConfig{MessageID: messageID}
	if len(templateData) > 0 && templateData[0] != nil {
		cfg.TemplateData = templateData[0]
	}

	msg, err := l.Localize(cfg)
	if err != nil {
		return messageID
	}
	return msg
}
