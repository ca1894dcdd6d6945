package translator

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var locales embed.FS

var Translator *i18n.Bundle

type Config struct {
	// TranslationFolder optionally holds extra or overriding *.toml files.
	TranslationFolder string
}

const (
	LanguageEn = "en"
	LanguageFr = "fr"
)

// Supported lists the languages shipped with the binary, default first.
var Supported = []language.Tag{language.English, language.French}

var matcher = language.NewMatcher(Supported)

// InitTranslator builds the global bundle from the embedded message files
// and then any files in cfg.TranslationFolder.
func InitTranslator(cfg Config) error {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	entries, err := locales.ReadDir("locales")
	if err != nil {
		return fmt.Errorf("read embedded locales: %w", err)
	}
	for _, e := range entries {
		if _, err := bundle.LoadMessageFileFS(locales, "locales/"+e.Name()); err != nil {
			return fmt.Errorf("load %s: %w", e.Name(), err)
		}
	}

	if cfg.TranslationFolder != "" {
		files, err := os.ReadDir(cfg.TranslationFolder)
		if err != nil {
			zap.L().Warn("failed to list translation folder", zap.String("folder", cfg.TranslationFolder), zap.Error(err))
		}
		for _, f := range files {
			if f.IsDir() {
				continue
			}
			if _, err := bundle.LoadMessageFile(filepath.Join(cfg.TranslationFolder, f.Name())); err != nil {
				zap.L().Warn("failed to load translation file", zap.String("file", f.Name()), zap.Error(err))
			}
		}
	}

	Translator = bundle
	return nil
}

// Match picks the best supported language for an Accept-Language header.
func Match(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return LanguageEn
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return LanguageEn
	}
	base, _ := Supported[idx].Base()
	return base.String()
}

// Localize translates msgKey, falling back to English and then to the key.
func Localize(msgKey, lang string) string {
	if Translator == nil {
		return msgKey
	}
	l := i18n.NewLocalizer(Translator, lang, LanguageEn)
	msg, err := l.Localize(&i18n.LocalizeConfig{MessageID: msgKey})
	if err != nil {
		zap.L().Warn("translation not found", zap.String("lang", lang), zap.String("message_id", msgKey), zap.Error(err))
		return msgKey
	}
	return msg
}
