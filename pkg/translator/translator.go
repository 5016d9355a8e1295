package translator

import (
	"embed"
	"io/fs"
	"os"
	"path"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

//go:embed translation/*.toml
var embeddedTranslations embed.FS

var Translator *i18n.Bundle

type Config struct {
	// TranslationFolder overrides the embedded catalogs when set.
	TranslationFolder  string
	SupportedLanguages []string
}

const (
	LanguageFr = "fr"
	LanguageEn = "en"
)

var (
	supportedTags = []language.Tag{language.English}
	matcher       = language.NewMatcher(supportedTags)
)

func InitTranslator(cfg Config) {
	Translator = i18n.NewBundle(language.English)
	Translator.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	tags := []language.Tag{language.English}
	for _, lang := range cfg.SupportedLanguages {
		tag, err := language.Parse(lang)
		if err != nil {
			zap.L().Warn("unsupported language", zap.String("lang", lang), zap.Error(err))
			continue
		}
		if tag != language.English {
			tags = append(tags, tag)
		}
	}
	supportedTags = tags
	matcher = language.NewMatcher(tags)

	var (
		fsys fs.FS = embeddedTranslations
		dir        = "translation"
	)
	if cfg.TranslationFolder != "" {
		fsys = os.DirFS(cfg.TranslationFolder)
		dir = "."
	}

	lstFiles, err := fs.ReadDir(fsys, dir)
	if err != nil {
		zap.L().Error("failed to list translation folder", zap.String("folder", cfg.TranslationFolder), zap.Error(err))
		return
	}

	for _, f := range lstFiles {
		if f.IsDir() {
			continue
		}
		if _, err := Translator.LoadMessageFileFS(fsys, path.Join(dir, f.Name())); err != nil {
			zap.L().Warn("failed to load translation file", zap.String("file", f.Name()), zap.Error(err))
		}
	}
}

// MatchLanguage picks the best supported language for an Accept-Language
// header value, falling back to English.
func MatchLanguage(acceptLanguage string) string {
	if acceptLanguage == "" {
		return LanguageEn
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return LanguageEn
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return LanguageEn
	}
	base, _ := supportedTags[index].Base()
	return base.String()
}
