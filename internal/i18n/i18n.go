package i18n

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

const DefaultLanguage = "en"

var Bundle *i18n.Bundle
var ActiveLocalizer *i18n.Localizer

func initBundle() *i18n.Bundle {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	return bundle
}

// Initializes the i18n system from the locales directory of fsys
func InitWithFS(fsys fs.FS, defaultLang string) error {
	Bundle = initBundle()

	entries, err := fs.ReadDir(fsys, "locales")
	if err != nil {
		return fmt.Errorf("failed to read locales directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		filePath := path.Join("locales", entry.Name())
		if _, err := Bundle.LoadMessageFileFS(fsys, filePath); err != nil {
			return fmt.Errorf("failed to load message file %s: %w", filePath, err)
		}
	}

	SetLanguage(defaultLang)
	return nil
}

func SetLanguage(lang string) {
	ActiveLocalizer = i18n.NewLocalizer(Bundle, lang, DefaultLanguage)
}

// Languages lists the tags loaded into the bundle.
func Languages() []string {
	if Bundle == nil {
		return nil
	}
	tags := Bundle.LanguageTags()
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		out = append(out, tag.String())
	}
	return out
}

// T returns messageID itself when the message cannot be localized.
func T(messageID string, templateData map[string]any) string {
	if ActiveLocalizer == nil {
		return messageID
	}

	msg, err := ActiveLocalizer.Localize(&i18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: templateData,
	})
	if err != nil {
		return messageID
	}

	return msg
}

func Tp(messageID string, pluralCount int, templateData map[string]any) string {
	if ActiveLocalizer == nil {
		return messageID
	}

	if templateData == nil {
		templateData = make(map[string]any)
	}
	templateData["Count"] = pluralCount

	msg, err := ActiveLocalizer.Localize(&i18n.LocalizeConfig{
		MessageID:    messageID,
		PluralCount:  pluralCount,
		TemplateData: templateData,
	})
	if err != nil {
		return messageID
	}

	return msg
}

func DetectLanguage() string {
	envVars := []string{"LANG", "LC_ALL", "LC_MESSAGES", "LANGUAGE"}

	for _, env := range envVars {
		lang := os.Getenv(env)
		if lang == "" {
			continue
		}

		first, _, _ := strings.Cut(lang, ":")
		base, _, _ := strings.Cut(first, "_")
		base, _, _ = strings.Cut(base, ".")
		if base == "" || base == "C" || base == "POSIX" {
			continue
		}
		return base
	}

	return DefaultLanguage
}
