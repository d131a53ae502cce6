package ux

import (
	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// Canned user-facing strings go through a go-i18n catalog so regional
// firmware builds can override them without code changes. English is
// compiled in as the fallback.

var (
	msgBundle    = newBundle()
	msgLocalizer = i18n.NewLocalizer(msgBundle, language.English.String())
)

func newBundle() *i18n.Bundle {
	b := i18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	return b
}

var (
	msgConfirmPrefix = &i18n.Message{ID: "ConfirmPrefix", Other: "Are you SURE ?!?"}
	msgAborted       = &i18n.Message{ID: "Aborted", Other: "Aborted."}
	msgFatalBanner   = &i18n.Message{ID: "FatalBanner", Other: "FATAL ERROR"}
)

func localize(m *i18n.Message) string {
	s, err := msgLocalizer.Localize(&i18n.LocalizeConfig{DefaultMessage: m})
	if err != nil {
		return m.Other
	}
	return s
}

// LoadTranslations adds a TOML message file to the catalog and prefers
// the given language tags, falling back to English.
func LoadTranslations(path string, langs ...string) error {
	if _, err := msgBundle.LoadMessageFile(path); err != nil {
		return err
	}
	msgLocalizer = i18n.NewLocalizer(msgBundle, append(langs, language.English.String())...)
	return nil
}
