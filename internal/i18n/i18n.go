// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package i18n carries the active locale of a request in its context and
// translates messages from the embedded bundle.
package i18n

import (
	"context"
	"embed"
	"io/fs"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed translations/*.toml
var translationFS embed.FS

var (
	bundle        *i18n.Bundle
	defaultLocale = "en"
)

type localeContextKey struct{}
type localizerContextKey struct{}

// Init initializes the bundle with all embedded translations. defaultLocale is
// used for requests that carry no locale.
func Init(defaultLang string) error {
	tag, err := language.Parse(defaultLang)
	if err != nil {
		return err
	}

	b := i18n.NewBundle(tag)
	b.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, err := fs.Glob(translationFS, "translations/*.toml")
	if err != nil {
		return err
	}
	for _, file := range files {
		if _, err := b.LoadMessageFileFS(translationFS, file); err != nil {
			return err
		}
	}

	bundle = b
	defaultLocale = defaultLang
	return nil
}

// Languages returns the languages that have translations loaded.
func Languages() []language.Tag {
	if bundle == nil {
		return nil
	}
	return bundle.LanguageTags()
}

// WithLocale adds the locale and a matching localizer to the context.
func WithLocale(ctx context.Context, locale string) context.Context {
	ctx = context.WithValue(ctx, localeContextKey{}, locale)
	if bundle == nil {
		return ctx
	}
	return context.WithValue(ctx, localizerContextKey{}, i18n.NewLocalizer(bundle, locale, defaultLocale))
}

// GetLocale returns the locale of the context, or the default locale.
func GetLocale(ctx context.Context) string {
	if locale, ok := ctx.Value(localeContextKey{}).(string); ok {
		return locale
	}
	return defaultLocale
}

// HasLocale reports whether a locale was attached to the context.
func HasLocale(ctx context.Context) bool {
	_, ok := ctx.Value(localeContextKey{}).(string)
	return ok
}

// T translates a message by ID.
func T(ctx context.Context, messageID string) string {
	return localize(ctx, &i18n.LocalizeConfig{MessageID: messageID})
}

// TData translates a message with template data.
func TData(ctx context.Context, messageID string, data map[string]any) string {
	return localize(ctx, &i18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: data,
	})
}

// TPlural translates a message with plural support.
func TPlural(ctx context.Context, messageID string, count int) string {
	return localize(ctx, &i18n.LocalizeConfig{
		MessageID:    messageID,
		PluralCount:  count,
		TemplateData: map[string]any{"Count": count},
	})
}

func localize(ctx context.Context, cfg *i18n.LocalizeConfig) string {
	localizer := getLocalizer(ctx)
	if localizer == nil {
		return cfg.MessageID
	}
	msg, err := localizer.Localize(cfg)
	if err != nil {
		return cfg.MessageID
	}
	return msg
}

func getLocalizer(ctx context.Context) *i18n.Localizer {
	if localizer, ok := ctx.Value(localizerContextKey{}).(*i18n.Localizer); ok {
		return localizer
	}
	if bundle == nil {
		return nil
	}
	return i18n.NewLocalizer(bundle, defaultLocale)
}
