// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Layout wraps body in the page chrome: navigation and language switcher.
func Layout(title string, locales []LocaleOption, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw(`<!doctype html><html lang="`).text(Locale(ctx)).raw(`"><head><meta charset="utf-8">`).
			raw(`<meta name="viewport" content="width=device-width, initial-scale=1"><title>`).
			text(title).raw(` · `).text(T(ctx, "app_name")).raw(`</title></head><body><header><nav>`).
			raw(`<a href="/">`).text(T(ctx, "app_name")).raw(`</a> `)

		if user := GetUser(ctx); user != nil {
			w.raw(`<a href="/account">`).text(T(ctx, "account")).raw(`</a> `).
				raw(`<form method="post" action="/logout">`).render(ctx, csrfField()).
				raw(`<button type="submit">`).text(T(ctx, "logout")).raw(`</button></form>`)
		} else {
			w.raw(`<a href="/login">`).text(T(ctx, "login")).raw(`</a> `).
				raw(`<a href="/register">`).text(T(ctx, "register")).raw(`</a>`)
		}

		w.raw(`</nav>`).render(ctx, LocaleSwitcher(locales)).raw(`</header><main>`).
			render(ctx, body).raw(`</main></body></html>`)
		return w.err
	})
}

// LocaleSwitcher renders the form posting the chosen locale to /locale.
func LocaleSwitcher(locales []LocaleOption) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		if len(locales) == 0 {
			return nil
		}
		current := Locale(ctx)
		w := &writer{w: out}
		w.raw(`<form method="post" action="/locale" hx-post="/locale">`).render(ctx, csrfField()).
			raw(`<label for="locale">`).text(T(ctx, "choose_language")).raw(`</label>`).
			raw(`<select id="locale" name="locale">`)
		for _, l := range locales {
			w.raw(`<option value="`).text(l.Code).raw(`"`)
			if l.Code == current {
				w.raw(` selected`)
			}
			w.raw(`>`).text(l.Name).raw(`</option>`)
		}
		w.raw(`</select><button type="submit">`).text(T(ctx, "save")).raw(`</button></form>`)
		return w.err
	})
}

func csrfField() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		token := CSRFToken(ctx)
		if token == "" {
			return nil
		}
		w := &writer{w: out}
		w.raw(`<input type="hidden" name="csrf_token" value="`).text(token).raw(`">`)
		return w.err
	})
}
