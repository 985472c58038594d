// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// Home renders the start page in the request locale.
func Home(data HomeData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		return Layout(T(ctx, "welcome"), data.Locales, homeBody(data)).Render(ctx, out)
	})
}

func homeBody(data HomeData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		if user := GetUser(ctx); user != nil {
			w.raw(`<h1>`).text(TData(ctx, "welcome_user", map[string]any{"Name": user.Name})).raw(`</h1>`)
		} else {
			w.raw(`<h1>`).text(T(ctx, "welcome")).raw(`</h1>`)
		}

		current := Locale(ctx)
		for _, l := range data.Locales {
			if l.Code == current {
				w.raw(`<p>`).text(T(ctx, "current_language")).raw(`: `).text(l.Name).raw(`</p>`)
			}
		}

		w.raw(`<p>`).text(TPlural(ctx, "users_online", data.UserCount)).raw(`</p>`)
		return w.err
	})
}

// Login renders the sign-in form.
func Login(data FormData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		return Layout(T(ctx, "login"), data.Locales, authForm("login", "/login", false, data)).Render(ctx, out)
	})
}

// Register renders the registration form.
func Register(data FormData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		return Layout(T(ctx, "register"), data.Locales, authForm("register", "/register", true, data)).Render(ctx, out)
	})
}

func authForm(titleID, action string, withName bool, data FormData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw(`<h1>`).text(T(ctx, titleID)).raw(`</h1>`)
		if len(data.Errors) > 0 {
			w.raw(`<ul class="errors">`)
			for _, e := range data.Errors {
				w.raw(`<li>`).text(e).raw(`</li>`)
			}
			w.raw(`</ul>`)
		}
		w.raw(`<form method="post" action="`).text(action).raw(`">`).render(ctx, csrfField())
		if withName {
			w.raw(`<label>`).text(T(ctx, "name")).
				raw(` <input type="text" name="name" required maxlength="255" value="`).text(data.Name).raw(`"></label>`)
		}
		w.raw(`<label>`).text(T(ctx, "email")).
			raw(` <input type="email" name="email" required value="`).text(data.Email).raw(`"></label>`).
			raw(`<label>`).text(T(ctx, "password")).
			raw(` <input type="password" name="password" required></label>`).
			raw(`<button type="submit">`).text(T(ctx, titleID)).raw(`</button></form>`)
		return w.err
	})
}

// Error renders an error page.
func Error(code int, message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		return Layout(T(ctx, "error_title"), nil, errorBody(code, message)).Render(ctx, out)
	})
}

func errorBody(code int, message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw(`<h1>`).text(strconv.Itoa(code)).raw(` · `).text(T(ctx, "error_title")).raw(`</h1>`).
			raw(`<p>`).text(message).raw(`</p>`).
			raw(`<p><a href="/">`).text(T(ctx, "back_home")).raw(`</a></p>`)
		return w.err
	})
}
