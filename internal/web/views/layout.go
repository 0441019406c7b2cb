// Package views renders the HTML pages of the web interface as templ components.
package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// FlashMessage is a one-shot notice shown at the top of the next page
type FlashMessage struct {
	Type    string // "success", "error" or "info"
	Message string
}

// PageData holds the fields every page shares
type PageData struct {
	Title string
	Flash *FlashMessage
}

const styles = `body{font-family:system-ui,sans-serif;max-width:40rem;margin:2rem auto;padding:0 1rem}
.flash{padding:.5rem 1rem;border-radius:.25rem;margin-bottom:1rem}
.flash-success{background:#e6f4ea}.flash-error{background:#fce8e6}.flash-info{background:#e8f0fe}
.lives{display:flex;gap:2rem}.words{display:flex;gap:2rem}.words ol{min-width:10rem}
.prefix{font-weight:bold}form.inline{display:inline}`

// Layout wraps body in the page skeleton
func Layout(data PageData, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s | Word Chain</title>
<style>%s</style>
</head>
<body>
<header><h1><a href="/">Word Chain</a></h1></header>
<main>
`, templ.EscapeString(data.Title), styles); err != nil {
			return err
		}

		if data.Flash != nil {
			if err := Flash(*data.Flash).Render(ctx, w); err != nil {
				return err
			}
		}

		if err := body.Render(ctx, w); err != nil {
			return err
		}

		_, err := io.WriteString(w, "</main>\n</body>\n</html>\n")
		return err
	})
}

// Flash renders a flash message
func Flash(flash FlashMessage) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, "<div class=\"flash flash-%s\" role=\"status\">%s</div>\n",
			templ.EscapeString(flash.Type), templ.EscapeString(flash.Message))
		return err
	})
}
