package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// ErrorPage renders a standalone failure page
func ErrorPage(title, message string) templ.Component {
	return Layout(PageData{Title: title}, templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, "<section id=\"error\">\n<h2>%s</h2>\n<p>%s</p>\n<p><a href=\"/\">Start over</a></p>\n</section>\n",
			templ.EscapeString(title), templ.EscapeString(message))
		return err
	}))
}
