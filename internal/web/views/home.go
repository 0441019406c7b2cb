package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/mcoot/wordchain/internal/model"
)

// HomeData is the landing page model
type HomeData struct {
	PageData
	// Resume is the visitor's last unfinished round, if any
	Resume *model.Round
}

// Home renders the landing page
func Home(data HomeData) templ.Component {
	return Layout(data.PageData, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<section id="rules">
<p>Take turns with the AI naming words. Each word must start with the last two
letters of the AI's previous word, and no word may be used twice.</p>
<p>An invalid word or a broken chain costs you a life. The AI loses a life every
time it cannot find a word. First side out of lives loses.</p>
</section>
`); err != nil {
			return err
		}

		if rd := data.Resume; rd != nil {
			if _, err := fmt.Fprintf(w, "<p id=\"resume\"><a href=\"/play/%s\">Continue round %s</a> (%d words played)</p>\n",
				templ.EscapeString(string(rd.ID)), templ.EscapeString(string(rd.ID)),
				len(rd.PlayerWords)+len(rd.AIWords)); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `<form id="new-round" method="post" action="/play">
<button type="submit">Start a new round</button>
</form>
`)
		return err
	}))
}
