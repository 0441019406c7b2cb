package views

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/mcoot/wordchain/internal/model"
)

// RoundData is what the round page shows
type RoundData struct {
	PageData
	Round *model.Round
}

// RoundPage renders a round with its play form
func RoundPage(data RoundData) templ.Component {
	return Layout(data.PageData, roundBody(data.Round))
}

func roundBody(round *model.Round) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		id := templ.EscapeString(string(round.ID))
		var b strings.Builder

		fmt.Fprintf(&b, "<section id=\"round\" data-round-id=\"%s\" data-version=\"%d\">\n", id, round.Version)
		fmt.Fprintf(&b, "<div class=\"lives\"><span id=\"player-lives\">Your lives: %d</span><span id=\"ai-lives\">AI lives: %d</span></div>\n",
			round.PlayerLives, round.AILives)
		fmt.Fprintf(&b, "<p id=\"status\">%s</p>\n", templ.EscapeString(statusLine(round)))

		b.WriteString("<div class=\"words\">\n")
		writeWordList(&b, "player-words", "Your words", round.PlayerWords)
		writeWordList(&b, "ai-words", "AI words", round.AIWords)
		b.WriteString("</div>\n")

		if !round.IsOver() {
			fmt.Fprintf(&b, `<form id="word-form" method="post" action="/play/%s/word">
<label for="word">Your word</label>
<input id="word" name="word" autocomplete="off" autofocus required placeholder="%s">
<button type="submit">Play</button>
</form>
<form id="give-up-form" class="inline" method="post" action="/play/%s/give-up"><button type="submit">Give up</button></form>
`, id, templ.EscapeString(round.RequiredPrefix()), id)
		}
		fmt.Fprintf(&b, "<form id=\"restart-form\" class=\"inline\" method=\"post\" action=\"/play/%s/restart\"><button type=\"submit\">Restart</button></form>\n", id)
		b.WriteString("</section>\n")

		// Keep other tabs on this round in sync
		fmt.Fprintf(&b, `<script>
(function(){
  var events = new EventSource("/play/%s/events");
  var version = %d;
  ["round_restarted","round_ended","ai_word_played","ai_turn_failed","player_word_rejected"].forEach(function(type){
    events.addEventListener(type, function(e){
      var data = JSON.parse(e.data);
      if (data.round && data.round.version > version) { location.reload(); }
    });
  });
})();
</script>
`, id, round.Version)

		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeWordList(b *strings.Builder, id, title string, words []string) {
	fmt.Fprintf(b, "<div><h2>%s</h2><ol id=\"%s\">", title, id)
	for _, word := range words {
		fmt.Fprintf(b, "<li>%s</li>", templ.EscapeString(word))
	}
	b.WriteString("</ol></div>\n")
}

// statusLine describes whose move it is, or how the round ended
func statusLine(round *model.Round) string {
	switch round.Phase {
	case model.PhasePlayerWon:
		return "You defeated the AI!"
	case model.PhasePlayerLost:
		return "Game over! You ran out of lives."
	case model.PhasePlayerGaveUp:
		return "You gave up."
	}

	if round.TurnOwner == model.SideAI {
		return "The AI is thinking..."
	}
	if prefix := round.RequiredPrefix(); prefix != "" {
		return fmt.Sprintf("The AI played %q. Your word must start with %q.", round.LastOpponentWord, prefix)
	}
	return "Play any word."
}
