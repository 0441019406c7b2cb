package web_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/wordchain/internal/factory"
	"github.com/mcoot/wordchain/internal/model"
	"github.com/mcoot/wordchain/internal/testutil"
	"github.com/mcoot/wordchain/internal/web"
	"github.com/mcoot/wordchain/internal/web/handler"
)

// webTestServer provides a test server for web interface testing
type webTestServer struct {
	t       *testing.T
	handler http.Handler
	app     *factory.TestApp
	cookies *cookieJar
}

// newWebTestServer creates a new test server with a scripted oracle
func newWebTestServer(t *testing.T) *webTestServer {
	t.Helper()

	app := factory.NewTestApp()
	t.Cleanup(func() { _ = app.Close() })

	router := web.NewRouter(web.RouterConfig{
		Logger:          testutil.NopLogger(),
		RoundController: app.RoundController,
		HubManager:      app.HubManager,
	})

	return &webTestServer{
		t:       t,
		handler: router,
		app:     app,
		cookies: newCookieJar(),
	}
}

// request makes an HTTP request and returns the response
func (ts *webTestServer) request(method, path string, form url.Values, htmx bool) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if htmx {
		req.Header.Set("HX-Request", "true")
	}

	ts.cookies.addTo(req)

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	ts.cookies.extract(rr)

	return rr
}

func (ts *webTestServer) get(path string) *httptest.ResponseRecorder {
	return ts.request(http.MethodGet, path, nil, false)
}

func (ts *webTestServer) post(path string, form url.Values) *httptest.ResponseRecorder {
	return ts.request(http.MethodPost, path, form, false)
}

// followRedirect follows a redirect and returns the response
func (ts *webTestServer) followRedirect(rr *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	ts.t.Helper()
	location := rr.Header().Get("HX-Redirect")
	if location == "" {
		location = rr.Header().Get("Location")
	}
	require.NotEmpty(ts.t, location, "Expected Location or HX-Redirect header for redirect")
	return ts.get(location)
}

// createRound starts a round through the home page form and returns its page path
func (ts *webTestServer) createRound() string {
	ts.t.Helper()
	rr := ts.post("/play", nil)
	require.Equal(ts.t, http.StatusSeeOther, rr.Code, "Expected redirect after creating a round")

	location := rr.Header().Get("Location")
	require.True(ts.t, strings.HasPrefix(location, "/play/"), "Expected redirect to round page, got %q", location)
	return location
}

// playWord submits a word and returns the page shown afterwards
func (ts *webTestServer) playWord(path, word string) *goquery.Document {
	ts.t.Helper()
	rr := ts.post(path+"/word", url.Values{"word": {word}})
	require.Equal(ts.t, http.StatusSeeOther, rr.Code)

	page := ts.followRedirect(rr)
	require.Equal(ts.t, http.StatusOK, page.Code)
	return parseHTML(page.Body)
}

// parseHTML parses the response body as HTML
func parseHTML(r io.Reader) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		panic(err)
	}
	return doc
}

// cookieJar maintains cookies across requests (like a browser would)
type cookieJar struct {
	cookies map[string]*http.Cookie
}

func newCookieJar() *cookieJar {
	return &cookieJar{cookies: make(map[string]*http.Cookie)}
}

func (j *cookieJar) addTo(req *http.Request) {
	for _, cookie := range j.cookies {
		req.AddCookie(cookie)
	}
}

func (j *cookieJar) extract(rr *httptest.ResponseRecorder) {
	for _, cookie := range rr.Result().Cookies() {
		if cookie.MaxAge < 0 {
			delete(j.cookies, cookie.Name)
		} else {
			j.cookies[cookie.Name] = cookie
		}
	}
}

// Assertion helpers

func assertContainsElement(t *testing.T, doc *goquery.Document, selector string) {
	t.Helper()
	if doc.Find(selector).Length() == 0 {
		t.Errorf("Expected to find element matching %q, but none found", selector)
	}
}

func assertNotContainsElement(t *testing.T, doc *goquery.Document, selector string) {
	t.Helper()
	if doc.Find(selector).Length() > 0 {
		t.Errorf("Expected NOT to find element matching %q, but found %d", selector, doc.Find(selector).Length())
	}
}

func assertContainsText(t *testing.T, doc *goquery.Document, selector, text string) {
	t.Helper()
	el := doc.Find(selector)
	if el.Length() == 0 {
		t.Errorf("Expected to find element matching %q, but none found", selector)
		return
	}
	if !strings.Contains(el.Text(), text) {
		t.Errorf("Expected element %q to contain %q, but got %q", selector, text, el.Text())
	}
}

func wordList(doc *goquery.Document, selector string) []string {
	var words []string
	doc.Find(selector + " li").Each(func(_ int, s *goquery.Selection) {
		words = append(words, s.Text())
	})
	return words
}

// Tests

func TestHomePage(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))

	doc := parseHTML(rr.Body)
	assertContainsElement(t, doc, "form#new-round[action='/play'][method='post']")
	assertContainsText(t, doc, "#rules", "last two")
	assertNotContainsElement(t, doc, ".flash")
}

func TestNewRoundPage(t *testing.T) {
	ts := newWebTestServer(t)
	ts.app.MockRandom.QueueString("WEBROUND")

	path := ts.createRound()
	assert.Equal(t, "/play/WEBROUND", path)

	rr := ts.get(path)
	require.Equal(t, http.StatusOK, rr.Code)
	doc := parseHTML(rr.Body)

	assertContainsText(t, doc, "#player-lives", "5")
	assertContainsText(t, doc, "#ai-lives", "5")
	assertContainsText(t, doc, "#status", "Play any word.")
	assertContainsElement(t, doc, "form#word-form[action='/play/WEBROUND/word']")
	assertContainsElement(t, doc, "form#give-up-form")
	assertContainsElement(t, doc, "form#restart-form")
	assert.Empty(t, wordList(doc, "#player-words"))
}

func TestPlayWordShowsAIReply(t *testing.T) {
	ts := newWebTestServer(t)
	ts.app.MockOracle.Allow("apple")
	ts.app.MockOracle.QueueSuggestions("lemon")
	path := ts.createRound()

	doc := ts.playWord(path, "apple")

	assertContainsText(t, doc, ".flash-info", `Word accepted. AI played "lemon".`)
	assert.Equal(t, []string{"apple"}, wordList(doc, "#player-words"))
	assert.Equal(t, []string{"lemon"}, wordList(doc, "#ai-words"))
	assertContainsText(t, doc, "#status", `Your word must start with "on"`)

	placeholder, _ := doc.Find("input#word").Attr("placeholder")
	assert.Equal(t, "on", placeholder)

	// The flash is shown once
	doc = parseHTML(ts.get(path).Body)
	assertNotContainsElement(t, doc, ".flash")
}

func TestRejectedWordFlashesError(t *testing.T) {
	ts := newWebTestServer(t)
	path := ts.createRound()

	doc := ts.playWord(path, "qzzq")

	assertContainsText(t, doc, ".flash-error", "Invalid word! You lost a life.")
	assertContainsText(t, doc, "#player-lives", "4")
}

func TestEmptyWordIsNotSubmitted(t *testing.T) {
	ts := newWebTestServer(t)
	path := ts.createRound()

	doc := ts.playWord(path, "   ")

	assertContainsText(t, doc, ".flash-error", "Please enter a word")
	assertContainsText(t, doc, "#player-lives", "5")
	assert.Zero(t, ts.app.MockOracle.ValidateCallCount())
}

func TestDefeatingTheAI(t *testing.T) {
	ts := newWebTestServer(t)
	ts.app.MockOracle.Allow("apple")
	path := ts.createRound()

	id := model.RoundID(strings.TrimPrefix(path, "/play/"))
	rd, err := ts.app.RoundController.GetRound(t.Context(), id)
	require.NoError(t, err)
	rd.AILives = 1
	require.NoError(t, ts.app.Storage.SaveRound(t.Context(), rd))

	doc := ts.playWord(path, "apple")

	assertContainsText(t, doc, ".flash-success", "Congratulations! You defeated the AI!")
	assertContainsText(t, doc, "#status", "You defeated the AI!")
	assertNotContainsElement(t, doc, "form#word-form")
	assertContainsElement(t, doc, "form#restart-form")
}

func TestGiveUpAndRestart(t *testing.T) {
	ts := newWebTestServer(t)
	path := ts.createRound()

	rr := ts.post(path+"/give-up", nil)
	require.Equal(t, http.StatusSeeOther, rr.Code)
	doc := parseHTML(ts.followRedirect(rr).Body)
	assertContainsText(t, doc, "#status", "You gave up.")
	assertNotContainsElement(t, doc, "form#word-form")

	// Playing after the round is over explains why
	doc = ts.playWord(path, "apple")
	assertContainsText(t, doc, ".flash-info", "The round is over")

	rr = ts.post(path+"/restart", nil)
	require.Equal(t, http.StatusSeeOther, rr.Code)
	doc = parseHTML(ts.followRedirect(rr).Body)
	assertContainsText(t, doc, ".flash-info", "Round restarted")
	assertContainsElement(t, doc, "form#word-form")
	assertContainsText(t, doc, "#player-lives", "5")
}

func TestUnknownRoundRedirectsHome(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/play/NOPE")
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))

	doc := parseHTML(ts.followRedirect(rr).Body)
	assertContainsText(t, doc, ".flash-error", "Round not found")
}

func TestHTMXRequestsGetHXRedirect(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.request(http.MethodPost, "/play", nil, true)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.True(t, strings.HasPrefix(rr.Header().Get("HX-Redirect"), "/play/"))
}

func TestWordsAreEscaped(t *testing.T) {
	ts := newWebTestServer(t)
	ts.app.MockOracle.Allow("<b>bold</b>")
	path := ts.createRound()

	doc := ts.playWord(path, "<b>bold</b>")

	assert.Equal(t, []string{"<b>bold</b>"}, wordList(doc, "#player-words"))
	assertNotContainsElement(t, doc, "#player-words b")
}

func TestEventsUnknownRound(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/play/NOPE/events")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHomeOffersToResumeUnfinishedRound(t *testing.T) {
	ts := newWebTestServer(t)
	ts.app.MockRandom.QueueString("RESUMEME")
	path := ts.createRound()
	require.Equal(t, http.StatusOK, ts.get(path).Code)

	doc := parseHTML(ts.get("/").Body)
	assertContainsText(t, doc, "#resume", "Continue round RESUMEME")
	href, _ := doc.Find("#resume a").Attr("href")
	assert.Equal(t, "/play/RESUMEME", href)

	// Finished rounds are not offered
	require.Equal(t, http.StatusSeeOther, ts.post(path+"/give-up", nil).Code)
	doc = parseHTML(ts.get("/").Body)
	assertNotContainsElement(t, doc, "#resume")
}

func TestPanicPage(t *testing.T) {
	rr := httptest.NewRecorder()
	handler.PanicPage(rr, httptest.NewRequest(http.MethodGet, "/play/X", nil), "boom")

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, "#error h2", "Something went wrong")
	assertContainsElement(t, doc, "#error a[href='/']")
}
