package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/wordchain/internal/api"
	"github.com/mcoot/wordchain/internal/api/apierr"
	"github.com/mcoot/wordchain/internal/api/response"
	"github.com/mcoot/wordchain/internal/factory"
	"github.com/mcoot/wordchain/internal/testutil"
)

// testServer wraps the router around an app with a scripted oracle
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	app := factory.NewTestApp()
	t.Cleanup(func() { _ = app.Close() })

	logger := testutil.NopLogger()
	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		RoundController: app.RoundController,
		HubManager:      app.HubManager,
		HealthHandler:   app.HealthHandler(logger),
	})

	return &testServer{handler: router, app: app}
}

func (ts *testServer) request(method, path string, body any) *httptest.ResponseRecorder {
	reqBody := bytes.NewBuffer(nil)
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func (ts *testServer) createRound(t *testing.T) response.Round {
	t.Helper()
	rr := ts.request(http.MethodPost, "/api/v1/rounds", nil)
	require.Equal(t, http.StatusCreated, rr.Code)

	var round response.Round
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &round))
	require.Equal(t, "/api/v1/rounds/"+round.ID, rr.Header().Get("Location"))
	return round
}

func (ts *testServer) submit(t *testing.T, id, word string) (*httptest.ResponseRecorder, response.SubmitResponse) {
	t.Helper()
	rr := ts.request(http.MethodPost, "/api/v1/rounds/"+id+"/words", map[string]string{"word": word})

	var resp response.SubmitResponse
	if rr.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	}
	return rr, resp
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) apierr.APIError {
	t.Helper()
	var resp apierr.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Error
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var health response.Health
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "memory", health.Storage)
	assert.Equal(t, "mock", health.Oracle)
}

func TestCreateRound(t *testing.T) {
	ts := newTestServer(t)
	ts.app.MockRandom.QueueString("ROUNDABC")

	round := ts.createRound(t)

	assert.Equal(t, "ROUNDABC", round.ID)
	assert.Equal(t, 5, round.PlayerLives)
	assert.Equal(t, 5, round.AILives)
	assert.Equal(t, "player", round.TurnOwner)
	assert.Equal(t, "in_progress", round.Phase)
	assert.Empty(t, round.UsedWords)
	assert.Empty(t, round.RequiredPrefix)
}

func TestGetRound(t *testing.T) {
	ts := newTestServer(t)
	created := ts.createRound(t)

	rr := ts.request(http.MethodGet, "/api/v1/rounds/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var round response.Round
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &round))
	assert.Equal(t, created.ID, round.ID)
}

func TestGetRoundNotFound(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/rounds/NOPE", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeRoundNotFound, decodeError(t, rr).Code)
}

func TestSubmitWordAIRepliesOnSecondTry(t *testing.T) {
	ts := newTestServer(t)
	ts.app.MockOracle.Allow("apple")
	ts.app.MockOracle.QueueSuggestions("", "lemon")
	round := ts.createRound(t)

	rr, resp := ts.submit(t, round.ID, "apple")
	require.Equal(t, http.StatusOK, rr.Code)

	require.NotNil(t, resp.Result.AIReply)
	assert.Equal(t, "ai_succeeded", resp.Result.AIReply.Outcome)
	assert.Equal(t, `AI lost a life for an invalid word! Trying again... AI played "lemon".`, resp.Result.AIReply.Message)
	assert.Equal(t, 4, resp.Round.AILives)
}

func TestSubmitWordAIReplies(t *testing.T) {
	ts := newTestServer(t)
	ts.app.MockOracle.Allow("apple")
	ts.app.MockOracle.QueueSuggestions("lemon")
	round := ts.createRound(t)

	rr, resp := ts.submit(t, round.ID, "apple")
	require.Equal(t, http.StatusOK, rr.Code)

	assert.Equal(t, "accepted", resp.Result.Outcome)
	assert.Equal(t, "Word accepted.", resp.Result.Message)
	require.NotNil(t, resp.Result.AIReply)
	assert.Equal(t, "ai_succeeded", resp.Result.AIReply.Outcome)
	assert.Equal(t, "lemon", resp.Result.AIReply.Word)
	assert.Equal(t, `AI played "lemon".`, resp.Result.AIReply.Message)

	assert.Equal(t, []string{"apple", "lemon"}, resp.Round.UsedWords)
	assert.Equal(t, "lemon", resp.Round.LastOpponentWord)
	assert.Equal(t, "on", resp.Round.RequiredPrefix)
	assert.Equal(t, "player", resp.Round.TurnOwner)
}

func TestSubmitInvalidWordCostsLife(t *testing.T) {
	ts := newTestServer(t)
	round := ts.createRound(t)

	rr, resp := ts.submit(t, round.ID, "qwxz")
	require.Equal(t, http.StatusOK, rr.Code)

	assert.Equal(t, "rejected", resp.Result.Outcome)
	assert.Equal(t, "invalid_word", resp.Result.Reason)
	assert.Equal(t, 1, resp.Result.LivesLost)
	assert.Equal(t, "Invalid word! You lost a life.", resp.Result.Message)
	assert.Equal(t, 4, resp.Round.PlayerLives)
	assert.Nil(t, resp.Result.AIReply)
}

func TestSubmitWrongPrefix(t *testing.T) {
	ts := newTestServer(t)
	ts.app.MockOracle.Allow("apple", "banana")
	ts.app.MockOracle.QueueSuggestions("lemon")
	round := ts.createRound(t)

	_, _ = ts.submit(t, round.ID, "apple")
	rr, resp := ts.submit(t, round.ID, "banana")
	require.Equal(t, http.StatusOK, rr.Code)

	assert.Equal(t, "wrong_prefix", resp.Result.Reason)
	assert.Equal(t, 4, resp.Round.PlayerLives)
	assert.Equal(t, "on", resp.Round.RequiredPrefix)
}

func TestSubmitUsedWordIsFree(t *testing.T) {
	ts := newTestServer(t)
	ts.app.MockOracle.Allow("apple", "lemon")
	ts.app.MockOracle.QueueSuggestions("lemon")
	round := ts.createRound(t)

	_, _ = ts.submit(t, round.ID, "apple")
	rr, resp := ts.submit(t, round.ID, "lemon")
	require.Equal(t, http.StatusOK, rr.Code)

	assert.Equal(t, "already_used", resp.Result.Reason)
	assert.Equal(t, 0, resp.Result.LivesLost)
	assert.Equal(t, 5, resp.Round.PlayerLives)
}

func TestSubmitLastLifeEndsRound(t *testing.T) {
	ts := newTestServer(t)
	round := ts.createRound(t)

	var resp response.SubmitResponse
	for range 5 {
		_, resp = ts.submit(t, round.ID, "zzzz")
	}

	assert.Equal(t, "player_lost", resp.Round.Phase)
	assert.True(t, strings.HasSuffix(resp.Result.Message, "Game over!"))

	rr, _ := ts.submit(t, round.ID, "apple")
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeRoundOver, decodeError(t, rr).Code)
}

func TestSubmitEmptyWord(t *testing.T) {
	ts := newTestServer(t)
	round := ts.createRound(t)

	rr, _ := ts.submit(t, round.ID, "   ")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidRequest, decodeError(t, rr).Code)
	assert.Zero(t, ts.app.MockOracle.ValidateCallCount())
}

func TestSubmitMalformedBody(t *testing.T) {
	ts := newTestServer(t)
	round := ts.createRound(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/rounds/"+round.ID+"/words", strings.NewReader("{"))
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSubmitUnknownRound(t *testing.T) {
	ts := newTestServer(t)

	rr, _ := ts.submit(t, "NOPE", "apple")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGiveUp(t *testing.T) {
	ts := newTestServer(t)
	round := ts.createRound(t)

	rr := ts.request(http.MethodPost, "/api/v1/rounds/"+round.ID+"/give-up", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var after response.Round
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &after))
	assert.Equal(t, "player_gave_up", after.Phase)
	assert.Equal(t, 0, after.PlayerLives)
}

func TestRestart(t *testing.T) {
	ts := newTestServer(t)
	ts.app.MockOracle.Allow("apple")
	ts.app.MockOracle.QueueSuggestions("lemon")
	round := ts.createRound(t)
	_, _ = ts.submit(t, round.ID, "apple")

	rr := ts.request(http.MethodPost, "/api/v1/rounds/"+round.ID+"/restart", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var fresh response.Round
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &fresh))
	assert.Equal(t, round.ID, fresh.ID)
	assert.Empty(t, fresh.UsedWords)
	assert.Empty(t, fresh.LastOpponentWord)
	assert.Equal(t, 5, fresh.PlayerLives)
}

func TestDeleteRound(t *testing.T) {
	ts := newTestServer(t)
	round := ts.createRound(t)

	rr := ts.request(http.MethodDelete, "/api/v1/rounds/"+round.ID, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/rounds/"+round.ID, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = ts.request(http.MethodDelete, "/api/v1/rounds/"+round.ID, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestEventsUnknownRound(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/rounds/NOPE/events", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/rounds", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}
