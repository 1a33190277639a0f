package web_test

import (
	"bufio"
	"context"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/battleship-go2/internal/model"
	"github.com/mcoot/battleship-go2/internal/testutil"
)

func TestSSEEndpointHeaders(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createGuestPlayer("Alice")
	gameID := ts.startBattle("game-1")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	req := httptest.NewRequest(http.MethodGet, "/game/"+gameID+"/events", nil).WithContext(ctx)
	req.Header.Set("Accept", "text/event-stream")
	ts.cookies.addTo(req)

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	assert.Equal(t, "text/event-stream", rr.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", rr.Header().Get("Cache-Control"))

	body := rr.Body.String()
	assert.Contains(t, body, "retry: 3000")
	assert.Contains(t, body, "event: connected")
	assert.Contains(t, body, `data: {"status":"connected"}`)
}

func TestSSEEndpointFinishedGame(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createGuestPlayer("Alice")
	gameID := ts.startBattle("game-1")

	cells := testutil.StandardFleetCells()
	for i, pos := range cells {
		ts.fire(gameID, pos)
		if i < len(cells)-1 {
			ts.app.AdvanceToComputerMove()
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/game/"+gameID+"/events", nil)
	req.Header.Set("Accept", "text/event-stream")
	ts.cookies.addTo(req)

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Nil(t, ts.app.HubManager.GetHub(model.GameID(gameID)))
}

func TestSSEEndpointRequiresAuth(t *testing.T) {
	ts := newWebTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/game/game-1/events", nil)
	req.Header.Set("Accept", "text/event-stream")

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestSSEEndpointChecksOwnership(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createGuestPlayer("Alice")
	gameID := ts.newGame("game-1")

	other := ts.withNewBrowser()
	other.createGuestPlayer("Mallory")

	rr := other.get("/game/" + gameID + "/events")
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = ts.get("/game/missing/events")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestSSEStreamsComputerMove(t *testing.T) {
	ts := newWebTestServer(t)
	server := httptest.NewServer(ts.handler)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	postForm := func(path string, form url.Values) {
		t.Helper()
		resp, err := client.PostForm(server.URL+path, form)
		require.NoError(t, err)
		_ = resp.Body.Close()
		require.Equal(t, http.StatusSeeOther, resp.StatusCode, path)
	}

	postForm("/auth/guest", url.Values{"display_name": {"Alice"}})
	ts.app.MockIDs.QueueID("game-1")
	ts.app.QueueStandardFleet()
	postForm("/game", url.Values{})
	ts.app.QueueStandardFleet()
	postForm("/game/game-1/auto-place", url.Values{})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/game/game-1/events", nil)
	require.NoError(t, err)
	req.Header.Set("Accept", "text/event-stream")

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	reader := bufio.NewReader(resp.Body)
	readUntil := func(prefix string) string {
		t.Helper()
		for {
			line, err := reader.ReadString('\n')
			require.NoError(t, err, "waiting for %q", prefix)
			line = strings.TrimRight(line, "\n")
			if strings.HasPrefix(line, prefix) {
				return line
			}
		}
	}

	// The client is registered once the connected event arrives
	readUntil("event: connected")

	postForm("/game/game-1/cell", url.Values{"cell": {"A1"}})
	ts.app.AdvanceToComputerMove()

	readUntil("event: computer-fired")
	data := readUntil("data: ")
	assert.Contains(t, data, "Computer fired at A1: hit!")
}
