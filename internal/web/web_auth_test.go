package web_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHomeShowsGuestFormWhenSignedOut(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/")
	assert.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsElement(t, doc, "#guest-form input[name=display_name]")
	assertNotContainsElement(t, doc, "#new-game-form")
	assertNotContainsElement(t, doc, "#logout")
}

func TestGuestSignInShowsWelcome(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.post("/auth/guest", url.Values{"display_name": {"  Alice  "}})
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))

	rr = ts.followRedirect(rr)
	doc := parseHTML(rr.Body)

	assertContainsText(t, doc, ".flash-success", "Welcome aboard, Alice!")
	assertContainsText(t, doc, "#player-name", "Alice")
	assertContainsElement(t, doc, "#new-game-form")
	assertNotContainsElement(t, doc, "#guest-form")
}

func TestGuestSignInRejectsBlankName(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.post("/auth/guest", url.Values{"display_name": {"   "}})
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.False(t, ts.cookies.hasSession())

	doc := parseHTML(ts.followRedirect(rr).Body)
	assertContainsText(t, doc, ".flash-error", "Display name must be 1 to 32 characters")
}

func TestGuestSignInFollowsNext(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.post("/auth/guest", url.Values{"display_name": {"Alice"}, "next": {"/game/abc"}})
	assert.Equal(t, "/game/abc", rr.Header().Get("Location"))

	ts = ts.withNewBrowser()
	rr = ts.post("/auth/guest", url.Values{"display_name": {"Alice"}, "next": {"//evil.example"}})
	assert.Equal(t, "/", rr.Header().Get("Location"))
}

func TestLogoutEndsSession(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createGuestPlayer("Alice")
	token := ts.cookies.cookies["session"].Value

	rr := ts.post("/auth/logout", nil)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.False(t, ts.cookies.hasSession())

	_, err := ts.app.AuthService.ValidateSession(token)
	assert.Error(t, err)

	doc := parseHTML(ts.followRedirect(rr).Body)
	assertContainsElement(t, doc, "#guest-form")
	assertContainsText(t, doc, ".flash-info", "signed out")
}

func TestProtectedRouteRedirectsHome(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/game/game-1")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Contains(t, rr.Header().Get("Location"), "/?next=")

	rr = ts.postHTMX("/game/game-1/rotate", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("HX-Redirect"))
}

func TestHomeLinksActiveGame(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createGuestPlayer("Alice")
	ts.newGame("game-1")

	doc := parseHTML(ts.get("/").Body)
	link := doc.Find("#resume-game")
	assert.Equal(t, 1, link.Length())
	href, _ := link.Attr("href")
	assert.Equal(t, "/game/game-1", href)
}
