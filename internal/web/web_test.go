package web_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/issue-battleships/internal/factory"
	"github.com/mcoot/issue-battleships/internal/model"
	"github.com/mcoot/issue-battleships/internal/testutil"
	"github.com/mcoot/issue-battleships/internal/web"
)

// webTestServer provides a test server for web interface testing
type webTestServer struct {
	t       *testing.T
	handler http.Handler
	app     *factory.TestApp
}

// newWebTestServer creates a new test server with all dependencies wired
func newWebTestServer(t *testing.T) *webTestServer {
	t.Helper()

	app := factory.NewTestApp()

	router := web.NewRouter(web.RouterConfig{
		Logger:             testutil.NopLogger(),
		GameController:     app.GameController,
		LeaderboardService: app.LeaderboardService,
		StaticDir:          "", // No static files in tests
	})

	return &webTestServer{
		t:       t,
		handler: router,
		app:     app,
	}
}

// get makes a GET request
func (ts *webTestServer) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// move fires a shot through the controller
func (ts *webTestServer) move(player model.PlayerHandle, coord string) *model.MoveResult {
	ts.t.Helper()
	res, err := ts.app.GameController.ProcessMove(context.Background(), player, model.MustParseCoordinate(coord))
	require.NoError(ts.t, err)
	return res
}

// parseHTML parses the response body as HTML
func parseHTML(r io.Reader) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		panic(err)
	}
	return doc
}

// Assertion helpers

// assertContainsElement asserts that the document contains an element matching the selector
func assertContainsElement(t *testing.T, doc *goquery.Document, selector string) {
	t.Helper()
	if doc.Find(selector).Length() == 0 {
		t.Errorf("Expected to find element matching %q, but none found", selector)
	}
}

// assertNotContainsElement asserts that the document does not contain an element matching the selector
func assertNotContainsElement(t *testing.T, doc *goquery.Document, selector string) {
	t.Helper()
	if doc.Find(selector).Length() > 0 {
		t.Errorf("Expected NOT to find element matching %q, but found %d", selector, doc.Find(selector).Length())
	}
}

// assertContainsText asserts that the element matching the selector contains the text
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

func TestHomeBeforeFirstMove(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")

	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, "#status", "No game yet")
	assertNotContainsElement(t, doc, "#board")
	assertContainsText(t, doc, "#leaderboard", "No players yet")
}

func TestHomeShowsBoard(t *testing.T) {
	ts := newWebTestServer(t)
	res := ts.move("alice", "E5")

	rr := ts.get("/")
	require.Equal(t, http.StatusOK, rr.Code)
	doc := parseHTML(rr.Body)

	assertContainsText(t, doc, "#status", "Round 001")
	assert.Equal(t, 100, doc.Find("#board td").Length())

	cell := doc.Find(`#board td[data-coord="E5"]`)
	require.Equal(t, 1, cell.Length())
	if res.Outcome == model.OutcomeHit {
		assert.True(t, cell.HasClass("cell-hit"))
	} else {
		assert.True(t, cell.HasClass("cell-miss"))
	}

	// Ships stay hidden during play
	assertNotContainsElement(t, doc, "#board td.cell-ship")
	assert.Equal(t, len(model.Fleet()), doc.Find("#fleet tbody tr").Length())

	assertContainsText(t, doc, "#recent-moves", "@alice")
	assertContainsText(t, doc, "#leaderboard .player", "@alice")
	assertContainsText(t, doc, "#all-time .player", "@alice")
}

func TestHomeShowsNewestMoveFirst(t *testing.T) {
	ts := newWebTestServer(t)
	ts.move("alice", "J10")

	cells, err := ts.app.ShipCells(context.Background())
	require.NoError(t, err)
	target := cells[0]
	if target.String() == "J10" {
		target = cells[1]
	}
	res := ts.move("bob", target.String())
	require.Equal(t, model.OutcomeHit, res.Outcome)

	doc := parseHTML(ts.get("/").Body)
	items := doc.Find("#recent-moves li")
	require.Equal(t, 2, items.Length())
	assert.Contains(t, items.Eq(0).Text(), "@bob")
	assert.Contains(t, items.Eq(0).Text(), target.String())
	assert.Contains(t, items.Eq(1).Text(), "@alice")

	assert.True(t, doc.Find(`#board td[data-coord="`+target.String()+`"]`).HasClass("cell-hit"))
	damaged := doc.Find("#fleet td.status").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return !strings.Contains(s.Text(), "Afloat")
	})
	assert.Positive(t, damaged.Length())
}

func TestHomeEscapesHandles(t *testing.T) {
	ts := newWebTestServer(t)
	ts.move("<script>x</script>", "A1")

	rr := ts.get("/")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), "<script>x</script>")

	doc := parseHTML(rr.Body)
	assertNotContainsElement(t, doc, "main script")
}

func TestRoundPageRevealsLayout(t *testing.T) {
	ts := newWebTestServer(t)
	ts.move("alice", "A1")

	_, err := ts.app.GameController.Reset(context.Background(), factory.TestAdmin)
	require.NoError(t, err)

	// Home links to the archived round
	doc := parseHTML(ts.get("/").Body)
	assertContainsElement(t, doc, `#rounds a[href="/rounds/1"]`)
	assertContainsText(t, doc, "#status", "Round 002")

	rr := ts.get("/rounds/1")
	require.Equal(t, http.StatusOK, rr.Code)
	doc = parseHTML(rr.Body)

	assertContainsText(t, doc, "#status", "Reset before victory")
	ships := doc.Find("#board td.cell-ship").Length() + doc.Find("#board td.cell-hit").Length()
	assert.Equal(t, model.TotalShipCells, ships)
	assertContainsText(t, doc, "#recent-moves", "@alice")
}

func TestRoundNotFound(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/rounds/9")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, "#error", "Round 009")
}

func TestUnknownPath(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/lobby/ABC123")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assertContainsElement(t, parseHTML(rr.Body), "#error")
}

func TestRefreshMeta(t *testing.T) {
	ts := newWebTestServer(t)
	doc := parseHTML(ts.get("/").Body)
	content, ok := doc.Find(`meta[http-equiv="refresh"]`).Attr("content")
	require.True(t, ok)
	assert.Equal(t, "60", content)
}
