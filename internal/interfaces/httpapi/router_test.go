package httpapi

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/peaks-baseball/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/peaks-baseball/internal/platform/logging"
	"github.com/riskibarqy/peaks-baseball/internal/usecase"
)

const (
	testAdminToken = "secret-token"
	testSeason     = "2025"
)

func newTestRouter(t *testing.T, adminToken string) http.Handler {
	t.Helper()

	db := memory.NewDatabase()
	memory.Seed(db, 2025)

	players := memory.NewPlayerRepository(db)
	games := memory.NewGameRepository(db)
	highlights := memory.NewHighlightRepository(db)
	stats := memory.NewStatRepository(db)

	logger := logging.NewNop()
	statService := usecase.NewStatService(stats, players, games, 2, logger)
	handler := NewHandler(
		usecase.NewPlayerService(players, highlights, statService, logger),
		usecase.NewGameService(games, logger),
		statService,
		usecase.NewHighlightService(highlights, players, logger),
		logger,
	)

	return NewRouter(handler, logger, RouterOptions{
		SwaggerEnabled:     true,
		CORSAllowedOrigins: []string{"*"},
		AdminToken:         adminToken,
	})
}

func doRequest(t *testing.T, router http.Handler, method, path, body string, admin bool) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if admin {
		req.Header.Set(adminTokenHeader, testAdminToken)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v (body=%s)", err, rec.Body.String())
	}
	return body
}

func dataObject(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	data, ok := decodeEnvelope(t, rec)["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, body=%s", rec.Body.String())
	}
	return data
}

func dataList(t *testing.T, rec *httptest.ResponseRecorder) []any {
	t.Helper()

	data, ok := decodeEnvelope(t, rec)["data"].([]any)
	if !ok {
		t.Fatalf("expected data list, body=%s", rec.Body.String())
	}
	return data
}

func errorStatus(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	errObj, ok := decodeEnvelope(t, rec)["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object, body=%s", rec.Body.String())
	}
	status, _ := errObj["status"].(string)
	return status
}

func expectCode(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()

	if rec.Code != want {
		t.Fatalf("expected status %d, got %d (body=%s)", want, rec.Code, rec.Body.String())
	}
}

func TestRouter_HealthzAndRequestID(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t, testAdminToken)

	rec := doRequest(t, router, http.MethodGet, "/healthz", "", false)
	expectCode(t, rec, http.StatusOK)
	if rec.Header().Get(requestIDHeader) == "" {
		t.Fatalf("expected generated request id header")
	}

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if got := rec.Header().Get(requestIDHeader); got != "abc-123" {
		t.Fatalf("expected incoming request id to be echoed, got %q", got)
	}
}

func TestRouter_ListPlayers(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t, testAdminToken)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/players", "", false)
	expectCode(t, rec, http.StatusOK)
	items := dataList(t, rec)
	if len(items) != 6 {
		t.Fatalf("expected 6 active players, got %d", len(items))
	}
	first := items[0].(map[string]any)
	if first["jersey_number"] != float64(2) || first["display_name"] != "2. Marcus Reyes" {
		t.Fatalf("unexpected first player: %+v", first)
	}

	rec = doRequest(t, router, http.MethodGet, "/api/v1/players?position=p", "", false)
	expectCode(t, rec, http.StatusOK)
	if got := len(dataList(t, rec)); got != 2 {
		t.Fatalf("expected 2 pitchers, got %d", got)
	}

	rec = doRequest(t, router, http.MethodGet, "/api/v1/admin/players", "", true)
	expectCode(t, rec, http.StatusOK)
	if got := len(dataList(t, rec)); got != 7 {
		t.Fatalf("expected 7 players for admin, got %d", got)
	}
}

func TestRouter_AdminTokenRequired(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, testAdminToken)
	body := `{"first_name":"New","last_name":"Guy","jersey_number":44,"position":"RF"}`

	rec := doRequest(t, router, http.MethodPost, "/api/v1/players", body, false)
	expectCode(t, rec, http.StatusUnauthorized)
	if got := errorStatus(t, rec); got != "UNAUTHENTICATED" {
		t.Fatalf("unexpected error status %q", got)
	}

	unconfigured := newTestRouter(t, "")
	rec = doRequest(t, unconfigured, http.MethodPost, "/api/v1/players", body, true)
	expectCode(t, rec, http.StatusServiceUnavailable)
}

func TestRouter_CreatePlayerAndConflict(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t, testAdminToken)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/players",
		`{"first_name":"Nate","last_name":"Cole","jersey_number":44,"position":"rf","birth_date":"2004-03-09"}`, true)
	expectCode(t, rec, http.StatusCreated)
	created := dataObject(t, rec)
	if created["position"] != "RF" || created["active"] != true || created["birth_date"] != "2004-03-09" {
		t.Fatalf("unexpected created player: %+v", created)
	}
	if created["slug"] != "44-nate-cole" {
		t.Fatalf("unexpected slug: %v", created["slug"])
	}

	rec = doRequest(t, router, http.MethodPost, "/api/v1/players",
		`{"first_name":"Dup","last_name":"Jersey","jersey_number":44,"position":"C"}`, true)
	expectCode(t, rec, http.StatusConflict)
	if got := errorStatus(t, rec); got != "ALREADY_EXISTS" {
		t.Fatalf("unexpected error status %q", got)
	}
}

func TestRouter_RejectsBadPayloads(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t, testAdminToken)

	cases := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{name: "unknown field", method: http.MethodPost, path: "/api/v1/players", body: `{"first_name":"A","last_name":"B","jersey_number":5,"position":"C","nickname":"x"}`},
		{name: "negative counter", method: http.MethodPost, path: "/api/v1/stats", body: `{"player_id":1,"game_id":3,"hits":-1}`},
		{name: "innings over storage limit", method: http.MethodPost, path: "/api/v1/stats", body: `{"player_id":1,"game_id":3,"innings_pitched":1000}`},
		{name: "counter over storage limit", method: http.MethodPost, path: "/api/v1/stats", body: `{"player_id":1,"game_id":3,"at_bats":2147483648}`},
		{name: "batch innings over storage limit", method: http.MethodPost, path: "/api/v1/games/3/stats/batch", body: `{"lines":[{"player_id":1,"innings_pitched":1000}]}`},
		{name: "missing game", method: http.MethodPost, path: "/api/v1/stats", body: `{"player_id":1,"hits":1}`},
		{name: "bad date", method: http.MethodPost, path: "/api/v1/games", body: `{"opponent":"X","game_date":"05/01/2025"}`},
		{name: "bad video url", method: http.MethodPost, path: "/api/v1/highlights", body: `{"player_id":1,"title":"t","video_url":"not a url"}`},
		{name: "empty batch", method: http.MethodPost, path: "/api/v1/games/3/stats/batch", body: `{"lines":[]}`},
		{name: "malformed json", method: http.MethodPut, path: "/api/v1/games/1", body: `{"opponent":`},
	}
	for _, tc := range cases {
		rec := doRequest(t, router, tc.method, tc.path, tc.body, true)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d (body=%s)", tc.name, rec.Code, rec.Body.String())
		}
	}

	rec := doRequest(t, router, http.MethodGet, "/api/v1/players/abc", "", false)
	expectCode(t, rec, http.StatusBadRequest)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/games?season=-1", "", false)
	expectCode(t, rec, http.StatusBadRequest)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/stats/999", "", false)
	expectCode(t, rec, http.StatusNotFound)
}

func TestRouter_CreateStatComputesRates(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t, testAdminToken)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/stats",
		`{"player_id":1,"game_id":3,"at_bats":4,"hits":2,"doubles":1,"walks":1}`, true)
	expectCode(t, rec, http.StatusCreated)

	line := dataObject(t, rec)["line"].(map[string]any)
	if line["total_bases"] != float64(3) {
		t.Fatalf("unexpected total_bases: %v", line["total_bases"])
	}
	if line["batting_average"] != 0.5 || line["on_base_percentage"] != 0.6 || line["ops"] != 1.35 {
		t.Fatalf("unexpected rates: %+v", line)
	}

	rec = doRequest(t, router, http.MethodPost, "/api/v1/stats", `{"player_id":1,"game_id":3}`, true)
	expectCode(t, rec, http.StatusConflict)
}

func TestRouter_GameBoxScore(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t, testAdminToken)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/games/1/stats", "", false)
	expectCode(t, rec, http.StatusOK)

	data := dataObject(t, rec)
	lines := data["lines"].([]any)
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d", len(lines))
	}
	totals := data["totals"].(map[string]any)
	if totals["at_bats"] != float64(11) || totals["hits"] != float64(4) {
		t.Fatalf("unexpected totals: %+v", totals)
	}
	if totals["innings_pitched"] != float64(9) || totals["era"] != float64(3) {
		t.Fatalf("unexpected pitching totals: %+v", totals)
	}
	game := data["game"].(map[string]any)
	if game["result"] != "W" || game["score_display"] != "6 - 3" {
		t.Fatalf("unexpected game summary: %+v", game)
	}
}

func TestRouter_BatchCreatePartialSuccess(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t, testAdminToken)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/games/3/stats/batch",
		`{"lines":[{"player_id":1,"at_bats":3,"hits":1},{"player_id":99,"at_bats":2}]}`, true)
	expectCode(t, rec, http.StatusCreated)

	data := dataObject(t, rec)
	if data["success_count"] != float64(1) || data["failed_count"] != float64(1) {
		t.Fatalf("unexpected counts: %+v", data)
	}
	lines := data["lines"].([]any)
	if lines[0].(map[string]any)["status"] != usecase.BatchLineCreated {
		t.Fatalf("expected first line created: %+v", lines[0])
	}
	if lines[1].(map[string]any)["status"] != usecase.BatchLineFailed {
		t.Fatalf("expected second line failed: %+v", lines[1])
	}

	rec = doRequest(t, router, http.MethodGet, "/api/v1/stats?game_id=3", "", false)
	expectCode(t, rec, http.StatusOK)
	if got := len(dataList(t, rec)); got != 1 {
		t.Fatalf("expected 1 stored line for game 3, got %d", got)
	}
}

func TestRouter_SeasonStatsLeaders(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t, testAdminToken)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/season/stats?season="+testSeason, "", false)
	expectCode(t, rec, http.StatusOK)

	data := dataObject(t, rec)
	batting := data["batting_leaders"].([]any)
	if len(batting) == 0 {
		t.Fatalf("expected batting leaders")
	}
	top := batting[0].(map[string]any)["player"].(map[string]any)
	if top["jersey_number"] != float64(2) {
		t.Fatalf("unexpected top hitter: %+v", top)
	}
	pitching := data["pitching_leaders"].([]any)
	topPitcher := pitching[0].(map[string]any)["player"].(map[string]any)
	if topPitcher["jersey_number"] != float64(21) {
		t.Fatalf("unexpected top pitcher: %+v", topPitcher)
	}

	rec = doRequest(t, router, http.MethodGet, "/api/v1/roster/stats?season="+testSeason, "", false)
	expectCode(t, rec, http.StatusOK)
	if got := len(dataList(t, rec)); got != 6 {
		t.Fatalf("expected 6 roster rows, got %d", got)
	}
}

func TestRouter_SeasonStatsSkipsDeactivatedPlayers(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t, testAdminToken)

	rec := doRequest(t, router, http.MethodDelete, "/api/v1/players/1", "", true)
	expectCode(t, rec, http.StatusOK)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/season/stats?season="+testSeason, "", false)
	expectCode(t, rec, http.StatusOK)

	data := dataObject(t, rec)
	for _, key := range []string{"players", "batting_leaders", "pitching_leaders"} {
		for _, item := range data[key].([]any) {
			p := item.(map[string]any)["player"].(map[string]any)
			if p["id"] == float64(1) {
				t.Fatalf("deactivated player listed in %s: %+v", key, p)
			}
		}
	}
	top := data["batting_leaders"].([]any)[0].(map[string]any)["player"].(map[string]any)
	if top["jersey_number"] != float64(7) {
		t.Fatalf("unexpected top hitter after deactivation: %+v", top)
	}
}

func TestRouter_DeleteGameCascadesStats(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t, testAdminToken)

	rec := doRequest(t, router, http.MethodDelete, "/api/v1/games/1", "", true)
	expectCode(t, rec, http.StatusOK)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/stats?game_id=1", "", false)
	expectCode(t, rec, http.StatusOK)
	if got := len(dataList(t, rec)); got != 0 {
		t.Fatalf("expected no lines after game delete, got %d", got)
	}

	rec = doRequest(t, router, http.MethodDelete, "/api/v1/games/1", "", true)
	expectCode(t, rec, http.StatusNotFound)
}

func TestRouter_PlayerDetailAndHighlights(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t, testAdminToken)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/players/2", "", false)
	expectCode(t, rec, http.StatusOK)
	detail := dataObject(t, rec)
	highlights := detail["highlights"].([]any)
	if len(highlights) != 1 {
		t.Fatalf("expected 1 highlight, got %d", len(highlights))
	}
	clip := highlights[0].(map[string]any)
	if clip["embed_url"] != "https://www.youtube.com/embed/dQw4w9WgXcQ" {
		t.Fatalf("unexpected embed url: %v", clip["embed_url"])
	}

	rec = doRequest(t, router, http.MethodGet, "/api/v1/players/2/game_log", "", false)
	expectCode(t, rec, http.StatusOK)
	log := dataList(t, rec)
	if len(log) != 2 {
		t.Fatalf("expected 2 game log rows, got %d", len(log))
	}
	newest := log[0].(map[string]any)["game"].(map[string]any)
	if newest["opponent"] != "Pueblo Miners" {
		t.Fatalf("expected newest game first, got %v", newest["opponent"])
	}

	rec = doRequest(t, router, http.MethodGet, "/api/v1/players/2/stats?season="+testSeason, "", false)
	expectCode(t, rec, http.StatusOK)
	line := dataObject(t, rec)["line"].(map[string]any)
	if line["hits"] != float64(3) || line["total_bases"] != float64(8) {
		t.Fatalf("unexpected season line: %+v", line)
	}
}

func TestRouter_DeactivateHidesPlayer(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t, testAdminToken)

	rec := doRequest(t, router, http.MethodDelete, "/api/v1/players/1", "", true)
	expectCode(t, rec, http.StatusOK)
	if dataObject(t, rec)["active"] != false {
		t.Fatalf("expected player to be inactive")
	}

	rec = doRequest(t, router, http.MethodGet, "/api/v1/players", "", false)
	if got := len(dataList(t, rec)); got != 5 {
		t.Fatalf("expected 5 active players, got %d", got)
	}

	rec = doRequest(t, router, http.MethodPut, "/api/v1/players/1/reactivate", "", true)
	expectCode(t, rec, http.StatusOK)
	if dataObject(t, rec)["active"] != true {
		t.Fatalf("expected player to be active again")
	}
}

func TestRouter_OpenAPI(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t, testAdminToken)

	rec := doRequest(t, router, http.MethodGet, "/openapi.yaml", "", false)
	expectCode(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "/api/v1/season/stats") {
		t.Fatalf("expected openapi document to list season stats")
	}

	rec = doRequest(t, router, http.MethodGet, "/docs", "", false)
	expectCode(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "url: '/openapi.yaml'") {
		t.Fatalf("expected swagger ui to point at the document")
	}
}
