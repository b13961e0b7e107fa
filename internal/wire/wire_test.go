package wire

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"google-reviews/internal/adaptor"
	"google-reviews/internal/data/places"
	"google-reviews/internal/data/repository"
	"google-reviews/internal/dto/response"
	"google-reviews/internal/render"
	"google-reviews/pkg/utils"
)

const placesBody = `{
  "status": "OK",
  "result": {
    "name": "Corner Cafe",
    "rating": 4.6,
    "user_ratings_total": 87,
    "reviews": [
      {"author_name": "Ann", "rating": 5, "text": "Great <b>coffee</b>", "relative_time_description": "a day ago", "profile_photo_url": "https://example.com/a.png"},
      {"author_name": "Ben", "rating": 4, "text": "Nice", "relative_time_description": "a week ago", "profile_photo_url": "https://example.com/b.png"},
      {"author_name": "Cat", "rating": 2.5, "text": "Slow", "relative_time_description": "a month ago", "profile_photo_url": "https://example.com/c.png"}
    ]
  }
}`

type testServer struct {
	srv      *httptest.Server
	upstream *httptest.Server
	calls    *atomic.Int32
}

func newTestServer(t *testing.T, apiKey string, upstreamStatus int) *testServer {
	t.Helper()

	calls := &atomic.Int32{}
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(upstreamStatus)
		w.Write([]byte(placesBody))
	}))
	t.Cleanup(upstream.Close)

	hash, err := utils.HashPassword("s3cret")
	require.NoError(t, err)

	config := &utils.Config{
		App:      utils.AppConfig{PublicURL: "http://widget.test", CORSOrigins: []string{"*"}},
		Places:   utils.PlacesConfig{APIKey: apiKey, PlaceID: "place-1"},
		Security: utils.SecurityConfig{AuthKey: "test-auth-key", AdminUser: "admin", AdminPasswordHash: hash},
	}

	log := zap.NewNop()
	repo := repository.NewRepository(repository.NewMemoryOptionRepository(), repository.NewMemoryTransientRepository())
	app := Wiring(repo, places.NewClient(upstream.URL, time.Second, log), render.NewEngine("", log), config, log)

	srv := httptest.NewServer(app.Router)
	t.Cleanup(srv.Close)

	return &testServer{srv: srv, upstream: upstream, calls: calls}
}

func (s *testServer) do(t *testing.T, method, path, body string, admin bool) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, s.srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	if admin {
		req.SetBasicAuth("admin", "s3cret")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	return resp
}

func TestReviewsWidget(t *testing.T) {
	s := newTestServer(t, "key", http.StatusOK)

	resp := s.do(t, http.MethodGet, "/reviews?number=2", "", false)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	require.NoError(t, err)

	blocks := doc.Find(".google-review")
	require.Equal(t, 2, blocks.Length())
	assert.Equal(t, "Ann", blocks.Eq(0).Find("strong").Text())
	assert.Equal(t, "Ben", blocks.Eq(1).Find("strong").Text())
	assert.Equal(t, 0, blocks.Eq(0).Find("b").Length(), "review text must be escaped")

	src, _ := blocks.Eq(0).Find("img.review-star").First().Attr("src")
	assert.Equal(t, "http://widget.test/assets/star-full.svg", src)

	// second request is served from cache
	resp = s.do(t, http.MethodGet, "/reviews", "", false)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(1), s.calls.Load())
}

func TestReviewsWidget_ErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		apiKey   string
		status   int
		query    string
		wantCode int
		wantBody string
	}{
		{"not configured", "", http.StatusOK, "", http.StatusServiceUnavailable, "<p>" + adaptor.MessageConfiguration + "</p>"},
		{"upstream failure", "key", http.StatusInternalServerError, "", http.StatusBadGateway, "<p>" + adaptor.MessageFetch + "</p>"},
		{"invalid number", "key", http.StatusOK, "?number=500", http.StatusBadRequest, "<p>" + adaptor.MessageInvalidWidget + "</p>"},
		{"negative number", "key", http.StatusOK, "?number=-1", http.StatusBadRequest, "<p>" + adaptor.MessageInvalidWidget + "</p>"},
		{"invalid template", "key", http.StatusOK, "?template=../x", http.StatusBadRequest, "<p>" + adaptor.MessageInvalidWidget + "</p>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, tt.apiKey, tt.status)

			resp := s.do(t, http.MethodGet, "/reviews"+tt.query, "", false)
			assert.Equal(t, tt.wantCode, resp.StatusCode)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Equal(t, tt.wantBody, string(body))
		})
	}
}

func TestReviewsWidget_UpstreamUnreachable(t *testing.T) {
	s := newTestServer(t, "key-never-logged", http.StatusOK)
	s.upstream.Close()

	resp := s.do(t, http.MethodGet, "/reviews", "", false)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "<p>"+adaptor.MessageUnreachable+"</p>", string(body))

	resp = s.do(t, http.MethodGet, "/api/reviews", "", false)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	body, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), adaptor.MessageUnreachable)
	assert.NotContains(t, string(body), "key-never-logged")
}

func TestReviewsWidget_ZeroNumberShowsOnlyOverallRating(t *testing.T) {
	s := newTestServer(t, "key", http.StatusOK)

	resp := s.do(t, http.MethodGet, "/reviews?number=0", "", false)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, 0, doc.Find(".google-review").Length())
	assert.Contains(t, doc.Find(".overall-rating").Text(), "Average Rating: 4.6 out of 5 based on 87 reviews")
}

func TestReviewsJSON(t *testing.T) {
	s := newTestServer(t, "key", http.StatusOK)

	resp := s.do(t, http.MethodGet, "/api/reviews?number=1", "", false)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Status bool                     `json:"status"`
		Data   response.ReviewsResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.True(t, body.Status)
	assert.Equal(t, "Corner Cafe", body.Data.Name)
	assert.Equal(t, 87, body.Data.ReviewData.UserRatingsTotal)
	require.Len(t, body.Data.Reviews, 1)
	assert.Len(t, body.Data.Reviews[0].Stars, 5)
}

func TestAdminSettings(t *testing.T) {
	s := newTestServer(t, "key-abcd", http.StatusOK)

	resp := s.do(t, http.MethodGet, "/api/admin/settings", "", false)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = s.do(t, http.MethodGet, "/api/admin/settings", "", true)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got struct {
		Data response.SettingsResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "****abcd", got.Data.APIKey)
	assert.NotEmpty(t, got.Data.Notices)

	resp = s.do(t, http.MethodPut, "/api/admin/settings", `{"place_id":"place-2","github_token":"ghp_token"}`, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	got = struct {
		Data response.SettingsResponse `json:"data"`
	}{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "place-2", got.Data.PlaceID)
	assert.True(t, got.Data.GitHubTokenSet)
	assert.Empty(t, got.Data.Notices)

	resp = s.do(t, http.MethodPut, "/api/admin/settings", `{not json`, true)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAdminClearCache(t *testing.T) {
	s := newTestServer(t, "key", http.StatusOK)

	s.do(t, http.MethodGet, "/reviews", "", false)
	require.Equal(t, int32(1), s.calls.Load())

	resp := s.do(t, http.MethodPost, "/api/admin/cache/clear", "", true)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got struct {
		Data response.ClearCacheResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, int64(1), got.Data.Deleted)

	s.do(t, http.MethodGet, "/reviews", "", false)
	assert.Equal(t, int32(2), s.calls.Load())
}

func TestStaticRoutes(t *testing.T) {
	s := newTestServer(t, "key", http.StatusOK)

	for _, path := range []string{"/assets/star-half.svg", "/assets/plugin-style.css", "/health", "/metrics"} {
		resp := s.do(t, http.MethodGet, path, "", false)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}

	resp := s.do(t, http.MethodGet, "/assets/missing.svg", "", false)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
