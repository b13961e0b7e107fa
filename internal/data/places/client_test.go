package places

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestDetailsURL(t *testing.T) {
	got := DetailsURL("https://maps.googleapis.com", "ChIJ place", "k&y")

	assert.Equal(t,
		"https://maps.googleapis.com/maps/api/place/details/json?key=k%26y&placeid=ChIJ+place&reviews_sort=newest",
		got,
	)
}

func TestFetchDetails_ReturnsStatusAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, detailsPath, r.URL.Path)
		assert.Equal(t, "place-1", r.URL.Query().Get("placeid"))
		assert.Equal(t, "key-1", r.URL.Query().Get("key"))
		assert.Equal(t, "newest", r.URL.Query().Get("reviews_sort"))

		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"status":"REQUEST_DENIED"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0, zap.NewNop())
	resp, err := c.FetchDetails(context.Background(), "place-1", "key-1")
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.JSONEq(t, `{"status":"REQUEST_DENIED"}`, string(resp.Body))
}

func TestFetchDetails_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	core, logs := observer.New(zap.DebugLevel)
	c := NewClient(srv.URL, 0, zap.New(core))

	_, err := c.FetchDetails(context.Background(), "place-1", "SECRET-API-KEY")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
	assert.NotContains(t, err.Error(), "SECRET-API-KEY")

	require.NotZero(t, logs.Len())
	for _, entry := range logs.All() {
		assert.NotContains(t, entry.Message, "SECRET-API-KEY")
		for _, value := range entry.ContextMap() {
			assert.NotContains(t, fmt.Sprint(value), "SECRET-API-KEY")
		}
	}
}
