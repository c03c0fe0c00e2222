package deckcode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcherFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/deck/abc-123/" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`<script>PCGDECK.searchItemName[1]='x';</script>`))
	}))
	defer srv.Close()

	f := NewFetcher(srv.URL+"/deck/{code}/", srv.Client())

	body, err := f.Fetch(context.Background(), "abc-123")
	require.NoError(t, err)
	assert.Contains(t, body, "searchItemName")

	_, err = f.Fetch(context.Background(), "zzz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestFetcherRejectsCodes(t *testing.T) {
	f := NewFetcher("", nil)
	for _, code := range []string{"", "../admin", "a/b", "a b", "x?y=1", "%2e%2e"} {
		_, err := f.Fetch(context.Background(), code)
		assert.ErrorIs(t, err, ErrInvalidCode, code)
	}

	u, err := f.URL("gnnLLQ-dQ3ZFi-LgQ9gn")
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL+"/deck/confirm.html/deckID/gnnLLQ-dQ3ZFi-LgQ9gn/", u)
}

func TestFetcherHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewFetcher(srv.URL+"/{code}", srv.Client()).Fetch(ctx, "abc")
	assert.ErrorIs(t, err, context.Canceled)
}
