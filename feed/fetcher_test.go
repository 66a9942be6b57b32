package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcher_Fetch(t *testing.T) {
	body := "ID,NAME\n1,Academic Search\n"

	t.Run("returns the response body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		}))
		defer server.Close()

		fetcher := NewHTTPFetcher(nil)
		got, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, body, string(got))
	})

	t.Run("non-2xx status is a transport error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "gone fishing", http.StatusServiceUnavailable)
		}))
		defer server.Close()

		fetcher := NewHTTPFetcher(nil)
		_, err := fetcher.Fetch(context.Background(), server.URL)
		assert.ErrorIs(t, err, ErrTransport)
	})

	t.Run("unreachable host is a transport error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		fetcher := NewHTTPFetcher(nil)
		_, err := fetcher.Fetch(context.Background(), server.URL)
		assert.ErrorIs(t, err, ErrTransport)
	})

	t.Run("cancelled context is a transport error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		fetcher := NewHTTPFetcher(nil)
		_, err := fetcher.Fetch(ctx, server.URL)
		assert.ErrorIs(t, err, ErrTransport)
	})
}
