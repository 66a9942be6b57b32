package main

import (
	"log/slog"
	"net/http"

	gojson "github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"github.com/urfave/cli/v2"

	libsearch "github.com/poiesic/libsearch"
	"github.com/poiesic/libsearch/core"
)

// searchResponse is the transport-boundary shape of a search.
type searchResponse struct {
	Query   string               `json:"query"`
	Count   int                  `json:"count"`
	Results []*core.SearchResult `json:"results"`
}

func serveCommand(c *cli.Context) error {
	db, err := libsearch.NewDatabase(c.String("db"))
	if err != nil {
		return err
	}
	defer db.Close()

	router := newRouter(db)
	addr := c.String("listen")
	slog.Info("serving search endpoints", "addr", addr)
	return http.ListenAndServe(addr, router)
}

func newRouter(db *libsearch.Database) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/search/{feed}", searchHandler(db)).Methods(http.MethodGet)
	return router
}

// searchHandler serves GET /search/{feed}?query=... as JSON. Malformed
// queries never fail the request; the worst case is an empty result list.
func searchHandler(db *libsearch.Database) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		feedType, err := core.ParseFeedType(mux.Vars(r)["feed"])
		if err != nil {
			http.Error(w, "unknown feed", http.StatusNotFound)
			return
		}

		query := r.URL.Query().Get("query")
		results, err := db.Search(r.Context(), feedType, query)
		if err != nil {
			slog.Error("search failed", "feed", feedType, "err", err)
			http.Error(w, "search failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := gojson.NewEncoder(w).Encode(searchResponse{
			Query:   query,
			Count:   len(results),
			Results: results,
		}); err != nil {
			slog.Error("error encoding response", "err", err)
		}
	}
}
