// Package app assembles the HTTP surface: REST post routes backed by
// Postgres, GraphQL backed by the in-memory index, health, playground
// and metrics, with the shared middleware applied to every route.
package app

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/esposm03/my-cms/internal/events"
	"github.com/esposm03/my-cms/internal/graph"
	"github.com/esposm03/my-cms/internal/index"
	"github.com/esposm03/my-cms/internal/post"
	"github.com/esposm03/my-cms/internal/shared/httpx"
)

func Router(pool *pgxpool.Pool, ix *index.Index, pub events.Publisher) (http.Handler, error) {
	postHandler := post.NewHandler(post.NewService(post.NewRepository(pool), pub))

	graphHandler, err := graph.NewHandler(ix)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health_check", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.Handle("POST /post", httpx.Wrap(postHandler.Create))
	mux.Handle("GET /post/{id}", httpx.Wrap(postHandler.Get))
	mux.Handle("GET /posts", httpx.Wrap(postHandler.List))
	mux.Handle("POST /graphql", httpx.Wrap(graphHandler.Query))
	mux.Handle("GET /graphql", httpx.Wrap(graphHandler.Query))
	mux.HandleFunc("GET /playground", graphHandler.Playground)
	mux.Handle("GET /metrics", promhttp.Handler())

	var h http.Handler = httpx.Metrics(mux)
	h = httpx.AccessLog(h)
	h = httpx.CORS(h)
	h = httpx.WithRequestID(h)
	return h, nil
}
