package graph

import (
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/esposm03/my-cms/internal/index"
	"github.com/esposm03/my-cms/internal/shared/httpx"
)

type Handler struct {
	schema graphql.Schema
}

func NewHandler(ix *index.Index) (*Handler, error) {
	schema, err := NewSchema(ix)
	if err != nil {
		return nil, err
	}
	return &Handler{schema: schema}, nil
}

type request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Query serves GraphQL over HTTP: POST with a JSON body, or GET with the
// query in the URL.
func (h *Handler) Query(w http.ResponseWriter, r *http.Request) error {
	var req request
	if r.Method == http.MethodGet {
		req.Query = r.URL.Query().Get("query")
		req.OperationName = r.URL.Query().Get("operationName")
	} else {
		var err error
		req, err = httpx.Decode[request](r)
		if err != nil {
			return httpx.BadRequest("malformed json")
		}
	}
	if req.Query == "" {
		return httpx.BadRequest("missing query")
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        r.Context(),
	})
	httpx.WriteJSON(w, result, http.StatusOK)
	return nil
}

// Playground serves the interactive console pointed at /graphql.
func (h *Handler) Playground(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(playgroundHTML))
}
