package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

type HandlerFunc func(http.ResponseWriter, *http.Request) error

// Error is an error with a client-facing status and reason. Handlers
// return it for 4xx outcomes; anything else becomes a bare 500.
type Error struct {
	Status int
	Reason string
}

func (e *Error) Error() string {
	if e.Reason == "" {
		return http.StatusText(e.Status)
	}
	return e.Reason
}

func BadRequest(reason string) error { return &Error{Status: http.StatusBadRequest, Reason: reason} }
func NotFound() error                { return &Error{Status: http.StatusNotFound} }

// Wrap turns a HandlerFunc into an http.Handler, mapping returned errors
// to responses. 4xx responses carry the short reason as plain text; 404
// and 5xx carry no body, and 5xx details go to the log only.
func Wrap(fn HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}
		var he *Error
		if errors.As(err, &he) {
			if he.Status < http.StatusInternalServerError && he.Reason != "" {
				http.Error(w, he.Reason, he.Status)
			} else {
				w.WriteHeader(he.Status)
			}
			return
		}
		logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	})
}

func Decode[T any](r *http.Request) (T, error) {
	var t T
	err := json.NewDecoder(r.Body).Decode(&t)
	return t, err
}

func WriteJSON(w http.ResponseWriter, v any, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteText(w http.ResponseWriter, s string, code int) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	_, _ = fmt.Fprint(w, s)
}
