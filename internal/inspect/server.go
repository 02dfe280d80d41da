// Package inspect exposes a read-only HTTP introspection API over a hint
// registry, for poking at what is registered in a running process.
package inspect

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/callhint/callhint/hint"
)

// EntryView is the JSON projection of one registered hint entry
type EntryView struct {
	ID               string   `json:"id"`
	Pattern          string   `json:"pattern"`
	Function         string   `json:"function"`
	PositionalArity  int      `json:"positional_arity"`
	Variadic         bool     `json:"variadic"`
	Keywords         []string `json:"keywords,omitempty"`
	VariadicKeywords bool     `json:"variadic_keywords"`
}

// Handler builds the introspection router for a registry
func Handler(registry *hint.Registry, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(requestLogger(logger))

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/hints", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, views(registry.Entries()))
	})

	r.Get("/hints/{function}", func(w http.ResponseWriter, req *http.Request) {
		function := chi.URLParam(req, "function")
		entries := registry.EntriesFor(function)
		if len(entries) == 0 {
			writeJSON(w, http.StatusNotFound, map[string]string{
				"error": "no hints registered for function: " + function,
			})
			return
		}
		writeJSON(w, http.StatusOK, views(entries))
	})

	return r
}

// views projects registry entries into their JSON form
func views(entries []*hint.Entry) []EntryView {
	result := make([]EntryView, len(entries))
	for i, entry := range entries {
		s := entry.Signature

		var keywords []string
		for _, kw := range s.Keywords() {
			name := kw.Name
			if kw.Required {
				name += "!"
			}
			keywords = append(keywords, name)
		}

		result[i] = EntryView{
			ID:               entry.ID.String(),
			Pattern:          s.Pattern(),
			Function:         s.FuncName(),
			PositionalArity:  len(s.Positionals()),
			Variadic:         s.Variadic() != nil,
			Keywords:         keywords,
			VariadicKeywords: s.VariadicKeywords(),
		}
	}
	return result
}

// writeJSON writes a JSON response with the given status
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// requestLogger logs each request with its duration
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, req)
			logger.Debug("request",
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.Duration("duration", time.Since(start)))
		})
	}
}
