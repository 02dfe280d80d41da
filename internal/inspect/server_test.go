package inspect

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/callhint/callhint/hint"
	"github.com/callhint/callhint/render"
	"github.com/callhint/callhint/typeref"
)

func testRegistry(t *testing.T) *hint.Registry {
	t.Helper()

	u := typeref.NewTypes()
	_, err := u.RegisterFunc("f", func() {})
	require.NoError(t, err)

	r := hint.New(hint.WithUniverse(u))
	_, err = r.RegisterText("f(x::Int, rest...; z::String, opts...)", "hint one", render.Options{})
	require.NoError(t, err)
	_, err = r.RegisterText("g(x)", "hint two", render.Options{})
	require.NoError(t, err)

	return r
}

func get(t *testing.T, handler http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Healthz(t *testing.T) {
	handler := Handler(testRegistry(t), nil)

	rec := get(t, handler, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestHandler_ListHints(t *testing.T) {
	handler := Handler(testRegistry(t), nil)

	rec := get(t, handler, "/hints")
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []EntryView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 2)

	first := entries[0]
	assert.Equal(t, "f", first.Function)
	assert.Equal(t, "f(x::Int, rest...; z::String, opts...)", first.Pattern)
	assert.Equal(t, 1, first.PositionalArity)
	assert.True(t, first.Variadic)
	assert.Equal(t, []string{"z!"}, first.Keywords)
	assert.True(t, first.VariadicKeywords)
	assert.NotEmpty(t, first.ID)

	second := entries[1]
	assert.Equal(t, "g", second.Function)
	assert.False(t, second.Variadic)
	assert.Empty(t, second.Keywords)
}

func TestHandler_FilterByFunction(t *testing.T) {
	handler := Handler(testRegistry(t), nil)

	rec := get(t, handler, "/hints/g")
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []EntryView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "g", entries[0].Function)
}

func TestHandler_UnknownFunction(t *testing.T) {
	handler := Handler(testRegistry(t), nil)

	rec := get(t, handler, "/hints/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "nope")
}
