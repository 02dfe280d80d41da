package hint

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/callhint/callhint/render"
	"github.com/callhint/callhint/sig"
	"github.com/callhint/callhint/typeref"
)

func TestParseCall_TypeNames(t *testing.T) {
	u := typeref.NewTypes()

	inv, err := ParseCall("f(Int, Float64)", u)
	require.NoError(t, err)

	assert.Equal(t, u.EnsureFunc("f"), inv.Func)
	require.Len(t, inv.Positional, 2)
	assert.Equal(t, reflect.TypeOf(0), inv.Positional[0])
	assert.Equal(t, reflect.TypeOf(0.0), inv.Positional[1])
	assert.Empty(t, inv.Keywords)
}

func TestParseCall_Literals(t *testing.T) {
	u := typeref.NewTypes()

	inv, err := ParseCall(`f(2, 2.5, "hi", :sym, true, nil)`, u)
	require.NoError(t, err)

	require.Len(t, inv.Positional, 6)
	assert.Equal(t, reflect.TypeOf(0), inv.Positional[0])
	assert.Equal(t, reflect.TypeOf(0.0), inv.Positional[1])
	assert.Equal(t, reflect.TypeOf(""), inv.Positional[2])
	assert.Equal(t, reflect.TypeOf(typeref.Symbol("")), inv.Positional[3])
	assert.Equal(t, reflect.TypeOf(true), inv.Positional[4])
	assert.Nil(t, inv.Positional[5])
}

func TestParseCall_Keywords(t *testing.T) {
	u := typeref.NewTypes()

	inv, err := ParseCall(`f(Int; x=Int, y="hello")`, u)
	require.NoError(t, err)

	require.Len(t, inv.Keywords, 2)
	assert.Equal(t, "x", inv.Keywords[0].Name)
	assert.Equal(t, reflect.TypeOf(0), inv.Keywords[0].Type)
	assert.Nil(t, inv.Keywords[0].Value)
	assert.Equal(t, "y", inv.Keywords[1].Name)
	assert.Equal(t, "hello", inv.Keywords[1].Value)
}

func TestParseCall_QualifiedName(t *testing.T) {
	u := typeref.NewTypes()

	inv, err := ParseCall("Base.push!(Int)", u)
	require.NoError(t, err)
	assert.Equal(t, u.EnsureFunc("Base.push!"), inv.Func)
}

func TestParseCall_UnknownTypeNameFailsClosed(t *testing.T) {
	u := typeref.NewTypes()

	inv, err := ParseCall("f(NoSuchType)", u)
	require.NoError(t, err)
	require.Len(t, inv.Positional, 1)
	assert.Nil(t, inv.Positional[0])

	// A nil positional type satisfies no constraint under a typed slot
	s, err := sig.Parse("f(x::Int)", u)
	require.NoError(t, err)
	assert.False(t, Matches(s, inv, TypeStrategy))
}

func TestParseCall_MatchesAgainstRegistry(t *testing.T) {
	u := typeref.NewTypes()
	r := New(WithUniverse(u))

	_, err := r.RegisterText("f(x::Int; z::String)", "hint", render.Options{})
	require.NoError(t, err)

	// Descriptor and pattern meet through the same synthetic identity
	u.EnsureFunc("f")
	inv, err := ParseCall(`f(Int; z="hello")`, u)
	require.NoError(t, err)

	entries := r.EntriesFor("f")
	require.Len(t, entries, 1)
	assert.True(t, Matches(entries[0].Signature, inv, TypeStrategy))
}

func TestParseCall_Malformed(t *testing.T) {
	u := typeref.NewTypes()

	for _, source := range []string{
		"f",
		"f(",
		"f(Int",
		"f(Int,)",
		"f(; x)",
		"f(; x=)",
		"f(Int) trailing",
		`f("unterminated`,
	} {
		_, err := ParseCall(source, u)
		assert.Error(t, err, source)
	}
}
