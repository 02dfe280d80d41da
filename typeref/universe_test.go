package typeref

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type quacker interface {
	Quack() string
}

type duck struct{}

func (duck) Quack() string { return "quack" }

func TestTypes_Builtins(t *testing.T) {
	u := NewTypes()

	for _, name := range []string{"Any", "Int", "Int64", "Float64", "String", "Bool", "Symbol"} {
		_, ok := u.LookupType(name)
		assert.True(t, ok, name)
	}
}

func TestTypes_IsSubtype(t *testing.T) {
	u := NewTypes()

	intType := reflect.TypeOf(0)
	stringType := reflect.TypeOf("")
	anyT, _ := u.LookupType("Any")
	duckType := reflect.TypeOf(duck{})
	quackerType := reflect.TypeOf((*quacker)(nil)).Elem()

	assert.True(t, u.IsSubtype(intType, intType))
	assert.True(t, u.IsSubtype(intType, anyT))
	assert.True(t, u.IsSubtype(duckType, quackerType))
	assert.False(t, u.IsSubtype(stringType, intType))
	assert.False(t, u.IsSubtype(intType, duckType))
	assert.False(t, u.IsSubtype(nil, intType))
	assert.False(t, u.IsSubtype(intType, nil))
}

func TestTypes_IsInstance(t *testing.T) {
	u := NewTypes()

	intType := reflect.TypeOf(0)
	quackerType := reflect.TypeOf((*quacker)(nil)).Elem()

	assert.True(t, u.IsInstance(3, intType))
	assert.True(t, u.IsInstance(duck{}, quackerType))
	assert.False(t, u.IsInstance("three", intType))
	assert.False(t, u.IsInstance(nil, intType))
	// An untyped nil is acceptable where an interface is required
	assert.True(t, u.IsInstance(nil, quackerType))
}

func TestRef_LazyResolution(t *testing.T) {
	u := NewTypes()
	ref := Named("Duck", u)

	// Not registered yet: unresolved, accepts nothing
	_, ok := ref.Resolve()
	assert.False(t, ok)
	assert.False(t, ref.Accepts(reflect.TypeOf(duck{})))

	// The same Ref starts resolving once the name appears
	u.RegisterTypeOf("Duck", duck{})
	rt, ok := ref.Resolve()
	require.True(t, ok)
	assert.Equal(t, reflect.TypeOf(duck{}), rt)
	assert.True(t, ref.Accepts(reflect.TypeOf(duck{})))
}

func TestRef_Unconstrained(t *testing.T) {
	var ref Ref

	assert.True(t, ref.IsAny())
	assert.True(t, ref.Accepts(reflect.TypeOf(0)))
	assert.True(t, ref.Accepts(nil))
	assert.True(t, ref.AcceptsValue(nil))

	_, ok := ref.Resolve()
	assert.False(t, ok)
}

func TestRef_UnresolvedNeverErrors(t *testing.T) {
	u := NewTypes()
	ref := Named("Ghost", u)

	assert.False(t, ref.Accepts(reflect.TypeOf(0)))
	assert.False(t, ref.AcceptsValue(0))
}

func TestFuncRef_Resolution(t *testing.T) {
	u := NewTypes()

	fn := func() {}
	id, err := u.RegisterFunc("f", fn)
	require.NoError(t, err)

	ref := Func("f", u)
	resolved, ok := ref.Resolve()
	require.True(t, ok)
	assert.Equal(t, id, resolved)

	ghost := Func("ghost", u)
	_, ok = ghost.Resolve()
	assert.False(t, ok)
}

func TestRegisterFunc_RejectsNonFunctions(t *testing.T) {
	u := NewTypes()

	_, err := u.RegisterFunc("x", 42)
	assert.Error(t, err)

	_, err = u.RegisterFunc("x", nil)
	assert.Error(t, err)
}

func TestIDOf_SameFunctionSameIdentity(t *testing.T) {
	fn := func() {}

	a, err := IDOf(fn)
	require.NoError(t, err)
	b, err := IDOf(fn)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	other, err := IDOf(func() {})
	require.NoError(t, err)
	assert.NotEqual(t, a, other)
}

func TestEnsureFunc_StableAndDistinct(t *testing.T) {
	u := NewTypes()

	a := u.EnsureFunc("f")
	assert.Equal(t, a, u.EnsureFunc("f"))
	assert.NotEqual(t, a, u.EnsureFunc("g"))

	// A previously registered real function wins
	fn := func() {}
	id, err := u.RegisterFunc("h", fn)
	require.NoError(t, err)
	assert.Equal(t, id, u.EnsureFunc("h"))
}

func TestTypes_ReRegistrationReplaces(t *testing.T) {
	u := NewTypes()
	ref := Named("T", u)

	u.RegisterTypeOf("T", 0)
	assert.True(t, ref.Accepts(reflect.TypeOf(0)))

	u.RegisterTypeOf("T", "")
	assert.False(t, ref.Accepts(reflect.TypeOf(0)))
	assert.True(t, ref.Accepts(reflect.TypeOf("")))
}
