package hint

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/callhint/callhint/render"
	"github.com/callhint/callhint/typeref"
)

func newTestRegistry(t *testing.T) (*Registry, *testWorld) {
	t.Helper()
	w := newWorld(t)
	r := New(WithUniverse(w.u))
	return r, w
}

func TestRegistry_RegisterAndNotify(t *testing.T) {
	r, w := newTestRegistry(t)

	_, err := r.RegisterText("f(x::Int)", "pass an Int, not whatever that was", render.Options{})
	require.NoError(t, err)

	var out bytes.Buffer
	fired := r.Notify(w.call(3), &out)

	assert.Equal(t, 1, fired)
	assert.Equal(t, "pass an Int, not whatever that was\n", out.String())
}

func TestRegistry_NoMatchWritesNothing(t *testing.T) {
	r, w := newTestRegistry(t)

	_, err := r.RegisterText("f(x::Int)", "hint", render.Options{})
	require.NoError(t, err)

	var out bytes.Buffer
	fired := r.Notify(w.call("not an int"), &out)

	assert.Equal(t, 0, fired)
	assert.Empty(t, out.String())
}

func TestRegistry_AllMatchesFireInRegistrationOrder(t *testing.T) {
	r, w := newTestRegistry(t)

	_, err := r.RegisterText("f(x)", "first", render.Options{})
	require.NoError(t, err)
	_, err = r.RegisterText("f(x::Int)", "second", render.Options{})
	require.NoError(t, err)
	_, err = r.RegisterText("f(args...)", "third", render.Options{})
	require.NoError(t, err)

	var out bytes.Buffer
	fired := r.Notify(w.call(1), &out)

	assert.Equal(t, 3, fired)
	assert.Equal(t, "first\nsecond\nthird\n", out.String())
}

func TestRegistry_DuplicateRegistrationFiresTwice(t *testing.T) {
	r, w := newTestRegistry(t)

	a, err := r.RegisterText("f(x)", "hint", render.Options{})
	require.NoError(t, err)
	b, err := r.RegisterText("f(x)", "hint", render.Options{})
	require.NoError(t, err)

	// Duplicates are documented behavior, not deduplicated
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 2, r.Len())

	var out bytes.Buffer
	fired := r.Notify(w.call(1), &out)
	assert.Equal(t, 2, fired)
	assert.Equal(t, "hint\nhint\n", out.String())
}

func TestRegistry_MalformedPatternHasNoEffect(t *testing.T) {
	r, _ := newTestRegistry(t)

	_, err := r.Register("f(x::T) where T", render.Text("never"), render.Options{})
	require.Error(t, err)
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_UnknownFunctionRegistersButNeverFires(t *testing.T) {
	r, w := newTestRegistry(t)

	// Registering against a name that does not exist must not fail
	_, err := r.RegisterText("ghost(x)", "boo", render.Options{})
	require.NoError(t, err)

	var out bytes.Buffer
	assert.Equal(t, 0, r.Notify(w.call(1), &out))
	assert.Empty(t, out.String())
}

func TestRegistry_OptionsForwardedToRenderer(t *testing.T) {
	r, w := newTestRegistry(t)

	var got render.Options
	renderer := render.Func(func(_ io.Writer, opts render.Options) {
		got = opts
	})

	opts := render.Options{
		Color: "cyan",
		Bold:  true,
		Extra: map[string]interface{}{"blink": true, "pad": 3},
	}
	_, err := r.Register("f(x)", renderer, opts)
	require.NoError(t, err)

	var out bytes.Buffer
	r.Notify(w.call(1), &out)

	assert.Equal(t, "cyan", got.Color)
	assert.True(t, got.Bold)
	// Unrecognized options pass through verbatim, unvalidated
	assert.Equal(t, true, got.Extra["blink"])
	assert.Equal(t, 3, got.Extra["pad"])
}

func TestRegistry_EntriesFor(t *testing.T) {
	r, w := newTestRegistry(t)
	_, err := w.u.RegisterFunc("g", func(int) {})
	require.NoError(t, err)

	_, err = r.RegisterText("f(x)", "for f", render.Options{})
	require.NoError(t, err)
	_, err = r.RegisterText("g(x)", "for g", render.Options{})
	require.NoError(t, err)

	assert.Len(t, r.EntriesFor("f"), 1)
	assert.Len(t, r.EntriesFor("g"), 1)
	assert.Empty(t, r.EntriesFor("h"))
	assert.Len(t, r.Entries(), 2)
}

func TestRegistry_ConcurrentRegisterAndNotify(t *testing.T) {
	r, w := newTestRegistry(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_, err := r.RegisterText("f(x)", fmt.Sprintf("hint %d", i), render.Options{})
			assert.NoError(t, err)
		}(i)
		go func() {
			defer wg.Done()
			var out bytes.Buffer
			r.Notify(w.call(1), &out)
		}()
	}
	wg.Wait()

	assert.Equal(t, 8, r.Len())
}

func TestRegistry_Reset(t *testing.T) {
	r, _ := newTestRegistry(t)

	_, err := r.RegisterText("f(x)", "hint", render.Options{})
	require.NoError(t, err)
	require.Equal(t, 1, r.Len())

	r.Reset()
	assert.Equal(t, 0, r.Len())
}

func TestDefaultRegistry(t *testing.T) {
	t.Cleanup(Default().Reset)

	fn := func() {}
	id, err := typeref.RegisterFunc("defaultRegistryTestFn", fn)
	require.NoError(t, err)

	_, err = Register("defaultRegistryTestFn(x::Int)", render.Text("use an Int"), render.Options{})
	require.NoError(t, err)

	var out bytes.Buffer
	fired := Notify(Invocation{Func: id, Positional: TypesOf(3)}, &out)

	assert.Equal(t, 1, fired)
	assert.Equal(t, "use an Int\n", out.String())
}
