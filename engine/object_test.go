package engine

import (
	stderrors "errors"
	"math/big"
	"testing"
	"time"

	"github.com/grafana/sobek"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/jsbridge/errors"
)

func mustObject(t *testing.T, cx *Context, src string) Object {
	t.Helper()
	o, ok := mustEval(t, cx, src).AsObject()
	require.True(t, ok, "%q is not an object", src)
	return o
}

func TestAsObject(t *testing.T) {
	cx := newTestContext(t)

	_, ok := mustEval(t, cx, "1").AsObject()
	assert.False(t, ok)

	o := mustObject(t, cx, "({a: 1, b: 2})")
	assert.Equal(t, "Object", o.ClassName())
	assert.NotNil(t, o.Handle())

	keys, err := o.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)
}

func TestObjectGetterThrows(t *testing.T) {
	cx := newTestContext(t)
	o := mustObject(t, cx, "({ get bad() { throw new Error('getter') } })")

	_, err := o.Get("bad")
	require.Error(t, err)
	assert.True(t, errors.IsNone(err))
}

func TestAsArray(t *testing.T) {
	cx := newTestContext(t)

	a, ok := cx.AsArray(mustObject(t, cx, "[10, 20, 30]"))
	require.True(t, ok)
	n, err := a.Len()
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	v, err := a.Index(1)
	require.NoError(t, err)
	assert.Equal(t, float64(20), v.Number())

	_, ok = cx.AsArray(mustObject(t, cx, "new Proxy([], {})"))
	assert.True(t, ok, "proxied arrays are arrays")

	_, ok = cx.AsArray(mustObject(t, cx, "({length: 0})"))
	assert.False(t, ok)

	_, ok = cx.AsArray(mustObject(t, cx, "new Set([1])"))
	assert.False(t, ok)
}

func TestIsArrayIgnoresTampering(t *testing.T) {
	cx := newTestContext(t)
	mustEval(t, cx, "Array.isArray = function () { return true }")
	assert.False(t, cx.IsArray(mustObject(t, cx, "({})")))
}

func TestAsDate(t *testing.T) {
	cx := newTestContext(t)

	d, ok := cx.AsDate(mustObject(t, cx, "new Date(0)"))
	require.True(t, ok)
	tm, valid := d.Time()
	require.True(t, valid)
	assert.True(t, tm.Equal(time.Unix(0, 0)))

	d, ok = cx.AsDate(mustObject(t, cx, "new Date(NaN)"))
	require.True(t, ok)
	_, valid = d.Time()
	assert.False(t, valid)

	_, ok = cx.AsDate(mustObject(t, cx, "({})"))
	assert.False(t, ok)
}

func TestAsPromise(t *testing.T) {
	cx := newTestContext(t)

	p, ok := cx.AsPromise(mustObject(t, cx, "Promise.resolve(5)"))
	require.True(t, ok)
	assert.Equal(t, PromiseFulfilled, p.State())
	assert.Equal(t, float64(5), p.Result().Number())

	p, ok = cx.AsPromise(mustObject(t, cx, "new Promise(() => {})"))
	require.True(t, ok)
	assert.Equal(t, PromisePending, p.State())
	assert.True(t, p.Result().IsUndefined())

	p, ok = cx.AsPromise(mustObject(t, cx, "(() => { const p = Promise.reject('no'); p.catch(() => {}); return p })()"))
	require.True(t, ok)
	assert.Equal(t, PromiseRejected, p.State())
	assert.Equal(t, "no", p.Result().String())

	_, ok = cx.AsPromise(mustObject(t, cx, "({ get boom() { throw new Error('getter ran') } })"))
	assert.False(t, ok)

	_, ok = cx.AsPromise(mustObject(t, cx, "({ then() {} })"))
	assert.False(t, ok, "thenables are not promises")
}

func TestPromiseStateString(t *testing.T) {
	assert.Equal(t, "pending", PromisePending.String())
	assert.Equal(t, "fulfilled", PromiseFulfilled.String())
	assert.Equal(t, "rejected", PromiseRejected.String())
	assert.Equal(t, "unknown", PromiseState(9).String())
}

func TestAsFunction(t *testing.T) {
	cx := newTestContext(t)

	f, ok := cx.AsFunction(mustObject(t, cx, "(function add(a, b) { return a + b })"))
	require.True(t, ok)
	assert.Equal(t, "add", f.Name())

	ret, err := f.Call(cx.Undefined(), mustEval(t, cx, "1"), mustEval(t, cx, "2"))
	require.NoError(t, err)
	assert.Equal(t, float64(3), ret.Number())

	_, ok = cx.AsFunction(mustObject(t, cx, "({})"))
	assert.False(t, ok)
}

func TestFunctionCallThrows(t *testing.T) {
	cx := newTestContext(t)

	f, ok := cx.AsFunction(mustObject(t, cx, "(() => { throw new RangeError('bad') })"))
	require.True(t, ok)

	_, err := f.Call(cx.Undefined())
	require.Error(t, err)
	assert.True(t, errors.IsNone(err))
	assert.Empty(t, errors.Message(err))

	var ex *sobek.Exception
	require.True(t, stderrors.As(err, &ex))
	assert.Contains(t, ex.Value().String(), "RangeError")
}

func TestUnbox(t *testing.T) {
	cx := newTestContext(t)

	tests := []struct {
		src  string
		want any
	}{
		{"new Number(3)", int64(3)},
		{"new Number(1.5)", 1.5},
		{"new String('s')", "s"},
		{"new Boolean(false)", false},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			v, ok := cx.Unbox(mustObject(t, cx, tt.src))
			require.True(t, ok)
			assert.False(t, v.IsObject())
			got, err := v.Export()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := cx.Unbox(mustObject(t, cx, "({})"))
	assert.False(t, ok)
	_, ok = cx.Unbox(mustObject(t, cx, "new Date(0)"))
	assert.False(t, ok)
	_, ok = cx.Unbox(mustObject(t, cx, "({ get boom() { throw new Error('getter ran') } })"))
	assert.False(t, ok)
}

func TestUnboxBigInt(t *testing.T) {
	cx := newTestContext(t)

	v, ok := cx.Unbox(mustObject(t, cx, "Object(10n)"))
	require.True(t, ok)
	assert.Equal(t, TagBigInt, v.Tag())
	got, err := v.Export()
	require.NoError(t, err)
	assert.Equal(t, 0, got.(*big.Int).Cmp(big.NewInt(10)))
}

func TestUnboxIgnoresOverriddenValueOf(t *testing.T) {
	cx := newTestContext(t)

	v, ok := cx.Unbox(mustObject(t, cx, "const s = new String('kept'); s.valueOf = () => 'swapped'; s"))
	require.True(t, ok)
	assert.Equal(t, "kept", v.String())

	v, ok = cx.Unbox(mustObject(t, cx, "Number.prototype.valueOf = () => 0; new Number(8)"))
	require.True(t, ok)
	assert.Equal(t, float64(8), v.Number())
}
