package convert

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/jsbridge/engine"
	"github.com/wippyai/jsbridge/errors"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		expr string
		want reflect.Type
	}{
		{"bool", reflect.TypeOf(false)},
		{"u8", reflect.TypeOf(uint8(0))},
		{"I64", reflect.TypeOf(int64(0))},
		{"f32", reflect.TypeOf(float32(0))},
		{"string", reflect.TypeOf("")},
		{"jsstring", reflect.TypeOf(engine.String{})},
		{"function", reflect.TypeOf(engine.Function{})},
		{"opt<string>", reflect.TypeOf((*string)(nil))},
		{"vec<u32>", reflect.TypeOf([]uint32(nil))},
		{" vec < opt < u8 > > ", reflect.TypeOf([]*uint8(nil))},
		{"opt<vec<date>>", reflect.TypeOf((*[]engine.Date)(nil))},
		{"vec<any>", reflect.TypeOf([]any(nil))},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := ParseType(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTypeErrors(t *testing.T) {
	for _, expr := range []string{"", "u128", "vec", "vec<", "vec<u8", "opt<u8>>", "u8 u8", "vec<>", "<u8>"} {
		t.Run(expr, func(t *testing.T) {
			_, err := ParseType(expr)
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.Type(errors.PhaseBind, ""))
		})
	}
}

func TestParseTypeRoundTrip(t *testing.T) {
	cx := newContext(t)

	typ, err := ParseType("vec<opt<u8>>")
	require.NoError(t, err)
	conv, err := For(typ)
	require.NoError(t, err)

	out, err := FromValue(cx, eval(t, cx, "[1, undefined, 1000]"), false, Clamp, conv)
	require.NoError(t, err)

	got := out.Interface().([]*uint8)
	require.Len(t, got, 3)
	assert.Equal(t, uint8(1), *got[0])
	assert.Nil(t, got[1])
	assert.Equal(t, uint8(255), *got[2])
}

func TestTypeNames(t *testing.T) {
	names := TypeNames()
	assert.Contains(t, names, "u8")
	assert.Contains(t, names, "jsstring")
	assert.NotContains(t, names, "vec")
}
