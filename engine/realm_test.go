package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wippyai/jsbridge/errors"
)

func TestAssertSameRealm(t *testing.T) {
	a := newTestContext(t)
	b := newTestContext(t)

	obj := mustEval(t, a, "({})")
	assert.NoError(t, a.AssertSameRealm(obj))

	err := b.AssertSameRealm(obj)
	require.Error(t, err)
	assert.True(t, errors.IsType(err))
	assert.Equal(t, MsgForeignRealm, errors.Message(err))
}

func TestAssertSameRealmPrimitives(t *testing.T) {
	a := newTestContext(t)
	b := newTestContext(t)

	for _, src := range []string{"1", "'s'", "true", "null", "undefined", "Symbol('x')"} {
		t.Run(src, func(t *testing.T) {
			assert.NoError(t, b.AssertSameRealm(mustEval(t, a, src)))
		})
	}
	assert.NoError(t, b.AssertSameRealm(Value{}))
}

func TestAssertSameRealmFunctionsAndNullProto(t *testing.T) {
	a := newTestContext(t)
	b := newTestContext(t)

	fn := mustEval(t, a, "(function () {})")
	bare := mustEval(t, a, "Object.create(null)")

	assert.NoError(t, a.AssertSameRealm(fn))
	assert.NoError(t, a.AssertSameRealm(bare))
	assert.Error(t, b.AssertSameRealm(fn))
	assert.Error(t, b.AssertSameRealm(bare))
}

func TestAssertSameRealmLogsViolation(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	a := newTestContext(t)
	b := New(WithLogger(zap.New(core)))
	defer b.Close()

	require.Error(t, b.AssertSameRealm(mustEval(t, a, "[]")))

	entries := logs.FilterMessage("realm violation").All()
	require.Len(t, entries, 1)
	assert.Equal(t, a.ID().String(), entries[0].ContextMap()["owner"])
}
