package engine

import (
	"github.com/grafana/sobek"
	"go.uber.org/zap"

	"github.com/wippyai/jsbridge/errors"
)

// MsgForeignRealm is reported when an object is used outside the realm
// that allocated it.
const MsgForeignRealm = "Value Belongs to a Different Realm"

// AssertSameRealm checks that v may be used in cx. Primitives always pass.
// An object passes only if it was allocated by cx's runtime.
func (cx *Context) AssertSameRealm(v Value) error {
	obj, ok := v.raw.(*sobek.Object)
	if !ok {
		return nil
	}
	err := cx.Guard(func() {
		cx.vm.ToValue(obj)
	})
	if err == nil {
		return nil
	}

	fields := []zap.Field{zap.Error(err)}
	if v.cx != nil && v.cx != cx {
		fields = append(fields, zap.String("owner", v.cx.id.String()))
	}
	cx.log.Debug("realm violation", fields...)
	return errors.TypeCause(errors.PhaseRealm, MsgForeignRealm, err)
}
