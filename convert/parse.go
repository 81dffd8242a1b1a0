package convert

import (
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/wippyai/jsbridge/engine"
	"github.com/wippyai/jsbridge/errors"
)

var typeNames = map[string]reflect.Type{
	"bool":     reflect.TypeOf(false),
	"i8":       reflect.TypeOf(int8(0)),
	"i16":      reflect.TypeOf(int16(0)),
	"i32":      reflect.TypeOf(int32(0)),
	"i64":      reflect.TypeOf(int64(0)),
	"u8":       reflect.TypeOf(uint8(0)),
	"u16":      reflect.TypeOf(uint16(0)),
	"u32":      reflect.TypeOf(uint32(0)),
	"u64":      reflect.TypeOf(uint64(0)),
	"f32":      reflect.TypeOf(float32(0)),
	"f64":      reflect.TypeOf(float64(0)),
	"string":   reflect.TypeOf(""),
	"jsstring": reflect.TypeOf(engine.String{}),
	"object":   reflect.TypeOf(engine.Object{}),
	"array":    reflect.TypeOf(engine.Array{}),
	"date":     reflect.TypeOf(engine.Date{}),
	"time":     reflect.TypeOf(time.Time{}),
	"promise":  reflect.TypeOf(engine.Promise{}),
	"function": reflect.TypeOf(engine.Function{}),
	"value":    reflect.TypeOf(engine.Value{}),
	"any":      reflect.TypeOf((*any)(nil)).Elem(),
}

// ParseType resolves a type expression such as "vec<opt<u8>>" to the Go
// type that For and Into convert to. opt<T> maps to *T and vec<T> to []T.
func ParseType(expr string) (reflect.Type, error) {
	p := typeParser{src: expr}
	t, err := p.parse()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, p.errorf("unexpected %q", p.src[p.pos:])
	}
	return t, nil
}

// TypeNames lists the names ParseType accepts besides opt<> and vec<>, sorted.
func TypeNames() []string {
	names := make([]string, 0, len(typeNames))
	for name := range typeNames {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

type typeParser struct {
	src string
	pos int
}

func (p *typeParser) parse() (reflect.Type, error) {
	p.skipSpace()
	name := p.ident()
	if name == "" {
		return nil, p.errorf("expected type name")
	}

	switch name {
	case "opt", "vec":
		p.skipSpace()
		if !p.consume('<') {
			return nil, p.errorf("expected '<' after %s", name)
		}
		elem, err := p.parse()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if !p.consume('>') {
			return nil, p.errorf("expected '>' to close %s", name)
		}
		if name == "opt" {
			return reflect.PointerTo(elem), nil
		}
		return reflect.SliceOf(elem), nil
	}

	t, ok := typeNames[strings.ToLower(name)]
	if !ok {
		return nil, p.errorf("unknown type %q", name)
	}
	return t, nil
}

func (p *typeParser) ident() string {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_') {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *typeParser) consume(c byte) bool {
	if p.pos < len(p.src) && p.src[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *typeParser) errorf(format string, args ...any) error {
	return errors.New(errors.PhaseBind, errors.KindType).
		Value(p.src).
		Detail("type expression %q at %d: "+format, append([]any{p.src, p.pos}, args...)...).
		Build()
}
