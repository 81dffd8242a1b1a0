package convert

import (
	"fmt"
	"math"
	"math/big"
	"unsafe"

	"golang.org/x/exp/constraints"

	"github.com/wippyai/jsbridge/engine"
	"github.com/wippyai/jsbridge/errors"
)

// Behavior selects how out-of-range numbers become integers.
type Behavior uint8

const (
	// Default truncates and wraps modulo 2^width.
	Default Behavior = iota
	// EnforceRange rejects non-finite, non-integral and out-of-range values.
	EnforceRange
	// Clamp saturates to the type's bounds and truncates.
	Clamp
)

func (b Behavior) String() string {
	switch b {
	case Default:
		return "default"
	case EnforceRange:
		return "enforce-range"
	case Clamp:
		return "clamp"
	default:
		return fmt.Sprintf("behavior(%d)", uint8(b))
	}
}

// ParseBehavior parses the String form of a Behavior. The empty string is Default.
func ParseBehavior(s string) (Behavior, error) {
	switch s {
	case "", "default", "wrap":
		return Default, nil
	case "enforce-range", "enforce":
		return EnforceRange, nil
	case "clamp":
		return Clamp, nil
	}
	return Default, errors.New(errors.PhaseConfig, errors.KindType).
		Value(s).
		Detail("unknown integer behavior %q", s).
		Build()
}

// MarshalText implements encoding.TextMarshaler.
func (b Behavior) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Behavior) UnmarshalText(text []byte) error {
	v, err := ParseBehavior(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// Clone returns b. Behavior carries no per-element state.
func (b Behavior) Clone() Behavior {
	return b
}

// Integer converts to any fixed-size Go integer type.
func Integer[T constraints.Integer](cx *engine.Context, v engine.Value, strict bool, b Behavior) (T, error) {
	if strict && !v.IsNumber() {
		return 0, typeError(intName[T](), v, MsgExpectedNumber)
	}
	d, err := cx.ToNumber(v)
	if err != nil {
		return 0, typeErrorCause(errors.PhaseConvert, intName[T](), v, MsgToNumberFailed, err)
	}
	out, msg := FromFloat[T](d, b)
	if msg != "" {
		return 0, typeError(intName[T](), v, msg)
	}
	return out, nil
}

var (
	Int8   Converter[int8, Behavior]   = Integer[int8]
	Int16  Converter[int16, Behavior]  = Integer[int16]
	Int32  Converter[int32, Behavior]  = Integer[int32]
	Int64  Converter[int64, Behavior]  = Integer[int64]
	Uint8  Converter[uint8, Behavior]  = Integer[uint8]
	Uint16 Converter[uint16, Behavior] = Integer[uint16]
	Uint32 Converter[uint32, Behavior] = Integer[uint32]
	Uint64 Converter[uint64, Behavior] = Integer[uint64]
)

// FromFloat applies b to d. A non-empty msg reports an EnforceRange failure.
func FromFloat[T constraints.Integer](d float64, b Behavior) (out T, msg string) {
	lim := limitsOf[T]()

	switch b {
	case EnforceRange:
		if math.IsNaN(d) || math.IsInf(d, 0) {
			return 0, MsgNonFiniteRange
		}
		t := math.Trunc(d)
		if t != d {
			return 0, MsgNonIntegralRange
		}
		if t < lim.lo || t >= lim.hi {
			return 0, MsgOutOfRangeInRange
		}
		return lim.fromInRange(t), ""

	case Clamp:
		switch {
		case math.IsNaN(d):
			return 0, ""
		case d >= lim.hi:
			return lim.max, ""
		case d <= lim.lo:
			return lim.min, ""
		}
		return lim.fromInRange(math.Trunc(d)), ""

	default:
		return wrap[T](d), ""
	}
}

// wrap truncates d and reduces it modulo 2^64; the final conversion to T
// keeps the low bits, which is the two's-complement reduction for any width.
func wrap[T constraints.Integer](d float64) T {
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return 0
	}
	t := math.Trunc(d)
	if math.Abs(t) < 1<<63 {
		return T(int64(t))
	}
	n, _ := new(big.Float).SetFloat64(t).Int(nil)
	n.Mod(n, twoTo64)
	return T(n.Uint64())
}

var twoTo64 = new(big.Int).Lsh(big.NewInt(1), 64)

type limits[T constraints.Integer] struct {
	min, max T
	// lo is the smallest representable value, hi one past the largest.
	lo, hi float64
	signed bool
}

func limitsOf[T constraints.Integer]() limits[T] {
	var zero T
	bits := int(unsafe.Sizeof(zero)) * 8
	minusOne := zero - 1

	if minusOne < 0 {
		maxV := T(uint64(1)<<(bits-1) - 1)
		return limits[T]{
			min:    -maxV - 1,
			max:    maxV,
			lo:     -math.Ldexp(1, bits-1),
			hi:     math.Ldexp(1, bits-1),
			signed: true,
		}
	}
	return limits[T]{
		max: ^zero,
		hi:  math.Ldexp(1, bits),
	}
}

// fromInRange converts an integral t inside [lo, hi).
func (l limits[T]) fromInRange(t float64) T {
	if l.signed {
		return T(int64(t))
	}
	return T(uint64(t))
}

func intName[T constraints.Integer]() string {
	var zero T
	return fmt.Sprintf("%T", zero)
}
