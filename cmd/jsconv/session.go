package main

import (
	"fmt"
	"io"
	"reflect"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/wippyai/jsbridge/convert"
	"github.com/wippyai/jsbridge/engine"
	"github.com/wippyai/jsbridge/runtime"
)

// session evaluates sources and converts their completion values to the
// configured Go type.
type session struct {
	rt     *runtime.Runtime
	cfg    Config
	target reflect.Type
	log    *zap.Logger
}

type consoleHost struct {
	out io.Writer
}

func (h *consoleHost) Namespace() string {
	return "console"
}

func (h *consoleHost) Log(parts ...string) {
	fmt.Fprintln(h.out, strings.Join(parts, " "))
}

func (h *consoleHost) Error(parts ...string) {
	fmt.Fprintln(h.out, "error: "+strings.Join(parts, " "))
}

func newSession(cfg Config, log *zap.Logger, console io.Writer) (*session, error) {
	target, err := convert.ParseType(cfg.Type)
	if err != nil {
		return nil, err
	}

	rt := runtime.New(engine.WithConfig(cfg.Engine), engine.WithLogger(log))
	if err := rt.RegisterHost(&consoleHost{out: console}); err != nil {
		rt.Close()
		return nil, err
	}

	return &session{
		rt:     rt,
		cfg:    cfg,
		target: target,
		log:    log.Named("jsconv"),
	}, nil
}

func (s *session) Close() error {
	return s.rt.Close()
}

// SetType switches the conversion target.
func (s *session) SetType(expr string) error {
	t, err := convert.ParseType(expr)
	if err != nil {
		return err
	}
	s.cfg.Type = expr
	s.target = t
	return nil
}

// Evaluate runs src and returns the converted value in printable form.
func (s *session) Evaluate(src string) (any, error) {
	v, err := s.rt.Eval(src)
	if err != nil {
		return nil, err
	}

	ptr := reflect.New(s.target)
	if err := convert.Into(s.rt.Context(), v, s.cfg.Strict, s.cfg.Behavior, ptr.Interface()); err != nil {
		return nil, err
	}
	s.log.Debug("converted",
		zap.String("type", s.cfg.Type),
		zap.Bool("strict", s.cfg.Strict),
		zap.Stringer("behavior", s.cfg.Behavior),
	)
	return plain(ptr.Elem())
}

// Format renders v in the session's output mode.
func (s *session) Format(v any) (string, error) {
	return format(v, s.cfg.Output)
}

func format(v any, mode string) (string, error) {
	switch mode {
	case OutputJSON:
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", err
		}
		return string(b), nil
	case OutputDump:
		return strings.TrimRight(spew.Sdump(v), "\n"), nil
	default:
		return fmt.Sprintf("%v", v), nil
	}
}

type exporter interface {
	Export() (any, error)
}

// plain replaces engine handles in a converted value with exported Go data.
func plain(rv reflect.Value) (any, error) {
	if !rv.IsValid() {
		return nil, nil
	}

	switch x := rv.Interface().(type) {
	case time.Time:
		return x, nil
	case engine.String:
		return x.String(), nil
	case engine.Function:
		return "function " + x.Name(), nil
	case engine.Promise:
		result, err := x.Result().Export()
		if err != nil {
			return nil, err
		}
		return map[string]any{"state": x.State().String(), "result": result}, nil
	case exporter:
		return x.Export()
	}

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil, nil
		}
		return plain(rv.Elem())
	case reflect.Slice:
		out := make([]any, rv.Len())
		for i := range out {
			v, err := plain(rv.Index(i))
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	default:
		return rv.Interface(), nil
	}
}
