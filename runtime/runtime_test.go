package runtime

import (
	stderrors "errors"
	"strings"
	"sync"
	"testing"

	"github.com/grafana/sobek"

	"github.com/wippyai/jsbridge/convert"
	"github.com/wippyai/jsbridge/engine"
	"github.com/wippyai/jsbridge/errors"
	"github.com/wippyai/jsbridge/function"
)

// CalculatorHost exposes arithmetic to script
type CalculatorHost struct {
	logs []string
	mu   sync.Mutex
}

func (h *CalculatorHost) Namespace() string {
	return "calc"
}

func (h *CalculatorHost) Add(a, b int32) int32 {
	return a + b
}

func (h *CalculatorHost) Log(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.logs = append(h.logs, msg)
}

func (h *CalculatorHost) ParseHTTPStatus(code uint16) (string, error) {
	if code < 100 || code > 599 {
		return "", stderrors.New("status out of range")
	}
	return map[bool]string{true: "ok", false: "error"}[code < 400], nil
}

func newRuntime(t *testing.T) *Runtime {
	t.Helper()
	rt := New()
	t.Cleanup(func() {
		if err := rt.Close(); err != nil {
			t.Errorf("close: %v", err)
		}
	})
	return rt
}

func evalString(t *testing.T, rt *Runtime, src string) string {
	t.Helper()
	v, err := rt.Eval(src)
	if err != nil {
		t.Fatalf("eval %q: %v", src, err)
	}
	return v.String()
}

func TestRegisterHost(t *testing.T) {
	rt := newRuntime(t)

	host := &CalculatorHost{}
	if err := rt.RegisterHost(host); err != nil {
		t.Fatalf("register host: %v", err)
	}

	if got := evalString(t, rt, "calc.add(2, 3)"); got != "5" {
		t.Errorf("calc.add(2, 3) = %s, want 5", got)
	}

	evalString(t, rt, "calc.log('first'); calc.log(42)")
	if len(host.logs) != 2 || host.logs[0] != "first" || host.logs[1] != "42" {
		t.Errorf("logs = %v, want [first 42]", host.logs)
	}

	if got := evalString(t, rt, "calc.parseHTTPStatus(204)"); got != "ok" {
		t.Errorf("parseHTTPStatus(204) = %s, want ok", got)
	}

	got := evalString(t, rt, "(() => { try { calc.parseHTTPStatus(42) } catch (e) { return e.message } })()")
	if !strings.Contains(got, "status out of range") {
		t.Errorf("thrown message = %q", got)
	}

	if names := rt.Hosts().Functions("calc"); strings.Join(names, ",") != "add,log,parseHTTPStatus" {
		t.Errorf("functions = %v", names)
	}
}

type explicitHost struct{}

func (explicitHost) Namespace() string { return "env" }

func (explicitHost) Register() map[string]any {
	return map[string]any{
		"get_var": func(name string) string { return "value-of-" + name },
	}
}

func TestRegisterHostExplicit(t *testing.T) {
	rt := newRuntime(t)

	if err := rt.RegisterHost(explicitHost{}); err != nil {
		t.Fatalf("register host: %v", err)
	}

	if got := evalString(t, rt, "env.get_var('HOME')"); got != "value-of-HOME" {
		t.Errorf("env.get_var = %s", got)
	}
	if got := evalString(t, rt, "typeof env.register"); got != "undefined" {
		t.Errorf("Register leaked into script as %s", got)
	}
}

func TestRegisterFunc(t *testing.T) {
	rt := newRuntime(t)

	err := rt.RegisterFunc("app.text", "shout", func(s string) string {
		return strings.ToUpper(s) + "!"
	})
	if err != nil {
		t.Fatalf("register func: %v", err)
	}
	if err := rt.RegisterFunc("app", "version", func() string { return "1.0" }); err != nil {
		t.Fatalf("register func: %v", err)
	}

	if got := evalString(t, rt, "app.text.shout('hi')"); got != "HI!" {
		t.Errorf("shout = %s, want HI!", got)
	}
	if got := evalString(t, rt, "app.version()"); got != "1.0" {
		t.Errorf("version = %s, want 1.0", got)
	}
	if got := evalString(t, rt, "app.text.shout.name"); got != "shout" {
		t.Errorf("name = %s, want shout", got)
	}

	if ns := rt.Hosts().Namespaces(); strings.Join(ns, ",") != "app,app.text" {
		t.Errorf("namespaces = %v", ns)
	}
}

func TestRegisterFuncOptions(t *testing.T) {
	rt := newRuntime(t)

	err := rt.RegisterFunc("bytes", "clamp", func(b uint8) uint8 { return b }, function.WithBehavior(convert.Clamp))
	if err != nil {
		t.Fatalf("register func: %v", err)
	}
	err = rt.RegisterFunc("bytes", "exact", func(b uint8) uint8 { return b }, function.Strict())
	if err != nil {
		t.Fatalf("register func: %v", err)
	}

	if got := evalString(t, rt, "bytes.clamp(300)"); got != "255" {
		t.Errorf("clamp(300) = %s, want 255", got)
	}

	got := evalString(t, rt, "(() => { try { bytes.exact('7') } catch (e) { return e.name } })()")
	if got != "TypeError" {
		t.Errorf("strict call threw %s, want TypeError", got)
	}
}

func TestRegisterErrors(t *testing.T) {
	rt := newRuntime(t)

	tests := []struct {
		name string
		err  error
	}{
		{"empty namespace", rt.RegisterFunc("", "f", func() {})},
		{"empty segment", rt.RegisterFunc("a..b", "f", func() {})},
		{"empty name", rt.RegisterFunc("ns", "", func() {})},
		{"not a function", rt.RegisterFunc("ns", "f", 7)},
		{"unsupported signature", rt.RegisterFunc("ns", "f", func(map[string]int) {})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err == nil {
				t.Fatal("expected error")
			}
			if !errors.IsType(tt.err) {
				t.Errorf("expected type error, got %v", tt.err)
			}
		})
	}

	if ns := rt.Hosts().Namespaces(); len(ns) != 0 {
		t.Errorf("failed registrations kept: %v", ns)
	}
}

type brokenAppHost struct{}

func (brokenAppHost) Namespace() string { return "app" }

func (brokenAppHost) Lookup(map[string]int) {}

func TestFailedRegistrationKeepsNamespace(t *testing.T) {
	rt := newRuntime(t)

	if err := rt.RegisterFunc("app", "keep", func() string { return "kept" }); err != nil {
		t.Fatalf("register func: %v", err)
	}

	if err := rt.RegisterHost(brokenAppHost{}); err == nil {
		t.Fatal("expected error for unsupported method")
	}
	if got := rt.Hosts().Functions("app"); strings.Join(got, ",") != "keep" {
		t.Errorf("functions after failed host = %v, want [keep]", got)
	}

	if err := rt.RegisterFunc("app", "keep", func(map[string]int) {}); err == nil {
		t.Fatal("expected error for unsupported replacement")
	}
	if got := rt.Hosts().Functions("app"); strings.Join(got, ",") != "keep" {
		t.Errorf("functions after failed replacement = %v, want [keep]", got)
	}
	if got := evalString(t, rt, "app.keep()"); got != "kept" {
		t.Errorf("app.keep() = %s, want kept", got)
	}
}

func TestRegisterIntoNonObject(t *testing.T) {
	rt := newRuntime(t)
	evalString(t, rt, "var taken = 5")

	err := rt.RegisterFunc("taken", "f", func() {})
	if err == nil {
		t.Fatal("expected error for non-object namespace")
	}
	if len(rt.Hosts().Namespaces()) != 0 {
		t.Error("failed namespace kept")
	}
}

func TestCall(t *testing.T) {
	rt := newRuntime(t)
	evalString(t, rt, `
		function greet(name, times) { return ('hi ' + name + ' ').repeat(times).trim() }
		var handlers = { nested: { double: x => x * 2 } }
	`)

	v, err := rt.Call("greet", "bob", 2)
	if err != nil {
		t.Fatalf("call greet: %v", err)
	}
	if v.String() != "hi bob hi bob" {
		t.Errorf("greet = %q", v.String())
	}

	arg, err := rt.Eval("21")
	if err != nil {
		t.Fatal(err)
	}
	v, err = rt.Call("handlers.nested.double", arg)
	if err != nil {
		t.Fatalf("call double: %v", err)
	}
	if v.Number() != 42 {
		t.Errorf("double(21) = %v, want 42", v.Number())
	}
}

func TestCallErrors(t *testing.T) {
	rt := newRuntime(t)
	evalString(t, rt, `
		var notFn = 1
		function boom() { throw new RangeError('kaboom') }
	`)

	for _, name := range []string{"missing", "notFn", "missing.deeper.fn", "notFn.inner"} {
		_, err := rt.Call(name)
		if err == nil {
			t.Errorf("Call(%q): expected error", name)
			continue
		}
		if !errors.IsType(err) {
			t.Errorf("Call(%q): expected type error, got %v", name, err)
		}
	}

	_, err := rt.Call("boom")
	if !errors.IsNone(err) {
		t.Fatalf("expected none error, got %v", err)
	}
	var ex *sobek.Exception
	if !stderrors.As(err, &ex) {
		t.Fatalf("cause is not an exception: %v", err)
	}
	if !strings.Contains(ex.Error(), "kaboom") {
		t.Errorf("exception = %v", ex)
	}
}

func TestEvalInto(t *testing.T) {
	rt := newRuntime(t)

	var out []uint8
	if err := rt.EvalInto("[1, 256, -1]", false, convert.Default, &out); err != nil {
		t.Fatalf("eval into: %v", err)
	}
	if len(out) != 3 || out[0] != 1 || out[1] != 0 || out[2] != 255 {
		t.Errorf("out = %v, want [1 0 255]", out)
	}

	var strict bool
	if err := rt.EvalInto("1", true, convert.Default, &strict); !errors.IsType(err) {
		t.Errorf("strict bool from number: %v", err)
	}
	if err := rt.EvalInto("throw 1", false, convert.Default, &strict); !errors.IsNone(err) {
		t.Errorf("throwing source: %v", err)
	}
}

func TestRuntimeContext(t *testing.T) {
	rt := New(engine.WithMaxCallStackSize(64))
	defer rt.Close()

	if rt.Context() == nil {
		t.Fatal("nil context")
	}
	_, err := rt.Eval("function f() { return f() } f()")
	if err == nil {
		t.Fatal("expected stack overflow")
	}
}

func TestToCamelCase(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Add", "add"},
		{"GetValue", "getValue"},
		{"HTTPGet", "httpGet"},
		{"ParseHTTPStatus", "parseHTTPStatus"},
		{"URL", "url"},
		{"ID", "id"},
		{"already", "already"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := toCamelCase(tt.in); got != tt.want {
			t.Errorf("toCamelCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
