package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/jsbridge/convert"
	"github.com/wippyai/jsbridge/engine"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	cfg         Config
	expr        string
	file        string
	interactive bool
	listTypes   bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("jsconv", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		expr        = fs.String("e", "", "Expression to evaluate")
		file        = fs.String("file", "", "Script file to evaluate")
		configPath  = fs.String("config", "", "YAML config file")
		typeExpr    = fs.String("type", "", "Target type, e.g. i32, vec<string>, opt<f64>")
		strict      = fs.Bool("strict", false, "Reject implicit coercions")
		behavior    = fs.String("behavior", "", "Integer behavior: default, enforce-range, clamp")
		asJSON      = fs.Bool("json", false, "Print the result as JSON")
		dump        = fs.Bool("dump", false, "Print the Go structure of the result")
		verbose     = fs.Bool("v", false, "Verbose development logging")
		interactive = fs.Bool("i", false, "Interactive mode with TUI")
		listTypes   = fs.Bool("types", false, "List type names and exit")
	)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: jsconv [-type T] [-strict] [-behavior B] -e <expr>")
		fmt.Fprintln(stderr, "       jsconv [-type T] -file <script.js>")
		fmt.Fprintln(stderr, "       jsconv -i  (interactive mode)")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	cfg := DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = LoadConfig(*configPath); err != nil {
			return options{}, err
		}
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["type"] {
		cfg.Type = *typeExpr
	}
	if set["strict"] {
		cfg.Strict = *strict
	}
	if set["behavior"] {
		b, err := convert.ParseBehavior(*behavior)
		if err != nil {
			return options{}, err
		}
		cfg.Behavior = b
	}
	if *asJSON {
		cfg.Output = OutputJSON
	}
	if *dump {
		cfg.Output = OutputDump
	}
	if *verbose {
		cfg.Log.Level = "debug"
		cfg.Log.Development = true
	}
	if err := cfg.Validate(); err != nil {
		return options{}, err
	}

	opts := options{
		cfg:         cfg,
		expr:        *expr,
		file:        *file,
		interactive: *interactive,
		listTypes:   *listTypes,
	}
	if opts.expr == "" && fs.NArg() > 0 {
		opts.expr = strings.Join(fs.Args(), " ")
	}
	if opts.expr != "" && opts.file != "" {
		return options{}, fmt.Errorf("-e and -file are mutually exclusive")
	}
	return opts, nil
}

func run(args []string, stdin *os.File, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	if opts.listTypes {
		fmt.Fprintln(stdout, strings.Join(convert.TypeNames(), "\n"))
		fmt.Fprintln(stdout, "opt<T>\nvec<T>")
		return nil
	}

	log, err := opts.cfg.Log.Build()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	engine.SetLogger(log)

	if opts.interactive {
		if !term.IsTerminal(int(stdin.Fd())) {
			return fmt.Errorf("interactive mode requires a terminal")
		}
		return runInteractive(opts.cfg, log)
	}

	src, err := readSource(opts, stdin)
	if err != nil {
		return err
	}

	s, err := newSession(opts.cfg, log, stderr)
	if err != nil {
		return err
	}
	defer s.Close()

	v, err := s.Evaluate(src)
	if err != nil {
		log.Debug("evaluation failed", zap.Error(err))
		return err
	}
	out, err := s.Format(v)
	if err != nil {
		return fmt.Errorf("format: %w", err)
	}
	fmt.Fprintln(stdout, out)
	return nil
}

func readSource(opts options, stdin *os.File) (string, error) {
	switch {
	case opts.expr != "":
		return opts.expr, nil
	case opts.file != "":
		data, err := os.ReadFile(opts.file)
		if err != nil {
			return "", fmt.Errorf("read file: %w", err)
		}
		return string(data), nil
	case !term.IsTerminal(int(stdin.Fd())):
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("nothing to evaluate: use -e, -file, -i or pipe a script")
	}
}
