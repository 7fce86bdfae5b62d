package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math/big"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"ratexpr/interpreter-go/pkg/ast"
	"ratexpr/interpreter-go/pkg/driver"
	"ratexpr/interpreter-go/pkg/interpreter"
	"ratexpr/interpreter-go/pkg/lexer"
	"ratexpr/interpreter-go/pkg/runtime"
)

const cliToolVersion = "ratexpr 0.0.0-dev"

const (
	historyFile = ".ratexpr_history"
	promptMain  = "tok> "
	banner      = "ratexpr token REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit."
)

func red(s string) string { return "\x1b[31m" + s + "\x1b[0m" }

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 1
	}

	switch args[0] {
	case "--help", "-h":
		printUsage()
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return 0
	case "tokens":
		return runTokens(args[1:])
	case "eval":
		return runEval(args[1:])
	case "run":
		return runSuites(args[1:])
	case "repl":
		return runRepl(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", args[0])
		printUsage()
		return 1
	}
}

func runTokens(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "ratexpr tokens requires exactly one source file (or - for stdin)")
		return 1
	}
	src, err := readInput(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	for tok, err := range lexer.New(string(src)).All() {
		if err != nil {
			fmt.Fprintf(os.Stderr, "tokenize error: %v\n", err)
			return 1
		}
		fmt.Fprintln(os.Stdout, tok.String())
	}
	return 0
}

// interpreterFlags registers the options shared by eval and run. Only flags
// given explicitly on the command line produce options.
type interpreterFlags struct {
	fs       *flag.FlagSet
	parity   *bool
	maxLoops *int
}

func newInterpreterFlags(name string) *interpreterFlags {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return &interpreterFlags{
		fs:       fs,
		parity:   fs.Bool("parity", false, "evaluate divisors twice, the second time against empty environments"),
		maxLoops: fs.Int("max-loop", 0, "abort while loops after this many iterations (0 disables the limit)"),
	}
}

func (f *interpreterFlags) options() []interpreter.Option {
	var opts []interpreter.Option
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "parity":
			opts = append(opts, interpreter.WithDivisionParity(*f.parity))
		case "max-loop":
			opts = append(opts, interpreter.WithMaxLoopIterations(*f.maxLoops))
		}
	})
	return opts
}

func runEval(args []string) int {
	flags := newInterpreterFlags("eval")
	showNamespace := flags.fs.Bool("namespace", false, "print the namespace after evaluation")
	ns := runtime.NewNamespace()
	flags.fs.Func("set", "seed the namespace with name=value (repeatable)", func(arg string) error {
		name, val, err := parseSeed(arg)
		if err != nil {
			return err
		}
		ns.Set(name, val)
		return nil
	})
	if err := flags.fs.Parse(args); err != nil {
		return 2
	}
	if flags.fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "ratexpr eval requires exactly one program file (or - for stdin)")
		return 1
	}
	data, err := readInput(flags.fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	program, err := ast.DecodeJSON(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load program: %v\n", err)
		return 1
	}

	val, err := interpreter.New(flags.options()...).Evaluate(program, nil, ns)
	if err != nil {
		fmt.Fprintf(os.Stderr, "evaluation error: %v\n", err)
		return 1
	}
	fmt.Fprintln(os.Stdout, runtime.FormatValue(val))
	if *showNamespace {
		for _, name := range ns.Keys() {
			v, _ := ns.Get(name)
			fmt.Fprintf(os.Stdout, "%s = %s\n", name, runtime.FormatValue(v))
		}
	}
	return 0
}

// parseSeed reads name=value. Values that parse as rationals or bools take
// that kind; anything else is a string.
func parseSeed(arg string) (string, runtime.Value, error) {
	name, text, ok := strings.Cut(arg, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", nil, fmt.Errorf("expected name=value, got %q", arg)
	}
	if r, ok := new(big.Rat).SetString(text); ok {
		return name, runtime.RationalValue{Val: r}, nil
	}
	switch text {
	case "true":
		return name, runtime.BoolValue{Val: true}, nil
	case "false":
		return name, runtime.BoolValue{Val: false}, nil
	}
	return name, runtime.StringValue{Val: text}, nil
}

func runSuites(args []string) int {
	flags := newInterpreterFlags("run")
	verbose := flags.fs.Bool("v", false, "report passing cases too")
	if err := flags.fs.Parse(args); err != nil {
		return 2
	}
	if flags.fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "ratexpr run requires at least one suite file")
		return 1
	}

	opts := flags.options()
	exit := 0
	for _, path := range flags.fs.Args() {
		suite, err := driver.LoadSuite(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load suite %s: %v\n", path, err)
			exit = 1
			continue
		}
		results := driver.RunSuite(suite, opts...)
		for _, res := range results {
			switch {
			case !res.Passed:
				fmt.Fprintf(os.Stdout, "FAIL %s/%s: %s\n", suite.Name, res.Name, res.Message)
			case *verbose:
				fmt.Fprintf(os.Stdout, "ok   %s/%s\n", suite.Name, res.Name)
			}
		}
		failed := driver.Failed(results)
		fmt.Fprintf(os.Stdout, "%s: %d passed, %d failed\n", suite.Name, len(results)-failed, failed)
		if failed > 0 {
			exit = 1
		}
	}
	return exit
}

func runRepl(args []string) int {
	if len(args) != 0 {
		fmt.Fprintf(os.Stderr, "unexpected arguments: %s\n", strings.Join(args, " "))
		return 1
	}
	histPath, err := resolveHistoryPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	fmt.Println(banner)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	done := make(chan struct{})
	defer close(done)
	go watchSignals(sigc, done, func() {
		ln.Close()
		os.Exit(130)
	})

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	for {
		line, err := ln.Prompt(promptMain)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return 0
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
			return 1
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit":
				return 0
			default:
				fmt.Printf("unknown command. Type :quit to exit.\n")
			}
			continue
		}

		ln.AppendHistory(line)
		tokens, err := lexer.Tokenize(line)
		if len(tokens) > 0 {
			fmt.Println(formatTokens(tokens))
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
		}
	}
}

// watchSignals calls onSignal if a signal arrives before done is closed.
func watchSignals(sigc <-chan os.Signal, done <-chan struct{}, onSignal func()) {
	select {
	case <-sigc:
		onSignal()
	case <-done:
	}
}

func formatTokens(tokens []lexer.Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = tok.String()
	}
	return strings.Join(parts, " ")
}

func resolveHistoryPath() (string, error) {
	if path := strings.TrimSpace(os.Getenv("RATEXPR_HISTORY")); path != "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("resolve RATEXPR_HISTORY %q: %w", path, err)
		}
		return abs, nil
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve user home: %w", err)
	}
	return filepath.Join(userHome, historyFile), nil
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  ratexpr tokens <file|->")
	fmt.Fprintln(os.Stderr, "  ratexpr eval [-parity] [-max-loop n] [-set name=value ...] [-namespace] <program.json|->")
	fmt.Fprintln(os.Stderr, "  ratexpr run [-parity] [-max-loop n] [-v] <suite.yml> ...")
	fmt.Fprintln(os.Stderr, "  ratexpr repl")
	fmt.Fprintln(os.Stderr, "  ratexpr version")
}
