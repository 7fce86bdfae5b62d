package driver

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"ratexpr/interpreter-go/pkg/interpreter"
	"ratexpr/interpreter-go/pkg/lexer"
	"ratexpr/interpreter-go/pkg/runtime"
)

// CaseResult records the outcome of a single suite case.
type CaseResult struct {
	Name    string
	Mode    CaseMode
	Passed  bool
	Message string
}

// Failed reports how many results did not pass.
func Failed(results []CaseResult) int {
	count := 0
	for _, res := range results {
		if !res.Passed {
			count++
		}
	}
	return count
}

// RunSuite executes every case in the suite. Options given here are applied
// after the suite's own options, so callers can override them.
func RunSuite(s *Suite, opts ...interpreter.Option) []CaseResult {
	if s == nil {
		return nil
	}
	base := []interpreter.Option{
		interpreter.WithDivisionParity(s.Options.DivisionParity),
		interpreter.WithMaxLoopIterations(s.Options.MaxLoopIterations),
	}
	interp := interpreter.New(append(base, opts...)...)

	results := make([]CaseResult, 0, len(s.Cases))
	for _, c := range s.Cases {
		var err error
		switch c.Mode {
		case CaseModeLex:
			err = runLexCase(c)
		case CaseModeEval:
			err = runEvalCase(interp, c)
		default:
			err = fmt.Errorf("unknown case mode %q", c.Mode)
		}
		res := CaseResult{Name: c.Name, Mode: c.Mode, Passed: err == nil}
		if err != nil {
			res.Message = err.Error()
		}
		results = append(results, res)
	}
	return results
}

func runLexCase(c *Case) error {
	tokens, err := lexer.Tokenize(c.Source)
	if c.Expect.Error != "" || err != nil {
		return checkError(c.Expect.Error, err)
	}
	if c.Expect.Tokens == nil {
		return nil
	}
	got := make([]string, len(tokens))
	for i, tok := range tokens {
		got[i] = tok.String()
	}
	if len(got) != len(c.Expect.Tokens) {
		return fmt.Errorf("expected %d tokens, got %d: [%s]", len(c.Expect.Tokens), len(got), strings.Join(got, " "))
	}
	for i := range got {
		if got[i] != c.Expect.Tokens[i] {
			return fmt.Errorf("token %d: expected %s, got %s", i, c.Expect.Tokens[i], got[i])
		}
	}
	return nil
}

func runEvalCase(interp *interpreter.Interpreter, c *Case) error {
	ns := runtime.NamespaceFrom(c.Namespace)
	val, err := interp.Evaluate(c.Program, nil, ns)
	if c.Expect.Error != "" || err != nil {
		return checkError(c.Expect.Error, err)
	}
	if c.Expect.Result != nil {
		if !runtime.ValuesEqual(val, c.Expect.Result) {
			return fmt.Errorf("expected result %s %s, got %s", c.Expect.Result.Kind(), runtime.FormatValue(c.Expect.Result), describe(val))
		}
	}
	if c.Expect.Namespace != nil {
		if err := compareNamespace(c.Expect.Namespace, ns); err != nil {
			return err
		}
	}
	return nil
}

// checkError compares a produced error against an expected message fragment.
func checkError(expected string, err error) error {
	if expected == "" {
		if err != nil {
			return fmt.Errorf("unexpected error: %w", err)
		}
		return nil
	}
	if err == nil {
		return fmt.Errorf("expected error containing %q, got none", expected)
	}
	if !strings.Contains(err.Error(), expected) {
		return fmt.Errorf("expected error containing %q, got %q", expected, err.Error())
	}
	return nil
}

func compareNamespace(expected map[string]runtime.Value, ns *runtime.Namespace) error {
	var problems []string
	for _, key := range ns.Keys() {
		if _, ok := expected[key]; !ok {
			got, _ := ns.Get(key)
			problems = append(problems, fmt.Sprintf("unexpected %s = %s", key, describe(got)))
		}
	}
	for _, key := range slices.Sorted(maps.Keys(expected)) {
		want := expected[key]
		got, ok := ns.Get(key)
		if !ok {
			problems = append(problems, fmt.Sprintf("missing %s", key))
			continue
		}
		if !runtime.ValuesEqual(got, want) {
			problems = append(problems, fmt.Sprintf("%s: expected %s %s, got %s", key, want.Kind(), runtime.FormatValue(want), describe(got)))
		}
	}
	if len(problems) > 0 {
		return errors.New("namespace mismatch: " + strings.Join(problems, "; "))
	}
	return nil
}

func describe(val runtime.Value) string {
	if val == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s %s", val.Kind(), runtime.FormatValue(val))
}
