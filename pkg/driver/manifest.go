package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"ratexpr/interpreter-go/pkg/ast"
	"ratexpr/interpreter-go/pkg/runtime"
)

// Suite represents the parsed contents of a suite.yml file: a list of lexing
// and evaluation cases with their expected outcomes.
type Suite struct {
	Path        string
	Name        string
	Description string
	Options     SuiteOptions
	Cases       []*Case
}

// SuiteOptions configures the interpreter used for every case in a suite.
type SuiteOptions struct {
	DivisionParity    bool
	MaxLoopIterations int
}

// CaseMode says which component a case exercises.
type CaseMode string

const (
	CaseModeLex  CaseMode = "lex"
	CaseModeEval CaseMode = "eval"
)

// Case is a single suite entry.
type Case struct {
	Name      string
	Mode      CaseMode
	Source    string
	Program   ast.Node
	Namespace map[string]runtime.Value
	Expect    Expectation
}

// Expectation lists what a case must produce. Unset fields are not checked.
type Expectation struct {
	Result    runtime.Value
	Namespace map[string]runtime.Value
	Tokens    []string
	Error     string
}

func (e Expectation) empty() bool {
	return e.Result == nil && e.Namespace == nil && e.Tokens == nil && e.Error == ""
}

// ValidationError aggregates suite validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "suite: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("suite validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// LoadSuite parses a suite file from disk, returning a validated suite.
func LoadSuite(path string) (*Suite, error) {
	if path == "" {
		return nil, fmt.Errorf("suite: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("suite: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("suite: open %s: %w", absPath, err)
	}
	defer file.Close()
	return decodeSuite(file, absPath)
}

// ParseSuite parses suite YAML held in memory. Relative program_file entries
// resolve against the working directory.
func ParseSuite(data []byte) (*Suite, error) {
	return decodeSuite(strings.NewReader(string(data)), "")
}

func decodeSuite(r io.Reader, absPath string) (*Suite, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var raw suiteFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("suite: %s is empty", displayPath(absPath))
		}
		return nil, fmt.Errorf("suite: parse %s: %w", displayPath(absPath), err)
	}
	return raw.toSuite(absPath)
}

func displayPath(path string) string {
	if path == "" {
		return "<input>"
	}
	return path
}

type suiteFile struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Options     optionsYAML `yaml:"options"`
	Cases       []caseYAML  `yaml:"cases"`
}

type optionsYAML struct {
	DivisionParity    bool `yaml:"division_parity"`
	MaxLoopIterations int  `yaml:"max_loop_iterations"`
}

type caseYAML struct {
	Name        string               `yaml:"name"`
	Source      *string              `yaml:"source"`
	Program     map[string]any       `yaml:"program"`
	ProgramFile string               `yaml:"program_file"`
	Namespace   map[string]ValueSpec `yaml:"namespace"`
	Expect      expectYAML           `yaml:"expect"`
}

type expectYAML struct {
	Result    *ValueSpec           `yaml:"result"`
	Namespace map[string]ValueSpec `yaml:"namespace"`
	Tokens    []string             `yaml:"tokens"`
	Error     string               `yaml:"error"`
}

func (sf suiteFile) toSuite(path string) (*Suite, error) {
	var errs ValidationError
	suite := &Suite{
		Path:        path,
		Name:        strings.TrimSpace(sf.Name),
		Description: strings.TrimSpace(sf.Description),
		Options: SuiteOptions{
			DivisionParity:    sf.Options.DivisionParity,
			MaxLoopIterations: sf.Options.MaxLoopIterations,
		},
		Cases: make([]*Case, 0, len(sf.Cases)),
	}
	if suite.Name == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	}
	if suite.Options.MaxLoopIterations < 0 {
		errs.Issues = append(errs.Issues, "options.max_loop_iterations must not be negative")
	}
	if len(sf.Cases) == 0 {
		errs.Issues = append(errs.Issues, "cases must list at least one case")
	}

	seen := make(map[string]struct{}, len(sf.Cases))
	for idx, raw := range sf.Cases {
		label := strings.TrimSpace(raw.Name)
		if label == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("cases[%d] must have a name", idx))
			label = fmt.Sprintf("cases[%d]", idx)
		} else if _, dup := seen[label]; dup {
			errs.Issues = append(errs.Issues, fmt.Sprintf("case %q is defined more than once", label))
		}
		seen[label] = struct{}{}

		c, issues := raw.toCase(label, path)
		for _, issue := range issues {
			errs.Issues = append(errs.Issues, fmt.Sprintf("case %q: %s", label, issue))
		}
		if c != nil {
			suite.Cases = append(suite.Cases, c)
		}
	}

	if len(errs.Issues) > 0 {
		return nil, &errs
	}
	return suite, nil
}

func (cy caseYAML) toCase(name, suitePath string) (*Case, []string) {
	var issues []string
	sources := 0
	if cy.Source != nil {
		sources++
	}
	if cy.Program != nil {
		sources++
	}
	if cy.ProgramFile != "" {
		sources++
	}
	if sources != 1 {
		return nil, []string{"exactly one of source, program or program_file must be set"}
	}

	c := &Case{Name: name}
	if cy.Source != nil {
		c.Mode = CaseModeLex
		c.Source = *cy.Source
		if cy.Namespace != nil {
			issues = append(issues, "namespace only applies to program cases")
		}
		if cy.Expect.Result != nil || cy.Expect.Namespace != nil {
			issues = append(issues, "source cases may only expect tokens or error")
		}
	} else {
		c.Mode = CaseModeEval
		program, err := cy.loadProgram(suitePath)
		if err != nil {
			issues = append(issues, err.Error())
		}
		c.Program = program
		if cy.Expect.Tokens != nil {
			issues = append(issues, "program cases cannot expect tokens")
		}
	}

	ns, nsIssues := convertValues("namespace", cy.Namespace)
	issues = append(issues, nsIssues...)
	c.Namespace = ns

	if cy.Expect.Result != nil {
		val, err := cy.Expect.Result.Value()
		if err != nil {
			issues = append(issues, fmt.Sprintf("expect.result: %v", err))
		}
		c.Expect.Result = val
	}
	expectNS, expectIssues := convertValues("expect.namespace", cy.Expect.Namespace)
	issues = append(issues, expectIssues...)
	c.Expect.Namespace = expectNS
	c.Expect.Tokens = cy.Expect.Tokens
	c.Expect.Error = strings.TrimSpace(cy.Expect.Error)

	if c.Expect.empty() {
		issues = append(issues, "expect must set at least one of result, namespace, tokens or error")
	}
	if c.Expect.Error != "" && (c.Expect.Result != nil || c.Expect.Namespace != nil || c.Expect.Tokens != nil) {
		issues = append(issues, "expect.error cannot be combined with other expectations")
	}
	return c, issues
}

func (cy caseYAML) loadProgram(suitePath string) (ast.Node, error) {
	if cy.Program != nil {
		node, err := ast.DecodeTree(cy.Program)
		if err != nil {
			return nil, fmt.Errorf("program: %w", err)
		}
		return node, nil
	}
	programPath := cy.ProgramFile
	if !filepath.IsAbs(programPath) && suitePath != "" {
		programPath = filepath.Join(filepath.Dir(suitePath), programPath)
	}
	data, err := os.ReadFile(programPath)
	if err != nil {
		return nil, fmt.Errorf("program_file: %w", err)
	}
	node, err := ast.DecodeJSON(data)
	if err != nil {
		return nil, fmt.Errorf("program_file %s: %w", cy.ProgramFile, err)
	}
	return node, nil
}

func convertValues(field string, specs map[string]ValueSpec) (map[string]runtime.Value, []string) {
	if specs == nil {
		return nil, nil
	}
	var issues []string
	out := make(map[string]runtime.Value, len(specs))
	for name, spec := range specs {
		val, err := spec.Value()
		if err != nil {
			issues = append(issues, fmt.Sprintf("%s.%s: %v", field, name, err))
			continue
		}
		out[name] = val
	}
	return out, issues
}
