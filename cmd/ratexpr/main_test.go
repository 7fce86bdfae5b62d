package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const factorialLoop = `{
  "type": "WhileLoop",
  "condition": {"type": "BinaryOperation", "operator": "<", "left": {"type": "MutVar", "name": "i"}, "right": {"type": "NumericLiteral", "value": "6"}},
  "body": {
    "type": "Block",
    "expressions": [
      {"type": "Set", "variable": {"type": "MutVar", "name": "j"}, "value": {"type": "BinaryOperation", "operator": "*", "left": {"type": "MutVar", "name": "j"}, "right": {"type": "MutVar", "name": "i"}}},
      {"type": "Set", "variable": {"type": "MutVar", "name": "i"}, "value": {"type": "BinaryOperation", "operator": "+", "left": {"type": "MutVar", "name": "i"}, "right": {"type": "NumericLiteral", "value": "1"}}}
    ]
  }
}`

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestRunWithoutArgsPrintsUsage(t *testing.T) {
	code, _, stderr := captureCLI(t, nil)
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr, "Usage:") {
		t.Fatalf("expected usage on stderr, got %q", stderr)
	}
}

func TestRunVersion(t *testing.T) {
	code, stdout, _ := captureCLI(t, []string{"version"})
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if strings.TrimSpace(stdout) != cliToolVersion {
		t.Fatalf("unexpected version output %q", stdout)
	}
}

func TestRunUnknownCommand(t *testing.T) {
	code, _, stderr := captureCLI(t, []string{"frobnicate"})
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr, `unknown command "frobnicate"`) {
		t.Fatalf("unexpected stderr %q", stderr)
	}
}

func TestTokensCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "input.txt", "let x = 10 in x ^^ 2")

	code, stdout, stderr := captureCLI(t, []string{"tokens", path})
	if code != 0 {
		t.Fatalf("tokens exited %d (stderr: %q)", code, stderr)
	}
	want := []string{
		"Keyword(let)",
		"Identifier(x)",
		"Operator(=)",
		"Number(10)",
		"Keyword(in)",
		"Identifier(x)",
		"Operator(**)",
		"Number(2)",
	}
	got := strings.Split(strings.TrimSpace(stdout), "\n")
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("tokens = %v, want %v", got, want)
	}
}

func TestTokensCommandReportsErrors(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "input.txt", `print "unfinished`)

	code, stdout, stderr := captureCLI(t, []string{"tokens", path})
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if strings.TrimSpace(stdout) != "Keyword(print)" {
		t.Fatalf("expected tokens before the error, got %q", stdout)
	}
	if !strings.Contains(stderr, "unterminated string") {
		t.Fatalf("unexpected stderr %q", stderr)
	}
}

func TestEvalCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "factorial.json", factorialLoop)

	code, stdout, stderr := captureCLI(t, []string{"eval", "-set", "i=1", "-set", "j=1", "-namespace", path})
	if code != 0 {
		t.Fatalf("eval exited %d (stderr: %q)", code, stderr)
	}
	want := "0\ni = 6\nj = 120\n"
	if stdout != want {
		t.Fatalf("stdout = %q, want %q", stdout, want)
	}
}

func TestEvalCommandLoopLimit(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "factorial.json", factorialLoop)

	code, _, stderr := captureCLI(t, []string{"eval", "-max-loop", "2", "-set", "i=1", "-set", "j=1", path})
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr, "loop iteration limit exceeded") {
		t.Fatalf("unexpected stderr %q", stderr)
	}
}

func TestEvalCommandSeedValues(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "read.json", `{"type": "Get", "variable": {"type": "MutVar", "name": "x"}}`)

	cases := []struct {
		seed string
		want string
	}{
		{seed: "x=3/6", want: "1/2"},
		{seed: "x=true", want: "true"},
		{seed: "x=hello world", want: "hello world"},
	}
	for _, tc := range cases {
		code, stdout, stderr := captureCLI(t, []string{"eval", "-set", tc.seed, path})
		if code != 0 {
			t.Fatalf("eval -set %s exited %d (stderr: %q)", tc.seed, code, stderr)
		}
		if strings.TrimSpace(stdout) != tc.want {
			t.Fatalf("eval -set %s = %q, want %q", tc.seed, stdout, tc.want)
		}
	}

	code, _, stderr := captureCLI(t, []string{"eval", "-set", "novalue", path})
	if code != 2 {
		t.Fatalf("expected flag error exit 2, got %d", code)
	}
	if !strings.Contains(stderr, "expected name=value") {
		t.Fatalf("unexpected stderr %q", stderr)
	}
}

func TestEvalCommandRejectsBadProgram(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.json", `{"type": "Lambda"}`)

	code, _, stderr := captureCLI(t, []string{"eval", path})
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr, "failed to load program") {
		t.Fatalf("unexpected stderr %q", stderr)
	}
}

func TestRunSuitesCommand(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "factorial.json", factorialLoop)
	suitePath := writeFile(t, dir, "suite.yml", `name: cli
cases:
  - name: factorial
    program_file: factorial.json
    namespace: {i: 1, j: 1}
    expect:
      namespace: {i: 6, j: 120}
  - name: lexing
    source: "a && b"
    expect:
      tokens: [Identifier(a), Operator(and), Identifier(b)]
`)

	code, stdout, stderr := captureCLI(t, []string{"run", "-v", suitePath})
	if code != 0 {
		t.Fatalf("run exited %d (stdout: %q, stderr: %q)", code, stdout, stderr)
	}
	if !strings.Contains(stdout, "cli: 2 passed, 0 failed") {
		t.Fatalf("unexpected summary %q", stdout)
	}
	if !strings.Contains(stdout, "ok   cli/factorial") {
		t.Fatalf("expected verbose case output, got %q", stdout)
	}

	code, stdout, _ = captureCLI(t, []string{"run", "-max-loop", "3", suitePath})
	if code != 1 {
		t.Fatalf("expected loop limit to fail the suite, got exit %d", code)
	}
	if !strings.Contains(stdout, "FAIL cli/factorial") {
		t.Fatalf("expected failure report, got %q", stdout)
	}
}

func TestRunSuitesCommandInvalidSuite(t *testing.T) {
	dir := t.TempDir()
	suitePath := writeFile(t, dir, "suite.yml", "name: broken\ncases: []\n")

	code, _, stderr := captureCLI(t, []string{"run", suitePath})
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr, "cases must list at least one case") {
		t.Fatalf("unexpected stderr %q", stderr)
	}
}

func TestResolveHistoryPathEnv(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "hist")
	t.Setenv("RATEXPR_HISTORY", target)

	got, err := resolveHistoryPath()
	if err != nil {
		t.Fatalf("resolveHistoryPath error: %v", err)
	}
	if got != target {
		t.Fatalf("resolveHistoryPath = %q, want %q", got, target)
	}
}

func TestResolveHistoryPathDefault(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("RATEXPR_HISTORY", "")
	t.Setenv("HOME", tmp)

	got, err := resolveHistoryPath()
	if err != nil {
		t.Fatalf("resolveHistoryPath error: %v", err)
	}
	if want := filepath.Join(tmp, historyFile); got != want {
		t.Fatalf("resolveHistoryPath = %q, want %q", got, want)
	}
}

func TestWatchSignalsReturnsWhenDone(t *testing.T) {
	sigc := make(chan os.Signal, 1)
	done := make(chan struct{})
	finished := make(chan struct{})
	called := false
	go func() {
		watchSignals(sigc, done, func() { called = true })
		close(finished)
	}()
	close(done)
	select {
	case <-finished:
	case <-time.After(5 * time.Second):
		t.Fatalf("watchSignals did not return after done was closed")
	}
	if called {
		t.Fatalf("onSignal ran without a signal")
	}
}

func TestWatchSignalsRunsHandler(t *testing.T) {
	sigc := make(chan os.Signal, 1)
	done := make(chan struct{})
	defer close(done)
	called := make(chan struct{})
	sigc <- os.Interrupt
	go watchSignals(sigc, done, func() { close(called) })
	select {
	case <-called:
	case <-time.After(5 * time.Second):
		t.Fatalf("onSignal was not called")
	}
}

func captureCLI(t *testing.T, args []string) (int, string, string) {
	t.Helper()

	stdout := os.Stdout
	stderr := os.Stderr

	rOut, wOut, err := os.Pipe()
	if err != nil {
		t.Fatalf("stdout pipe: %v", err)
	}
	rErr, wErr, err := os.Pipe()
	if err != nil {
		t.Fatalf("stderr pipe: %v", err)
	}

	os.Stdout = wOut
	os.Stderr = wErr

	code := run(args)

	if err := wOut.Close(); err != nil {
		t.Fatalf("stdout close: %v", err)
	}
	if err := wErr.Close(); err != nil {
		t.Fatalf("stderr close: %v", err)
	}

	os.Stdout = stdout
	os.Stderr = stderr

	outBytes, err := io.ReadAll(rOut)
	if err != nil {
		t.Fatalf("stdout read: %v", err)
	}
	errBytes, err := io.ReadAll(rErr)
	if err != nil {
		t.Fatalf("stderr read: %v", err)
	}

	if err := rOut.Close(); err != nil {
		t.Fatalf("stdout pipe close: %v", err)
	}
	if err := rErr.Close(); err != nil {
		t.Fatalf("stderr pipe close: %v", err)
	}

	return code, string(outBytes), string(errBytes)
}
