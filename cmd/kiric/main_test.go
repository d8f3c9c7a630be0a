package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v2"
)

func TestRunParseTree(t *testing.T) {
	filename := writeTempKiriFile(t, "int x = 5;\nprint(x);\n")
	code, out, errOut := captureOutput(t, func() int {
		return runParse(filename, "tree")
	})

	if code != 0 {
		t.Fatalf("runParse exit=%d\nstderr:\n%s", code, errOut)
	}
	if errOut != "" {
		t.Fatalf("unexpected stderr:\n%s", errOut)
	}
	for _, want := range []string{"Program", "AssignStmt", `VarRef`, `"x"`, "CallStmt", `"print"`} {
		if !strings.Contains(out, want) {
			t.Errorf("tree output missing %q:\n%s", want, out)
		}
	}
}

func TestRunParseJSON(t *testing.T) {
	filename := writeTempKiriFile(t, "int x = 5;\n")
	code, out, errOut := captureOutput(t, func() int {
		return runParse(filename, "json")
	})

	if code != 0 {
		t.Fatalf("runParse exit=%d\nstderr:\n%s", code, errOut)
	}
	for _, want := range []string{`"type": "Program"`, `"type": "AssignStmt"`, `"decltype": "int"`} {
		if !strings.Contains(out, want) {
			t.Errorf("json output missing %q:\n%s", want, out)
		}
	}
}

func TestRunParseSource(t *testing.T) {
	src := "int x = 5;\nprint(x);\n"
	filename := writeTempKiriFile(t, src)
	code, out, errOut := captureOutput(t, func() int {
		return runParse(filename, "source")
	})

	if code != 0 {
		t.Fatalf("runParse exit=%d\nstderr:\n%s", code, errOut)
	}
	if out != src {
		t.Errorf("source output:\ngot:  %q\nwant: %q", out, src)
	}
}

func TestRunParseDiagnostics(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{"syntax_error", "int x = (5);", `unexpected "("`},
		{"lex_error", `string s = "abc`, "unterminated string literal"},
		{"chain_error", "elif (x) {}", "elif without preceding if"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filename := writeTempKiriFile(t, tt.src)
			code, out, errOut := captureOutput(t, func() int {
				return runParse(filename, "tree")
			})

			if code != 1 {
				t.Errorf("exit = %d, want 1", code)
			}
			if out != "" {
				t.Errorf("unexpected stdout:\n%s", out)
			}
			if !strings.Contains(errOut, tt.wantErr) {
				t.Errorf("stderr missing %q:\n%s", tt.wantErr, errOut)
			}
		})
	}
}

func TestRunParseMissingFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "absent.kiri")
	code, _, errOut := captureOutput(t, func() int {
		return runParse(filename, "tree")
	})

	if code != 1 {
		t.Errorf("exit = %d, want 1", code)
	}
	if !strings.Contains(errOut, "error:") {
		t.Errorf("stderr missing open error:\n%s", errOut)
	}
}

func TestRunTokens(t *testing.T) {
	filename := writeTempKiriFile(t, "int x = 5;\n")
	code, out, errOut := captureOutput(t, func() int {
		return runTokens(filename)
	})

	if code != 0 {
		t.Fatalf("runTokens exit=%d\nstderr:\n%s", code, errOut)
	}
	for _, want := range []string{"POSITION", "TOKEN", "LITERAL", "INT_LIT", `"5"`, "NAME", `"x"`, "EOF"} {
		if !strings.Contains(out, want) {
			t.Errorf("token table missing %q:\n%s", want, out)
		}
	}
}

func TestRunTokensLexError(t *testing.T) {
	filename := writeTempKiriFile(t, `int s = "abc`)
	code, out, _ := captureOutput(t, func() int {
		return runTokens(filename)
	})

	if code != 1 {
		t.Errorf("exit = %d, want 1", code)
	}
	for _, want := range []string{"ERROR", "Errors:", "unterminated string literal"} {
		if !strings.Contains(out, want) {
			t.Errorf("token table missing %q:\n%s", want, out)
		}
	}
}

func TestRunTrace(t *testing.T) {
	filename := writeTempKiriFile(t, "int x = 5;")
	code, out, errOut := captureOutput(t, func() int {
		return runTrace(filename)
	})

	if code != 0 {
		t.Fatalf("runTrace exit=%d\nstderr:\n%s", code, errOut)
	}
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 16 {
		t.Errorf("got %d events, want 16:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "expand P -> S") {
		t.Errorf("first event = %q, want expand P -> S", lines[0])
	}
	for _, want := range []string{"expand A -> K V = E ;", `match NAME "x"`, `match ; ";"`} {
		if !strings.Contains(out, want) {
			t.Errorf("trace missing %q:\n%s", want, out)
		}
	}
}

func TestRunTraceSyntaxError(t *testing.T) {
	filename := writeTempKiriFile(t, "x = 5;")
	code, _, errOut := captureOutput(t, func() int {
		return runTrace(filename)
	})

	if code != 1 {
		t.Errorf("exit = %d, want 1", code)
	}
	if !strings.Contains(errOut, "expected (") {
		t.Errorf("stderr missing syntax error:\n%s", errOut)
	}
}

func TestCommandDispatch(t *testing.T) {
	filename := writeTempKiriFile(t, "int x = 5;\n")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"parse_default", []string{"kiric", "parse", filename}, "AssignStmt"},
		{"parse_source_flag", []string{"kiric", "parse", "--format", "source", filename}, "int x = 5;\n"},
		{"parse_short_flag", []string{"kiric", "parse", "-f", "json", filename}, `"type": "Program"`},
		{"tokens", []string{"kiric", "tokens", filename}, "POSITION"},
		{"trace", []string{"kiric", "trace", filename}, "expand P -> S"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, errOut := captureOutput(t, func() int {
				if err := newApp().Run(tt.args); err != nil {
					return 1
				}
				return 0
			})

			if code != 0 {
				t.Fatalf("app.Run failed\nstderr:\n%s", errOut)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out)
			}
		})
	}
}

func TestCommandArgValidation(t *testing.T) {
	app := newApp()
	app.ExitErrHandler = func(*cli.Context, error) {} // keep os.Exit out of the test

	err := app.Run([]string{"kiric", "parse"})
	if err == nil {
		t.Fatal("expected error for missing file argument")
	}
	var ec cli.ExitCoder
	if !errors.As(err, &ec) {
		t.Fatalf("error is %T, want cli.ExitCoder", err)
	}
	if ec.ExitCode() != 1 {
		t.Errorf("exit code = %d, want 1", ec.ExitCode())
	}
	if !strings.Contains(err.Error(), "expected exactly one input file") {
		t.Errorf("error = %q", err.Error())
	}
}

func TestCommandFailureExitCode(t *testing.T) {
	filename := writeTempKiriFile(t, "elif (x) {}")

	app := newApp()
	app.ExitErrHandler = func(*cli.Context, error) {}

	var runErr error
	_, _, errOut := captureOutput(t, func() int {
		runErr = app.Run([]string{"kiric", "parse", filename})
		return 0
	})

	if runErr == nil {
		t.Fatal("expected error from failing parse")
	}
	var ec cli.ExitCoder
	if !errors.As(runErr, &ec) {
		t.Fatalf("error is %T, want cli.ExitCoder", runErr)
	}
	if ec.ExitCode() != 1 {
		t.Errorf("exit code = %d, want 1", ec.ExitCode())
	}
	if !strings.Contains(errOut, "elif without preceding if") {
		t.Errorf("stderr missing diagnostic:\n%s", errOut)
	}
}

func writeTempKiriFile(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	filename := filepath.Join(dir, "input.kiri")
	if err := os.WriteFile(filename, []byte(src), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return filename
}

func captureOutput(t *testing.T, fn func() int) (code int, stdout string, stderr string) {
	t.Helper()

	oldStdout := os.Stdout
	oldStderr := os.Stderr

	rOut, wOut, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe stdout: %v", err)
	}
	rErr, wErr, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe stderr: %v", err)
	}

	os.Stdout = wOut
	os.Stderr = wErr

	code = fn()

	_ = wOut.Close()
	_ = wErr.Close()
	os.Stdout = oldStdout
	os.Stderr = oldStderr

	outBytes, _ := io.ReadAll(rOut)
	errBytes, _ := io.ReadAll(rErr)
	_ = rOut.Close()
	_ = rErr.Close()

	return code, string(outBytes), string(errBytes)
}
