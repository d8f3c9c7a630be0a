package e2e

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kiri-lang/kiri/internal/syntax"
)

// TestValid runs end-to-end tests for all valid_*.kiri files in
// testdata/. Each test:
//  1. Parses the file through the full scanner → machine → builder
//     pipeline
//  2. Compares the syntax tree dump against the .golden file
//  3. Prints the tree back as source, reparses it, and checks the
//     second print matches the first
func TestValid(t *testing.T) {
	files, err := filepath.Glob("testdata/valid_*.kiri")
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no valid_*.kiri test files found in testdata/")
	}

	for _, f := range files {
		name := strings.TrimSuffix(filepath.Base(f), ".kiri")
		t.Run(name, func(t *testing.T) {
			src, err := os.ReadFile(f)
			if err != nil {
				t.Fatal(err)
			}

			prog, err := syntax.Parse(f, bytes.NewReader(src))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}

			var dump bytes.Buffer
			syntax.Fprint(&dump, prog)
			got := dump.String()

			golden := strings.TrimSuffix(f, ".kiri") + ".golden"

			if os.Getenv("UPDATE_GOLDEN") != "" {
				if err := os.WriteFile(golden, []byte(got), 0644); err != nil {
					t.Fatal(err)
				}
			} else {
				want, err := os.ReadFile(golden)
				switch {
				case os.IsNotExist(err):
					if err := os.WriteFile(golden, []byte(got), 0644); err != nil {
						t.Fatal(err)
					}
					t.Logf("created golden file: %s", golden)
				case err != nil:
					t.Fatal(err)
				case got != string(want):
					t.Errorf("tree mismatch for %s\nRun with UPDATE_GOLDEN=1 to update", f)
				}
			}

			roundTrip(t, prog)
		})
	}
}

// roundTrip prints prog as source, reparses the output, and checks the
// second print matches the first.
func roundTrip(t *testing.T, prog *syntax.Program) {
	t.Helper()

	var first bytes.Buffer
	syntax.FprintSource(&first, prog)

	again, err := syntax.Parse("roundtrip.kiri", bytes.NewReader(first.Bytes()))
	if err != nil {
		t.Fatalf("printed source does not parse: %v\nsource:\n%s", err, first.String())
	}

	var second bytes.Buffer
	syntax.FprintSource(&second, again)

	if first.String() != second.String() {
		t.Errorf("round trip not stable:\nfirst:\n%s\nsecond:\n%s", first.String(), second.String())
	}
}

// TestInvalid checks that every err_*.kiri file in testdata/ fails to
// parse, with the diagnostic recorded in the sibling .diag file.
func TestInvalid(t *testing.T) {
	files, err := filepath.Glob("testdata/err_*.kiri")
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no err_*.kiri test files found in testdata/")
	}

	for _, f := range files {
		name := strings.TrimSuffix(filepath.Base(f), ".kiri")
		t.Run(name, func(t *testing.T) {
			src, err := os.ReadFile(f)
			if err != nil {
				t.Fatal(err)
			}

			diag, err := os.ReadFile(strings.TrimSuffix(f, ".kiri") + ".diag")
			if err != nil {
				t.Fatalf("reading diag file: %v", err)
			}
			want := strings.TrimSpace(string(diag))

			prog, perr := syntax.Parse(f, bytes.NewReader(src))
			if perr == nil {
				t.Fatalf("expected parse failure containing %q", want)
			}
			if prog != nil {
				t.Error("program is non-nil alongside an error")
			}
			if !strings.Contains(perr.Error(), want) {
				t.Errorf("diagnostic mismatch:\ngot:  %s\nwant substring: %s", perr, want)
			}
		})
	}
}
