package syntax

import (
	"bytes"
	"strings"
	"testing"
)

func sourceOf(t *testing.T, src string) string {
	t.Helper()
	var buf bytes.Buffer
	FprintSource(&buf, parseProgram(t, src))
	return buf.String()
}

func TestSourceStatements(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"assign", "int x = 5;", "int x = 5;\n"},
		{"assign_dotted", "int rect.size.width = 10;", "int rect.size.width = 10;\n"},
		{"string_lit", `string s = "a b";`, "string s = \"a b\";\n"},
		{"bool_lit", "bool ok = true;", "bool ok = true;\n"},
		{"call", "log.info(x);", "log.info(x);\n"},
		{"continue", "continue;", "continue;\n"},
		{"operator_chain", "int r = 1 + 2 * 3;", "int r = 1 + 2 * 3;\n"},
		{"incdec", "int a = i++;", "int a = i++;\n"},
		{"call_expr", "int y = f(3);", "int y = f(3);\n"},
		{
			"cond_chain",
			"if (a) { f(a); } elif (b) {} else { continue; }",
			"if (a) {\n\tf(a);\n} elif (b) {\n} else {\n\tcontinue;\n}\n",
		},
		{
			"loop",
			"for (int i = 0; i < 3; i++) { tick(i); }",
			"for (int i = 0; i < 3; i++) {\n\ttick(i);\n}\n",
		},
		{
			"func",
			"fn add(int a, int b) { int c = a + b; }",
			"fn add(int a, int b) {\n\tint c = a + b;\n}\n",
		},
		{
			"nested_blocks",
			"fn wrap(int n) { for (int j = 0; j < n; j++) { step(j); } }",
			"fn wrap(int n) {\n\tfor (int j = 0; j < n; j++) {\n\t\tstep(j);\n\t}\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sourceOf(t, tt.src); got != tt.want {
				t.Errorf("source:\ngot:  %q\nwant: %q", got, tt.want)
			}
		})
	}
}

func TestSourceNormalizesWhitespace(t *testing.T) {
	got := sourceOf(t, "int   x=5 ;")
	if got != "int x = 5;\n" {
		t.Errorf("source = %q, want %q", got, "int x = 5;\n")
	}
}

func TestSourceExpr(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"1 + 2 * 3", "1 + 2 * 3"},
		{"f(g(2))", "f(g(2))"},
		{"a.b.count++", "a.b.count++"},
		{"a-- - b", "a-- - b"},
		{`"hi"`, `"hi"`},
		{"x == y && done", "x == y && done"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			as := parseOneStmt(t, "int v = "+tt.src+";").(*AssignStmt)
			var buf bytes.Buffer
			FprintSource(&buf, as.Value)
			if got := buf.String(); got != tt.want {
				t.Errorf("expr source = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestSourceRoundTrip checks that printed source parses back to a tree
// that prints identically: one pass through FprintSource is a fixed point.
func TestSourceRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"messy_whitespace", "int    x=1;\n\n\nf( x ) ;"},
		{"multiline_string", "string s = \"line one\nline two\";"},
		{
			"cond_and_loops",
			"if (x > 1) { f(x); } elif (x < 1) { g(x); } else { continue; }\nfor (int i = 0; i < 10; i++) { tick(i); }",
		},
		{
			"full_program",
			`int total = 0;
fn accumulate(int base, int step) {
	for (int i = 0; i < step; i++) {
		int total = total + base;
	}
	report(total);
}
accumulate(total);`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := sourceOf(t, tt.src)

			reparsed, err := Parse("roundtrip.kiri", strings.NewReader(first))
			if err != nil {
				t.Fatalf("printed source does not parse: %v\nsource:\n%s", err, first)
			}
			var buf bytes.Buffer
			FprintSource(&buf, reparsed)
			second := buf.String()

			if first != second {
				t.Errorf("not a fixed point:\nfirst:\n%s\nsecond:\n%s", first, second)
			}
		})
	}
}
