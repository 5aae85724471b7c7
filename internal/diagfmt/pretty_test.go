package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"confparser/internal/diag"
	"confparser/internal/source"
)

func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()

	content := []byte("string s = \"unterminated\n")
	fileID := fs.AddVirtual("/home/user/project/conf/test.conf", content)
	fs.SetBaseDir("/home/user/project")

	bag := diag.NewBag(10)
	d := diag.New(
		diag.SevError,
		diag.LexUnterminatedString,
		source.Span{File: fileID, Start: 11, End: 25},
		"unterminated string literal",
	)
	bag.Add(&d)

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{name: "Absolute path", mode: PathModeAbsolute, contains: "/home/user/project/conf/test.conf"},
		{name: "Relative path", mode: PathModeRelative, contains: "conf/test.conf"},
		{name: "Basename only", mode: PathModeBasename, contains: "test.conf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			opts := PrettyOpts{Color: false, Context: 1, PathMode: tt.mode}

			Pretty(&buf, bag, fs, opts)
			output := buf.String()

			if !strings.Contains(output, tt.contains) {
				t.Errorf("expected output to contain %q, got:\n%s", tt.contains, output)
			}
			if !strings.Contains(output, "ERROR") {
				t.Error("expected ERROR in output")
			}
			if !strings.Contains(output, "LEX1001") {
				t.Error("expected LEX1001 code in output")
			}
			if !strings.Contains(output, "unterminated string") {
				t.Error("expected error message in output")
			}
		})
	}
}

func TestPathModeAuto(t *testing.T) {
	fs := source.NewFileSet()

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{name: "Short path - as is", path: "config.conf", expected: "config.conf"},
		{name: "Long absolute path - basename", path: "/very/long/absolute/path/to/some/nested/directory/file.conf", expected: "file.conf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := []byte("int x = 42\n")
			fileID := fs.AddVirtual(tt.path, content)

			bag := diag.NewBag(10)
			d := diag.New(
				diag.SevWarning,
				diag.DirectiveBadArgs,
				source.Span{File: fileID, Start: 8, End: 10},
				"test warning",
			)
			bag.Add(&d)

			var buf bytes.Buffer
			opts := PrettyOpts{Color: false, Context: 0, PathMode: PathModeAuto}

			Pretty(&buf, bag, fs, opts)
			output := buf.String()

			if !strings.Contains(output, tt.expected) {
				t.Errorf("expected output to contain %q, got:\n%s", tt.expected, output)
			}
		})
	}
}

func TestPrettyNotesAndFixes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("int total = a+b\n")
	fileID := fs.AddVirtual("test.conf", content)

	bag := diag.NewBag(4)
	primary := source.Span{File: fileID, Start: 14, End: 15}
	d := diag.New(diag.SevWarning, diag.ResUnresolvedSymbol, primary, "unresolved symbol")

	noteSpan := source.Span{File: fileID, Start: 12, End: 13}
	d = d.WithNote(noteSpan, "'a' declared here")

	insertSpan := source.Span{File: fileID, Start: primary.End, End: primary.End}
	d = d.WithFix("declare b before use", diag.FixEdit{Span: insertSpan, NewText: ""})

	lazyFix := diag.Fix{
		ID:            "declare-missing-001",
		Title:         "declare missing instance",
		Kind:          diag.FixKindRefactor,
		Applicability: diag.FixApplicabilitySafeWithHeuristics,
		Edits: []diag.FixEdit{
			{Span: source.Span{File: fileID, Start: 0, End: 0}, NewText: "int b = 0\n"},
		},
	}
	d = d.WithFixSuggestion(lazyFix)

	bag.Add(&d)

	var buf bytes.Buffer
	opts := PrettyOpts{
		Color:     false,
		Context:   0,
		PathMode:  PathModeBasename,
		ShowNotes: true,
		ShowFixes: true,
	}
	Pretty(&buf, bag, fs, opts)

	output := buf.String()

	if !strings.Contains(output, "note: test.conf:1:13") {
		t.Fatalf("expected note with location, got:\n%s", output)
	}
	if !strings.Contains(output, "fix #1: declare b before use") {
		t.Fatalf("expected first fix entry, got:\n%s", output)
	}
	if !strings.Contains(output, "id=declare-missing-001") {
		t.Fatalf("expected lazy fix id in output, got:\n%s", output)
	}
}

func TestPrettyFixPreview(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("int a = 42 // missing initializer")
	fileID := fs.AddVirtual("example.conf", content)

	bag := diag.NewBag(2)
	insertSpan := source.Span{File: fileID, Start: 10, End: 10}
	d := diag.New(diag.SevWarning, diag.DirectiveBadArgs, insertSpan, "missing trailing expression")
	d = d.WithFix("insert default", diag.FixEdit{
		Span:    insertSpan,
		NewText: ";",
	})

	bag.Add(&d)

	var buf bytes.Buffer
	opts := PrettyOpts{
		Color:       false,
		Context:     0,
		PathMode:    PathModeBasename,
		ShowFixes:   true,
		ShowPreview: true,
	}
	Pretty(&buf, bag, fs, opts)

	output := buf.String()
	if !strings.Contains(output, "preview:") {
		t.Fatalf("expected preview header in output, got:\n%s", output)
	}
	if !strings.Contains(output, "- int a = 42 // missing initializer") {
		t.Fatalf("expected before line in preview, got:\n%s", output)
	}
	if !strings.Contains(output, "+ int a = 42; // missing initializer") {
		t.Fatalf("expected after line in preview, got:\n%s", output)
	}
}
