package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"simplint/internal/diag"
	"simplint/internal/source"
)

func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()

	content := []byte("x = not not a\n")
	fileID := fs.AddVirtual("/home/user/project/src/test.py", content)
	fs.SetBaseDir("/home/user/project")

	bag := diag.NewBag(10)
	bag.Add(diag.NewWarning(
		diag.DoubleNegation,
		source.Span{File: fileID, Start: 4, End: 13},
		"Use 'a' instead of 'not (not a)'",
	))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{
			name:     "Absolute path",
			mode:     PathModeAbsolute,
			contains: "/home/user/project/src/test.py",
		},
		{
			name:     "Relative path",
			mode:     PathModeRelative,
			contains: "src/test.py",
		},
		{
			name:     "Basename only",
			mode:     PathModeBasename,
			contains: "test.py",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			opts := PrettyOpts{
				Color:    false,
				Context:  1,
				PathMode: tt.mode,
			}

			Pretty(&buf, bag, fs, opts)
			output := buf.String()

			if !strings.Contains(output, tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, output)
			}

			if !strings.Contains(output, "WARNING") {
				t.Error("Expected WARNING in output")
			}
			if !strings.Contains(output, "SIM208") {
				t.Error("Expected SIM208 code in output")
			}
			if !strings.Contains(output, "Use 'a' instead of 'not (not a)'") {
				t.Error("Expected finding message in output")
			}
		})
	}
}

func TestPrettyUnderline(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.py", []byte("x = not not a\n"))

	bag := diag.NewBag(10)
	bag.Add(diag.NewWarning(
		diag.DoubleNegation,
		source.Span{File: fileID, Start: 4, End: 13},
		"Use 'a' instead of 'not (not a)'",
	))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	output := buf.String()

	if !strings.Contains(output, "test.py:1:5:") {
		t.Errorf("Expected 1-based line:col location, got:\n%s", output)
	}
	if !strings.Contains(output, "    1 | x = not not a") {
		t.Errorf("Expected source line with gutter, got:\n%s", output)
	}
	// Span covers "not not a": caret under column 5, eight tildes after.
	wantMarks := "      |     ^" + strings.Repeat("~", 8)
	if !strings.Contains(output, wantMarks) {
		t.Errorf("Expected underline row %q, got:\n%s", wantMarks, output)
	}
}

func TestPrettyNotes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.py", []byte("d = {}\nd['a'] = 1\n"))

	bag := diag.NewBag(10)
	d := diag.NewWarning(
		diag.DictInitThenAssign,
		source.Span{File: fileID, Start: 0, End: 6},
		"Initialize dictionary 'd' directly",
	).WithNote(source.Span{File: fileID, Start: 7, End: 17}, "assignment happens here")
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: true})
	output := buf.String()

	if !strings.Contains(output, "note") {
		t.Errorf("Expected note in output, got:\n%s", output)
	}
	if !strings.Contains(output, "assignment happens here") {
		t.Errorf("Expected note message, got:\n%s", output)
	}

	buf.Reset()
	Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: false})
	if strings.Contains(buf.String(), "assignment happens here") {
		t.Error("Notes should be hidden when ShowNotes is false")
	}
}

func TestPrettyNoColorByDefault(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.py", []byte("x = not not a\n"))

	bag := diag.NewBag(10)
	bag.Add(diag.NewWarning(diag.DoubleNegation, source.Span{File: fileID, Start: 4, End: 13}, "msg"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Color: false})
	if strings.Contains(buf.String(), "\x1b[") {
		t.Error("Expected no ANSI escapes with Color: false")
	}
}
