package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"simplint/internal/diag"
	"simplint/internal/source"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan, color.Bold)
	codeColor = color.New(color.Bold)
	noteColor = color.New(color.FgBlue)
)

// Pretty formats diagnostics in a human-readable way. Walks bag.Items()
// (bag.Sort() is expected beforehand). Each diagnostic is printed as
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// followed by the source line with a ^~~~ underline covering the span,
// then Notes in the same shape. Color is enabled by option.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writeHeading(w, fs, opts, d.Severity, d.Code, d.Primary, d.Message)
		writeContext(w, fs, opts, d.Primary, severityColor(d.Severity))
		if opts.ShowNotes {
			for _, n := range d.Notes {
				loc := formatLocation(fs, opts.PathMode, n.Span)
				fmt.Fprintf(w, "%s: %s %s\n", loc, paint(opts, noteColor, "note"), n.Msg)
				writeContext(w, fs, opts, n.Span, noteColor)
			}
		}
	}
}

func writeHeading(w io.Writer, fs *source.FileSet, opts PrettyOpts, sev diag.Severity, code diag.Code, span source.Span, msg string) {
	loc := formatLocation(fs, opts.PathMode, span)
	fmt.Fprintf(w, "%s: %s %s: %s\n",
		loc,
		paint(opts, severityColor(sev), sev.String()),
		paint(opts, codeColor, code.ID()),
		msg)
}

// writeContext prints the surrounding source lines with a gutter plus an
// underline row for the first line of the span.
func writeContext(w io.Writer, fs *source.FileSet, opts PrettyOpts, span source.Span, markColor *color.Color) {
	file := fs.Get(span.File)
	if file == nil {
		return
	}
	start, end := fs.Resolve(span)
	if start.Line == 0 {
		return
	}

	ctx := opts.Context
	if ctx < 0 {
		ctx = 0
	}
	first := start.Line
	if uint32(ctx) < first {
		first -= uint32(ctx)
	} else {
		first = 1
	}
	for line := first; line <= start.Line; line++ {
		text := file.GetLine(line)
		fmt.Fprintf(w, "%5d | %s\n", line, text)
		if line != start.Line {
			continue
		}
		pad, marks := underline(text, start, end)
		fmt.Fprintf(w, "      | %s%s\n", pad, paint(opts, markColor, marks))
	}
}

// underline computes the pad and marker run for the caret row. Widths
// are display widths so tabs and wide runes stay aligned.
func underline(line string, start, end source.LineCol) (pad, marks string) {
	startCol := int(start.Col)
	if startCol < 1 {
		startCol = 1
	}
	if startCol > len(line)+1 {
		startCol = len(line) + 1
	}
	endCol := len(line) + 1
	if end.Line == start.Line && int(end.Col) < endCol {
		endCol = int(end.Col)
	}
	if endCol < startCol {
		endCol = startCol
	}

	prefix := line[:startCol-1]
	pad = strings.Repeat(" ", runewidth.StringWidth(expandTabs(prefix)))

	width := runewidth.StringWidth(expandTabs(line[startCol-1 : endCol-1]))
	if width < 1 {
		width = 1
	}
	marks = "^" + strings.Repeat("~", width-1)
	return pad, marks
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errColor
	case diag.SevWarning:
		return warnColor
	default:
		return infoColor
	}
}

func paint(opts PrettyOpts, c *color.Color, s string) string {
	if !opts.Color {
		return s
	}
	return c.Sprint(s)
}

func formatLocation(fs *source.FileSet, mode PathMode, span source.Span) string {
	file := fs.Get(span.File)
	if file == nil {
		return fmt.Sprintf("<unknown>:%d", span.Start)
	}
	start, _ := fs.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", formatPath(file, fs, mode), start.Line, start.Col)
}

func formatPath(file *source.File, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		return file.FormatPath("absolute", "")
	case PathModeRelative:
		return file.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return file.FormatPath("basename", "")
	default:
		return file.FormatPath("auto", "")
	}
}
