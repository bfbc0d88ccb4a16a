package ux

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
)

// ANSI color helpers
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
)

const wrapWidth = 80

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Markdown writes md to w. When styled is set the text is rendered for the
// terminal; otherwise it is written verbatim.
func Markdown(w io.Writer, md string, styled bool) error {
	if !styled {
		_, err := io.WriteString(w, md)
		return err
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrapWidth),
	)
	if err != nil {
		return fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("rendering markdown: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}

// Related prints the "see also" footer under a documentation fragment.
func Related(w io.Writer, topics []string, color bool) {
	if len(topics) == 0 {
		return
	}
	if color {
		fmt.Fprintf(w, "\n%sRelated:%s %s\n", Bold, Reset, strings.Join(topics, ", "))
		return
	}
	fmt.Fprintf(w, "\nRelated: %s\n", strings.Join(topics, ", "))
}

// Warn prints a yellow warning line.
func Warn(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%swarning:%s %s\n", Yellow, Reset, fmt.Sprintf(format, args...))
}

// Unresolved prints the placeholders a partial render left behind along
// with the flags that supply them.
func Unresolved(w io.Writer, names []string) {
	fmt.Fprintf(w, "\n  %s⚠ Missing values for: %s%s\n", Yellow, strings.Join(names, ", "), Reset)
	for _, n := range names {
		fmt.Fprintf(w, "    %s--set %s=<value>%s\n", Cyan, n, Reset)
	}
}

// FilesWritten prints a success block listing the generated files.
func FilesWritten(w io.Writer, label string, paths []string) {
	fmt.Fprintf(w, "\n%s%s✓ Generated %s%s\n\n", Bold, Green, label, Reset)
	for _, p := range paths {
		fmt.Fprintf(w, "    %s%s%s\n", Cyan, p, Reset)
	}
	fmt.Fprintln(w)
}
