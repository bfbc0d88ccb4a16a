package ux

import (
	"fmt"
	"io"
	"strings"

	"github.com/jorge-barreto/spk/internal/docs"
	"github.com/jorge-barreto/spk/internal/journal"
	"github.com/jorge-barreto/spk/internal/templates"
)

// TopicList prints every fragment with its summary and aliases.
func TopicList(w io.Writer, reg *docs.Registry) {
	fmt.Fprintf(w, "\nAvailable topics (%s):\n\n", reg.Framework())
	for _, f := range reg.Fragments() {
		fmt.Fprintf(w, "  %-12s %s\n", f.ID, f.Summary)
		if aliases := reg.Keywords(f.ID); len(aliases) > 0 {
			fmt.Fprintf(w, "  %-12s %saliases: %s%s\n", "", Dim, strings.Join(aliases, ", "), Reset)
		}
	}
	fmt.Fprintln(w, "\nRun 'spk docs <topic>' to read a topic.")
}

// TemplateList prints every template type with its placeholders.
func TemplateList(w io.Writer, cat *templates.Catalog) {
	fmt.Fprintf(w, "\nTemplate types (%s):\n\n", cat.Framework())
	for _, t := range cat.Templates() {
		fmt.Fprintf(w, "  %-10s %s\n", t.Type, t.Description)
		fmt.Fprintf(w, "  %-10s %splaceholders: %s%s\n", "", Dim, strings.Join(t.Placeholders, ", "), Reset)
	}
	fmt.Fprintln(w, "\nRun 'spk gen <type> <ComponentName> --endpoint <path>' to generate one.")
}

// History prints journal entries, newest first.
func History(w io.Writer, entries []journal.Entry) {
	if len(entries) == 0 {
		fmt.Fprintf(w, "  %s(no generated scaffolds)%s\n", Dim, Reset)
		return
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%s%s%s  %-8s %-9s %s\n",
			Dim, e.Time.Local().Format("2006-01-02 15:04"), Reset,
			e.Framework, e.Type, e.Params["componentName"])
		for _, f := range e.Files {
			fmt.Fprintf(w, "    %s\n", f)
		}
	}
}
