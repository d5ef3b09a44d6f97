package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/compact/pkg/dsl"
)

// GenerateMarkdown describes a definition tree as a Markdown document: one
// table row per slice with its kind, default, reducers and action creators,
// followed by the dispatch keys the tree compiles to.
func GenerateMarkdown(title string, def dsl.Definition) string {
	var rows, keys []string
	describe(&rows, &keys, def, nil)

	var sb strings.Builder
	if title == "" {
		title = "definition"
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)
	sb.WriteString("| slice | kind | default | reducers | action creators |\n")
	sb.WriteString("|-------|------|---------|----------|-----------------|\n")
	for _, row := range rows {
		sb.WriteString(row)
	}
	sb.WriteString("\n## Action types\n\n")
	for _, k := range keys {
		fmt.Fprintf(&sb, "- `%s`\n", k)
	}
	return sb.String()
}

func describe(rows, keys *[]string, d dsl.Definition, segs []string) {
	name := "root"
	if len(segs) > 0 {
		name = strings.Join(segs, ".")
	}

	def := "-"
	if v, ok := d.DefaultValue(); ok && d.Kind() == dsl.KindScalar {
		def = fmt.Sprintf("`%v`", v)
	}
	*rows = append(*rows, fmt.Sprintf("| `%s` | %s | %s | %s | %s |\n",
		name, d.Kind(), def, names(d.ReducerNames()), names(d.ActionCreatorNames())))

	for _, r := range d.ReducerNames() {
		*keys = append(*keys, strings.Join(append(append([]string{"actions"}, segs...), r), "/"))
	}
	for _, f := range d.Fields() {
		describe(rows, keys, f.Def, append(segs[:len(segs):len(segs)], f.Name))
	}
	if spec, ok := d.Collection(); ok {
		describe(rows, keys, spec.Of, append(segs[:len(segs):len(segs)], dsl.ItemAccessor))
	}
}

func names(ns []string) string {
	if len(ns) == 0 {
		return "-"
	}
	return strings.Join(ns, ", ")
}
