package graph

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aretw0/compact/pkg/dsl"
)

// GraphOverlay contains dynamic state data to visualize on the graph.
type GraphOverlay struct {
	// Changed lists state paths as reported by value.Changes, e.g. "todos[0].text".
	Changed []string
}

// GenerateMermaid produces a Mermaid flowchart syntax string from a definition tree.
// It applies semantic styling:
// - Root: ((Circle))
// - Collection: [[Subroutine]]
// - Scalar: ([Stadium])
// - Composite: [Rectangle]
// Combined slices are linked with solid arrows, list items with dotted arrows
// labelled by their context slot. The label of a node lists its reducers.
// It also highlights the slices touched by the overlay, if provided.
func GenerateMermaid(def dsl.Definition, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	ids := make(map[string]bool)
	walk(&sb, ids, def, "", "root", 0)

	if overlay != nil && len(overlay.Changed) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef changed fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, p := range overlay.Changed {
			// Every ancestor of a changed slice was rebuilt as well.
			// Paths below a scalar slice have no node of their own.
			segs := strings.Split(DefinitionPath(p), ".")
			for i := range segs {
				id := sanitizeMermaidID(strings.Join(segs[:i+1], "."))
				if ids[id] && !seen[id] {
					seen[id] = true
					sb.WriteString(fmt.Sprintf("    class %s changed;\n", id))
				}
			}
		}
	}

	return sb.String()
}

func walk(sb *strings.Builder, ids map[string]bool, d dsl.Definition, path, name string, depth int) {
	safeID := sanitizeMermaidID(path)
	if path == "" {
		safeID = "root"
	}
	ids[safeID] = true

	opener, closer := "[", "]"
	switch {
	case path == "":
		opener, closer = "((", "))"
	case d.Kind() == dsl.KindCollection:
		opener, closer = "[[", "]]"
	case d.Kind() == dsl.KindScalar:
		opener, closer = "([", "])"
	}

	label := name
	if names := append(d.ReducerNames(), d.ActionCreatorNames()...); len(names) > 0 {
		label = fmt.Sprintf("%s <br/> %s", name, strings.Join(names, ", "))
	}
	sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, label, closer))

	for _, f := range d.Fields() {
		child := join(path, f.Name)
		walk(sb, ids, f.Def, child, f.Name, depth)
		sb.WriteString(fmt.Sprintf("    %s --> %s\n", safeID, sanitizeMermaidID(child)))
	}

	if spec, ok := d.Collection(); ok {
		child := join(path, dsl.ItemAccessor)
		walk(sb, ids, spec.Of, child, dsl.ItemAccessor, depth+1)
		slot := spec.ContextName
		if slot == "" {
			slot = fmt.Sprintf("%s%d", dsl.ItemAccessor, depth)
		}
		sb.WriteString(fmt.Sprintf("    %s -. \"%s\" .-> %s\n", safeID, slot, sanitizeMermaidID(child)))
	}
}

var index = regexp.MustCompile(`\[\d+\]`)

// DefinitionPath maps a state path ("todos[0].text") to the path of the
// definition that owns it ("todos.$item.text").
func DefinitionPath(statePath string) string {
	return index.ReplaceAllString(statePath, "."+dsl.ItemAccessor)
}

func join(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, "$", "")
	return s
}
