package graph

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/aretw0/florentine/pkg/domain"
	"github.com/aretw0/florentine/pkg/migrate"
)

// GraphOverlay marks nodes touched by a migration.
type GraphOverlay struct {
	MigratedNodes []string
	CreatedNodes  []string
}

// OverlayFromReport builds an overlay from a rewrite report.
func OverlayFromReport(report *migrate.Report) *GraphOverlay {
	overlay := &GraphOverlay{}
	for _, sub := range report.Substitutions {
		overlay.MigratedNodes = append(overlay.MigratedNodes, sub.NodeID)
		overlay.CreatedNodes = append(overlay.CreatedNodes, sub.Created...)
	}
	return overlay
}

// GenerateMermaid produces a Mermaid flowchart of a workflow document.
// Each Link becomes an edge from the producing node to the consuming node,
// labelled with the input slot (and the output index when it is not 0).
// Node shapes follow the rewrite rules:
// - Recognized GroundingDino node: [/Parallelogram/]
// - Florence-2 / SAM2 node: [[Subroutine]]
// - Default: [Rectangle]
// Overlay styles (Migrated/Created) are applied if provided.
func GenerateMermaid(doc *domain.Workflow, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	doc.Each(func(id string, node domain.Node) {
		safeID := sanitizeMermaidID(id)

		opener, closer := "[", "]"
		switch {
		case migrate.RuleFor(node.ClassType) != migrate.RulePassthrough:
			opener, closer = "[/", "/]"
		case isFlorence(node.ClassType):
			opener, closer = "[[", "]]"
		}

		label := id
		if node.ClassType != "" {
			label = fmt.Sprintf("%s: %s", id, node.ClassType)
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, escapeLabel(label), closer))
	})

	doc.Each(func(id string, node domain.Node) {
		safeID := sanitizeMermaidID(id)
		for _, sl := range node.Links() {
			edge := sl.Slot
			if sl.Link.Output != 0 {
				edge = fmt.Sprintf("%s #%d", sl.Slot, sl.Link.Output)
			}
			sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", sanitizeMermaidID(sl.Link.NodeID), escapeLabel(edge), safeID))
		}
	})

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef migrated fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef created fill:#ffeb3b,stroke:#fbc02d,stroke-width:2px,color:#000;\n")
		writeClass(&sb, overlay.MigratedNodes, "migrated")
		writeClass(&sb, overlay.CreatedNodes, "created")
	}

	return sb.String()
}

func writeClass(sb *strings.Builder, ids []string, class string) {
	seen := make(map[string]bool)
	for _, id := range ids {
		safeID := sanitizeMermaidID(id)
		if seen[safeID] {
			continue
		}
		seen[safeID] = true
		sb.WriteString(fmt.Sprintf("    class %s %s;\n", safeID, class))
	}
}

func isFlorence(classType string) bool {
	switch classType {
	case domain.ClassFlorence2ModelLoader, domain.ClassFlorence2Run, domain.ClassFlorence2toCoordinates, domain.ClassSAM2:
		return true
	}
	return false
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

// sanitizeMermaidID maps a node id to a valid Mermaid node name. Ids made
// only of ASCII letters, digits and underscores keep their text behind an
// "n" prefix (numeric ids are the common case). Any other id is hex-encoded
// behind an "x" prefix, so distinct ids never share a name.
func sanitizeMermaidID(id string) string {
	if id != "" && isPlainID(id) {
		return "n" + id
	}
	return "x" + hex.EncodeToString([]byte(id))
}

func isPlainID(id string) bool {
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		default:
			return false
		}
	}
	return true
}
