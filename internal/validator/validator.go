package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/florentine/pkg/domain"
)

// Problem describes one link that points at a node missing from the document.
type Problem struct {
	NodeID string
	Slot   string
	Target string
}

func (p Problem) String() string {
	return fmt.Sprintf("Missing node '%s' (linked from %s.%s)", p.Target, p.NodeID, p.Slot)
}

// DanglingLinks lists every link in doc whose target id is not a node of doc,
// in document and slot order.
func DanglingLinks(doc *domain.Workflow) []Problem {
	var problems []Problem
	doc.Each(func(id string, node domain.Node) {
		for _, sl := range node.Links() {
			if _, ok := doc.Get(sl.Link.NodeID); !ok {
				problems = append(problems, Problem{NodeID: id, Slot: sl.Slot, Target: sl.Link.NodeID})
			}
		}
	})
	return problems
}

// ValidateWorkflow checks that every link of doc resolves.
func ValidateWorkflow(doc *domain.Workflow) error {
	problems := DanglingLinks(doc)
	if len(problems) == 0 {
		return nil
	}

	lines := make([]string, len(problems))
	for i, p := range problems {
		lines[i] = p.String()
	}
	return fmt.Errorf("found %d errors:\n- %s", len(problems), strings.Join(lines, "\n- "))
}
