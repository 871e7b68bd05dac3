package migrate

import (
	"io"
	"log/slog"

	"github.com/aretw0/florentine/pkg/domain"
)

// Rewriter applies the migration rules to workflow documents. It holds no
// per-run state and is safe for concurrent use.
type Rewriter struct {
	settings Settings
	logger   *slog.Logger
}

// NewRewriter creates a Rewriter. A nil logger discards output.
func NewRewriter(settings Settings, logger *slog.Logger) *Rewriter {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Rewriter{settings: settings, logger: logger}
}

// Rewrite migrates doc with the default settings and no logging.
func Rewrite(doc *domain.Workflow) (*domain.Workflow, *Report) {
	return NewRewriter(DefaultSettings(), nil).Rewrite(doc)
}

// Rewrite builds a new document from doc; doc itself is never modified.
//
// Nodes are visited in document order. Replacements keep their identifier
// and position. Stages of an expansion other than the final one are staged
// and appended after the main pass, in creation order.
func (r *Rewriter) Rewrite(doc *domain.Workflow) (*domain.Workflow, *Report) {
	out := domain.NewWorkflow()
	report := &Report{InputNodes: doc.Len()}
	var staged []Stage

	doc.Each(func(id string, node domain.Node) {
		rule := RuleFor(node.ClassType)
		sub := Substitution{NodeID: id, Rule: rule, From: node.ClassType}

		switch rule {
		case RuleModelLoader:
			replacement := replaceLoader(r.settings.Loader)
			out.Set(id, replacement)
			sub.To = []string{replacement.ClassType}

		case RuleDetect:
			replacement, fallback := replaceDetect(r.settings.Run, node)
			out.Set(id, replacement)
			sub.To = []string{replacement.ClassType}
			sub.PromptFallback = fallback

		case RuleSegment:
			stages, fallback := expandSegment(r.settings, node, id)
			for _, st := range stages {
				sub.To = append(sub.To, st.Node.ClassType)
				if st.ID == id {
					out.Set(id, st.Node)
					continue
				}
				sub.Created = append(sub.Created, st.ID)
				staged = append(staged, st)
			}
			sub.PromptFallback = fallback

		default:
			out.Set(id, node)
			return
		}

		r.logger.Info("migrating node", "node_id", id, "from", sub.From, "to", sub.To)
		if sub.PromptFallback {
			r.logger.Warn("no prompt found, using default prompt", "node_id", id, "class_type", node.ClassType)
		}
		report.Substitutions = append(report.Substitutions, sub)
	})

	for _, st := range staged {
		if _, exists := out.Get(st.ID); exists {
			r.logger.Warn("derived node id overwrites an existing node", "node_id", st.ID)
			report.Collisions = append(report.Collisions, st.ID)
		}
		out.Set(st.ID, st.Node)
	}

	report.OutputNodes = out.Len()
	return out, report
}
