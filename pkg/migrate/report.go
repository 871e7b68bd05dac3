package migrate

// Substitution records one rewritten node.
type Substitution struct {
	NodeID string
	Rule   Rule
	From   string
	// To lists the class types that replaced the node, in creation order.
	To []string
	// Created lists identifiers added to the document by an expansion.
	Created []string
	// PromptFallback is set when no prompt was found and the default was used.
	PromptFallback bool
}

// Report summarizes a rewrite.
type Report struct {
	InputNodes    int
	OutputNodes   int
	Substitutions []Substitution
	// Collisions lists derived identifiers that overwrote an existing node.
	Collisions []string
}

// Count returns how many nodes were rewritten by rule.
func (r *Report) Count(rule Rule) int {
	n := 0
	for _, s := range r.Substitutions {
		if s.Rule == rule {
			n++
		}
	}
	return n
}

// Fallbacks returns how many substitutions used the default prompt.
func (r *Report) Fallbacks() int {
	n := 0
	for _, s := range r.Substitutions {
		if s.PromptFallback {
			n++
		}
	}
	return n
}

// Created returns the number of nodes added by expansions.
func (r *Report) Created() int {
	n := 0
	for _, s := range r.Substitutions {
		n += len(s.Created)
	}
	return n
}
