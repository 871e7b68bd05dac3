package migrate

import (
	"github.com/aretw0/florentine/pkg/domain"
)

// Rule identifies how a node is rewritten.
type Rule int

const (
	// RulePassthrough copies the node unchanged.
	RulePassthrough Rule = iota
	// RuleModelLoader replaces a GroundingDino model loader with a Florence2ModelLoader.
	RuleModelLoader
	// RuleDetect replaces a GroundingDino detection node with a Florence2Run.
	RuleDetect
	// RuleSegment expands a GroundingDinoSAMSegment into a three stage subgraph.
	RuleSegment
)

func (r Rule) String() string {
	switch r {
	case RuleModelLoader:
		return "model_loader"
	case RuleDetect:
		return "detect"
	case RuleSegment:
		return "segment"
	default:
		return "passthrough"
	}
}

// Rules lists the rewriting rules, passthrough excluded.
func Rules() []Rule {
	return []Rule{RuleModelLoader, RuleDetect, RuleSegment}
}

// RuleFor maps a class type to its rule. Matching is exact and
// case-sensitive.
func RuleFor(classType string) Rule {
	switch classType {
	case domain.ClassGroundingDinoModelLoader:
		return RuleModelLoader
	case domain.ClassGroundingDinoDetect, domain.ClassGroundDinoTextToMask:
		return RuleDetect
	case domain.ClassGroundingDinoSAMSegment:
		return RuleSegment
	default:
		return RulePassthrough
	}
}

// replaceLoader builds the Florence2ModelLoader. Nothing is carried over
// from the original node.
func replaceLoader(s LoaderSettings) domain.Node {
	return domain.NewNode(domain.ClassFlorence2ModelLoader).
		Set("model", domain.Literal(s.Model)).
		Set("precision", domain.Literal(s.Precision)).
		Set("attention", domain.Literal(s.Attention))
}

// florenceRun builds a Florence2Run node with the configured generation
// parameters and the formatted prompt.
func florenceRun(s RunSettings, prompt string) domain.Node {
	return domain.NewNode(domain.ClassFlorence2Run).
		Set("task", domain.Literal(s.Task)).
		Set(domain.SlotTextInput, domain.Literal(FormatPrompt(prompt))).
		Set("fill_mask", domain.Literal(s.FillMask)).
		Set("max_new_tokens", domain.Literal(s.MaxNewTokens)).
		Set("num_beams", domain.Literal(s.NumBeams)).
		Set("do_sample", domain.Literal(s.DoSample)).
		Set("output_mask_select", domain.Literal(s.OutputMaskSelect)).
		Set("seed", domain.Literal(s.Seed)).
		Set("keep_model_loaded", domain.Literal(s.KeepModelLoaded))
}

// carry copies slot from src into dst under name, if src has it.
func carry(dst domain.Node, src domain.Node, slot, name string) domain.Node {
	if v, ok := src.Input(slot); ok {
		return dst.Set(name, v)
	}
	return dst
}

// detectPrompt prefers "prompt", then "text_prompt". A present but empty
// "prompt" slot does not fall back.
func detectPrompt(n domain.Node) string {
	if v, ok := n.Input(domain.SlotPrompt); ok {
		return promptText(v, true)
	}
	return promptText(n.Input(domain.SlotTextPrompt))
}

// replaceDetect builds the Florence2Run replacing a detection node. The
// boolean reports whether the default prompt had to be used.
func replaceDetect(s RunSettings, n domain.Node) (domain.Node, bool) {
	prompt := detectPrompt(n)
	out := florenceRun(s, prompt)
	out = carry(out, n, domain.SlotDinoModel, domain.SlotModel)
	out = carry(out, n, domain.SlotImage, domain.SlotImage)
	return out, prompt == ""
}
