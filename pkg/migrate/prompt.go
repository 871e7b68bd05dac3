package migrate

import (
	"fmt"

	"github.com/aretw0/florentine/pkg/domain"
)

// DefaultPrompt is used when a detection node carries no prompt.
const DefaultPrompt = "Detect objects in the image"

// FormatPrompt turns a GroundingDino prompt (e.g. "person, car, dog") into a
// Florence-2 detection instruction. The prompt is inserted verbatim. A
// prompt slot holding a non-string value (a link, number or boolean) is
// inserted as its JSON text, e.g. ["4",0] or true.
func FormatPrompt(prompt string) string {
	if prompt == "" {
		return DefaultPrompt
	}
	return fmt.Sprintf("Detect %s in the image", prompt)
}

// promptText resolves a slot value to prompt text. Falsy values yield "";
// non-string values are rendered as JSON.
func promptText(v domain.Value, ok bool) string {
	if !ok || !v.Truthy() {
		return ""
	}
	if s, isText := v.Text(); isText {
		return s
	}
	b, err := v.MarshalJSON()
	if err != nil {
		return v.String()
	}
	return string(b)
}
