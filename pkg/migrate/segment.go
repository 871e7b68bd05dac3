package migrate

import (
	"github.com/aretw0/florentine/pkg/domain"
)

// Stage is one node produced by an expansion.
type Stage struct {
	ID   string
	Node domain.Node
}

// expandSegment replaces a GroundingDinoSAMSegment with a detection stage,
// a coordinate extraction stage and a SAM2 stage, returned in that order.
// The SAM2 stage keeps id so external links to the original node still
// resolve; the others use derived identifiers. The boolean reports whether
// the default prompt had to be used.
func expandSegment(s Settings, n domain.Node, id string) ([]Stage, bool) {
	prompt := promptText(n.Input(domain.SlotPrompt))

	florenceID := domain.DerivedID(id, domain.RoleFlorence)
	florence := florenceRun(s.Run, prompt)
	florence = carry(florence, n, domain.SlotImage, domain.SlotImage)
	florence = carry(florence, n, domain.SlotDinoModel, domain.SlotModel)

	coordsID := domain.DerivedID(id, domain.RoleCoords)
	coords := domain.NewNode(domain.ClassFlorence2toCoordinates).
		Set(domain.SlotFlorenceResult, domain.LinkTo(florenceID, 0)).
		Set(domain.SlotIndex, domain.Literal(s.Segment.Index))

	sam := domain.NewNode(domain.ClassSAM2).
		Set(domain.SlotCoordinates, domain.LinkTo(coordsID, 0)).
		Set(domain.SlotIndividualObjects, domain.Literal(s.Segment.IndividualObjects))
	sam = carry(sam, n, domain.SlotSAMModel, domain.SlotSAMModel)
	sam = carry(sam, n, domain.SlotImage, domain.SlotImage)

	return []Stage{
		{ID: florenceID, Node: florence},
		{ID: coordsID, Node: coords},
		{ID: id, Node: sam},
	}, prompt == ""
}
