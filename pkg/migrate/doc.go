/*
Package migrate rewrites a node-graph workflow so that GroundingDino nodes are
replaced by their Florence-2 equivalents while the graph stays connected.

The rule set is closed. Each node's class type selects one Rule:

  - GroundingDinoModelLoader becomes a Florence2ModelLoader with constant settings.
  - GroundingDinoDetect and GroundDinoTextToMask become a Florence2Run.
  - GroundingDinoSAMSegment expands into Florence2Run, Florence2toCoordinates and SAM2.
  - Anything else is copied through untouched.

An expansion keeps the original identifier for its final SAM2 stage, so links
from other nodes still resolve. The two upstream stages get derived identifiers
("<id>_florence" and "<id>_coords") and are appended after all original nodes.

Usage:

	out, report := migrate.NewRewriter(migrate.DefaultSettings(), logger).Rewrite(doc)
	fmt.Printf("%d -> %d nodes\n", report.InputNodes, report.OutputNodes)
*/
package migrate
