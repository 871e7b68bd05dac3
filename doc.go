/*
Package florentine migrates node-graph image-processing workflows from
GroundingDino nodes to their Florence-2 equivalents.

A workflow document is a JSON object mapping node identifiers to node records
of the form {"class_type": ..., "inputs": {...}}. Inputs hold literals or links
written as [node_id, output_index]. The migration replaces the GroundingDino
model loader and detection nodes one-for-one. It expands each
GroundingDinoSAMSegment into a Florence2Run, Florence2toCoordinates and SAM2
chain. Every link in the document keeps resolving and all other nodes are
copied verbatim.

# Usage

	m := florentine.New(florentine.WithLogger(logger))

	report, err := m.MigrateFile(ctx, "workflow.json", "workflow.florence.json", true)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%d nodes -> %d nodes\n", report.InputNodes, report.OutputNodes)

The rewriting rules live in package migrate, the document model in package
domain. The florentine command wraps the same API with a CLI, an HTTP endpoint
and an MCP tool.
*/
package florentine
