// Package fusion implements the convergence diagram: a left column of input
// boxes joined to a right column of output boxes by curved connectors that
// merge at a shared junction line and enter each output through an arrowhead.
//
// The work is split into three stages so the geometry is testable without a
// rendering backend:
//
//  1. Measure: compute each box's height from its wrapped text, via a
//     measurement callback (no drawing).
//  2. Compute: stack both columns, center the shorter against the taller,
//     and route connectors from input anchors to output junctions.
//  3. Draw: replay the computed layout onto a canvas.Canvas.
package fusion

import "strconv"

// InputNode is a box in the left column: a prior experience or skill
// category feeding one or more outputs.
type InputNode struct {
	Key     string   // connector matching key; defaults to Label
	Label   string   //
	Badge   string   // short prefix before the label; defaults to a 1-based ordinal
	Bullets []string // optional sub-points
}

// OutputNode is a box in the right column: a synthesized focus area that
// references input nodes as sources.
type OutputNode struct {
	Label   string
	Alias   string   // secondary label text appended after Label
	Bullets []string //
	Sources []string // each should match an input's Key or Label
}

// NormalizeInputs fills defaulted fields: a missing Key becomes the Label,
// and a missing Badge becomes the node's 1-based position. The input slice is
// not modified.
func NormalizeInputs(nodes []InputNode) []InputNode {
	out := make([]InputNode, len(nodes))
	for i, n := range nodes {
		if n.Key == "" {
			n.Key = n.Label
		}
		if n.Badge == "" {
			n.Badge = strconv.Itoa(i + 1)
		}
		out[i] = n
	}
	return out
}
