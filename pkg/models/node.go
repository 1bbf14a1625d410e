// Package models defines core node-based workflow models for graph execution
package models

// NodeKind identifies the behaviour of a node when a workflow runs.
// Values match the node type tags produced by the canvas editor.
type NodeKind string

const (
	NodeKindInput    NodeKind = "inputNode"  // Emits a static value
	NodeKindGenerate NodeKind = "geminiNode" // Calls the generation capability
	NodeKindOutput   NodeKind = "outputNode" // Exposes the upstream value
)

// IsValid reports whether the kind is one the engine knows how to execute.
func (k NodeKind) IsValid() bool {
	switch k {
	case NodeKindInput, NodeKindGenerate, NodeKindOutput:
		return true
	default:
		return false
	}
}

// Position is the canvas placement of a node. It has no effect on execution.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// NodeData carries the kind-specific payload of a node.
type NodeData struct {
	Value       string `json:"value,omitempty"       yaml:"value,omitempty"`       // Input nodes
	Instruction string `json:"instruction,omitempty" yaml:"instruction,omitempty"` // Generate nodes
	Result      string `json:"result,omitempty"      yaml:"result,omitempty"`      // Output nodes, display only
}

// Node represents a node instance in a workflow definition.
type Node struct {
	ID       string   `json:"id"       yaml:"id"   validate:"required"`
	Type     NodeKind `json:"type"     yaml:"type" validate:"required"`
	Position Position `json:"position" yaml:"position"`
	Data     NodeData `json:"data"     yaml:"data"`
}

// Edge is a directed dependency: Target runs after Source and reads its output.
type Edge struct {
	ID     string `json:"id"     yaml:"id"`
	Source string `json:"source" yaml:"source" validate:"required"`
	Target string `json:"target" yaml:"target" validate:"required"`
}

// Definition is the full node and edge graph submitted for execution.
type Definition struct {
	Nodes []Node `json:"nodes" yaml:"nodes" validate:"dive"`
	Edges []Edge `json:"edges" yaml:"edges" validate:"dive"`
}

// IncomingEdges returns the edges targeting nodeID in definition order.
func IncomingEdges(edges []Edge, nodeID string) []Edge {
	var incoming []Edge

	for _, edge := range edges {
		if edge.Target == nodeID {
			incoming = append(incoming, edge)
		}
	}

	return incoming
}
