// Package graph orders workflow nodes so every node runs after its dependencies.
package graph

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dukex/superagente/pkg/models"
)

var (
	// ErrUnschedulableGraph is matched by every SchedulingError.
	ErrUnschedulableGraph = errors.New("unschedulable graph")

	// ErrCycle indicates the dependency graph contains at least one cycle.
	ErrCycle = errors.New("cycle detected")

	// ErrDanglingEdge indicates an edge references a node id missing from the definition.
	ErrDanglingEdge = errors.New("edge references unknown node")

	// ErrDuplicateNode indicates two nodes share the same id.
	ErrDuplicateNode = errors.New("duplicate node id")
)

// SchedulingError reports why a definition cannot be ordered.
type SchedulingError struct {
	Reason  error    // One of ErrCycle, ErrDanglingEdge, ErrDuplicateNode
	NodeIDs []string // Offending node ids
	EdgeID  string   // Offending edge, for dangling references
}

func (e *SchedulingError) Error() string {
	if e.EdgeID != "" {
		return fmt.Sprintf("%v: %v: edge %s -> [%s]", ErrUnschedulableGraph, e.Reason, e.EdgeID, strings.Join(e.NodeIDs, ", "))
	}

	return fmt.Sprintf("%v: %v: [%s]", ErrUnschedulableGraph, e.Reason, strings.Join(e.NodeIDs, ", "))
}

func (e *SchedulingError) Unwrap() error {
	return e.Reason
}

// Is matches ErrUnschedulableGraph as well as the specific reason.
func (e *SchedulingError) Is(target error) bool {
	return target == ErrUnschedulableGraph || errors.Is(e.Reason, target)
}

// IsSchedulingError checks if an error indicates the graph could not be ordered.
func IsSchedulingError(err error) bool {
	return errors.Is(err, ErrUnschedulableGraph)
}

// Order returns nodes in an execution order where every edge source precedes its target.
//
// The order is deterministic: zero in-degree nodes are seeded in node-array order and
// nodes released at the same time are queued in edge-array order. A definition with a
// cycle, a dangling edge or a duplicate node id yields a *SchedulingError and no order.
func Order(nodes []models.Node, edges []models.Edge) ([]models.Node, error) {
	index := make(map[string]int, len(nodes))
	inDegree := make(map[string]int, len(nodes))
	adjacency := make(map[string][]string, len(nodes))

	for i, node := range nodes {
		if _, exists := index[node.ID]; exists {
			return nil, &SchedulingError{Reason: ErrDuplicateNode, NodeIDs: []string{node.ID}}
		}

		index[node.ID] = i
		inDegree[node.ID] = 0
	}

	for _, edge := range edges {
		missing := make([]string, 0, 2)

		if _, ok := index[edge.Source]; !ok {
			missing = append(missing, edge.Source)
		}

		if _, ok := index[edge.Target]; !ok {
			missing = append(missing, edge.Target)
		}

		if len(missing) > 0 {
			return nil, &SchedulingError{Reason: ErrDanglingEdge, NodeIDs: missing, EdgeID: edge.ID}
		}

		adjacency[edge.Source] = append(adjacency[edge.Source], edge.Target)
		inDegree[edge.Target]++
	}

	queue := make([]string, 0, len(nodes))

	for _, node := range nodes {
		if inDegree[node.ID] == 0 {
			queue = append(queue, node.ID)
		}
	}

	ordered := make([]models.Node, 0, len(nodes))

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		ordered = append(ordered, nodes[index[current]])

		for _, neighbor := range adjacency[current] {
			inDegree[neighbor]--
			if inDegree[neighbor] == 0 {
				queue = append(queue, neighbor)
			}
		}
	}

	if len(ordered) < len(nodes) {
		blocked := make([]string, 0, len(nodes)-len(ordered))

		for _, node := range nodes {
			if inDegree[node.ID] > 0 {
				blocked = append(blocked, node.ID)
			}
		}

		return nil, &SchedulingError{Reason: ErrCycle, NodeIDs: blocked}
	}

	return ordered, nil
}

// OrderIDs is Order projected to node ids.
func OrderIDs(nodes []models.Node, edges []models.Edge) ([]string, error) {
	ordered, err := Order(nodes, edges)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(ordered))
	for i, node := range ordered {
		ids[i] = node.ID
	}

	return ids, nil
}
