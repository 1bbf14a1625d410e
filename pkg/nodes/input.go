package nodes

import (
	"fmt"
	"strings"

	"github.com/dukex/superagente/pkg/models"
)

// FanInPolicy decides how a node with several incoming edges resolves its input.
type FanInPolicy string

const (
	// FanInFirst uses the first incoming edge in edge order and ignores the rest.
	FanInFirst FanInPolicy = "first"

	// FanInConcatenate joins the values of every incoming edge, in edge order, with blank lines.
	FanInConcatenate FanInPolicy = "concatenate"

	// FanInReject fails the node when it has more than one incoming edge.
	FanInReject FanInPolicy = "reject"
)

// ParseFanInPolicy converts a configuration value into a FanInPolicy. Empty means FanInFirst.
func ParseFanInPolicy(value string) (FanInPolicy, error) {
	switch FanInPolicy(strings.ToLower(strings.TrimSpace(value))) {
	case "", FanInFirst:
		return FanInFirst, nil
	case FanInConcatenate:
		return FanInConcatenate, nil
	case FanInReject:
		return FanInReject, nil
	default:
		return "", fmt.Errorf("unknown fan-in policy %q", value)
	}
}

// resolveInput returns the upstream value flowing into nodeID.
// A missing predecessor result or an error-tagged one contributes "".
func (e *Evaluator) resolveInput(nodeID string, prior map[string]models.ExecutionResult, edges []models.Edge) (string, error) {
	incoming := models.IncomingEdges(edges, nodeID)
	if len(incoming) == 0 {
		return "", nil
	}

	switch e.fanIn {
	case FanInConcatenate:
		values := make([]string, 0, len(incoming))
		for _, edge := range incoming {
			values = append(values, prior[edge.Source].Scalar())
		}

		return strings.Join(values, "\n\n"), nil
	case FanInReject:
		if len(incoming) > 1 {
			return "", fmt.Errorf("%w: %d edges target %s", ErrMultipleInputs, len(incoming), nodeID)
		}
	}

	return prior[incoming[0].Source].Scalar(), nil
}
