package persistence_test

import (
	"errors"
	"testing"

	"github.com/dukex/superagente/pkg/persistence"
	"github.com/stretchr/testify/assert"
)

func TestStandardizedErrors(t *testing.T) {
	t.Parallel()

	t.Run("error checking functions work correctly", func(t *testing.T) {
		workflowErr := persistence.NewWorkflowError("GetByID", "workflow-123", persistence.ErrWorkflowNotFound)

		assert.True(t, persistence.IsWorkflowNotFound(workflowErr))
		assert.False(t, persistence.IsInvalidID(workflowErr))
		assert.True(t, errors.Is(workflowErr, persistence.ErrWorkflowNotFound))
	})

	t.Run("workflow error contains context", func(t *testing.T) {
		err := persistence.NewWorkflowError("Delete", "workflow-123", persistence.ErrWorkflowNotFound)

		assert.Contains(t, err.Error(), "Delete")
		assert.Contains(t, err.Error(), "workflow-123")
		assert.Contains(t, err.Error(), "workflow not found")
	})

	t.Run("workflow error with message", func(t *testing.T) {
		err := &persistence.WorkflowError{Op: "Save", WorkflowID: "w", Err: errors.New("boom"), Message: "marshal definition"}

		assert.Equal(t, "Save operation failed for workflow w: marshal definition (boom)", err.Error())
	})

	t.Run("execution log error unwraps", func(t *testing.T) {
		cause := errors.New("disk full")
		err := &persistence.ExecutionLogError{Op: "Append", WorkflowID: "w", Err: cause}

		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "execution logs of workflow w")
	})
}
