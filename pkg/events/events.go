// Package events defines event types and structures for workflow execution notifications.
package events

import (
	"time"

	"github.com/dukex/superagente/pkg/models"
	"github.com/google/uuid"
)

type EventType string

const Topic = "superagente.events"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	WorkflowExecutionStartedEvent   EventType = "workflow.execution.started"
	WorkflowExecutionCompletedEvent EventType = "workflow.execution.completed"
	WorkflowExecutionFailedEvent    EventType = "workflow.execution.failed"
)

// Trigger identifies what started an execution.
type Trigger string

const (
	TriggerAPI      Trigger = "api"
	TriggerSchedule Trigger = "schedule"
)

type BaseEvent struct {
	ID         string         `json:"id"`
	Type       EventType      `json:"type"`
	Timestamp  time.Time      `json:"timestamp"`
	WorkflowID string         `json:"workflow_id"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

func NewBaseEvent(eventType EventType, workflowID string) BaseEvent {
	return BaseEvent{
		ID:         uuid.New().String(),
		Type:       eventType,
		Timestamp:  time.Now().UTC(),
		WorkflowID: workflowID,
		Metadata:   make(map[string]any),
	}
}

type WorkflowExecutionStarted struct {
	BaseEvent

	ExecutionID string  `json:"execution_id"`
	Trigger     Trigger `json:"trigger"`
	NodeCount   int     `json:"node_count"`
}

func (e WorkflowExecutionStarted) GetType() EventType {
	return WorkflowExecutionStartedEvent
}

// WorkflowExecutionCompleted is published after every node has been evaluated.
// Individual nodes may still have failed; see NodeStatuses.
type WorkflowExecutionCompleted struct {
	BaseEvent

	ExecutionID  string                         `json:"execution_id"`
	Trigger      Trigger                        `json:"trigger"`
	NodeStatuses map[string]models.ResultStatus `json:"node_statuses"`
	FailedNodes  int                            `json:"failed_nodes"`
	Duration     time.Duration                  `json:"duration"`
}

func (e WorkflowExecutionCompleted) GetType() EventType {
	return WorkflowExecutionCompletedEvent
}

// WorkflowExecutionFailed is published when a run could not be scheduled.
type WorkflowExecutionFailed struct {
	BaseEvent

	ExecutionID string        `json:"execution_id"`
	Trigger     Trigger       `json:"trigger"`
	Error       string        `json:"error"`
	Duration    time.Duration `json:"duration"`
}

func (e WorkflowExecutionFailed) GetType() EventType {
	return WorkflowExecutionFailedEvent
}
