// Package events defines the versioned envelope wrapped around every action
// forwarded to the external automation endpoint, and its validator.
package events

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Version is the envelope contract version this build speaks. Unknown
// versions fail validation; they are never coerced.
const Version = 1

// Known action types. The set is open: the validator only requires a
// non-empty actionType, so new actions ship without touching it.
const (
	ActionGuideRequest   = "GUIDE.REQUEST"
	ActionSOPIssueReport = "SOP.ISSUE_REPORT"
	ActionProblemReport  = "PROBLEM.REPORT"
	ActionSOPCreate      = "SOP.CREATE"
	ActionUserRoleSet    = "USER.ROLE_SET"
)

// Actor identifies who performed the action.
type Actor struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
}

// Envelope is the wire shape posted to the automation webhook. It is built
// per action and never persisted locally.
type Envelope struct {
	Version        int            `json:"version"`
	RequestID      string         `json:"requestId"`
	ActionType     string         `json:"actionType"`
	Actor          Actor          `json:"actor"`
	OrganizationID string         `json:"organizationId"`
	Timestamp      string         `json:"timestamp"`
	Payload        map[string]any `json:"payload"`
	Meta           map[string]any `json:"meta,omitempty"`
}

// New fills the contract version and, when absent, the request id and
// timestamp. The payload defaults to an empty object so a zero-value input
// still validates.
func New(e Envelope) Envelope {
	e.Version = Version
	if e.RequestID == "" {
		e.RequestID = uuid.NewString()
	}
	if e.Timestamp == "" {
		e.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	if e.Payload == nil {
		e.Payload = map[string]any{}
	}
	return e
}

// Validation is the advisory result: OK only when Errors is empty.
type Validation struct {
	OK     bool
	Errors []string
}

// Validate checks every constraint independently and collects all failures
// rather than stopping at the first. It performs no I/O; callers refuse
// transmission locally when the result is not OK.
func Validate(e Envelope) Validation {
	var errs []string
	if e.Version != Version {
		errs = append(errs, fmt.Sprintf("Unsupported version: %d", e.Version))
	}
	if e.RequestID == "" {
		errs = append(errs, "requestId is required")
	}
	if e.ActionType == "" {
		errs = append(errs, "actionType is required")
	}
	if e.OrganizationID == "" {
		errs = append(errs, "organizationId is required")
	}
	if e.Timestamp == "" {
		errs = append(errs, "timestamp is required")
	}
	if e.Actor.UserID == "" {
		errs = append(errs, "actor.userId is required")
	}
	if e.Payload == nil {
		errs = append(errs, "payload must be an object")
	}
	return Validation{OK: len(errs) == 0, Errors: errs}
}
